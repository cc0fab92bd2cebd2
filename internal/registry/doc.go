// Package registry holds every method known to an application instance.
//
// Methods are loaded from files by the config.Loader registered for the
// file's extension, then addressed by code (the method's name) or by the
// path of the file that declares them. The registry is populated once at
// startup and read afterwards.
package registry
