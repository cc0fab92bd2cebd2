// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the execution lifecycle that loads method
// files, builds their parameter spaces and prints their hyperpartitions,
// decoupled from any specific entrypoint like a CLI.
package app
