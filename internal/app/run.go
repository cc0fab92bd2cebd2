package app

import (
	"context"
	"fmt"
	"runtime"

	"github.com/kajjjak/ATM/internal/config"
	"github.com/kajjjak/ATM/internal/cpt"
	"github.com/kajjjak/ATM/internal/ctxlog"
	"golang.org/x/sync/errgroup"
)

// result is the enumeration of one method.
type result struct {
	space      *cpt.Space
	partitions []cpt.HyperPartition
}

// Run executes the main application logic based on the app's configuration.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if a.config.Check {
		if a.config.Method != "" {
			if _, err := a.registry.Lookup(ctx, a.config.Method); err != nil {
				return err
			}
		}
		if err := a.registry.ValidateRegistry(ctx, a.config.Options()); err != nil {
			return err
		}
		n := len(a.registry.Methods())
		a.logger.Info("All methods are valid.", "methods", n)
		_, err := fmt.Fprintf(a.outW, "%d methods are valid\n", n)
		return err
	}

	methods, err := a.selectMethods(ctx)
	if err != nil {
		return err
	}
	if len(methods) == 0 {
		a.logger.Warn("No methods found, nothing to enumerate.", "methods_path", a.config.MethodsPath)
		return nil
	}

	results, err := a.enumerate(ctx, methods)
	if err != nil {
		return err
	}

	a.logger.Debug("App.Run method finished.")
	return a.render(results)
}

func (a *App) selectMethods(ctx context.Context) ([]*config.Method, error) {
	if a.config.All {
		return a.registry.Methods(), nil
	}
	m, err := a.registry.Lookup(ctx, a.config.Method)
	if err != nil {
		return nil, err
	}
	return []*config.Method{m}, nil
}

// enumerate builds and enumerates every method concurrently. Results keep
// the order of methods.
func (a *App) enumerate(ctx context.Context, methods []*config.Method) ([]result, error) {
	results := make([]result, len(methods))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, m := range methods {
		g.Go(func() error {
			space, err := cpt.New(gctx, m, a.config.Options())
			if err != nil {
				return err
			}
			partitions, err := space.Enumerate(gctx)
			if err != nil {
				return err
			}
			results[i] = result{space: space, partitions: partitions}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	a.logger.Info("Enumeration finished.", "methods", len(methods))
	return results, nil
}
