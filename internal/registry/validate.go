package registry

import (
	"context"
	"fmt"
	"strings"

	"github.com/kajjjak/ATM/internal/cpt"
	"github.com/kajjjak/ATM/internal/ctxlog"
)

// ValidateRegistry builds the parameter space of every registered method and
// reports all failures at once.
func (r *Registry) ValidateRegistry(ctx context.Context, opts cpt.Options) error {
	logger := ctxlog.FromContext(ctx)

	var errs []string
	for _, m := range r.methods {
		if _, err := cpt.New(ctx, m, opts); err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", m.Source, err))
			continue
		}
		logger.Debug("Method is valid.", "method", m.Name, "file", m.Source)
	}

	if len(errs) > 0 {
		return fmt.Errorf("registry validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}
