package app

import (
	"encoding/json"
	"fmt"

	"github.com/kajjjak/ATM/internal/cpt"
)

// methodReport is the JSON shape of one enumerated method.
type methodReport struct {
	Method          string               `json:"method"`
	Class           string               `json:"class,omitempty"`
	Count           int                  `json:"count"`
	Hyperpartitions []cpt.HyperPartition `json:"hyperpartitions,omitempty"`
}

func (a *App) render(results []result) error {
	if a.config.Output == "json" {
		return a.renderJSON(results)
	}
	return a.renderText(results)
}

func (a *App) renderText(results []result) error {
	for _, r := range results {
		if a.config.CountOnly {
			if _, err := fmt.Fprintf(a.outW, "%s: %d\n", r.space.Name(), len(r.partitions)); err != nil {
				return err
			}
			continue
		}

		header := r.space.Name()
		if r.space.Class() != "" {
			header += " (" + r.space.Class() + ")"
		}
		if _, err := fmt.Fprintf(a.outW, "%s: %d hyperpartitions\n", header, len(r.partitions)); err != nil {
			return err
		}
		for _, p := range r.partitions {
			if _, err := fmt.Fprintf(a.outW, "  %s\n", p); err != nil {
				return err
			}
		}
	}
	return nil
}

func (a *App) renderJSON(results []result) error {
	reports := make([]methodReport, len(results))
	for i, r := range results {
		reports[i] = methodReport{
			Method: r.space.Name(),
			Class:  r.space.Class(),
			Count:  len(r.partitions),
		}
		if !a.config.CountOnly {
			reports[i].Hyperpartitions = r.partitions
		}
	}

	enc := json.NewEncoder(a.outW)
	enc.SetIndent("", "  ")
	if !a.config.All && len(reports) == 1 {
		return enc.Encode(reports[0])
	}
	return enc.Encode(reports)
}
