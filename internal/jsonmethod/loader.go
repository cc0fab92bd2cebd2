package jsonmethod

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/kajjjak/ATM/internal/config"
	"github.com/kajjjak/ATM/internal/ctxlog"
	"github.com/tidwall/gjson"
	"github.com/zclconf/go-cty/cty"
)

// Loader implements config.Loader for JSON method files.
type Loader struct{}

// NewLoader creates a new JSON method loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Extensions implements config.Loader.
func (l *Loader) Extensions() []string { return []string{".json"} }

// LoadFile reads one method from a JSON file.
func (l *Loader) LoadFile(ctx context.Context, path string) ([]*config.Method, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read JSON file %s: %w", path, err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode JSON file %s: %w", path, err)
	}
	m.Source = path

	ctxlog.FromContext(ctx).Debug("Loaded JSON method file.", "file", path, "method", m.Name)
	return []*config.Method{m}, nil
}

// Parse decodes a single method document.
func Parse(data []byte) (*config.Method, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New("invalid JSON")
	}
	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return nil, errors.New("a method document must be an object")
	}

	m := &config.Method{
		Name:  doc.Get("name").String(),
		Class: doc.Get("class").String(),
	}

	roots, err := readStrings(doc.Get("root_parameters"))
	if err != nil {
		return nil, fmt.Errorf("root_parameters: %w", err)
	}
	m.RootParameters = roots

	var firstErr error
	doc.Get("parameters").ForEach(func(key, v gjson.Result) bool {
		spec, err := readParameter(key.String(), v, true)
		if err != nil {
			firstErr = fmt.Errorf("parameter %q: %w", key.String(), err)
			return false
		}
		m.Parameters = append(m.Parameters, spec)
		return true
	})
	if firstErr != nil {
		return nil, firstErr
	}

	doc.Get("conditions").ForEach(func(trigger, byValue gjson.Result) bool {
		if !byValue.IsObject() {
			firstErr = fmt.Errorf("conditions of %q must map values to parameter names", trigger.String())
			return false
		}
		byValue.ForEach(func(key, names gjson.Result) bool {
			unlocks, err := readStrings(names)
			if err != nil {
				firstErr = fmt.Errorf("condition %q = %q: %w", trigger.String(), key.String(), err)
				return false
			}
			m.Conditions = append(m.Conditions, &config.Condition{
				Trigger:     trigger.String(),
				When:        cty.StringVal(key.String()),
				Stringified: true,
				Unlocks:     unlocks,
			})
			return true
		})
		return firstErr == nil
	})
	if firstErr != nil {
		return nil, firstErr
	}

	return m, nil
}

func readParameter(name string, v gjson.Result, allowElement bool) (*config.ParameterSpec, error) {
	if !v.IsObject() {
		return nil, errors.New("schema must be an object")
	}
	spec := &config.ParameterSpec{
		Name: name,
		Type: v.Get("type").String(),
	}

	var err error
	if spec.Range, err = readValues(v.Get("range")); err != nil {
		return nil, fmt.Errorf("range: %w", err)
	}
	if spec.Values, err = readValues(v.Get("values")); err != nil {
		return nil, fmt.Errorf("values: %w", err)
	}
	if spec.Sizes, err = readValues(v.Get("sizes")); err != nil {
		return nil, fmt.Errorf("sizes: %w", err)
	}

	if elem := v.Get("element"); elem.Exists() {
		if !allowElement {
			return nil, errors.New("list elements cannot declare an element")
		}
		if spec.Element, err = readParameter("element", elem, false); err != nil {
			return nil, fmt.Errorf("element: %w", err)
		}
	}
	return spec, nil
}

// readValues converts a JSON array, or a single scalar, into cty values.
func readValues(v gjson.Result) ([]cty.Value, error) {
	if !v.Exists() || v.Type == gjson.Null {
		return nil, nil
	}
	if !v.IsArray() {
		val, err := toCty(v)
		if err != nil {
			return nil, err
		}
		return []cty.Value{val}, nil
	}

	var out []cty.Value
	var firstErr error
	v.ForEach(func(_, item gjson.Result) bool {
		val, err := toCty(item)
		if err != nil {
			firstErr = err
			return false
		}
		out = append(out, val)
		return true
	})
	return out, firstErr
}

// toCty converts a JSON scalar. Numbers are parsed from their literal text
// so that no precision is lost.
func toCty(v gjson.Result) (cty.Value, error) {
	switch v.Type {
	case gjson.String:
		return cty.StringVal(v.String()), nil
	case gjson.True:
		return cty.True, nil
	case gjson.False:
		return cty.False, nil
	case gjson.Null:
		return cty.NullVal(cty.DynamicPseudoType), nil
	case gjson.Number:
		n, err := cty.ParseNumberVal(v.Raw)
		if err != nil {
			return cty.NilVal, fmt.Errorf("invalid number %s: %w", v.Raw, err)
		}
		return n, nil
	default:
		return cty.NilVal, fmt.Errorf("expected a string, number or bool, got %s", v.Raw)
	}
}

func readStrings(v gjson.Result) ([]string, error) {
	if !v.Exists() || v.Type == gjson.Null {
		return nil, nil
	}
	if !v.IsArray() {
		return nil, errors.New("expected a list of names")
	}
	var out []string
	var firstErr error
	v.ForEach(func(_, item gjson.Result) bool {
		if item.Type != gjson.String {
			firstErr = fmt.Errorf("expected a name, got %s", item.Raw)
			return false
		}
		out = append(out, item.String())
		return true
	})
	return out, firstErr
}
