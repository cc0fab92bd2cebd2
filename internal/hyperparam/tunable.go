package hyperparam

import (
	"encoding/json"
	"fmt"

	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

// Tunable is the descriptor an external optimizer receives for a parameter
// left open for search. For numeric kinds Domain is the declared range; for
// categorical kinds it is the candidate set.
type Tunable struct {
	Kind   Kind
	Domain []cty.Value
}

// GoDomain converts the domain into plain Go values.
func (t Tunable) GoDomain() ([]any, error) {
	out := make([]any, len(t.Domain))
	for i, v := range t.Domain {
		g, err := ToGo(v)
		if err != nil {
			return nil, fmt.Errorf("domain value %d: %w", i, err)
		}
		out[i] = g
	}
	return out, nil
}

// MarshalJSON renders the descriptor as {"type": kind, "range": [...]}.
func (t Tunable) MarshalJSON() ([]byte, error) {
	domain := cty.EmptyTupleVal
	if len(t.Domain) > 0 {
		domain = cty.TupleVal(t.Domain)
	}
	raw, err := ctyjson.Marshal(domain, domain.Type())
	if err != nil {
		return nil, fmt.Errorf("marshal %s domain: %w", t.Kind, err)
	}
	return json.Marshal(struct {
		Type  Kind            `json:"type"`
		Range json.RawMessage `json:"range"`
	}{Type: t.Kind, Range: raw})
}

func (t Tunable) String() string {
	s := string(t.Kind) + "["
	for i, v := range t.Domain {
		if i > 0 {
			s += ", "
		}
		s += FormatValue(v)
	}
	return s + "]"
}
