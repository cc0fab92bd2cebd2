package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// methodValidate checks the structural shape of a Method. Semantic checks
// (type tags, domains, condition targets) happen when the space is built.
var methodValidate = validator.New()

// Validate checks that the method has the fields every loader must fill in
// and that parameter names are unique.
func (m *Method) Validate() error {
	if err := methodValidate.Struct(m); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed '%s'", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("method %q is malformed: %s", m.Name, strings.Join(msgs, "; "))
		}
		return fmt.Errorf("method %q is malformed: %w", m.Name, err)
	}

	seen := make(map[string]struct{}, len(m.Parameters))
	for _, p := range m.Parameters {
		if _, dup := seen[p.Name]; dup {
			return fmt.Errorf("method %q declares parameter %q more than once", m.Name, p.Name)
		}
		seen[p.Name] = struct{}{}
	}
	return nil
}
