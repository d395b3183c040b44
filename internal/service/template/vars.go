package template

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var ErrUnknownPlaceholder = errors.New("unknown template placeholder")

// Var is a placeholder key a template may reference as {key}.
type Var string

const (
	VarAgentName    Var = "agent_name"
	VarClientName   Var = "client_name"
	VarCheckInDate  Var = "check_in_date"
	VarCheckOutDate Var = "check_out_date"
)

var knownVars = map[Var]struct{}{
	VarAgentName:    {},
	VarClientName:   {},
	VarCheckInDate:  {},
	VarCheckOutDate: {},
}

var placeholderPattern = regexp.MustCompile(`\{([A-Za-z0-9_]+)\}`)

// Vars holds the substitution value for each placeholder.
type Vars map[Var]string

// Validate reports every placeholder in text that is not a known Var.
func Validate(text string) error {
	var unknown []string
	for _, m := range placeholderPattern.FindAllStringSubmatch(text, -1) {
		if _, ok := knownVars[Var(m[1])]; !ok {
			unknown = append(unknown, m[0])
		}
	}

	if len(unknown) > 0 {
		return fmt.Errorf("%w: %s", ErrUnknownPlaceholder, strings.Join(unknown, ", "))
	}
	return nil
}

// Substitute replaces every known placeholder in text. escape is applied to each value
// before insertion. Unknown placeholders make it fail.
func Substitute(text string, vars Vars, escape func(string) string) (string, error) {
	if err := Validate(text); err != nil {
		return "", err
	}

	return placeholderPattern.ReplaceAllStringFunc(text, func(match string) string {
		key := Var(match[1 : len(match)-1])
		value := vars[key]
		if escape != nil {
			value = escape(value)
		}
		return value
	}), nil
}
