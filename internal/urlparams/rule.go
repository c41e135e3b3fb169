// Package urlparams renders the configured URL-parameter injection rules
// into a query-string fragment. Rules are evaluated independently and in
// order, so the rendered fragment is stable for a given set of draws.
package urlparams

import (
	"errors"
	"fmt"
	"math/rand"
	"net/url"
	"strings"
)

var (
	ErrEmptyKey      = errors.New("urlparams: rule key is empty")
	ErrInvalidChance = errors.New("urlparams: rule chance outside [0,100]")
)

// Rule is one injection rule: include Key (with Value when non-empty,
// as a bare flag otherwise) with the given inclusion chance in percent.
type Rule struct {
	Key    string  `yaml:"key"`
	Value  string  `yaml:"value,omitempty"`
	Chance float64 `yaml:"chance"`
}

func (r Rule) Validate() error {
	if r.Key == "" {
		return ErrEmptyKey
	}
	if r.Chance < 0 || r.Chance > 100 {
		return fmt.Errorf("%w: %q has %v", ErrInvalidChance, r.Key, r.Chance)
	}
	return nil
}

// Validate checks every rule in the list.
func Validate(rules []Rule) error {
	for _, r := range rules {
		if err := r.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Encode evaluates every rule with an independent draw in [0,100) and
// renders the included ones, preserving rule order. It returns the encoded
// fragment (no leading separator) and the list of applied keys.
func Encode(rules []Rule, rng *rand.Rand) (string, []string) {
	var (
		b       strings.Builder
		applied []string
	)

	for _, r := range rules {
		if rng.Float64()*100 >= r.Chance {
			continue
		}

		if b.Len() > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(r.Key))
		if r.Value != "" {
			b.WriteByte('=')
			b.WriteString(url.QueryEscape(r.Value))
		}
		applied = append(applied, r.Key)
	}

	return b.String(), applied
}
