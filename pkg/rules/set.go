package rules

import (
	"github.com/arthur-debert/bongard/pkg/errors"
)

// Set is an ordered collection of rules keyed by description.
// A Set is not modified after it is built and is safe for concurrent reads.
type Set struct {
	rules []Rule
	index map[string]int
}

// NewSet builds a Set from rules, keeping their order.
// It returns ErrDuplicateRule if two rules share a description.
func NewSet(rs ...Rule) (*Set, error) {
	s := &Set{
		rules: make([]Rule, 0, len(rs)),
		index: make(map[string]int, len(rs)),
	}
	for _, r := range rs {
		if r.predicate == nil {
			return nil, errors.Newf(errors.ErrMissingPredicate, "rule %q has no predicate", r.description)
		}
		if _, exists := s.index[r.description]; exists {
			return nil, errors.Newf(errors.ErrDuplicateRule, "rule '%s' is already in the set", r.description).
				WithDetail("rule", r.description)
		}
		s.index[r.description] = len(s.rules)
		s.rules = append(s.rules, r)
	}
	return s, nil
}

// All returns a copy of the rules in order.
func (s *Set) All() []Rule {
	out := make([]Rule, len(s.rules))
	copy(out, s.rules)
	return out
}

// Len returns the number of rules.
func (s *Set) Len() int { return len(s.rules) }

// Get looks a rule up by description.
func (s *Set) Get(description string) (Rule, bool) {
	i, ok := s.index[description]
	if !ok {
		return Rule{}, false
	}
	return s.rules[i], true
}

// Has reports whether a rule with this description is in the set.
func (s *Set) Has(description string) bool {
	_, ok := s.index[description]
	return ok
}

// Descriptions lists every description in order.
func (s *Set) Descriptions() []string {
	out := make([]string, len(s.rules))
	for i, r := range s.rules {
		out[i] = r.description
	}
	return out
}

// Others returns every rule except the one described like target.
func (s *Set) Others(target Rule) []Rule {
	out := make([]Rule, 0, len(s.rules))
	for _, r := range s.rules {
		if r.description != target.description {
			out = append(out, r)
		}
	}
	return out
}

// Select returns the rules with the given descriptions, in set order.
// It returns ErrInvalidInput naming the first unknown description.
func (s *Set) Select(descriptions []string) ([]Rule, error) {
	want := make(map[string]bool, len(descriptions))
	for _, d := range descriptions {
		if !s.Has(d) {
			return nil, errors.Newf(errors.ErrInvalidInput, "unknown rule '%s'", d).WithDetail("rule", d)
		}
		want[d] = true
	}
	out := make([]Rule, 0, len(want))
	for _, r := range s.rules {
		if want[r.description] {
			out = append(out, r)
		}
	}
	return out, nil
}
