package rules

import (
	"github.com/arthur-debert/bongard/pkg/errors"
	"github.com/arthur-debert/bongard/pkg/grid"
)

// Predicate decides whether a grid follows a rule.
// Predicates must not mutate shared state: problems for different rules are
// generated concurrently against the same Set.
type Predicate func(g *grid.Grid) bool

// Rule is a named predicate over grids.
type Rule struct {
	description string
	predicate   Predicate
}

// New creates a Rule. It returns ErrMissingPredicate if predicate is nil and
// ErrInvalidInput if description is empty.
func New(description string, predicate Predicate) (Rule, error) {
	if predicate == nil {
		return Rule{}, errors.Newf(errors.ErrMissingPredicate, "rule %q has no predicate", description).
			WithDetail("rule", description)
	}
	if description == "" {
		return Rule{}, errors.New(errors.ErrInvalidInput, "rule description cannot be empty")
	}
	return Rule{description: description, predicate: predicate}, nil
}

// MustNew is like New but panics on error.
func MustNew(description string, predicate Predicate) Rule {
	r, err := New(description, predicate)
	if err != nil {
		panic(err)
	}
	return r
}

// Description returns the rule's label.
func (r Rule) Description() string { return r.description }

// Follower reports whether g satisfies the rule.
func (r Rule) Follower(g *grid.Grid) bool { return r.predicate(g) }

// Rogue reports whether g does not satisfy the rule.
func (r Rule) Rogue(g *grid.Grid) bool { return !r.predicate(g) }

// String returns the description.
func (r Rule) String() string { return r.description }
