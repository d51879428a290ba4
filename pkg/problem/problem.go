package problem

import (
	"crypto/md5"
	"encoding/hex"
	"time"

	"github.com/arthur-debert/bongard/pkg/grid"
	"github.com/arthur-debert/bongard/pkg/rules"
)

// Problem is one generated puzzle. It is never modified after Generate
// returns it.
type Problem struct {
	Rule          rules.Rule
	Followers     []*grid.Grid
	Rogues        []*grid.Grid
	Answers       []*grid.Grid
	CorrectAnswer *grid.Grid
	Stats         Stats
}

// Stats describes the work a generation took.
type Stats struct {
	ExhibitAttempts int
	AnswerAttempts  int
	AmbiguousSplits int
	Duration        time.Duration
}

// Attempts is the total number of grids drawn.
func (s Stats) Attempts() int { return s.ExhibitAttempts + s.AnswerAttempts }

// ID is the hex MD5 of the rule description. It is stable across runs and
// used as the record and file key.
func ID(description string) string {
	sum := md5.Sum([]byte(description))
	return hex.EncodeToString(sum[:])
}

// ID returns the problem identifier.
func (p *Problem) ID() string { return ID(p.Rule.Description()) }

// CorrectIndex returns the position of the correct answer in Answers, or -1.
func (p *Problem) CorrectIndex() int {
	for i, a := range p.Answers {
		if a.Equal(p.CorrectAnswer) {
			return i
		}
	}
	return -1
}

// Record is the serialized form of a problem.
type Record struct {
	ID              string        `json:"id" yaml:"id" toml:"id"`
	Rule            string        `json:"rule" yaml:"rule" toml:"rule"`
	CorrectAnswerID string        `json:"correctAnswerId" yaml:"correctAnswerId" toml:"correctAnswerId"`
	Followers       []grid.Record `json:"followers" yaml:"followers" toml:"followers"`
	Rogues          []grid.Record `json:"rogues" yaml:"rogues" toml:"rogues"`
	Answers         []grid.Record `json:"answers" yaml:"answers" toml:"answers"`
}

// Record returns the serializable form of p.
func (p *Problem) Record() Record {
	return Record{
		ID:              p.ID(),
		Rule:            p.Rule.Description(),
		CorrectAnswerID: p.CorrectAnswer.ID(),
		Followers:       records(p.Followers),
		Rogues:          records(p.Rogues),
		Answers:         records(p.Answers),
	}
}

func records(gs []*grid.Grid) []grid.Record {
	out := make([]grid.Record, len(gs))
	for i, g := range gs {
		out[i] = g.Record()
	}
	return out
}
