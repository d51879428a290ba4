// Package output writes generated problems to disk, one file per problem
// plus an index manifest describing the run.
package output

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/bongard/pkg/batch"
	"github.com/arthur-debert/bongard/pkg/errors"
	"github.com/arthur-debert/bongard/pkg/logging"
	"github.com/arthur-debert/bongard/pkg/problem"
	"github.com/arthur-debert/bongard/pkg/sampler"
)

// IndexName is the manifest file name, without extension.
const IndexName = "index"

// shuffleStream keeps the file order shuffle independent of every rule's stream.
const shuffleStream = 1 << 63

// Options configures a Writer.
type Options struct {
	Dir    string
	Format Format
	// Clean removes earlier record files from Dir before writing.
	Clean bool
}

// Manifest summarizes a written run.
type Manifest struct {
	RunID       string      `json:"runId" yaml:"runId" toml:"runId"`
	Seed        uint64      `json:"seed" yaml:"seed" toml:"seed"`
	GeneratedAt time.Time   `json:"generatedAt" yaml:"generatedAt" toml:"generatedAt"`
	Format      Format      `json:"format" yaml:"format" toml:"format"`
	Problems    []Entry     `json:"problems" yaml:"problems" toml:"problems"`
	Failures    []FailEntry `json:"failures,omitempty" yaml:"failures,omitempty" toml:"failures,omitempty"`
}

// Entry points at one problem file.
type Entry struct {
	ID   string `json:"id" yaml:"id" toml:"id"`
	Rule string `json:"rule" yaml:"rule" toml:"rule"`
	File string `json:"file" yaml:"file" toml:"file"`
}

// FailEntry records a rule that produced no problem.
type FailEntry struct {
	Rule     string `json:"rule" yaml:"rule" toml:"rule"`
	Phase    string `json:"phase" yaml:"phase" toml:"phase"`
	Attempts int    `json:"attempts" yaml:"attempts" toml:"attempts"`
}

// Writer stores problem records.
type Writer struct {
	opts   Options
	logger zerolog.Logger
	now    func() time.Time
}

// NewWriter validates opts and returns a Writer.
func NewWriter(opts Options) (*Writer, error) {
	if strings.TrimSpace(opts.Dir) == "" {
		return nil, errors.New(errors.ErrInvalidInput, "output directory is required")
	}
	if !slices.Contains(Formats, opts.Format) {
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown output format: %s", string(opts.Format))
	}
	return &Writer{opts: opts, logger: logging.GetLogger("output"), now: time.Now}, nil
}

// WriteRun writes every problem of res as <id>.<ext> in shuffled order,
// then the index manifest, and returns the manifest.
func (w *Writer) WriteRun(res *batch.Result) (*Manifest, error) {
	if err := os.MkdirAll(w.opts.Dir, 0755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrDirCreate, "failed to create output directory %s", w.opts.Dir).
			WithDetail("path", w.opts.Dir)
	}
	if w.opts.Clean {
		if err := w.clean(); err != nil {
			return nil, err
		}
	}

	problems := slices.Clone(res.Problems)
	rng := sampler.NewRand(res.Seed, shuffleStream)
	rng.Shuffle(len(problems), func(i, j int) {
		problems[i], problems[j] = problems[j], problems[i]
	})

	m := &Manifest{
		RunID:       res.RunID.String(),
		Seed:        res.Seed,
		GeneratedAt: w.now().UTC().Truncate(time.Second),
		Format:      w.opts.Format,
	}
	for _, p := range problems {
		file, err := w.WriteProblem(p)
		if err != nil {
			return nil, err
		}
		m.Problems = append(m.Problems, Entry{ID: p.ID(), Rule: p.Rule.Description(), File: file})
	}
	for _, f := range res.Failures {
		m.Failures = append(m.Failures, FailEntry{Rule: f.Rule, Phase: string(f.Phase), Attempts: f.Attempts})
	}

	if err := w.write(IndexName+"."+w.opts.Format.Ext(), m); err != nil {
		return nil, err
	}
	w.logger.Info().
		Str("dir", w.opts.Dir).
		Int("problems", len(m.Problems)).
		Msg("Problems written")
	return m, nil
}

// WriteProblem writes one record and returns its file name.
func (w *Writer) WriteProblem(p *problem.Problem) (string, error) {
	name := p.ID() + "." + w.opts.Format.Ext()
	if err := w.write(name, p.Record()); err != nil {
		return "", err
	}
	return name, nil
}

func (w *Writer) write(name string, v any) error {
	path := filepath.Join(w.opts.Dir, name)
	data, err := w.opts.Format.Marshal(v)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to encode %s", name).WithDetail("path", path)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", path).WithDetail("path", path)
	}
	w.logger.Trace().Str("path", path).Msg("File written")
	return nil
}

// clean removes top-level record files of any supported format. Other
// files and subdirectories are left alone.
func (w *Writer) clean() error {
	entries, err := os.ReadDir(w.opts.Dir)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to read %s", w.opts.Dir)
	}
	removed := 0
	for _, e := range entries {
		if e.IsDir() || !isRecordFile(e.Name()) {
			continue
		}
		path := filepath.Join(w.opts.Dir, e.Name())
		if err := os.Remove(path); err != nil {
			return errors.Wrapf(err, errors.ErrFileWrite, "failed to remove %s", path).WithDetail("path", path)
		}
		removed++
	}
	w.logger.Debug().Int("removed", removed).Str("dir", w.opts.Dir).Msg("Cleaned output directory")
	return nil
}

func isRecordFile(name string) bool {
	ext := strings.TrimPrefix(filepath.Ext(name), ".")
	return slices.Contains(Formats, Format(ext))
}

// ReadManifest loads the index manifest of dir written in format f.
func ReadManifest(dir string, f Format) (*Manifest, error) {
	path := filepath.Join(dir, IndexName+"."+f.Ext())
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput, "failed to read manifest %s", path)
	}
	var m Manifest
	if err := f.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput, "failed to decode manifest %s", path)
	}
	return &m, nil
}
