// Package history journals the file moves made by mutating commands so that
// undo can invert them. Records are grouped by the revision that was HEAD
// when the move happened.
package history

import (
	stderrors "errors"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/arthur-debert/dotstash/pkg/errors"
	"github.com/arthur-debert/dotstash/pkg/types"
	"gopkg.in/yaml.v3"
)

// ActionMove relocates From to To.
const ActionMove = "move"

// Record is one journaled action. From and To are canonical references.
type Record struct {
	Revision string    `yaml:"revision"`
	Action   string    `yaml:"action"`
	From     string    `yaml:"from"`
	To       string    `yaml:"to"`
	Undo     bool      `yaml:"undo,omitempty"`
	At       time.Time `yaml:"at"`
}

// Inverse is the record that undoes r.
func (r Record) Inverse() Record {
	return Record{Action: r.Action, From: r.To, To: r.From, Undo: !r.Undo}
}

// Journal is an append-only YAML list of records.
type Journal struct {
	FS   types.FS
	Path string
}

// New returns the journal stored at path.
func New(fsys types.FS, path string) *Journal {
	return &Journal{FS: fsys, Path: path}
}

// Load reads all records. A missing file is an empty journal.
func (j *Journal) Load() ([]Record, error) {
	data, err := j.FS.ReadFile(j.Path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, errors.ErrIO, "cannot read journal %s", j.Path)
	}

	var records []Record
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, errors.Wrapf(err, errors.ErrIO, "cannot parse journal %s", j.Path).
			WithDetail("path", j.Path)
	}
	return records, nil
}

// Append adds records to the end of the journal.
func (j *Journal) Append(records ...Record) error {
	if len(records) == 0 {
		return nil
	}
	existing, err := j.Load()
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(append(existing, records...))
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "cannot encode journal")
	}
	if err := j.FS.MkdirAll(filepath.Dir(j.Path), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrIO, "cannot create %s", filepath.Dir(j.Path))
	}
	if err := j.FS.WriteFile(j.Path, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrIO, "cannot write journal %s", j.Path)
	}
	return nil
}

// ForRevision returns the records made while rev was HEAD, oldest first.
func (j *Journal) ForRevision(rev string) ([]Record, error) {
	all, err := j.Load()
	if err != nil {
		return nil, err
	}
	var out []Record
	for _, r := range all {
		if r.Revision == rev {
			out = append(out, r)
		}
	}
	return out, nil
}
