package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/etnz/rentbook"
	"github.com/sirupsen/logrus"
)

// File stores the book as a JSON snapshot file.
type File struct {
	path string
	log  *logrus.Logger
}

// NewFile returns a store on the snapshot at path. The file is created on the first Save.
func NewFile(path string, log *logrus.Logger) *File {
	return &File{path: path, log: log}
}

// Path returns the location of the snapshot file.
func (f *File) Path() string { return f.path }

func (f *File) Load(ctx context.Context) (*rentbook.State, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r, err := os.Open(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		f.log.Warnf("book %q does not exist, starting an empty book", f.path)
		return rentbook.NewState(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not open book %q: %w", f.path, err)
	}
	defer r.Close()

	s, skipped, err := rentbook.DecodeState(r)
	if err != nil {
		return nil, fmt.Errorf("could not decode book %q: %w", f.path, err)
	}
	for _, rec := range skipped {
		f.log.WithField("record", fmt.Sprintf("%s[%d]", rec.List, rec.Index)).Warnf("skipped unreadable record of %q: %s", f.path, rec.Reason)
	}
	f.log.WithFields(logrus.Fields{
		"skipped":    len(skipped),
		"properties": len(s.Properties),
		"tenants":    len(s.Tenants),
		"payments":   len(s.Payments),
	}).Debugf("loaded book %q", f.path)
	return s, nil
}

// Save writes the snapshot to a temporary file and renames it over the
// previous one, so that a failed write never leaves a truncated book.
func (f *File) Save(ctx context.Context, s *rentbook.State) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	dir := filepath.Dir(f.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(f.path)+".*")
	if err != nil {
		return fmt.Errorf("could not save book %q: %w", f.path, err)
	}
	defer os.Remove(tmp.Name()) // no-op once renamed.

	if err := rentbook.EncodeState(tmp, s); err != nil {
		tmp.Close()
		return fmt.Errorf("could not save book %q: %w", f.path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("could not save book %q: %w", f.path, err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("could not save book %q: %w", f.path, err)
	}
	f.log.Debugf("saved book %q", f.path)
	return nil
}

func (f *File) Close() error { return nil }
