// Package store persists a rentbook State.
//
// Two stores are available: a JSON snapshot file, and a SQL database through
// gorm (sqlite or postgres). Both load and save the whole book at once.
package store

import (
	"context"
	"fmt"

	"github.com/etnz/rentbook"
	"github.com/etnz/rentbook/config"
	"github.com/sirupsen/logrus"
)

// Store loads and saves a whole book.
type Store interface {
	// Load returns the book, or an empty one when nothing was saved yet.
	Load(ctx context.Context) (*rentbook.State, error)
	// Save replaces the saved book with s.
	Save(ctx context.Context, s *rentbook.State) error
	Close() error
}

// Open returns the store selected by the configuration: the SQL store when a
// DSN is set, the file store otherwise.
func Open(cfg config.StoreConfig, log *logrus.Logger) (Store, error) {
	if cfg.DSN != "" {
		s, err := OpenSQL(cfg.DSN, log)
		if err != nil {
			return nil, fmt.Errorf("cannot open store: %w", err)
		}
		return s, nil
	}
	if cfg.Path == "" {
		return nil, fmt.Errorf("cannot open store: no path nor dsn")
	}
	return NewFile(cfg.Path, log), nil
}

// Update loads the book, applies f and saves the result.
func Update(ctx context.Context, st Store, f func(*rentbook.State) (*rentbook.State, error)) (*rentbook.State, error) {
	s, err := st.Load(ctx)
	if err != nil {
		return nil, err
	}
	n, err := f(s)
	if err != nil {
		return nil, err
	}
	if err := st.Save(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}
