package keychain

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.abhg.dev/pwstore/internal/attr"
	"go.abhg.dev/pwstore/internal/silog"
)

// File is a credential store that keeps records in plain text
// in a JSON file.
// It prints a warning the first time it creates the file,
// and removes the file once the last record is deleted.
//
// File does not lock the file against other processes.
type File struct {
	// Path to the records file.
	Path string // required

	// Log is used to warn about plain text storage.
	Log *silog.Logger // required

	mu sync.Mutex
}

var _ Backend = (*File)(nil)

func (f *File) load() (*table, error) {
	bs, err := os.ReadFile(f.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return new(table), nil
		}

		return nil, fmt.Errorf("read: %w: %w", err, StatusIO)
	}

	var t table
	if err := json.Unmarshal(bs, &t); err != nil {
		return nil, fmt.Errorf("unmarshal: %w: %w", err, StatusDecode)
	}

	return &t, nil
}

func (f *File) save(t *table) error {
	if len(t.Records) == 0 {
		if err := os.Remove(f.Path); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("remove: %w: %w", err, StatusIO)
			}
		}

		return nil
	}

	bs, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal: %w: %w", err, StatusParam)
	}

	var firstTime bool // whether this is the first time we're writing to the file
	if _, err := os.Stat(f.Path); err != nil {
		firstTime = errors.Is(err, os.ErrNotExist)
	}

	if err := os.MkdirAll(filepath.Dir(f.Path), 0o700); err != nil {
		return fmt.Errorf("mkdir: %w: %w", err, StatusIO)
	}

	if err := os.WriteFile(f.Path, bs, 0o600); err != nil {
		return fmt.Errorf("write: %w: %w", err, StatusIO)
	}

	if firstTime {
		f.Log.Warnf("Storing passwords in plain text at %s. Be careful!", f.Path)
	}

	return nil
}

// modify loads the table, applies fn, and saves the table
// if fn succeeds.
func (f *File) modify(fn func(*table) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	t, err := f.load()
	if err != nil {
		return err
	}

	if err := fn(t); err != nil {
		return err
	}

	return f.save(t)
}

// FindOne returns the payload of the first matching record.
func (f *File) FindOne(query attr.Set) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	t, err := f.load()
	if err != nil {
		return nil, err
	}

	return t.findOne(query)
}

// Insert adds a record to the file.
// The first time it creates the file, it logs a warning.
func (f *File) Insert(item attr.Set) error {
	return f.modify(func(t *table) error {
		return t.insert(item)
	})
}

// Update changes all matching records in the file.
func (f *File) Update(query, changes attr.Set) error {
	return f.modify(func(t *table) error {
		return t.update(query, changes)
	})
}

// Delete removes all matching records from the file.
// The file is removed once it holds no records.
func (f *File) Delete(query attr.Set) error {
	return f.modify(func(t *table) error {
		return t.delete(query)
	})
}
