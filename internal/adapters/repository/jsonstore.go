package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/stockroom/core/internal/domain/inventory"
	"github.com/stockroom/core/internal/ports"
)

// DefaultFileName is the conventional inventory file name.
const DefaultFileName = "inventory.json"

// FileStoreImpl implements the StockStore interface on top of a single JSON
// file: an object mapping item names to non-negative integer quantities,
// pretty-printed with two-space indentation.
type FileStoreImpl struct {
	path string
}

// NewFileStore creates a new JSON file store at path.
func NewFileStore(path string) ports.StockStore {
	if path == "" {
		path = DefaultFileName
	}
	return &FileStoreImpl{path: path}
}

// Save writes state to the backing file. The write goes through a temp file
// in the same directory followed by a rename, so a crash mid-write cannot
// leave a truncated inventory behind.
func (s *FileStoreImpl) Save(_ context.Context, state map[string]int) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode inventory: %v", inventory.ErrIO, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: create temp file: %v", inventory.ErrIO, err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: write %s: %v", inventory.ErrIO, s.path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: close %s: %v", inventory.ErrIO, s.path, err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: rename into %s: %v", inventory.ErrIO, s.path, err)
	}

	return nil
}

// Load reads and validates the backing file. A missing file is reported as a
// fs.ErrNotExist error so the caller can treat it as "start empty". Nothing
// is accepted until the whole document validates: the root must be a JSON
// object and every value an integer >= 0.
func (s *FileStoreImpl) Load(_ context.Context) (map[string]int, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read %s: %w", s.path, err)
		}
		return nil, fmt.Errorf("%w: read %s: %v", inventory.ErrIO, s.path, err)
	}

	var parsed map[string]json.Number
	if err := json.Unmarshal(raw, &parsed); err != nil {
		var syntaxErr *json.SyntaxError
		if errors.As(err, &syntaxErr) {
			return nil, fmt.Errorf("%w: %s: %v", inventory.ErrParse, s.path, err)
		}
		return nil, &inventory.InvalidInputError{
			Reason: fmt.Sprintf("%s must be a JSON object of item name to quantity: %v", s.path, err),
		}
	}
	if parsed == nil {
		// A bare "null" unmarshals into a nil map without error.
		return nil, &inventory.InvalidInputError{
			Reason: fmt.Sprintf("%s must be a JSON object of item name to quantity, got null", s.path),
		}
	}

	state := make(map[string]int, len(parsed))
	for item, num := range parsed {
		if item == "" {
			return nil, &inventory.InvalidInputError{
				Reason: fmt.Sprintf("%s contains an empty item name", s.path),
			}
		}
		qty, err := num.Int64()
		if err != nil {
			return nil, &inventory.InvalidInputError{
				Reason: fmt.Sprintf("quantity for %q in %s is not an integer", item, s.path),
			}
		}
		if qty < 0 {
			return nil, &inventory.InvalidInputError{
				Reason: fmt.Sprintf("quantity for %q in %s is negative: %d", item, s.path, qty),
			}
		}
		state[item] = int(qty)
	}

	return state, nil
}
