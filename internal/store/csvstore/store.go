// Package csvstore appends triaged reports and operator feedback to CSV
// files.
package csvstore

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/couchcryptid/akom-triage-service/internal/domain"
	"github.com/couchcryptid/akom-triage-service/internal/store"
)

// Store is a domain.ReportStore backed by a single CSV file. A header row
// is written when the file is created.
type Store struct {
	mu   sync.Mutex
	path string
}

// New prepares a store at path, creating parent directories as needed. The
// file itself is created on first Append.
func New(path string) (*Store, error) {
	if err := ensureDir(path); err != nil {
		return nil, err
	}
	return &Store{path: path}, nil
}

// Append writes one report row.
func (s *Store) Append(_ context.Context, r domain.Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return appendRecord(s.path, store.Columns, store.FromReport(r).Values())
}

// All reads every stored report. A missing file is an empty store.
func (s *Store) All(_ context.Context) ([]domain.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var rows []store.Row
	err := readRecords(s.path, func(index map[string]int, record []string) error {
		row, err := store.RowFromRecord(index, record)
		if err != nil {
			return err
		}
		rows = append(rows, row)
		return nil
	})
	if err != nil {
		return nil, err
	}

	rows = store.Dedupe(rows)
	reports := make([]domain.Report, 0, len(rows))
	for _, row := range rows {
		rep, err := row.Report()
		if err != nil {
			return nil, err
		}
		reports = append(reports, rep)
	}
	return reports, nil
}

func ensureDir(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create store directory: %w", err)
		}
	}
	return nil
}

// appendRecord adds one record to path, writing header first when the file
// is new or empty.
func appendRecord(path string, header, values []string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open csv store: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat csv store: %w", err)
	}

	w := csv.NewWriter(f)
	if info.Size() == 0 {
		if err := w.Write(header); err != nil {
			return fmt.Errorf("write csv header: %w", err)
		}
	}
	if err := w.Write(values); err != nil {
		return fmt.Errorf("write csv row: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush csv store: %w", err)
	}
	return nil
}

// readRecords calls fn for every data record in path with the column index
// of its header. A missing or empty file yields no records.
func readRecords(path string, fn func(index map[string]int, record []string) error) error {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("open csv store: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read csv header: %w", err)
	}
	index := store.HeaderIndex(header)

	for line := 2; ; line++ {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read csv line %d: %w", line, err)
		}
		if err := fn(index, record); err != nil {
			return fmt.Errorf("csv line %d: %w", line, err)
		}
	}
}
