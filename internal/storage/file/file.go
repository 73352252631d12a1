// Package file provides a CSV-file implementation of the persistence
// contract. One file per aggregate, comma-delimited, no header row. Every
// mutating operation is a full read-modify-write of the whole file.
//
// The package assumes a single process; concurrent writers can lose updates.
package file

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"libris/internal/models"
	"libris/internal/storage"
)

// Ensure Store implements the contract.
var _ storage.PersistenceService = (*Store)(nil)

const (
	authorsFile = "authors.csv"
	itemsFile   = "items.csv"
	usersFile   = "users.csv"
	loansFile   = "loans.csv"
)

// Field values containing literal commas or quotes are escaped with private
// control bytes before writing and reversed on read. This keeps the line
// format trivially splittable; it is lossy only if stored text already
// contains these bytes.
const (
	commaPlaceholder = "\x1e" // record separator
	quotePlaceholder = "\x1f" // unit separator
)

func escapeField(s string) string {
	s = strings.ReplaceAll(s, `"`, quotePlaceholder)
	return strings.ReplaceAll(s, ",", commaPlaceholder)
}

func unescapeField(s string) string {
	s = strings.ReplaceAll(s, quotePlaceholder, `"`)
	return strings.ReplaceAll(s, commaPlaceholder, ",")
}

// Store persists each aggregate as a CSV file under a data directory.
type Store struct {
	dir string
}

// New creates a Store rooted at dir, creating the directory if needed.
func New(dir string) (*Store, error) {
	if dir == "" {
		return nil, fmt.Errorf("%w: data directory cannot be empty", models.ErrInvalidArgument)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: create data directory: %v", models.ErrOperationFailed, err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name)
}

// readCSV reads every non-empty line of the named file into unescaped
// fields. A missing file means no data yet and yields an empty slice.
func (s *Store) readCSV(name string) ([][]string, error) {
	f, err := os.Open(s.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: open %s: %v", models.ErrOperationFailed, name, err)
	}
	defer f.Close()

	var rows [][]string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		raw := strings.Split(line, ",")
		fields := make([]string, len(raw))
		for i, fieldValue := range raw {
			fields[i] = unescapeField(fieldValue)
		}
		rows = append(rows, fields)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", models.ErrOperationFailed, name, err)
	}
	return rows, nil
}

// writeCSV truncates the named file and writes all rows back.
func (s *Store) writeCSV(name string, rows [][]string) error {
	var b strings.Builder
	for _, row := range rows {
		for i, fieldValue := range row {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(escapeField(fieldValue))
		}
		b.WriteByte('\n')
	}
	if err := os.WriteFile(s.path(name), []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("%w: write %s: %v", models.ErrOperationFailed, name, err)
	}
	return nil
}

// upsertRow replaces the row whose first field equals id, or appends.
func upsertRow(rows [][]string, id string, row []string) [][]string {
	for i, existing := range rows {
		if len(existing) > 0 && existing[0] == id {
			rows[i] = row
			return rows
		}
	}
	return append(rows, row)
}

// dropRow removes every row whose first field equals id.
func dropRow(rows [][]string, id string) [][]string {
	out := rows[:0]
	for _, existing := range rows {
		if len(existing) > 0 && existing[0] == id {
			continue
		}
		out = append(out, existing)
	}
	return out
}
