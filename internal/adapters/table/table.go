// Package table reads and writes medal tables as CSV.
package table

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/okian/medalpool/internal/domain/model"
)

// Column names of the CSV shape.
const (
	ColEvent  = "Event"
	ColGender = "Gender"
	ColClass  = "Class"
	ColGold   = "Gold_Country"
	ColSilver = "Silver_Country"
	ColBronze = "Bronze_Country"
	ColScore  = "Score"

	defaultSeparator = ", "
	filePermission   = 0o644
)

// Columns is the fixed column order of written tables.
var Columns = []string{ColEvent, ColGender, ColClass, ColGold, ColSilver, ColBronze, ColScore} //nolint:gochecknoglobals // fixed header

var medalColumns = map[model.Medal]string{ //nolint:gochecknoglobals // fixed header mapping
	model.Gold:   ColGold,
	model.Silver: ColSilver,
	model.Bronze: ColBronze,
}

// Codec converts between CSV and model.Table.
type Codec struct {
	separator string
}

// New creates a Codec with configuration options.
func New(opts ...Option) *Codec {
	c := &Codec{separator: defaultSeparator}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ReadFile reads the table stored at path.
func (c *Codec) ReadFile(path string) (*model.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	t, err := c.Read(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return t, nil
}

// Read parses a CSV table with a header row. The Score column is optional;
// a missing or empty score leaves the record unscored.
func (c *Codec) Read(r io.Reader) (*model.Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return model.NewTable(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))] = i
	}
	for _, name := range Columns[:len(Columns)-1] {
		if _, ok := index[name]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
	}

	t := model.NewTable()
	line := 1
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		line++

		cell := func(name string) string {
			i, ok := index[name]
			if !ok || i >= len(row) {
				return ""
			}
			return row[i]
		}

		rec := model.EventRecord{
			Key: model.EventKey{
				Event:  cell(ColEvent),
				Gender: cell(ColGender),
				Class:  cell(ColClass),
			},
		}
		for m, col := range medalColumns {
			rec.Slots[m] = c.split(cell(col))
		}
		if raw := strings.TrimSpace(cell(ColScore)); raw != "" {
			score, err := strconv.Atoi(raw)
			if err != nil || score < 0 {
				return nil, fmt.Errorf("%w: line %d: %q", ErrInvalidScore, line, raw)
			}
			rec.SetScore(score)
		}
		t.Put(rec)
	}
	return t, nil
}

// WriteFile writes t to path, replacing any existing file.
func (c *Codec) WriteFile(path string, t *model.Table) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, filePermission)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := c.Write(f, t); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

// Write serializes t with the header in Columns order.
func (c *Codec) Write(w io.Writer, t *model.Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, rec := range t.Records() {
		score := ""
		if rec.Scored() {
			score = strconv.Itoa(*rec.Score)
		}
		row := []string{
			rec.Key.Event,
			rec.Key.Gender,
			rec.Key.Class,
			strings.Join(rec.Slots[model.Gold], c.separator),
			strings.Join(rec.Slots[model.Silver], c.separator),
			strings.Join(rec.Slots[model.Bronze], c.separator),
			score,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row %s: %w", rec.Key, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// split turns a medal cell into its country list.
func (c *Codec) split(cell string) []string {
	if strings.TrimSpace(cell) == "" {
		return nil
	}
	parts := strings.Split(cell, c.separator)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// UpdatedPath inserts suffix between the file name and its extension:
// "dir/guesses.csv" becomes "dir/guesses_updated.csv".
func UpdatedPath(path, suffix string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + suffix + ext
}
