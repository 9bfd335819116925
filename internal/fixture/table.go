package fixture

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// ResultColumn is the only column the generator rewrites.
const ResultColumn = "expectedresult"

// ErrMissingColumn is returned when a required column is absent from the header.
var ErrMissingColumn = errors.New("missing column")

// Table is an in-memory fixture.
type Table struct {
	Path   string
	Header []string
	Rows   [][]string
	CRLF   bool
	// Source is the content the table was parsed from.
	Source []byte

	index map[string]int
}

// Read loads the fixture at path.
func Read(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}
	t, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	t.Path = path
	return t, nil
}

// Parse decodes fixture content. The first record is the header.
func Parse(data []byte) (*Table, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("empty fixture: %w", ErrMissingColumn)
	}

	t := &Table{
		Header: records[0],
		Rows:   records[1:],
		CRLF:   bytes.Contains(data, []byte("\r\n")),
		Source: data,
	}
	t.index = make(map[string]int, len(t.Header))
	for i, name := range t.Header {
		t.index[name] = i
	}
	if _, err := t.Column(ResultColumn); err != nil {
		return nil, err
	}
	return t, nil
}

// Column returns the index of the named column.
func (t *Table) Column(name string) (int, error) {
	i, ok := t.index[name]
	if !ok {
		return -1, fmt.Errorf("%q: %w", name, ErrMissingColumn)
	}
	return i, nil
}

// Arity is the number of argument columns.
func (t *Table) Arity() int {
	return len(t.Header) - 1
}

// ArgumentColumns returns the indices of arg0 … arg{k-1} in argument order.
func (t *Table) ArgumentColumns() ([]int, error) {
	cols := make([]int, t.Arity())
	for i := range cols {
		c, err := t.Column("arg" + strconv.Itoa(i))
		if err != nil {
			return nil, err
		}
		cols[i] = c
	}
	return cols, nil
}

// Arguments returns the argument cells of row i.
func (t *Table) Arguments(i int, cols []int) []string {
	out := make([]string, len(cols))
	for j, c := range cols {
		out[j] = t.Rows[i][c]
	}
	return out
}

// Result returns the expectedresult cell of row i.
func (t *Table) Result(i int) string {
	return t.Rows[i][t.index[ResultColumn]]
}

// SetResult replaces the expectedresult cell of row i.
func (t *Table) SetResult(i int, value string) {
	t.Rows[i][t.index[ResultColumn]] = value
}

// Encode renders the table, header first.
func (t *Table) Encode() ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.UseCRLF = t.CRLF
	if err := w.Write(t.Header); err != nil {
		return nil, err
	}
	if err := w.WriteAll(t.Rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write replaces the file at t.Path with the encoded table.
func (t *Table) Write() error {
	data, err := t.Encode()
	if err != nil {
		return fmt.Errorf("encode fixture: %w", err)
	}
	return t.Replace(data)
}

// Replace writes data to t.Path. The new content is staged in a sibling temp
// file and renamed over t.Path.
func (t *Table) Replace(data []byte) error {
	dir := filepath.Dir(t.Path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(t.Path)+".*")
	if err != nil {
		return fmt.Errorf("write fixture: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write fixture: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write fixture: %w", err)
	}
	if info, err := os.Stat(t.Path); err == nil {
		_ = os.Chmod(tmp.Name(), info.Mode().Perm())
	}
	return os.Rename(tmp.Name(), t.Path)
}
