package dataset

import (
	"fmt"

	"github.com/agentstation/repurpose/pkg/errors"
)

// Value is the cell type of a labeled matrix.
type Value interface {
	~int8 | ~float64
}

// Matrix is a dense, row-major matrix with string labels on both axes.
// Label lookups resolve to the first occurrence when a label is repeated;
// Duplicates reports such labels.
type Matrix[T Value] struct {
	// Name is the file the matrix was read from.
	Name   string
	RowIDs []string
	ColIDs []string
	Data   []T

	rowIndex map[string]int
	colIndex map[string]int
}

// AssociationMatrix holds drug x disease association values in {-1, 0, 1}.
type AssociationMatrix = Matrix[int8]

// FeatureMatrix holds gene x entity expression changes.
type FeatureMatrix = Matrix[float64]

// NewMatrix creates a matrix from labels and row-major data.
func NewMatrix[T Value](name string, rowIDs, colIDs []string, data []T) (*Matrix[T], error) {
	if len(data) != len(rowIDs)*len(colIDs) {
		return nil, errors.NewValidationError("data", len(data),
			fmt.Sprintf("%s: have %d cells, want %d rows x %d cols", name, len(data), len(rowIDs), len(colIDs)))
	}
	m := &Matrix[T]{
		Name:   name,
		RowIDs: rowIDs,
		ColIDs: colIDs,
		Data:   data,
	}
	m.reindex()
	return m, nil
}

func (m *Matrix[T]) reindex() {
	m.rowIndex = indexOf(m.RowIDs)
	m.colIndex = indexOf(m.ColIDs)
}

func indexOf(ids []string) map[string]int {
	idx := make(map[string]int, len(ids))
	for i, id := range ids {
		if _, seen := idx[id]; !seen {
			idx[id] = i
		}
	}
	return idx
}

// Rows returns the number of rows.
func (m *Matrix[T]) Rows() int { return len(m.RowIDs) }

// Cols returns the number of columns.
func (m *Matrix[T]) Cols() int { return len(m.ColIDs) }

// At returns the cell at row r, column c.
func (m *Matrix[T]) At(r, c int) T {
	return m.Data[r*len(m.ColIDs)+c]
}

// Row returns row r. The slice aliases the matrix storage.
func (m *Matrix[T]) Row(r int) []T {
	n := len(m.ColIDs)
	return m.Data[r*n : (r+1)*n : (r+1)*n]
}

// Col returns a copy of column c.
func (m *Matrix[T]) Col(c int) []T {
	out := make([]T, len(m.RowIDs))
	for r := range out {
		out[r] = m.At(r, c)
	}
	return out
}

// RowIndex returns the position of a row label.
func (m *Matrix[T]) RowIndex(id string) (int, bool) {
	if m.rowIndex == nil {
		m.reindex()
	}
	i, ok := m.rowIndex[id]
	return i, ok
}

// ColIndex returns the position of a column label.
func (m *Matrix[T]) ColIndex(id string) (int, bool) {
	if m.colIndex == nil {
		m.reindex()
	}
	i, ok := m.colIndex[id]
	return i, ok
}

// Duplicates returns labels that occur more than once on each axis.
func (m *Matrix[T]) Duplicates() (rows, cols []string) {
	return duplicates(m.RowIDs), duplicates(m.ColIDs)
}

func duplicates(ids []string) []string {
	seen := make(map[string]int, len(ids))
	var dups []string
	for _, id := range ids {
		seen[id]++
		if seen[id] == 2 {
			dups = append(dups, id)
		}
	}
	return dups
}

// Count returns the number of cells equal to v.
func (m *Matrix[T]) Count(v T) int {
	n := 0
	for _, x := range m.Data {
		if x == v {
			n++
		}
	}
	return n
}
