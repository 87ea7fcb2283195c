// Package table adapts the descriptor engine to a tabular host: a stream
// of rows whose cells carry molecules, to which the engine appends
// descriptor columns. The host itself is opaque; this package owns column
// specifications, node settings and the per-row transform.
package table

import (
	"fmt"

	"github.com/turtacn/ChemDesc-Engine/pkg/errors"
	moltypes "github.com/turtacn/ChemDesc-Engine/pkg/types/molecule"
)

// ─────────────────────────────────────────────────────────────────────────────
// Column model
// ─────────────────────────────────────────────────────────────────────────────

// ColumnType classifies the cells of one column.
type ColumnType string

const (
	ColumnMolecule   ColumnType = "molecule"
	ColumnInteger    ColumnType = "integer"
	ColumnDouble     ColumnType = "double"
	ColumnDoubleList ColumnType = "double_list"
	ColumnString     ColumnType = "string"
)

// IsValid reports whether t is one of the declared column types.
func (t ColumnType) IsValid() bool {
	switch t {
	case ColumnMolecule, ColumnInteger, ColumnDouble, ColumnDoubleList, ColumnString:
		return true
	}
	return false
}

func (t ColumnType) String() string {
	return string(t)
}

// ColumnSpec names and types one column.
type ColumnSpec struct {
	Name string     `json:"name"`
	Type ColumnType `json:"type"`
}

// TableSpec is an ordered list of uniquely named columns.
type TableSpec struct {
	columns []ColumnSpec
	index   map[string]int
}

// NewTableSpec builds a spec, rejecting empty or duplicate column names and
// unknown column types.
func NewTableSpec(columns ...ColumnSpec) (*TableSpec, error) {
	s := &TableSpec{
		columns: make([]ColumnSpec, 0, len(columns)),
		index:   make(map[string]int, len(columns)),
	}
	for _, col := range columns {
		if err := s.add(col); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *TableSpec) add(col ColumnSpec) error {
	if col.Name == "" {
		return errors.New(errors.ErrCodeValidation, "column name must not be empty")
	}
	if !col.Type.IsValid() {
		return errors.New(errors.ErrCodeValidation, "unknown column type").
			WithDetailf("column=%q type=%q", col.Name, col.Type)
	}
	if _, dup := s.index[col.Name]; dup {
		return errors.New(errors.ErrCodeValidation, "duplicate column name").
			WithDetail("column=" + fmt.Sprintf("%q", col.Name))
	}
	s.index[col.Name] = len(s.columns)
	s.columns = append(s.columns, col)
	return nil
}

// NumColumns returns the column count.
func (s *TableSpec) NumColumns() int {
	return len(s.columns)
}

// Columns returns a copy of the ordered column specs.
func (s *TableSpec) Columns() []ColumnSpec {
	out := make([]ColumnSpec, len(s.columns))
	copy(out, s.columns)
	return out
}

// Column returns the spec at position i.
func (s *TableSpec) Column(i int) ColumnSpec {
	return s.columns[i]
}

// Find returns the position of the named column.
func (s *TableSpec) Find(name string) (int, bool) {
	i, ok := s.index[name]
	return i, ok
}

// Append returns a new spec with the given columns added after the existing
// ones. The receiver is unchanged.
func (s *TableSpec) Append(columns ...ColumnSpec) (*TableSpec, error) {
	return NewTableSpec(append(s.Columns(), columns...)...)
}

// UniqueName returns name, or name suffixed with " (#N)" when the spec
// already carries a column of that name.
func (s *TableSpec) UniqueName(name string) string {
	if _, taken := s.index[name]; !taken {
		return name
	}
	for n := 1; ; n++ {
		candidate := fmt.Sprintf("%s (#%d)", name, n)
		if _, taken := s.index[candidate]; !taken {
			return candidate
		}
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Cells and rows
// ─────────────────────────────────────────────────────────────────────────────

// Cell is one typed table value. The zero Cell is a Missing cell.
type Cell struct {
	typ      ColumnType
	missing  bool
	molecule *moltypes.MoleculeDTO
	integer  int64
	double   float64
	doubles  []float64
	text     string
}

// MissingCell returns the distinguished absent value.
func MissingCell() Cell {
	return Cell{missing: true}
}

// MoleculeCell wraps a wire-format molecule. A nil molecule is Missing.
func MoleculeCell(m *moltypes.MoleculeDTO) Cell {
	if m == nil {
		return MissingCell()
	}
	return Cell{typ: ColumnMolecule, molecule: m}
}

// IntegerCell wraps an integer value.
func IntegerCell(v int64) Cell {
	return Cell{typ: ColumnInteger, integer: v}
}

// DoubleCell wraps a floating-point value.
func DoubleCell(v float64) Cell {
	return Cell{typ: ColumnDouble, double: v}
}

// DoubleListCell wraps an ordered list of floating-point values.
func DoubleListCell(vs []float64) Cell {
	out := make([]float64, len(vs))
	copy(out, vs)
	return Cell{typ: ColumnDoubleList, doubles: out}
}

// StringCell wraps a text value.
func StringCell(s string) Cell {
	return Cell{typ: ColumnString, text: s}
}

// IsMissing reports whether the cell carries no value.
func (c Cell) IsMissing() bool {
	return c.missing || c.typ == ""
}

// Type returns the cell's column type, empty for Missing cells.
func (c Cell) Type() ColumnType {
	if c.missing {
		return ""
	}
	return c.typ
}

func (c Cell) typeError(want ColumnType) error {
	return errors.New(errors.ErrCodeTableCellType, "cell holds a different type").
		WithDetailf("want=%s got=%s missing=%t", want, c.typ, c.IsMissing())
}

// Molecule returns the wrapped molecule.
func (c Cell) Molecule() (*moltypes.MoleculeDTO, error) {
	if c.IsMissing() || c.typ != ColumnMolecule {
		return nil, c.typeError(ColumnMolecule)
	}
	return c.molecule, nil
}

// Integer returns the wrapped integer.
func (c Cell) Integer() (int64, error) {
	if c.IsMissing() || c.typ != ColumnInteger {
		return 0, c.typeError(ColumnInteger)
	}
	return c.integer, nil
}

// Double returns the wrapped float.
func (c Cell) Double() (float64, error) {
	if c.IsMissing() || c.typ != ColumnDouble {
		return 0, c.typeError(ColumnDouble)
	}
	return c.double, nil
}

// DoubleList returns a copy of the wrapped float list.
func (c Cell) DoubleList() ([]float64, error) {
	if c.IsMissing() || c.typ != ColumnDoubleList {
		return nil, c.typeError(ColumnDoubleList)
	}
	out := make([]float64, len(c.doubles))
	copy(out, c.doubles)
	return out, nil
}

// Text returns the wrapped string.
func (c Cell) Text() (string, error) {
	if c.IsMissing() || c.typ != ColumnString {
		return "", c.typeError(ColumnString)
	}
	return c.text, nil
}

// Row is one table row, cell i belonging to column i of the row's spec.
type Row []Cell
