// Package ssv encodes and decodes the SSV wire format: RS (0x1E) separated
// records, US (0x1F) separated units and ETX (0x03) as the null marker.
package ssv

const (
	RS   = 0x1e
	US   = 0x1f
	ETX  = 0x03
	Head = "SSV"

	DefaultEncoding = "utf-8"
)

// Value is either a Scalar or a *Dataset.
type Value interface {
	isValue()
}

// Scalar is a variable value. Valid is false when the token carried no "=",
// which is distinct from an empty value.
type Scalar struct {
	Value []byte
	Valid bool
}

func (Scalar) isValue() {}

func (s Scalar) String() string {
	return string(s.Value)
}

type ColumnInfo struct {
	ID        string
	Type      string
	Length    int
	HasLength bool
}

type ConstColumn struct {
	ColumnInfo
	Value Scalar
}

// Cell is a row value; the ETX marker decodes to an invalid (null) cell.
type Cell struct {
	Value []byte
	Valid bool
}

func (c Cell) String() string {
	return string(c.Value)
}

type Row struct {
	Type  byte
	Cells []Cell
}

// Cell returns the cell at i, or a null cell when the row is shorter.
func (r Row) Cell(i int) Cell {
	if i < 0 || i >= len(r.Cells) {
		return Cell{}
	}
	return r.Cells[i]
}

type Dataset struct {
	ID        string
	Rows      []Row
	Constants map[string]ConstColumn
	Columns   []ColumnInfo
}

func (*Dataset) isValue() {}

// ColumnIndex returns the position of the column id, or -1.
func (d *Dataset) ColumnIndex(id string) int {
	for i, column := range d.Columns {
		if column.ID == id {
			return i
		}
	}
	return -1
}

func (d *Dataset) ColumnIDs() []string {
	ids := make([]string, 0, len(d.Columns))
	for _, column := range d.Columns {
		ids = append(ids, column.ID)
	}
	return ids
}

type Document struct {
	Encoding string
	Values   map[string]Value
}

func (d *Document) Has(id string) bool {
	_, ok := d.Values[id]
	return ok
}

// Scalar reports the scalar stored under id. A dataset under the same id
// yields ok == false.
func (d *Document) Scalar(id string) (Scalar, bool) {
	value, ok := d.Values[id].(Scalar)
	return value, ok
}

func (d *Document) Dataset(id string) (*Dataset, bool) {
	value, ok := d.Values[id].(*Dataset)
	return value, ok
}
