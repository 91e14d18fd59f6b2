package ssv

import (
	"bytes"
	"strconv"
)

var (
	datasetMarker  = []byte("Dataset")
	datasetPrefix  = []byte("Dataset:")
	constPrefix    = []byte("_Const_\x1f")
	rowTypePrefix  = []byte("_RowType_\x1f")
	headerEncoding = map[string]bool{"ascii": true, "utf-8": true}
	rowTypes       = []byte("NIUDO")
)

// Decode parses one SSV payload. Later ids overwrite earlier ones.
func Decode(payload []byte) (*Document, error) {
	tokens := bytes.Split(payload, []byte{RS})

	encoding, ok := parseHeader(tokens[0])
	if !ok {
		return nil, newError(ErrMalformedHeader, 0, tokens[0])
	}

	doc := &Document{Encoding: encoding, Values: map[string]Value{}}
	for i := 1; i < len(tokens); {
		token := tokens[i]
		if i == len(tokens)-1 && len(token) == 0 {
			break
		}

		if bytes.HasPrefix(token, datasetMarker) {
			dataset, next, err := decodeDataset(tokens, i)
			if err != nil {
				return nil, err
			}
			doc.Values[dataset.ID] = dataset
			i = next
			continue
		}

		f, kind := parseField(token)
		if kind != nil {
			return nil, newError(kind, i, token)
		}
		doc.Values[f.ID] = f.value
		i++
	}

	return doc, nil
}

func parseHeader(token []byte) (string, bool) {
	rest, found := bytes.CutPrefix(token, []byte(Head))
	if !found {
		return "", false
	}
	if len(rest) == 0 {
		return "ascii", true
	}

	encoding, found := bytes.CutPrefix(rest, []byte{':'})
	if !found || !headerEncoding[string(encoding)] {
		return "", false
	}

	return string(encoding), true
}

func decodeDataset(tokens [][]byte, i int) (*Dataset, int, error) {
	id, found := bytes.CutPrefix(tokens[i], datasetPrefix)
	if !found || !isWord(id) {
		return nil, i, newError(ErrMalformedDatasetHeader, i, tokens[i])
	}
	dataset := &Dataset{ID: string(id), Constants: map[string]ConstColumn{}}
	i++

	if i >= len(tokens) {
		return nil, i, newError(ErrIncompleteDataset, i, nil)
	}
	if bytes.HasPrefix(tokens[i], constPrefix) {
		for _, unit := range bytes.Split(tokens[i], []byte{US})[1:] {
			f, kind := parseField(unit)
			if kind != nil {
				return nil, i, newError(kind, i, unit)
			}
			dataset.Constants[f.ID] = ConstColumn{ColumnInfo: f.ColumnInfo, Value: f.value}
		}
		i++
	}

	if i >= len(tokens) {
		return nil, i, newError(ErrIncompleteDataset, i, nil)
	}
	if !bytes.HasPrefix(tokens[i], rowTypePrefix) {
		return nil, i, newError(ErrMalformedColumnInfo, i, tokens[i])
	}
	for _, unit := range bytes.Split(tokens[i], []byte{US})[1:] {
		column, kind := parseColumn(unit)
		if kind != nil {
			return nil, i, newError(kind, i, unit)
		}
		dataset.Columns = append(dataset.Columns, column)
	}
	i++

	if i >= len(tokens) {
		return nil, i, newError(ErrIncompleteDataset, i, nil)
	}
	for len(tokens[i]) > 0 {
		row, ok := parseRow(tokens[i])
		if !ok {
			return nil, i, newError(ErrMalformedRow, i, tokens[i])
		}
		dataset.Rows = append(dataset.Rows, row)
		i++
		if i >= len(tokens) {
			return nil, i, newError(ErrIncompleteDataset, i, nil)
		}
	}

	return dataset, i + 1, nil
}

type field struct {
	ColumnInfo
	value Scalar
}

// parseField reads id[:type[(length)]][=value].
func parseField(token []byte) (field, error) {
	head, value, hasValue := bytes.Cut(token, []byte{'='})
	id, spec, hasSpec := bytes.Cut(head, []byte{':'})
	if !isWord(id) {
		return field{}, ErrMalformedVariable
	}

	f := field{ColumnInfo: ColumnInfo{ID: string(id)}}
	if hasSpec {
		if !parseTypeSpec(spec, &f.ColumnInfo) {
			return field{}, ErrMalformedTypeSpec
		}
	}
	if hasValue {
		f.value = Scalar{Value: bytes.Clone(value), Valid: true}
	}

	return f, nil
}

// parseColumn reads id[:type[(length)]][:secondary[:text]], ignoring any value.
func parseColumn(unit []byte) (ColumnInfo, error) {
	head, _, _ := bytes.Cut(unit, []byte{'='})
	parts := bytes.Split(head, []byte{':'})
	if !isWord(parts[0]) || len(parts) > 4 {
		return ColumnInfo{}, ErrMalformedColumnInfo
	}

	column := ColumnInfo{ID: string(parts[0])}
	if len(parts) > 1 && !parseTypeSpec(parts[1], &column) {
		return ColumnInfo{}, ErrMalformedTypeSpec
	}
	for _, extra := range parts[min(len(parts), 2):] {
		if !isWord(extra) {
			return ColumnInfo{}, ErrMalformedColumnInfo
		}
	}

	return column, nil
}

func parseTypeSpec(spec []byte, info *ColumnInfo) bool {
	name, rest, hasLength := bytes.Cut(spec, []byte{'('})
	if !isWord(name) {
		return false
	}
	info.Type = string(name)
	if !hasLength {
		return true
	}

	digits, closed := bytes.CutSuffix(rest, []byte{')'})
	if !closed || len(digits) == 0 {
		return false
	}
	for _, c := range digits {
		if c < '0' || c > '9' {
			return false
		}
	}
	length, err := strconv.Atoi(string(digits))
	if err != nil {
		return false
	}
	info.Length = length
	info.HasLength = true

	return true
}

func parseRow(token []byte) (Row, bool) {
	if len(token) < 2 || bytes.IndexByte(rowTypes, token[0]) < 0 || token[1] != US {
		return Row{}, false
	}

	units := bytes.Split(token[2:], []byte{US})
	row := Row{Type: token[0], Cells: make([]Cell, 0, len(units))}
	for _, unit := range units {
		if len(unit) == 1 && unit[0] == ETX {
			row.Cells = append(row.Cells, Cell{})
			continue
		}
		row.Cells = append(row.Cells, Cell{Value: bytes.Clone(unit), Valid: true})
	}

	return row, true
}

func isWord(b []byte) bool {
	if len(b) == 0 {
		return false
	}
	for _, c := range b {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '_':
		default:
			return false
		}
	}
	return true
}
