package ssv

import "bytes"

type Param struct {
	Field string
	Value string
}

// Params is an ordered parameter list; duplicate fields are kept in order.
type Params []Param

func (p *Params) Add(field, value string) {
	*p = append(*p, Param{Field: field, Value: value})
}

// Get returns the first value stored for field.
func (p Params) Get(field string) (string, bool) {
	for _, param := range p {
		if param.Field == field {
			return param.Value, true
		}
	}
	return "", false
}

// Encode renders params as an SSV request body. Values are written verbatim;
// the format has no escaping, so RS, US and "=" must not appear in them.
func Encode(params Params, encoding string) []byte {
	if encoding == "" {
		encoding = DefaultEncoding
	}

	var buf bytes.Buffer
	buf.WriteString(Head)
	buf.WriteByte(':')
	buf.WriteString(encoding)
	for _, param := range params {
		buf.WriteByte(RS)
		buf.WriteString(param.Field)
		buf.WriteByte('=')
		buf.WriteString(param.Value)
	}

	return buf.Bytes()
}
