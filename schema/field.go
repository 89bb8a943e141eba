// Package schema implements the record schema engine of spec.md §4.3: the
// metadata built at type-definition time (ordered fields, fixed/variable
// size, constant map, default map), record-instance construction and
// coercion, and the parse/serialize/size_of operations. It also implements
// the single-inheritance merge of spec.md §3 "Inheritance rule".
package schema

import "github.com/binframe/binframe/codec"

// Field binds one field name to its codec, in schema field order.
type Field struct {
	Name  string
	Codec codec.Codec
}
