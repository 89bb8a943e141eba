package schema

import (
	"github.com/binframe/binframe/codec"
	"github.com/binframe/binframe/errs"
	"github.com/binframe/binframe/warn"
)

// Override replaces the codec bound to an existing field name of the base
// schema, preserving that field's positional slot (spec.md §3 "Inheritance
// rule").
type Override struct {
	Name  string
	Codec codec.Codec
}

// Extend builds a derived schema named name from base: overrides replace
// the codec at each named field's existing position, and appended
// introduces fields only the derived record declares, in their own
// creation order, after all of base's fields (spec.md §3 "Inheritance
// rule"; SPEC_FULL.md §4.3 expansion: "a simple merge, not true type
// inheritance").
func Extend(base *Schema, name string, overrides []Override, appended []Field, warns warn.Collector) (*Schema, error) {
	merged := append([]Field{}, base.fields...)

	byName := make(map[string]codec.Codec, len(overrides))
	for _, o := range overrides {
		byName[o.Name] = o.Codec
	}
	for i, f := range merged {
		if oc, ok := byName[f.Name]; ok {
			merged[i] = Field{Name: f.Name, Codec: oc}
			delete(byName, f.Name)
		}
	}
	if len(byName) > 0 {
		for leftover := range byName {
			return nil, &errs.SchemaError{Schema: name, Reason: "override names field " + leftover + " which base schema " + base.name + " does not declare"}
		}
	}

	merged = append(merged, stableSortBySeq(appended)...)

	return newSchemaFrom(name, merged, warns)
}
