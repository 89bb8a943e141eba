package schema

import (
	"reflect"

	"github.com/binframe/binframe/codec"
	"github.com/binframe/binframe/errs"
	"github.com/binframe/binframe/warn"
)

// Instance is a record instance of spec.md §3: a mapping from field name to
// typed, coerced value, plus a back-reference to its schema.
type Instance struct {
	schema *Schema
	values map[string]interface{}
}

// Schema returns the instance's schema.
func (inst *Instance) Schema() *Schema { return inst.schema }

// Get returns the current value of field name.
func (inst *Instance) Get(name string) (interface{}, bool) {
	v, ok := inst.values[name]
	return v, ok
}

// MustGet returns the current value of field name, panicking if it is
// absent. Intended for call sites that already validated the field exists
// (e.g. internal FromField resolution against a schema that passed
// construction).
func (inst *Instance) MustGet(name string) interface{} {
	v, ok := inst.values[name]
	if !ok {
		panic("schema: instance missing field " + name)
	}
	return v
}

// resolveDefault implements the per-field fallback of spec.md §4.3
// "Construction of an instance": always, then default (invoking a callable
// default at construction time), then the codec's natural zero.
func resolveDefault(c codec.Codec) interface{} {
	opts := c.Options()
	if opts.HasAlways {
		return opts.Always
	}
	if opts.HasDefault {
		if fn, ok := opts.Default.(func() interface{}); ok {
			return fn()
		}
		return opts.Default
	}
	return c.Zero()
}

// New constructs an instance by field name. Fields absent from values fall
// back per resolveDefault; every value (explicit or defaulted) is coerced.
func (s *Schema) New(values map[string]interface{}, warns warn.Collector) (*Instance, error) {
	out := make(map[string]interface{}, len(s.fields))
	for _, f := range s.fields {
		raw, given := values[f.Name]
		if !given {
			raw = resolveDefault(f.Codec)
		}
		coerced, err := f.Codec.Coerce(raw, collectorFor(s.name, f.Name, warns))
		if err != nil {
			return nil, errs.WithContext(err, s.name, f.Name, 0)
		}
		out[f.Name] = coerced
	}
	return &Instance{schema: s, values: out}, nil
}

// NewPositional constructs an instance from values given in field order.
// Fields beyond len(values) fall back per resolveDefault, as in New.
func (s *Schema) NewPositional(values []interface{}, warns warn.Collector) (*Instance, error) {
	named := make(map[string]interface{}, len(s.fields))
	for i, f := range s.fields {
		if i < len(values) {
			named[f.Name] = values[i]
		}
	}
	return s.New(named, warns)
}

// ZeroInstance builds an instance with every field defaulted, used as array
// padding when an array of records needs a fill element.
func (s *Schema) ZeroInstance(warns warn.Collector) (*Instance, error) {
	return s.New(nil, warns)
}

// Set assigns value to field name, coercing it per spec.md §4.3. This is
// the Go rendering of "Field assignment on an instance triggers coercion".
func (inst *Instance) Set(name string, value interface{}, warns warn.Collector) error {
	idx, ok := inst.schema.index[name]
	if !ok {
		return &errs.SchemaError{Schema: inst.schema.name, Reason: "no such field " + name}
	}
	f := inst.schema.fields[idx]
	coerced, err := f.Codec.Coerce(value, collectorFor(inst.schema.name, name, warns))
	if err != nil {
		return errs.WithContext(err, inst.schema.name, name, 0)
	}
	inst.values[name] = coerced
	return nil
}

// Equal compares two instances field by field, after coercion (spec.md §3
// "Record instance"). Byte slices and nested instances compare deeply.
func (inst *Instance) Equal(other *Instance) bool {
	if inst == nil || other == nil {
		return inst == other
	}
	if inst.schema != other.schema {
		return false
	}
	for _, f := range inst.schema.fields {
		a := inst.values[f.Name]
		b := other.values[f.Name]
		if !valuesEqual(a, b) {
			return false
		}
	}
	return true
}

func valuesEqual(a, b interface{}) bool {
	if ai, ok := a.(*Instance); ok {
		bi, ok := b.(*Instance)
		return ok && ai.Equal(bi)
	}
	return reflect.DeepEqual(a, b)
}
