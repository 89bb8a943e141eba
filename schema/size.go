package schema

import (
	"github.com/binframe/binframe/warn"
	"github.com/binframe/binframe/wire"
)

// SizeOf returns the wire byte count of inst. For a fully fixed-size
// schema, inst may be nil (spec.md §4.3 "Size query"); for a variable-size
// schema, a nil inst returns errs.VariableSize. With an instance, the size
// is measured by encoding it, so any error is the one Serialize would
// return for the same instance.
func (s *Schema) SizeOf(inst *Instance, warns warn.Collector) (int, error) {
	if inst == nil {
		return s.FixedSize()
	}
	enc := wire.NewEncoder(wire.GlobalOrder())
	if err := s.EncodeInto(enc, inst, warns); err != nil {
		return 0, err
	}
	return enc.Position(), nil
}
