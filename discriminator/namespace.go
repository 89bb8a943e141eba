// Package discriminator implements the discriminating parser of spec.md
// §4.4: a multiplexer that reads a leading constant-valued integer prefix
// from a source and dispatches to the registered schema whose `always`
// constant matches it.
package discriminator

import (
	"bufio"

	"github.com/binframe/binframe/errs"
	"github.com/binframe/binframe/schema"
)

// Namespace holds the set of candidate schemas for one discriminating
// parser. All candidates must agree on prefix width (spec.md §4.4 step 1);
// registering a schema with a different width, or one with no prefix at
// all, is a schema-registration error.
type Namespace struct {
	byPrefix    map[int64]*schema.Schema
	prefixWidth int

	// ErrorLog receives one line per Incomplete result (spec.md §4.4 step
	// 4 "emits an error log entry"). Defaults to a no-op; cmd/binframed
	// wires this to logx's error stream.
	ErrorLog func(string)
}

// NewNamespace returns an empty namespace.
func NewNamespace() *Namespace {
	return &Namespace{byPrefix: make(map[int64]*schema.Schema), ErrorLog: func(string) {}}
}

// Register adds s to the namespace, keyed by its prefix constant.
func (n *Namespace) Register(s *schema.Schema) error {
	if !s.HasPrefix() {
		return &errs.SchemaError{Schema: s.Name(), Reason: "schema has no prefix constant (first field must be a primitive integer with `always` set)"}
	}
	val, width, _ := s.PrefixValue()
	if n.prefixWidth != 0 && width != n.prefixWidth {
		return &errs.SchemaError{Schema: s.Name(), Reason: "prefix width disagrees with other registered schemas in this namespace"}
	}
	if existing, dup := n.byPrefix[val]; dup {
		return &errs.SchemaError{Schema: s.Name(), Reason: "prefix value collides with already-registered schema " + existing.Name()}
	}
	n.prefixWidth = width
	n.byPrefix[val] = s
	return nil
}

// NewSource wraps r so Parse can both make exact-count reads and, on an
// unrecognized prefix, drain whatever is already buffered without
// blocking for more (spec.md §4.4 step 5).
func NewSource(r interface{ Read([]byte) (int, error) }) *bufio.Reader {
	return bufio.NewReader(r)
}
