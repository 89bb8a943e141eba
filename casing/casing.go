// Package casing implements the handler-framework naming rule of spec.md
// §6: mapping a record schema's Go/source-style name to the
// lowercase-with-underscores method name a dispatch.Server handler is
// registered under.
package casing

import "github.com/stoewer/go-strcase"

// ToSnake converts name from camel/acronym-run style to
// lowercase-with-underscores, e.g. SomeStruct -> some_struct,
// SSNLookup -> ssn_lookup, RS485Adaptor -> rs485_adaptor,
// John316 -> john316. A name already in snake_case passes through
// unchanged (rot13_encoded -> rot13_encoded).
func ToSnake(name string) string {
	return strcase.SnakeCase(name)
}
