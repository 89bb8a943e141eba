// Package schemafile loads the declarative *.schema.json5 record
// descriptions cmd/binframed reads at startup (SPEC_FULL.md §6
// expansion). The JSON5 document is sugar over schema.Builder only — it is
// fed through the same Field/Build calls a hand-written Go schema would
// use, never an alternate path that bypasses coercion or validation.
package schemafile

import (
	"fmt"
	"os"

	"github.com/aeolun/json5"

	"github.com/binframe/binframe/codec"
	"github.com/binframe/binframe/schema"
	"github.com/binframe/binframe/warn"
)

// doc mirrors one *.schema.json5 file:
//
//	{
//	  "name": "Point",
//	  "extends": "BaseRecord",        // optional, resolved against a Registry
//	  "fields": [
//	    {"name": "kind", "type": "uint8", "always": 1},
//	    {"name": "x", "type": "int32"},
//	    {"name": "label", "type": "string", "length": "autosized", "encoding": "utf-8"}
//	  ]
//	}
type doc struct {
	Name    string       `json:"name"`
	Extends string       `json:"extends,omitempty"`
	Fields  []fieldDoc   `json:"fields"`
}

type fieldDoc struct {
	Name       string      `json:"name"`
	Type       string      `json:"type"`
	Length     interface{} `json:"length,omitempty"`
	Default    interface{} `json:"default,omitempty"`
	Always     interface{} `json:"always,omitempty"`
	FullString bool        `json:"full_string,omitempty"`
	Encoding   string      `json:"encoding,omitempty"`
	EncErrors  string      `json:"enc_errors,omitempty"`
	Element    *fieldDoc   `json:"element,omitempty"`
}

// Registry accumulates schemas by name so later files' "extends" can
// resolve against earlier ones, mirroring single-inheritance schema merge
// (spec.md §3 "Inheritance rule").
type Registry struct {
	byName map[string]*schema.Schema
}

// NewRegistry returns an empty schema registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]*schema.Schema)}
}

// Load parses path as one *.schema.json5 document, builds its schema (
// resolving "extends" against r), registers it under its name, and returns
// it.
func (r *Registry) Load(path string, warns warn.Collector) (*schema.Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("schemafile: reading %s: %w", path, err)
	}
	var d doc
	if err := json5.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("schemafile: parsing %s: %w", path, err)
	}

	builder := schema.NewBuilder(d.Name)
	for _, fd := range d.Fields {
		c, err := buildCodec(fd)
		if err != nil {
			return nil, fmt.Errorf("schemafile: %s.%s: %w", d.Name, fd.Name, err)
		}
		builder.Field(fd.Name, c)
	}

	var (
		s   *schema.Schema
		err2 error
	)
	if d.Extends == "" {
		s, err2 = builder.Build(warns)
	} else {
		base, ok := r.byName[d.Extends]
		if !ok {
			return nil, fmt.Errorf("schemafile: %s extends unknown schema %s (load it first)", d.Name, d.Extends)
		}
		overrides := make([]schema.Override, 0, len(d.Fields))
		var appended []schema.Field
		for _, fd := range d.Fields {
			c, _ := buildCodec(fd)
			if _, exists := base.FieldIndex(fd.Name); exists {
				overrides = append(overrides, schema.Override{Name: fd.Name, Codec: c})
			} else {
				appended = append(appended, schema.Field{Name: fd.Name, Codec: c})
			}
		}
		s, err2 = schema.Extend(base, d.Name, overrides, appended, warns)
	}
	if err2 != nil {
		return nil, err2
	}
	r.byName[d.Name] = s
	return s, nil
}

func lengthSpec(v interface{}) (codec.LengthSpec, error) {
	switch t := v.(type) {
	case nil:
		return codec.Fixed(0), nil
	case string:
		switch t {
		case "autosized":
			return codec.Autosized(), nil
		case "until_eof":
			return codec.UntilEOF(), nil
		default:
			return codec.LengthSpec{}, fmt.Errorf("unrecognised length %q", t)
		}
	case map[string]interface{}:
		if n, ok := t["fixed"]; ok {
			return codec.Fixed(int(toFloat(n))), nil
		}
		if name, ok := t["from_field"].(string); ok {
			return codec.FromField(name), nil
		}
		return codec.LengthSpec{}, fmt.Errorf("unrecognised length object %v", t)
	default:
		return codec.LengthSpec{}, fmt.Errorf("unrecognised length value %v", v)
	}
}

func toFloat(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	default:
		return 0
	}
}

func options(fd fieldDoc) []codec.Option {
	var opts []codec.Option
	if fd.Default != nil {
		opts = append(opts, codec.WithDefault(fd.Default))
	}
	if fd.Always != nil {
		opts = append(opts, codec.WithAlways(fd.Always))
	}
	if fd.FullString {
		opts = append(opts, codec.WithFullString())
	}
	if fd.Encoding != "" {
		opts = append(opts, codec.WithEncoding(fd.Encoding))
	}
	if fd.EncErrors != "" {
		opts = append(opts, codec.WithEncErrors(fd.EncErrors))
	}
	return opts
}

func buildCodec(fd fieldDoc) (codec.Codec, error) {
	opts := options(fd)
	switch fd.Type {
	case "int8":
		return codec.NewInt8(opts...), nil
	case "uint8":
		return codec.NewUint8(opts...), nil
	case "int16":
		return codec.NewInt16(opts...), nil
	case "uint16":
		return codec.NewUint16(opts...), nil
	case "int32":
		return codec.NewInt32(opts...), nil
	case "uint32":
		return codec.NewUint32(opts...), nil
	case "int64":
		return codec.NewInt64(opts...), nil
	case "uint64":
		return codec.NewUint64(opts...), nil
	case "float32":
		return codec.NewFloat32(opts...), nil
	case "float64":
		return codec.NewFloat64(opts...), nil
	case "bytes":
		length, err := lengthSpec(fd.Length)
		if err != nil {
			return nil, err
		}
		return codec.NewByteString(length, opts...), nil
	case "string":
		length, err := lengthSpec(fd.Length)
		if err != nil {
			return nil, err
		}
		return codec.NewTextString(length, opts...), nil
	case "array":
		if fd.Element == nil {
			return nil, fmt.Errorf("array field missing \"element\"")
		}
		elem, err := buildCodec(*fd.Element)
		if err != nil {
			return nil, err
		}
		length, err := lengthSpec(fd.Length)
		if err != nil {
			return nil, err
		}
		return codec.NewArray(elem, length, opts...), nil
	default:
		return nil, fmt.Errorf("unrecognised field type %q", fd.Type)
	}
}
