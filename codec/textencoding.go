package codec

import (
	"fmt"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// textEncodings is the registry backing the "encoding" option of text-string
// codecs (SPEC_FULL.md §4.1 expansion). "utf-8" and "ascii" need no lookup
// table and are handled as a direct byte pass-through (with an ASCII range
// check); every other name resolves to a golang.org/x/text/encoding.Encoding.
var textEncodings = map[string]encoding.Encoding{
	"latin1":     charmap.ISO8859_1,
	"iso-8859-1": charmap.ISO8859_1,
	"utf-16":     unicode.UTF16(unicode.BigEndian, unicode.UseBOM),
	"utf-16le":   unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM),
	"utf-16be":   unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM),
	"utf-32":     unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM), // no native UTF-32 codec in x/text; see DESIGN.md
}

// lookupEncoding resolves an encoding name to a decode/encode pair. "utf-8"
// and "" (the implicit default) and "ascii" use the fast identity path.
func lookupEncoding(name string) (encoding.Encoding, bool, error) {
	switch name {
	case "", "utf-8", "utf8":
		return nil, true, nil
	case "ascii":
		return nil, false, nil
	}
	enc, ok := textEncodings[name]
	if !ok {
		return nil, false, fmt.Errorf("codec: unknown text encoding %q", name)
	}
	return enc, false, nil
}

// encodeText renders a string to bytes under the named encoding and error
// policy. errPolicy "replace" substitutes a replacement for unrepresentable
// runes ('?' for ascii, the encoding's own replacement byte for the x/text
// encodings); "strict" (the default) returns an error.
func encodeText(name, errPolicy string, s string) ([]byte, error) {
	enc, isUTF8, err := lookupEncoding(name)
	if err != nil {
		return nil, err
	}
	if isUTF8 {
		return []byte(s), nil
	}
	if enc == nil { // ascii
		return asciiEncode(s, errPolicy)
	}
	encoder := enc.NewEncoder()
	if errPolicy == "replace" {
		encoder = encoding.ReplaceUnsupported(encoder)
	}
	out, err := encoder.String(s)
	if err != nil {
		return nil, err
	}
	return []byte(out), nil
}

// decodeText parses bytes framed under the named encoding back to a string.
func decodeText(name, errPolicy string, b []byte) (string, error) {
	enc, isUTF8, err := lookupEncoding(name)
	if err != nil {
		return "", err
	}
	if isUTF8 {
		return string(b), nil
	}
	if enc == nil { // ascii
		return asciiDecode(b, errPolicy)
	}
	out, err := enc.NewDecoder().Bytes(b)
	if err != nil && errPolicy != "replace" {
		return "", err
	}
	return string(out), nil
}

func asciiEncode(s string, errPolicy string) ([]byte, error) {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		if r > 127 {
			if errPolicy == "replace" {
				out = append(out, '?')
				continue
			}
			return nil, fmt.Errorf("codec: rune %q is not representable in ascii", r)
		}
		out = append(out, byte(r))
	}
	return out, nil
}

func asciiDecode(b []byte, errPolicy string) (string, error) {
	out := make([]rune, 0, len(b))
	for _, c := range b {
		if c > 127 {
			if errPolicy == "replace" {
				out = append(out, '�')
				continue
			}
			return "", fmt.Errorf("codec: byte 0x%02x is not representable in ascii", c)
		}
		out = append(out, rune(c))
	}
	return string(out), nil
}
