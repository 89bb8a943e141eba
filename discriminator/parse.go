package discriminator

import (
	"bufio"
	"io"

	"github.com/binframe/binframe/errs"
	"github.com/binframe/binframe/schema"
	"github.com/binframe/binframe/warn"
	"github.com/binframe/binframe/wire"
)

// ResultKind tags which of the four discriminating-parser outcomes a Result
// holds (spec.md §4.4, §6 "discriminating_parser(namespace).parse(source)").
type ResultKind int

const (
	// KindInstance: the prefix matched a registered schema and the rest of
	// the record was read and decoded successfully.
	KindInstance ResultKind = iota
	// KindRawUnrecognized: the prefix was read in full but matched no
	// registered schema.
	KindRawUnrecognized
	// KindEmpty: no data was available at all.
	KindEmpty
	// KindIncomplete: the prefix matched, but the remainder of the record
	// could not be fully read.
	KindIncomplete
)

// Result is the tagged outcome of one Namespace.Parse call.
type Result struct {
	Kind     ResultKind
	Instance *schema.Instance
	Raw      []byte
}

// Parse reads one framed message from r (spec.md §4.4). r should be a
// *bufio.Reader (see NewSource) so an unrecognized prefix can be returned
// together with whatever further bytes are already buffered, without
// blocking for more input.
func (n *Namespace) Parse(r *bufio.Reader, warns warn.Collector) (Result, error) {
	prefix := make([]byte, n.prefixWidth)
	read, err := io.ReadFull(r, prefix)
	if read == 0 && err != nil {
		return Result{Kind: KindEmpty}, nil
	}
	if err != nil {
		// Fewer than prefixWidth octets were available and none more are
		// coming: treat as Empty per spec.md §4.4 step 2 ("If EOF before
		// completion, return Empty").
		return Result{Kind: KindEmpty}, nil
	}

	prefixVal := decodePrefix(prefix, n.prefixWidth)
	matched, ok := n.byPrefix[prefixVal]
	if !ok {
		raw := append([]byte{}, prefix...)
		if buffered := r.Buffered(); buffered > 0 {
			extra, _ := r.Peek(buffered)
			raw = append(raw, extra...)
			_, _ = r.Discard(len(extra))
		}
		return Result{Kind: KindRawUnrecognized, Raw: raw}, nil
	}

	if size, ferr := matched.FixedSize(); ferr == nil {
		rest := make([]byte, size-len(prefix))
		if len(rest) > 0 {
			got, rerr := io.ReadFull(r, rest)
			if rerr != nil {
				n.logIncomplete(matched.Name())
				return Result{Kind: KindIncomplete, Raw: append(append([]byte{}, prefix...), rest[:got]...)}, nil
			}
		}
		buf := append(append([]byte{}, prefix...), rest...)
		inst, derr := matched.Parse(buf, warns)
		if derr != nil {
			if _, isShort := derr.(*errs.ShortRead); isShort {
				n.logIncomplete(matched.Name())
				return Result{Kind: KindIncomplete, Raw: buf}, nil
			}
			return Result{}, derr
		}
		return Result{Kind: KindInstance, Instance: inst}, nil
	}

	// Variable-size schema: the wire length cannot be known up front, so
	// grow buf one octet at a time and re-attempt a decode after each
	// addition, stopping the instant DecodeFrom stops asking for more
	// (spec.md §4.4 "reads exactly as many octets as the matched schema
	// requires"). This never consumes bytes belonging to a second,
	// already-pipelined record (see dispatch/server.go's handleConn, which
	// loops Parse over one persistent *bufio.Reader): growth stops the
	// moment the current record finishes decoding, leaving any further
	// buffered bytes untouched in r for the next call. The probing passes
	// use warn.Discard so partially-read attempts don't double-report
	// warnings for fields that decode successfully more than once; the
	// final, real decode below reports them exactly once.
	buf := append([]byte{}, prefix...)
	for {
		if _, derr := matched.Parse(buf, warn.Discard); derr == nil {
			break
		} else if _, isShort := derr.(*errs.ShortRead); !isShort {
			return Result{}, derr
		}
		var next [1]byte
		got, rerr := io.ReadFull(r, next[:])
		if got == 1 {
			buf = append(buf, next[0])
		}
		if rerr != nil {
			n.logIncomplete(matched.Name())
			return Result{Kind: KindIncomplete, Raw: buf}, nil
		}
	}

	inst, derr := matched.Parse(buf, warns)
	if derr != nil {
		return Result{}, derr
	}
	return Result{Kind: KindInstance, Instance: inst}, nil
}

func (n *Namespace) logIncomplete(schemaName string) {
	if n.ErrorLog != nil {
		n.ErrorLog("discriminator: incomplete record for schema " + schemaName)
	}
}

func decodePrefix(b []byte, width int) int64 {
	dec := wire.NewDecoder(b, wire.GlobalOrder())
	switch width {
	case 1:
		v, _ := dec.ReadUint8()
		return int64(v)
	case 2:
		v, _ := dec.ReadUint16()
		return int64(v)
	case 4:
		v, _ := dec.ReadUint32()
		return int64(v)
	default:
		v, _ := dec.ReadUint64()
		return int64(v)
	}
}
