// Package dispatch is the handler framework of spec.md §6's "Handler
// framework (external collaborator)": it drives a discriminator.Namespace
// over each accepted stream or datagram and routes the decoded instance to
// the handler registered for that record type's snake_case name.
package dispatch

import (
	"bufio"
	"context"
	"errors"
	"net"

	"github.com/binframe/binframe/casing"
	"github.com/binframe/binframe/discriminator"
	"github.com/binframe/binframe/logx"
	"github.com/binframe/binframe/schema"
	"github.com/binframe/binframe/warn"
)

// ReplySink lets a handler send zero or more extra replies on the same
// connection, beyond the single return value (spec.md §6 "multi-reply
// handlers use an explicit reply(bytes) sink").
type ReplySink interface {
	Reply(data []byte) error
}

// Handler processes one decoded record instance. Returning a non-nil
// instance has the Server serialize and write it back; returning raw
// instead sends those bytes verbatim. A handler using reply mid-flight for
// extra messages may return (nil, nil, nil).
type Handler func(ctx context.Context, inst *schema.Instance, reply ReplySink) (resp *schema.Instance, raw []byte, err error)

// Server dispatches discriminator results from accepted connections to
// registered handlers.
type Server struct {
	ns       *discriminator.Namespace
	handlers map[string]Handler
	log      *logx.Logger
	warns    warn.Collector
}

// NewServer builds a Server over ns. log defaults to logx.Default() if nil.
func NewServer(ns *discriminator.Namespace, log *logx.Logger) *Server {
	if log == nil {
		log = logx.Default()
	}
	return &Server{ns: ns, handlers: make(map[string]Handler), log: log, warns: warn.Discard}
}

// Handle registers h for the record type named schemaName, keyed by its
// casing.ToSnake form.
func (s *Server) Handle(schemaName string, h Handler) {
	s.handlers[casing.ToSnake(schemaName)] = h
}

// Serve accepts connections from ln until ctx is canceled or Accept fails,
// dispatching each to its own goroutine. A closure over ln turns it into a
// dispatch.StartFunc.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	go func() {
		<-ctx.Done()
		_ = ln.Close()
	}()
	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		go s.handleConn(ctx, conn)
	}
}

func (s *Server) handleConn(ctx context.Context, conn net.Conn) {
	defer conn.Close()
	sink := &connReplySink{conn: conn}
	r := discriminator.NewSource(conn)
	for {
		if ctx.Err() != nil {
			return
		}
		result, err := s.ns.Parse(r, s.warns)
		if err != nil {
			s.log.Error.Println("dispatch: parse error:", err)
			return
		}
		switch result.Kind {
		case discriminator.KindEmpty:
			return
		case discriminator.KindIncomplete:
			s.log.Error.Println("dispatch: incomplete record, closing connection")
			return
		case discriminator.KindRawUnrecognized:
			s.log.Raw.Printf("%x", result.Raw)
			continue
		case discriminator.KindInstance:
			s.dispatch(ctx, result.Instance, sink)
		}
	}
}

func (s *Server) dispatch(ctx context.Context, inst *schema.Instance, sink ReplySink) {
	name := casing.ToSnake(inst.Schema().Name())
	h, ok := s.handlers[name]
	if !ok {
		s.log.Error.Println("dispatch: no handler registered for", name)
		return
	}
	s.log.Struct.Printf("%s: %+v", inst.Schema().Name(), inst)
	resp, raw, err := h(ctx, inst, sink)
	if err != nil {
		s.log.Error.Println("dispatch: handler error:", err)
		return
	}
	if resp != nil {
		out, serr := resp.Schema().Serialize(resp, s.warns)
		if serr != nil {
			s.log.Error.Println("dispatch: serialize error:", serr)
			return
		}
		raw = out
	}
	if raw != nil {
		if err := sink.Reply(raw); err != nil {
			s.log.Error.Println("dispatch: reply error:", err)
		}
	}
}

type connReplySink struct {
	conn net.Conn
}

func (c *connReplySink) Reply(data []byte) error {
	_, err := c.conn.Write(data)
	return err
}

// ServePacket reads datagrams from pc until ctx is canceled, parsing each
// independently (one discriminator.Parse per packet) and dispatching it.
// A closure over pc turns it into a dispatch.StartFunc.
func (s *Server) ServePacket(ctx context.Context, pc net.PacketConn) error {
	go func() {
		<-ctx.Done()
		_ = pc.Close()
	}()
	buf := make([]byte, 64*1024)
	for {
		n, addr, err := pc.ReadFrom(buf)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			return err
		}
		sink := &packetReplySink{pc: pc, addr: addr}
		r := discriminator.NewSource(newPacketReader(buf[:n]))
		result, perr := s.ns.Parse(r, s.warns)
		if perr != nil {
			s.log.Error.Println("dispatch: parse error:", perr)
			continue
		}
		switch result.Kind {
		case discriminator.KindEmpty:
		case discriminator.KindIncomplete:
			s.log.Error.Println("dispatch: incomplete datagram")
		case discriminator.KindRawUnrecognized:
			s.log.Raw.Printf("%x", result.Raw)
		case discriminator.KindInstance:
			s.dispatch(ctx, result.Instance, sink)
		}
	}
}

type packetReplySink struct {
	pc   net.PacketConn
	addr net.Addr
}

func (p *packetReplySink) Reply(data []byte) error {
	_, err := p.pc.WriteTo(data, p.addr)
	return err
}
