// Command binframed is a small TCP server that loads one or more
// *.schema.json5 record descriptions, registers them into a discriminating
// parser, and dispatches decoded records to stub handlers, logging wire
// traffic through logx. It demonstrates the framework wired end to end;
// real handler logic belongs in a caller's own binary.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net"
	"path/filepath"
	"time"

	"github.com/binframe/binframe/config"
	"github.com/binframe/binframe/discriminator"
	"github.com/binframe/binframe/dispatch"
	"github.com/binframe/binframe/logx"
	"github.com/binframe/binframe/schema"
	"github.com/binframe/binframe/schemafile"
	"github.com/binframe/binframe/warn"
)

var (
	configPath = flag.String("config", "config.yaml", "path to config.yaml")
	schemaGlob = flag.String("schemas", "schemas/*.schema.json5", "glob of *.schema.json5 files to load")
	listenAddr = flag.String("listen", ":9090", "TCP listen address")
)

func main() {
	flag.Parse()
	if err := dispatch.Start(context.Background(), 5*time.Second, run); err != nil {
		log.Print(err)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("binframed: %w", err)
	}
	if err := cfg.Apply(); err != nil {
		return fmt.Errorf("binframed: %w", err)
	}

	logger := logx.Default()

	registry := schemafile.NewRegistry()
	paths, err := filepath.Glob(*schemaGlob)
	if err != nil {
		return fmt.Errorf("binframed: %w", err)
	}
	ns := discriminator.NewNamespace()
	ns.ErrorLog = logger.ErrorFunc()

	var loaded []*schema.Schema
	for _, p := range paths {
		s, err := registry.Load(p, warnLogger{logger})
		if err != nil {
			return fmt.Errorf("binframed: %w", err)
		}
		if err := ns.Register(s); err != nil {
			return fmt.Errorf("binframed: registering %s: %w", s.Name(), err)
		}
		loaded = append(loaded, s)
		logger.Struct.Printf("loaded schema %s (%d fields)", s.Name(), len(s.Fields()))
	}

	server := dispatch.NewServer(ns, logger)
	for _, s := range loaded {
		server.Handle(s.Name(), echoHandler)
	}

	ln, err := net.Listen("tcp", *listenAddr)
	if err != nil {
		return fmt.Errorf("binframed: %w", err)
	}
	logger.Struct.Printf("listening on %s (byte order %q)", *listenAddr, cfg.ByteOrder)
	return dispatch.RunAll(ctx, func(ctx context.Context) error {
		return server.Serve(ctx, ln)
	})
}

// echoHandler serializes the decoded instance straight back to the caller;
// it exists to exercise the wiring, not as a real protocol handler.
func echoHandler(_ context.Context, inst *schema.Instance, _ dispatch.ReplySink) (*schema.Instance, []byte, error) {
	return inst, nil, nil
}

// warnLogger adapts logx's struct stream into a warn.Collector so
// schema-construction warnings (AliasedFieldOrder) are visible at load
// time instead of silently discarded.
type warnLogger struct {
	log *logx.Logger
}

func (w warnLogger) Collect(wrn warn.Warning) {
	w.log.Struct.Println("warning:", wrn.String())
}
