package schema

import "github.com/binframe/binframe/warn"

// fieldCollector stamps the schema and field name onto a warning emitted by
// a codec (which knows neither) before forwarding it to the caller-supplied
// Collector.
type fieldCollector struct {
	schema string
	field  string
	sink   warn.Collector
}

func (c fieldCollector) Collect(w warn.Warning) {
	w.Schema = c.schema
	w.Field = c.field
	c.sink.Collect(w)
}

func collectorFor(schemaName, field string, sink warn.Collector) warn.Collector {
	if sink == nil {
		sink = warn.Discard
	}
	return fieldCollector{schema: schemaName, field: field, sink: sink}
}
