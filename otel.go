package filesource

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "anacrolix.filesource"

var tracer = otel.Tracer(tracerName)

func endReadSpan(span trace.Span, chunks Chunks, err error) {
	span.SetAttributes(
		attribute.Int("chunks", chunks.Len()),
		attribute.Int64("bytes", chunks.Bytes()),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
