package booking

import (
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"slotbook/models"
)

// outcome labels a request result for metrics: "confirmed", "cancelled", "noop",
// a BookingError code such as "slotTaken", or "error".
func outcome(err error, success string) string {
	if err == nil {
		return success
	}
	if code := models.CodeOf(err); code != "" {
		return string(code)
	}
	return "error"
}

// finishSpan records unexpected failures on the span. Domain rejections are
// normal traffic and only annotate the span.
func finishSpan(span trace.Span, err error) {
	defer span.End()
	if err == nil {
		return
	}
	if code := models.CodeOf(err); code != "" {
		span.AddEvent("rejected: " + string(code))
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
