package logger

// Field keys shared by every log statement so output can be grepped and
// aggregated consistently.
const (
	KeyRequestID = "request_id"
	KeyTraceID   = "trace_id"
	KeySpanID    = "span_id"

	KeyMethod      = "method"
	KeyPath        = "path"
	KeyClientIP    = "client_ip"
	KeyStatus      = "status"
	KeyBytes       = "bytes"
	KeyDurationMs  = "duration_ms"
	KeyContentType = "content_type"

	KeyFile  = "file"
	KeyRoot  = "root"
	KeyPort  = "port"
	KeyRunID = "run_id"
	KeyError = "error"
)
