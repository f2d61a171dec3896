package telemetry

import (
	"go.opentelemetry.io/otel/attribute"
)

// Attribute keys follow the OpenTelemetry HTTP semantic conventions where one
// exists; file-resolution keys use the "fs." prefix.
const (
	AttrHTTPMethod     = "http.request.method"
	AttrHTTPStatusCode = "http.response.status_code"
	AttrURLPath        = "url.path"
	AttrClientAddress  = "client.address"
	AttrRequestID      = "http.request.id"

	AttrFSPath        = "fs.path"
	AttrFSSize        = "fs.size"
	AttrFSContentType = "fs.content_type"
	AttrFSOutcome     = "fs.outcome"
)

// Span names.
const (
	SpanHTTPRequest = "http.request"
	SpanResolve     = "resolver.resolve"
)

// HTTPMethod returns the request method attribute.
func HTTPMethod(m string) attribute.KeyValue { return attribute.String(AttrHTTPMethod, m) }

// HTTPStatusCode returns the response status attribute.
func HTTPStatusCode(code int) attribute.KeyValue { return attribute.Int(AttrHTTPStatusCode, code) }

// URLPath returns the request path attribute.
func URLPath(p string) attribute.KeyValue { return attribute.String(AttrURLPath, p) }

// ClientAddress returns the client address attribute.
func ClientAddress(addr string) attribute.KeyValue { return attribute.String(AttrClientAddress, addr) }

// RequestID returns the request id attribute.
func RequestID(id string) attribute.KeyValue { return attribute.String(AttrRequestID, id) }

// FSPath returns the resolved file path attribute.
func FSPath(p string) attribute.KeyValue { return attribute.String(AttrFSPath, p) }

// FSSize returns the served byte count attribute.
func FSSize(n int) attribute.KeyValue { return attribute.Int(AttrFSSize, n) }

// FSContentType returns the content type attribute.
func FSContentType(ct string) attribute.KeyValue { return attribute.String(AttrFSContentType, ct) }

// FSOutcome returns the resolution outcome attribute ("served" or "not_found").
func FSOutcome(o string) attribute.KeyValue { return attribute.String(AttrFSOutcome, o) }
