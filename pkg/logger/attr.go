package logger

import (
	"log/slog"
	"time"
)

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Hostname records a request hostname under the key "hostname".
func Hostname(host string) slog.Attr {
	return slog.String("hostname", host)
}

// TenantSlug records the resolved tenant slug under the key "tenant".
func TenantSlug(slug string) slog.Attr {
	return slog.String("tenant", slug)
}

// Schema records a logical schema name under the key "schema".
func Schema(name string) slog.Attr {
	return slog.String("schema", name)
}

// RequestID records the request correlation id under the key "request_id".
func RequestID(id string) slog.Attr {
	return slog.String("request_id", id)
}

// Duration records a duration under the key "duration".
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}
