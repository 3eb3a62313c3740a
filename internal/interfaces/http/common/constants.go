package common

import "time"

const (
	// MaxRequestBody limits JSON request bodies for submission endpoints.
	MaxRequestBody = 1 << 20
	// RequestTimeout bounds each handler's work against the store and the places lookup.
	RequestTimeout = 5 * time.Second
)
