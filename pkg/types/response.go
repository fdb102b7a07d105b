package types

// DataEnvelope wraps admin reads the way the storefront expects: {success, data}.
type DataEnvelope struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

// MessageEnvelope is the legacy public-form response shape: {success, message}.
type MessageEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ErrorEnvelope carries the typed error plus a top-level message the
// storefront's fetch wrapper knows how to surface.
type ErrorEnvelope struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Error   APIError `json:"error"`
}
