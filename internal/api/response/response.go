// Package response defines the uniform success/error envelope returned by
// every endpoint. Exactly one of Data and Error is non-null; Success says
// which.
package response

// ErrorBody carries the wire error code and a caller-safe message.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Envelope is the canonical wire shape for all responses.
type Envelope struct {
	Success bool       `json:"success"`
	Data    any        `json:"data"`
	Error   *ErrorBody `json:"error"`
}

// Success wraps a payload in a successful envelope.
func Success(data any) Envelope {
	return Envelope{Success: true, Data: data}
}

// Error wraps an error code and message in a failed envelope.
func Error(code, message string) Envelope {
	return Envelope{Success: false, Error: &ErrorBody{Code: code, Message: message}}
}
