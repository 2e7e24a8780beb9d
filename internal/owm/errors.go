package owm

import "fmt"

type ErrorKind int

const (
	// KindNetwork covers transport failures: DNS, connect, timeout.
	KindNetwork ErrorKind = iota
	// KindMalformed covers response bodies that are not a parseable object.
	KindMalformed
	// KindAPIReported covers well-formed error bodies where the API itself
	// reported a failure (cod != 200 plus a message).
	KindAPIReported
)

func (k ErrorKind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindMalformed:
		return "malformed_response"
	case KindAPIReported:
		return "api_reported"
	default:
		return "unknown"
	}
}

// missingKeyMessage is the exact message reported when Fetch is called
// without an API key configured.
const missingKeyMessage = "API Key is missing"

// APIError is the single error type returned by Client.Fetch.
type APIError struct {
	Kind    ErrorKind
	Message string
	Detail  string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Kind, e.Message, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// IsMissingAPIKey reports whether the error is the missing-key
// precondition failure.
func (e *APIError) IsMissingAPIKey() bool {
	return e.Kind == KindAPIReported && e.Message == missingKeyMessage
}

func newNetworkError(err error) *APIError {
	return &APIError{Kind: KindNetwork, Message: "weather service unreachable", Detail: err.Error()}
}

func newMalformedError(detail string) *APIError {
	return &APIError{Kind: KindMalformed, Message: "weather service returned an unreadable response", Detail: detail}
}

func newAPIReportedError(message string) *APIError {
	return &APIError{Kind: KindAPIReported, Message: message}
}
