package model

import "fmt"

// FailureKind classifies why a comparison could not produce a result.
// Every kind is terminal; nothing is retried.
type FailureKind int

const (
	FailureTransport      FailureKind = iota // network, DNS, TLS
	FailureAuth                              // HTTP 401/403 from the provider
	FailureAPI                               // any other non-2xx provider response
	FailureCanceled                          // context cancelled or deadline exceeded
	FailureEmptyReply                        // no choices or empty content
	FailureMalformedReply                    // reply is not the expected JSON object
	FailureMissingField                      // a required key is absent or null
	FailurePrompt                            // prompt template failed to render
)

var failureNames = map[FailureKind]string{
	FailureTransport:      "transport",
	FailureAuth:           "auth",
	FailureAPI:            "api",
	FailureCanceled:       "canceled",
	FailureEmptyReply:     "empty_reply",
	FailureMalformedReply: "malformed_reply",
	FailureMissingField:   "missing_field",
	FailurePrompt:         "prompt",
}

func (k FailureKind) String() string {
	if name, ok := failureNames[k]; ok {
		return name
	}
	return fmt.Sprintf("FailureKind(%d)", int(k))
}

// CompareError is the typed failure returned by a Comparator.
// Its message is the underlying error text so that Fallback reports the
// failure description verbatim.
type CompareError struct {
	Kind       FailureKind
	StatusCode int    // provider HTTP status, zero if not applicable
	Field      string // offending reply key for FailureMissingField
	Err        error
}

func (e *CompareError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s failure: HTTP %d", e.Kind, e.StatusCode)
	}
	return fmt.Sprintf("%s failure", e.Kind)
}

func (e *CompareError) Unwrap() error {
	return e.Err
}
