package youtube

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// ErrorKind classifies an API failure so callers can decide whether to
// retry, abort, or rephrase the error for the user.
type ErrorKind int

const (
	// KindTransient covers rate limiting, 5xx responses, and transport
	// failures. Worth retrying.
	KindTransient ErrorKind = iota
	// KindQuota means the daily quota is exhausted. Retrying within the
	// same run cannot succeed.
	KindQuota
	// KindCredential means the API key was rejected or blocked.
	KindCredential
	// KindBadRequest means the API rejected the request parameters.
	KindBadRequest
)

// String returns the kind as a short lowercase label for logs.
func (k ErrorKind) String() string {
	switch k {
	case KindQuota:
		return "quota"
	case KindCredential:
		return "credential"
	case KindBadRequest:
		return "bad_request"
	default:
		return "transient"
	}
}

// APIError is a classified YouTube Data API failure.
type APIError struct {
	Kind    ErrorKind
	Op      string // endpoint name: search, videos, channels, videoCategories
	Status  int    // HTTP status, 0 for transport failures
	Reason  string // API error reason, e.g. "quotaExceeded"
	Message string // API error message
	Err     error  // underlying transport error, if any
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if msg == "" {
		msg = http.StatusText(e.Status)
	}
	if e.Reason != "" {
		return fmt.Sprintf("youtube %s: %s (%s)", e.Op, msg, e.Reason)
	}
	if e.Status != 0 {
		return fmt.Sprintf("youtube %s: %s (status %d)", e.Op, msg, e.Status)
	}
	return fmt.Sprintf("youtube %s: %s", e.Op, msg)
}

func (e *APIError) Unwrap() error { return e.Err }

// Terminal reports whether retrying this call can ever succeed.
func (e *APIError) Terminal() bool { return e.Kind != KindTransient }

// errorEnvelope is the JSON body YouTube returns on non-2xx responses.
type errorEnvelope struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Errors  []struct {
			Reason string `json:"reason"`
		} `json:"errors"`
	} `json:"error"`
}

// classifyResponse builds an APIError from a non-2xx response body.
func classifyResponse(op string, status int, body []byte) *APIError {
	var envelope errorEnvelope
	reason, message := "", ""
	if err := json.Unmarshal(body, &envelope); err == nil {
		message = envelope.Error.Message
		if len(envelope.Error.Errors) > 0 {
			reason = envelope.Error.Errors[0].Reason
		}
	}
	return &APIError{
		Kind:    classify(status, reason),
		Op:      op,
		Status:  status,
		Reason:  reason,
		Message: message,
	}
}

// classify maps an HTTP status and API reason to an ErrorKind. The reason
// takes precedence: quota exhaustion arrives as a 403, the same status the
// API uses for rejected keys.
func classify(status int, reason string) ErrorKind {
	switch reason {
	case "quotaExceeded", "dailyLimitExceeded":
		return KindQuota
	case "keyInvalid", "keyExpired", "ipRefererBlocked", "accessNotConfigured", "forbidden":
		return KindCredential
	case "badRequest", "invalidParameter", "required":
		return KindBadRequest
	}
	switch {
	case status == http.StatusTooManyRequests:
		return KindTransient
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return KindCredential
	case status == http.StatusBadRequest:
		return KindBadRequest
	default:
		return KindTransient
	}
}
