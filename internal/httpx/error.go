package httpx

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// maxErrorBody caps how much of a failed response body Error prints.
const maxErrorBody = 256

// HTTPError is a bridge response with status 400 or above.
type HTTPError struct {
	Method     string
	URL        string
	StatusCode int
	Body       []byte
	Header     http.Header
	// JSON holds the decoded body when the bridge answered with JSON.
	JSON any
}

func (e *HTTPError) Error() string {
	if e == nil {
		return "<nil>"
	}
	msg := strings.TrimSpace(string(e.Body))
	if len(msg) > maxErrorBody {
		msg = msg[:maxErrorBody] + "..."
	}
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("httpx: %s %s: status %d: %s", e.Method, e.URL, e.StatusCode, msg)
}

// Temporary reports whether the status suggests the bridge may answer later.
// The client never retries on its own; callers decide.
func (e *HTTPError) Temporary() bool {
	return e != nil && (e.StatusCode == http.StatusServiceUnavailable || e.StatusCode == http.StatusGatewayTimeout)
}

func newHTTPError(resp *http.Response, body []byte) *HTTPError {
	e := &HTTPError{
		StatusCode: resp.StatusCode,
		Body:       body,
		Header:     resp.Header.Clone(),
	}
	if resp.Request != nil {
		e.Method = resp.Request.Method
		e.URL = resp.Request.URL.Redacted()
	}
	if isJSON(resp.Header.Get("Content-Type")) && len(body) > 0 {
		var payload any
		if json.Unmarshal(body, &payload) == nil {
			e.JSON = payload
		}
	}
	return e
}
