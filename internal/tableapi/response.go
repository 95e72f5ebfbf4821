// Package tableapi decodes the JSON envelopes returned by table bridges.
package tableapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ExtractResult unwraps bridge responses, returning the JSON payload stored
// under the "result" field. If no such field exists the original body is
// returned. When the "result" field is a JSON-encoded string holding another
// JSON document, the inner document is returned.
func ExtractResult(body []byte) ([]byte, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, nil
	}

	var envelope struct {
		Result json.RawMessage `json:"result"`
	}
	if err := json.Unmarshal(trimmed, &envelope); err != nil || envelope.Result == nil {
		return append([]byte(nil), trimmed...), nil
	}

	var asString string
	if err := json.Unmarshal(envelope.Result, &asString); err == nil {
		decoded := asString
		for i := 0; i < 4; i++ {
			unquoted, err := strconv.Unquote(decoded)
			if err != nil {
				break
			}
			decoded = unquoted
		}
		var inner json.RawMessage
		if err := json.Unmarshal([]byte(decoded), &inner); err == nil {
			return append([]byte(nil), inner...), nil
		}
	}

	return append([]byte(nil), envelope.Result...), nil
}

// DecodeResult decodes the JSON payload obtained via ExtractResult into out.
// When the response body is empty, out is populated with a JSON null.
func DecodeResult(body []byte, out any) error {
	payload, err := ExtractResult(body)
	if err != nil {
		return err
	}
	if len(payload) == 0 {
		payload = []byte("null")
	}
	return json.Unmarshal(payload, out)
}

// DecodeNumber extracts a numeric result. ok is false when the bridge reports
// no value (empty body or null). Numbers published as strings are accepted.
func DecodeNumber(body []byte) (value float64, ok bool, err error) {
	payload, err := ExtractResult(body)
	if err != nil {
		return 0, false, err
	}
	if len(payload) == 0 || bytes.Equal(payload, []byte("null")) {
		return 0, false, nil
	}

	if err := json.Unmarshal(payload, &value); err == nil {
		return value, true, nil
	}

	var asString string
	if err := json.Unmarshal(payload, &asString); err != nil {
		return 0, false, fmt.Errorf("tableapi: result is not a number: %s", payload)
	}
	value, err = strconv.ParseFloat(strings.TrimSpace(asString), 64)
	if err != nil {
		return 0, false, fmt.Errorf("tableapi: result is not a number: %w", err)
	}
	return value, true, nil
}
