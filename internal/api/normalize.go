package api

import (
	"encoding/json"
	"fmt"
	"strings"
)

// The backend has no enforced response schema: the same endpoint may wrap its
// payload in {flag, data}, {success, data}, {result}, return the object bare,
// or return a bare array. Extract tries an ordered list of shape matchers and
// stops at the first one that claims the response. It never panics; a response
// no matcher claims comes back as a degraded envelope with Success=false.

// Envelope is the normalized view of a raw backend response.
type Envelope struct {
	Payload  any
	Success  bool
	Degraded bool
	Err      string
}

type match struct {
	payload any
	success bool
}

type shapeMatcher func(body any, hints []string) (match, bool)

var matchers = []shapeMatcher{
	matchFlagData,
	matchBareData,
	matchSuccessData,
	matchHintKeys,
	matchResult,
	matchPlainObject,
	matchArray,
}

// Extract normalizes a decoded backend response. hints are domain keys
// (e.g. "weight", "currentWeight") that identify an unwrapped payload object
// for the caller's endpoint.
func Extract(body any, hints ...string) Envelope {
	for _, m := range matchers {
		if got, ok := m(body, hints); ok {
			return Envelope{Payload: got.payload, Success: got.success}
		}
	}
	return Envelope{
		Success:  false,
		Degraded: true,
		Err:      errorMessage(body, nil),
	}
}

func matchFlagData(body any, _ []string) (match, bool) {
	obj, ok := body.(map[string]any)
	if !ok {
		return match{}, false
	}
	flag, hasFlag := obj["flag"].(bool)
	data, hasData := obj["data"]
	if !hasFlag || !hasData {
		return match{}, false
	}
	return match{payload: data, success: flag}, true
}

// matchBareData handles {data: ...} with neither a flag nor a success marker.
// A success marker defers to matchSuccessData so its verdict is honored.
func matchBareData(body any, _ []string) (match, bool) {
	obj, ok := body.(map[string]any)
	if !ok {
		return match{}, false
	}
	data, hasData := obj["data"]
	if !hasData {
		return match{}, false
	}
	if _, hasSuccess := obj["success"].(bool); hasSuccess {
		return match{}, false
	}
	return match{payload: data, success: true}, true
}

func matchSuccessData(body any, _ []string) (match, bool) {
	obj, ok := body.(map[string]any)
	if !ok {
		return match{}, false
	}
	success, hasSuccess := obj["success"].(bool)
	data, hasData := obj["data"]
	if !hasSuccess || !hasData {
		return match{}, false
	}
	return match{payload: data, success: success}, true
}

func matchHintKeys(body any, hints []string) (match, bool) {
	obj, ok := body.(map[string]any)
	if !ok {
		return match{}, false
	}
	for _, hint := range hints {
		if _, found := obj[hint]; found {
			return match{payload: obj, success: true}, true
		}
	}
	return match{}, false
}

func matchResult(body any, _ []string) (match, bool) {
	obj, ok := body.(map[string]any)
	if !ok {
		return match{}, false
	}
	result, hasResult := obj["result"]
	if !hasResult {
		return match{}, false
	}
	return match{payload: result, success: true}, true
}

func matchPlainObject(body any, _ []string) (match, bool) {
	obj, ok := body.(map[string]any)
	if !ok {
		return match{}, false
	}
	return match{payload: obj, success: true}, true
}

func matchArray(body any, _ []string) (match, bool) {
	arr, ok := body.([]any)
	if !ok {
		return match{}, false
	}
	return match{payload: arr, success: true}, true
}

// errorMessage digs a user-facing message out of whatever the backend or the
// transport produced, falling back to a generic string.
func errorMessage(body any, callErr error) string {
	if obj, ok := body.(map[string]any); ok {
		if msg, ok := obj["message"].(string); ok && strings.TrimSpace(msg) != "" {
			return strings.TrimSpace(msg)
		}
	}
	if callErr != nil {
		return callErr.Error()
	}
	return "unexpected response from server"
}

// Remarshal decodes a normalized payload into a typed value via a JSON
// round trip. A nil payload leaves out untouched so the caller's declared
// default survives.
func Remarshal(payload any, out any) error {
	if payload == nil {
		return nil
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("re-encode payload: %w", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}
	return nil
}
