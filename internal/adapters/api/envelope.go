package api

import (
	"bytes"
	"encoding/json"
	"strings"
)

// The API is inconsistent about where it puts the payload. Every response
// goes through here, trying in order: data.<key>, data.doc, doc, data, and
// finally the body itself when it already looks like a record or list.

func candidates(body []byte, key string) []json.RawMessage {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(body, &top); err != nil {
		// not an object: a bare list or scalar
		if present(body) {
			return []json.RawMessage{body}
		}
		return nil
	}
	var data map[string]json.RawMessage
	if d, ok := top["data"]; ok && present(d) {
		_ = json.Unmarshal(d, &data)
	}

	var out []json.RawMessage
	add := func(r json.RawMessage, ok bool) {
		if ok && present(r) {
			out = append(out, r)
		}
	}
	if key != "" {
		r, ok := data[key]
		add(r, ok)
	}
	r, ok := data["doc"]
	add(r, ok)
	r, ok = top["doc"]
	add(r, ok)
	r, ok = top["data"]
	add(r, ok)
	if _, isRecord := top["_id"]; isRecord {
		out = append(out, body)
	}
	return out
}

func present(r json.RawMessage) bool {
	t := bytes.TrimSpace(r)
	return len(t) > 0 && !bytes.Equal(t, []byte("null"))
}

// unwrapOne decodes the first candidate that fits T.
func unwrapOne[T any](body []byte, key string) (T, error) {
	var zero T
	for _, c := range candidates(body, key) {
		var v T
		if err := json.Unmarshal(c, &v); err == nil {
			return v, nil
		}
	}
	return zero, ErrEmptyPayload
}

// unwrapList is unwrapOne for collections; a missing list is empty.
func unwrapList[T any](body []byte, key string) ([]T, error) {
	out, err := unwrapOne[[]T](body, key)
	if err == ErrEmptyPayload {
		return []T{}, nil
	}
	if out == nil {
		out = []T{}
	}
	return out, err
}

/********** loose lookups for auth payloads and error bodies **********/

func decodeMap(body []byte) map[string]any {
	var m map[string]any
	_ = json.Unmarshal(body, &m)
	return m
}

// lookupAny: nested lookup with dot paths on maps.
func lookupAny(m map[string]any, path string) any {
	cur := any(m)
	for _, part := range strings.Split(path, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		v, ok := obj[part]
		if !ok {
			return nil
		}
		cur = v
	}
	return cur
}

// firstString: first non-empty string over several paths.
func firstString(m map[string]any, paths ...string) string {
	for _, p := range paths {
		if s, ok := lookupAny(m, p).(string); ok && s != "" {
			return s
		}
	}
	return ""
}

func firstBool(m map[string]any, paths ...string) bool {
	for _, p := range paths {
		if b, ok := lookupAny(m, p).(bool); ok {
			return b
		}
	}
	return false
}
