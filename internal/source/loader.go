// Package source reads and validates chat-history export files.
package source

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// ErrMalformedExport is returned when the top-level document does not look like
// an export: not an object, no truthy "success", or no "data" array.
var ErrMalformedExport = errors.New("malformed export")

// LoadExport reads the export at path and validates its top-level shape.
func LoadExport(path string) (*Export, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading export: %w", err)
	}
	return ParseExport(data)
}

// ParseExport parses an export document. Below the top two levels nothing is
// validated: missing or oddly typed fields degrade to empty values.
func ParseExport(data []byte) (*Export, error) {
	if !json.Valid(data) {
		var v any
		err := json.Unmarshal(data, &v)
		if err == nil {
			err = errors.New("invalid JSON")
		}
		return nil, fmt.Errorf("parsing export: %w", err)
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil || top == nil {
		return nil, fmt.Errorf("%w: top-level value is not an object", ErrMalformedExport)
	}

	if !truthy(top["success"]) {
		return nil, fmt.Errorf("%w: \"success\" is missing or false", ErrMalformedExport)
	}

	rawData, ok := top["data"]
	if !ok {
		return nil, fmt.Errorf("%w: \"data\" is missing", ErrMalformedExport)
	}
	var convs []json.RawMessage
	if err := json.Unmarshal(rawData, &convs); err != nil || convs == nil {
		return nil, fmt.Errorf("%w: \"data\" is not an array", ErrMalformedExport)
	}

	export := &Export{Conversations: make([]RawConversation, 0, len(convs))}
	for _, raw := range convs {
		export.Conversations = append(export.Conversations, parseConversation(raw))
	}
	return export, nil
}

func parseConversation(raw json.RawMessage) RawConversation {
	var conv RawConversation
	for _, m := range orderedMembers(Lookup(raw, "chat", "history", "messages")) {
		if !isObject(m.value) {
			continue
		}
		var msg RawMessage
		if err := json.Unmarshal(m.value, &msg); err != nil {
			continue
		}
		msg.ID = m.key
		conv.Messages = append(conv.Messages, msg)
	}
	return conv
}

// Lookup walks keys through nested JSON objects and returns the raw value at
// the end of the path. A missing key or a non-object level yields nil.
func Lookup(raw json.RawMessage, keys ...string) json.RawMessage {
	cur := raw
	for _, k := range keys {
		if !isObject(cur) {
			return nil
		}
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(cur, &obj); err != nil {
			return nil
		}
		next, ok := obj[k]
		if !ok {
			return nil
		}
		cur = next
	}
	return cur
}

type member struct {
	key   string
	value json.RawMessage
}

// orderedMembers returns the members of a JSON object in document order. A
// repeated key keeps its first position and its last value. Anything that is
// not a well-formed object yields no members.
func orderedMembers(raw json.RawMessage) []member {
	if !isObject(raw) {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	if _, err := dec.Token(); err != nil {
		return nil
	}

	var out []member
	seen := make(map[string]int)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil
		}
		key, ok := tok.(string)
		if !ok {
			return nil
		}
		var val json.RawMessage
		if err := dec.Decode(&val); err != nil {
			return nil
		}
		if idx, dup := seen[key]; dup {
			out[idx].value = val
			continue
		}
		seen[key] = len(out)
		out = append(out, member{key: key, value: val})
	}
	return out
}

func isObject(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '{'
}

// truthy applies JSON truthiness: false, null, 0, "", [] and {} are false.
// An absent value is false.
func truthy(raw json.RawMessage) bool {
	if raw == nil {
		return false
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return false
	}
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case float64:
		return t != 0
	case string:
		return t != ""
	case []any:
		return len(t) > 0
	case map[string]any:
		return len(t) > 0
	}
	return true
}
