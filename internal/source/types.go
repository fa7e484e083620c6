package source

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
)

// Export is a chat-history export whose top-level shape has been validated.
type Export struct {
	Conversations []RawConversation
}

// ConversationCount returns the number of conversation records under "data",
// including records that carried no messages.
func (e *Export) ConversationCount() int {
	return len(e.Conversations)
}

// RawConversation holds the message records of one conversation in the order
// they appear in the document.
type RawConversation struct {
	Messages []RawMessage
}

// RawMessage is one entry of chat.history.messages. Every field is lenient:
// a value of the wrong JSON type decodes as absent instead of failing the file.
type RawMessage struct {
	ID          string          `json:"-"`
	Role        OptionalString  `json:"role"`
	Timestamp   OptionalUnix    `json:"timestamp"`
	Content     OptionalString  `json:"content"`
	ContentList OptionalContent `json:"content_list"`
	Model       OptionalString  `json:"model"`
	ModelName   OptionalString  `json:"modelName"`
}

// OptionalString is a JSON string that may be absent, null or of another type.
type OptionalString struct {
	Value string
	Valid bool
}

// UnmarshalJSON keeps string values and ignores everything else.
func (s *OptionalString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '"' {
		*s = OptionalString{}
		return nil
	}
	var v string
	if err := json.Unmarshal(data, &v); err != nil {
		*s = OptionalString{}
		return nil //nolint:nilerr // malformed strings degrade to absent
	}
	*s = OptionalString{Value: v, Valid: true}
	return nil
}

// NonEmpty returns the value when it is a non-empty string.
func (s OptionalString) NonEmpty() (string, bool) {
	if s.Valid && s.Value != "" {
		return s.Value, true
	}
	return "", false
}

// OptionalUnix is a timestamp in seconds since the epoch. Missing, null and
// non-numeric values leave Valid false.
type OptionalUnix struct {
	Seconds int64
	Valid   bool
}

// UnmarshalJSON accepts integer and fractional numbers; fractions are truncated.
func (u *OptionalUnix) UnmarshalJSON(data []byte) error {
	*u = OptionalUnix{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}
	if c := data[0]; c != '-' && (c < '0' || c > '9') {
		return nil
	}
	if n, err := strconv.ParseInt(string(data), 10, 64); err == nil {
		*u = OptionalUnix{Seconds: n, Valid: true}
		return nil
	}
	if f, err := strconv.ParseFloat(string(data), 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
		*u = OptionalUnix{Seconds: int64(f), Valid: true}
	}
	return nil
}

// SortKey is the ordering key: the timestamp, or 0 when it is missing.
func (u OptionalUnix) SortKey() int64 {
	if !u.Valid {
		return 0
	}
	return u.Seconds
}

// OptionalContent is the content_list array of fragmented assistant replies.
// Present is true only when the field held a JSON array.
type OptionalContent struct {
	Fragments []OptionalString
	Present   bool
}

type contentItem struct {
	Content OptionalString `json:"content"`
}

// UnmarshalJSON decodes an array of {"content": ...} items. Items that are not
// objects keep their position as absent fragments.
func (c *OptionalContent) UnmarshalJSON(data []byte) error {
	*c = OptionalContent{}
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil || items == nil {
		return nil //nolint:nilerr // non-array content_list degrades to absent
	}
	c.Present = true
	c.Fragments = make([]OptionalString, 0, len(items))
	for _, raw := range items {
		var item contentItem
		if err := json.Unmarshal(raw, &item); err != nil {
			c.Fragments = append(c.Fragments, OptionalString{})
			continue
		}
		c.Fragments = append(c.Fragments, item.Content)
	}
	return nil
}
