// Package model defines domain types for chatrecap messages and reports.
package model

import (
	"strings"
	"time"
	"unicode/utf8"
)

// Role values that the report partitions on. Any other role string is kept as-is
// and only contributes to the total message count.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// UnknownModel is the usage key for assistant messages that name no model.
const UnknownModel = "unknown"

// Text is the resolved display text of a message. It is either PlainText or
// FragmentedText; the variant is chosen once when the message is ingested.
type Text interface {
	String() string
	Kind() TextKind
}

// TextKind tags the Text variant, mainly for persistence.
type TextKind int

const (
	KindPlain TextKind = iota
	KindFragmented
)

// PlainText is message text taken from the content field.
type PlainText string

func (p PlainText) String() string { return string(p) }

// Kind implements Text.
func (PlainText) Kind() TextKind { return KindPlain }

// FragmentedText is assistant text assembled from content_list fragments.
type FragmentedText []string

func (f FragmentedText) String() string { return strings.Join(f, "") }

// Kind implements Text.
func (FragmentedText) Kind() TextKind { return KindFragmented }

// Message is one timestamped chat message that survived extraction.
type Message struct {
	Conversation int // index of the owning conversation in the export
	Role         string
	Timestamp    time.Time
	Text         Text
	Model        string // resolved model name, only meaningful for assistant messages
}

// Chars returns the number of Unicode code points in the effective text.
func (m Message) Chars() int {
	if m.Text == nil {
		return 0
	}
	return utf8.RuneCountInString(m.Text.String())
}

// IsAssistant reports whether the message was written by the assistant.
func (m Message) IsAssistant() bool {
	return m.Role == RoleAssistant
}
