package pipeline

import (
	"sort"
	"time"

	"github.com/theirongolddev/chatrecap/internal/model"
	"github.com/theirongolddev/chatrecap/internal/source"
)

// Extract flattens every conversation into one chronologically ordered
// message sequence. Within a conversation messages are stably sorted by
// timestamp (missing timestamps sort as 0) and then messages without a
// timestamp are dropped. Conversations keep their export order.
func Extract(export *source.Export) *LoadResult {
	result := &LoadResult{TotalConversations: export.ConversationCount()}

	for ci, conv := range export.Conversations {
		raw := make([]source.RawMessage, len(conv.Messages))
		copy(raw, conv.Messages)
		sort.SliceStable(raw, func(i, j int) bool {
			return raw[i].Timestamp.SortKey() < raw[j].Timestamp.SortKey()
		})

		for _, rm := range raw {
			if !rm.Timestamp.Valid {
				result.Dropped++
				continue
			}
			result.Messages = append(result.Messages, toMessage(ci, rm))
		}
	}

	return result
}

func toMessage(conversation int, rm source.RawMessage) model.Message {
	msg := model.Message{
		Conversation: conversation,
		Role:         rm.Role.Value,
		Timestamp:    time.Unix(rm.Timestamp.Seconds, 0),
		Text:         EffectiveText(rm),
	}
	if msg.IsAssistant() {
		msg.Model = ResolveModel(rm)
	}
	return msg
}

// EffectiveText resolves the display text of a raw message. Assistant messages
// with a non-empty content_list concatenate its string fragments; everything
// else uses content when it is a string.
func EffectiveText(rm source.RawMessage) model.Text {
	if rm.Role.Value == model.RoleAssistant && rm.ContentList.Present && len(rm.ContentList.Fragments) > 0 {
		parts := make(model.FragmentedText, 0, len(rm.ContentList.Fragments))
		for _, f := range rm.ContentList.Fragments {
			if f.Valid {
				parts = append(parts, f.Value)
			}
		}
		return parts
	}
	if rm.Content.Valid {
		return model.PlainText(rm.Content.Value)
	}
	return model.PlainText("")
}

// ResolveModel picks the model field, then modelName, then "unknown".
func ResolveModel(rm source.RawMessage) string {
	if m, ok := rm.Model.NonEmpty(); ok {
		return m
	}
	if m, ok := rm.ModelName.NonEmpty(); ok {
		return m
	}
	return model.UnknownModel
}

// CountModels tallies assistant messages per resolved model in message order.
func CountModels(messages []model.Message) *model.UsageCounter {
	usage := model.NewUsageCounter()
	for _, m := range messages {
		if m.IsAssistant() {
			usage.Add(m.Model)
		}
	}
	return usage
}
