package model

import (
	"encoding/json"
	"time"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one entry of a workspace conversation. The log is append-only:
// reactions, pin and favorite flags mutate in place, but entries are never
// reordered or individually deleted. Seq gives the strict append order.
type Message struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	Seq         uint64    `gorm:"autoIncrement;uniqueIndex" json:"seq"`
	WorkspaceID string    `gorm:"size:36;not null;index" json:"workspace_id"`
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	Role        string    `gorm:"size:16;not null" json:"role"`
	Content     string    `gorm:"type:text;not null" json:"content"`
	IsError     bool      `json:"is_error"`
	ReplyToID   string    `gorm:"size:36" json:"reply_to_id,omitempty"`
	Pinned      bool      `json:"pinned"`
	Favorited   bool      `json:"favorited"`
	Reactions   string    `gorm:"type:text" json:"-"` // JSON map of emoji -> count
	OwnerReacts string    `gorm:"type:text" json:"-"` // JSON array of emojis the owner clicked
	CreatedAt   time.Time `json:"created_at"`
}

// ReactionCounts returns the parsed reaction map; empty on parse error.
func (m *Message) ReactionCounts() map[string]int {
	counts := map[string]int{}
	if m.Reactions == "" {
		return counts
	}
	_ = json.Unmarshal([]byte(m.Reactions), &counts)
	return counts
}

// SetReactionCounts stores the reaction map as JSON.
func (m *Message) SetReactionCounts(counts map[string]int) {
	if len(counts) == 0 {
		m.Reactions = ""
		return
	}
	b, _ := json.Marshal(counts)
	m.Reactions = string(b)
}

// OwnerReactions returns the emojis the workspace owner has reacted with.
func (m *Message) OwnerReactions() []string {
	if m.OwnerReacts == "" {
		return nil
	}
	var emojis []string
	_ = json.Unmarshal([]byte(m.OwnerReacts), &emojis)
	return emojis
}

// SetOwnerReactions stores the owner's reaction set as JSON.
func (m *Message) SetOwnerReactions(emojis []string) {
	if len(emojis) == 0 {
		m.OwnerReacts = ""
		return
	}
	b, _ := json.Marshal(emojis)
	m.OwnerReacts = string(b)
}

// MarshalJSON exposes the reaction columns as structured fields.
func (m Message) MarshalJSON() ([]byte, error) {
	type alias Message
	return json.Marshal(struct {
		alias
		Reactions     map[string]int `json:"reactions"`
		UserReactions []string       `json:"user_reactions"`
	}{
		alias:         alias(m),
		Reactions:     m.ReactionCounts(),
		UserReactions: m.OwnerReactions(),
	})
}

// UnmarshalJSON mirrors MarshalJSON so messages survive the persist queue.
func (m *Message) UnmarshalJSON(data []byte) error {
	type alias Message
	aux := struct {
		*alias
		Reactions     map[string]int `json:"reactions"`
		UserReactions []string       `json:"user_reactions"`
	}{alias: (*alias)(m)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	m.SetReactionCounts(aux.Reactions)
	m.SetOwnerReactions(aux.UserReactions)
	return nil
}
