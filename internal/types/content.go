package types

import (
	"time"

	"gorm.io/datatypes"
)

type ContentStatus string

const (
	StatusDraft     ContentStatus = "draft"
	StatusScheduled ContentStatus = "scheduled"
	StatusPublished ContentStatus = "published"
)

// CanTransitionTo encodes the forward-only content state machine. Draft may be
// re-saved over itself and a scheduled entry may be re-scheduled.
func (s ContentStatus) CanTransitionTo(next ContentStatus) bool {
	switch s {
	case StatusDraft:
		return next == StatusDraft || next == StatusScheduled || next == StatusPublished
	case StatusScheduled:
		return next == StatusScheduled || next == StatusPublished
	case StatusPublished:
		return false
	default:
		return next == StatusDraft
	}
}

// GeneratedContent is one generated content bundle. ContentByPlatform is keyed
// by human display names (LinkedIn, X (Twitter), ...), never internal keys.
type GeneratedContent struct {
	ID                string                                  `gorm:"primaryKey" json:"id"`
	Platforms         datatypes.JSONSlice[string]             `gorm:"type:jsonb" json:"platforms"`
	ContentByPlatform datatypes.JSONType[map[string]string]   `gorm:"type:jsonb" json:"content_by_platform"`
	References        datatypes.JSONType[[]Reference]         `gorm:"type:jsonb" json:"references"`
	Tone              string                                  `json:"tone"`
	PromptText        string                                  `json:"prompt_text"`
	SelectedCardIDs   datatypes.JSONSlice[string]             `gorm:"type:jsonb;column:selected_card_ids" json:"selected_card_ids"`
	Format            string                                  `json:"format"`
	CardData          datatypes.JSONType[[]CardRecord]        `gorm:"type:jsonb" json:"card_data"`
	Status            ContentStatus                           `gorm:"not null;default:draft;index" json:"status"`
	ScheduledFor      *time.Time                              `json:"scheduled_for,omitempty"`
	CreatedAt         time.Time                               `gorm:"not null" json:"created_at"`
	UpdatedAt         time.Time                               `gorm:"not null" json:"updated_at"`
}

func (GeneratedContent) TableName() string {
	return "generated_content"
}

// HistoryEntry is the listing projection of GeneratedContent, upserted on
// every save and state transition so the two never diverge.
type HistoryEntry struct {
	ID           string                      `gorm:"primaryKey" json:"id"`
	Title        string                      `gorm:"not null" json:"title"`
	Platforms    datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"platforms"`
	Status       ContentStatus               `gorm:"not null;index" json:"status"`
	CreatedAt    time.Time                   `gorm:"not null" json:"created_at"`
	LastModified time.Time                   `gorm:"not null" json:"last_modified"`
}

func (HistoryEntry) TableName() string {
	return "content_history"
}
