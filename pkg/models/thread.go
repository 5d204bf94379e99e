package models

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Turn is one step of a published thread. At ingestion time Image may hold
// an inline data URI; after upload it only ever holds a dereferenceable
// /image/<key> URL.
type Turn struct {
	ID        string `json:"id,omitempty"`
	Author    string `json:"author,omitempty"`
	Text      string `json:"text,omitempty"`
	Image     string `json:"image,omitempty"`
	Prompt    string `json:"prompt,omitempty"`
	Timestamp int64  `json:"timestamp,omitempty"`
	Style     string `json:"style,omitempty"`
}

// ForkInfo records the thread this one was branched from and the turn whose
// content it inherited. Forking never mutates the parent.
type ForkInfo struct {
	ParentID        string `json:"parentId,omitempty"`
	OriginThreadID  string `json:"originThreadId,omitempty"`
	OriginTurnIndex int    `json:"originTurnIndex,omitempty"`
}

// Thread is the canonical published document: an ordered conversation plus
// thread-level defaults. Once uploaded it is immutable; the blob store owns
// the canonical copy and the index holds a derived summary.
type Thread struct {
	ID           string    `json:"id,omitempty"`
	Style        string    `json:"style,omitempty"`
	Model        string    `json:"model,omitempty"`
	ForkInfo     *ForkInfo `json:"forkInfo,omitempty"`
	CreatedAt    int64     `json:"createdAt,omitempty"`
	Conversation []Turn    `json:"conversation"`
}

// Validate checks the minimal client contract for an upload: a non-empty
// conversation and bounded identifier sizes.
func (t Thread) Validate() error {
	return validation.ValidateStruct(&t,
		validation.Field(&t.ID, validation.Length(0, 128)),
		validation.Field(&t.Model, validation.Length(0, 128)),
		validation.Field(&t.Style, validation.Length(0, 64)),
		validation.Field(&t.Conversation, validation.Required),
	)
}
