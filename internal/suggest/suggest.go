// Copyright (c) 2026 D42X. All rights reserved.

/*
Package suggest handles visitor suggestions to recategorize a meme.

A visitor proposes a replacement category list for one meme; the admin
reviews the queue and either applies the proposal (which rewrites the meme's
categories) or rejects it. Suggestions are append-only history: applied and
rejected entries are kept for audit.
*/
package suggest

import (
	"time"

	"github.com/google/uuid"
)

// Status is the review state of a suggestion.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApplied  Status = "applied"
	StatusRejected Status = "rejected"
)

// Statuses lists every valid review state.
var Statuses = []string{string(StatusPending), string(StatusApplied), string(StatusRejected)}

// Suggestion is one recategorization proposal.
//
// Before is the meme's category list at submission time, captured so the
// admin sees what the visitor was reacting to even if the meme has since
// been recategorized. ApplyUserID is the admin who resolved it.
type Suggestion struct {
	ID          uuid.UUID     `json:"id"`
	MemeID      uuid.UUID     `json:"meme_id"`
	Before      []string      `json:"before"`
	After       []string      `json:"after"`
	ApplyUserID uuid.NullUUID `json:"apply_user_id"`
	Status      Status        `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
}
