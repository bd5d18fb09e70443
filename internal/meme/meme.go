// Copyright (c) 2026 D42X. All rights reserved.

/*
Package meme implements the meme catalog: public browsing and voting, and
the admin moderation surface.

The paginated public listing is the second hot read path (after the category
listing) and is served through the read cache keyed by page and category.
Bulk posting clears that cache wholesale, because a new row can shift every
downstream page.
*/
package meme

import (
	"time"

	"github.com/google/uuid"
)

// Status is the moderation state of a meme.
type Status string

const (
	StatusPublished Status = "published"
	StatusPending   Status = "pending"
	StatusDeleted   Status = "deleted"
)

// Statuses lists every valid moderation state.
var Statuses = []string{string(StatusPublished), string(StatusPending), string(StatusDeleted)}

// Format is a media file format accepted for meme URLs.
type Format string

// Formats lists every accepted media format.
var Formats = []string{"jpg", "jpeg", "png", "gif", "webp", "webm"}

// Meme is one catalog entry with its media URLs.
type Meme struct {
	ID         uuid.UUID `json:"id"`
	Categories []string  `json:"categories"`
	Nickname   string    `json:"nickname"`
	Message    string    `json:"message"`
	ShowAt     time.Time `json:"show_at"`
	Status     Status    `json:"status"`
	Likes      int64     `json:"likes"`
	Unlikes    int64     `json:"unlikes"`
	CreatedAt  time.Time `json:"created_at"`
	URLs       []MemeURL `json:"urls"`
}

// MemeURL is one media file belonging to a meme.
type MemeURL struct {
	ID     uuid.UUID `json:"id"`
	URL    string    `json:"url"`
	Cover  string    `json:"cover"`
	Format Format    `json:"format"`
	Sort   int       `json:"sort"`
}

// PostMeme is the submission shape for one new meme.
type PostMeme struct {
	Nickname   string        `json:"nickname"`
	Categories []string      `json:"categories"`
	Message    string        `json:"message"`
	ShowAt     time.Time     `json:"show_at"`
	URLs       []PostMemeURL `json:"urls"`
}

// PostMemeURL is one media file in a submission.
type PostMemeURL struct {
	URL    string `json:"url"`
	Cover  string `json:"cover"`
	Format Format `json:"format"`
	Sort   int    `json:"sort"`
}

// Interaction is the live vote count of one meme.
type Interaction struct {
	ID      uuid.UUID `json:"id"`
	Likes   int64     `json:"likes"`
	Unlikes int64     `json:"unlikes"`
}
