// Copyright (c) 2026 D42X. All rights reserved.

/*
Package category manages the meme category taxonomy.

Categories are a flat, name-keyed list curated implicitly: posting a meme
with an unseen category name appends it. The public listing is the hottest
read in the system (the site header polls it), so it is served through the
read cache with explicit invalidation on every write.
*/
package category

import (
	"time"

	"github.com/google/uuid"
)

// Category is one entry in the taxonomy.
//
// MemeCount is computed at read time from published memes; it is never
// stored.
type Category struct {
	ID        uuid.UUID     `json:"id"`
	Name      string        `json:"name"`
	Parent    uuid.NullUUID `json:"parent"`
	MemeCount int64         `json:"meme_count"`
	CreatedAt time.Time     `json:"created_at"`
}
