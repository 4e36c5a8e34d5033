package service

import (
	"time"

	"github.com/blogium/internal/db"
	"gorm.io/gorm"
)

// IsPublic reports whether a post is publicly visible at the given
// instant: the post is published, its category (when present) is
// published, and its publication time has been reached. The pub_date
// boundary is inclusive, so a post scheduled for exactly now is
// already visible. A post without a category is never hidden by the
// category clause.
//
// This is the only definition of public visibility. Query paths go
// through PublicScope, which encodes the same rule in SQL; the two
// must stay in agreement.
func IsPublic(post *db.Post, now time.Time) bool {
	if post == nil {
		return false
	}
	if !post.IsPublished {
		return false
	}
	if post.Category != nil && !post.Category.IsPublished {
		return false
	}
	return !post.PubDate.After(now)
}

// PublicScope narrows a posts query to the rows IsPublic would accept
// at the given instant. A post is only hidden by its category when a
// live, unpublished category row exists; a missing or soft-deleted
// category behaves like no category at all, matching how Preload
// leaves Category nil in that case.
func PublicScope(now time.Time) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		return tx.Where(
			"posts.is_published = ? AND posts.pub_date <= ? AND NOT EXISTS ("+
				"SELECT 1 FROM categories WHERE categories.id = posts.category_id"+
				" AND categories.is_published = ? AND categories.deleted_at IS NULL)",
			true, now, false,
		)
	}
}
