package models

import (
	"time"

	"github.com/lib/pq"
)

// MaxPostImages caps how many stored image URLs a single post may reference.
const MaxPostImages = 5

// Post is a marketplace/blog entry. Images holds non-owning references
// (public URLs) to files owned by the image store; cleanup of removed
// references is handled by the reconciler, never by the database layer.
type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Content   string    `gorm:"size:5000;not null" json:"content"`
	// Ordered list of up to MaxPostImages image URLs under the public
	// images prefix. Stored as a Postgres text[].
	Images pq.StringArray `gorm:"type:text[]" json:"images"`
	UserID uint           `gorm:"index;not null" json:"userId"`
	User   User           `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}
