package domain

import "time"

// BrandID is a unique identifier for a brand.
type BrandID string

// String returns the string representation of the BrandID.
func (id BrandID) String() string {
	return string(id)
}

// KnowledgeID is a unique identifier for a knowledge base entry.
type KnowledgeID string

// String returns the string representation of the KnowledgeID.
func (id KnowledgeID) String() string {
	return string(id)
}

// Brand is a company or business line scripts are written for.
type Brand struct {
	ID   BrandID `json:"id"`
	Name string  `json:"name"`
}

// BrandKnowledgeItem is a free-text fact about a brand.
type BrandKnowledgeItem struct {
	ID        KnowledgeID `json:"id"`
	BrandID   BrandID     `json:"brand_id"`
	Content   string      `json:"content"`
	CreatedAt time.Time   `json:"created_at"`
}

// DefaultBrandNames are seeded into an empty brand table.
var DefaultBrandNames = []string{
	"Benjamin Stevens (Hub Model - Admin Supported)",
	"eXp (Self Employed - Fully Independent)",
	"Benjamin Stevens Lettings",
	"Benjamin Stevens Block Management",
	"Benjamin Stevens Auction and Investments",
}
