package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PostModel's ID is the sanitized slug when one could be derived, otherwise
// a random UUID. Both fit varchar(36).
type PostModel struct {
	ID            string         `gorm:"type:varchar(36);primary_key" json:"id"`
	Title         string         `gorm:"type:varchar(255);not null" json:"title"`
	Slug          string         `gorm:"type:varchar(36);index" json:"slug"`
	Content       string         `gorm:"type:text" json:"content"`
	FeaturedImage string         `gorm:"type:varchar(255)" json:"featured_image"`
	AuthorID      string         `gorm:"type:varchar(64);not null;index" json:"author_id"`
	AuthorName    string         `gorm:"type:varchar(255)" json:"author_name"`
	AuthorAvatar  string         `gorm:"type:varchar(255)" json:"author_avatar"`
	Status        string         `gorm:"type:varchar(20);default:'active';index" json:"status"`
	Upvotes       int            `gorm:"default:0" json:"upvotes"`
	Downvotes     int            `gorm:"default:0" json:"downvotes"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

func (PostModel) TableName() string {
	return "posts"
}

func (p *PostModel) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}
