package entity

import "time"

type PostStatus string

const (
	StatusActive   PostStatus = "active"
	StatusInactive PostStatus = "inactive"
)

type Post struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Slug          string     `json:"slug"`
	Content       string     `json:"content"`
	FeaturedImage string     `json:"featured_image"`
	AuthorID      string     `json:"author_id"`
	AuthorName    string     `json:"author_name"`
	AuthorAvatar  string     `json:"author_avatar"`
	Status        PostStatus `json:"status"`
	Upvotes       int        `json:"upvotes"`
	Downvotes     int        `json:"downvotes"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}
