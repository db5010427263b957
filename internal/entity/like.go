package entity

import "time"

type LikeType string

const (
	LikeUp   LikeType = "up"
	LikeDown LikeType = "down"
)

type Like struct {
	ID        string    `json:"id"`
	PostID    string    `json:"post_id"`
	UserID    string    `json:"user_id"`
	Type      LikeType  `json:"type"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
