package entity

import "time"

// Comment has no edit or delete operation; records are append-only.
type Comment struct {
	ID        string    `json:"id"`
	PostID    string    `json:"post_id"`
	UserID    string    `json:"user_id"`
	UserName  string    `json:"user_name"`
	UserImage string    `json:"user_image"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
