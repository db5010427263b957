package entity

import "time"

type User struct {
	ID        string                 `json:"id"`
	Email     string                 `json:"email"`
	Name      string                 `json:"name"`
	Password  string                 `json:"-"`
	Prefs     map[string]interface{} `json:"prefs"`
	CreatedAt time.Time              `json:"created_at"`
	UpdatedAt time.Time              `json:"updated_at"`
}

// AvatarFileID returns the avatar file reference stored in the preference
// bag, or an empty string when none is attached.
func (u *User) AvatarFileID() string {
	if u == nil || u.Prefs == nil {
		return ""
	}
	if v, ok := u.Prefs["avatar"].(string); ok {
		return v
	}
	return ""
}
