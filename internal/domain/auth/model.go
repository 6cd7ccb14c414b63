package auth

import "time"

// Session binds an issued bearer token to a user. Only the token hash is
// ever stored.
type Session struct {
	TokenHash string    `gorm:"primaryKey"`
	UserID    string    `gorm:"type:uuid;index;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	ExpiresAt time.Time `gorm:"not null"`
}

func (Session) TableName() string {
	return "auth_sessions"
}

func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
