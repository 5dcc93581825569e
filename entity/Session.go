package entity

import "time"

// Session is a server-side login. ExpiresAt is fixed at login and never extended.
type Session struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"userId"`
	Username  string    `gorm:"not null" json:"username"`
	Role      Role      `gorm:"type:varchar(16);not null" json:"role"`
	ExpiresAt time.Time `gorm:"index;not null" json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
}

func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
