package billing

import "time"

// Subscriber is the billing collaborator's record of a user's plan.
// The relay only ever reads it.
type Subscriber struct {
	ID         uint64     `gorm:"primaryKey;autoIncrement" json:"-"`
	UserID     uint64     `gorm:"uniqueIndex;not null" json:"-"`
	Tier       Tier       `gorm:"type:varchar(16);not null;default:none" json:"tier"`
	Subscribed bool       `gorm:"not null;default:false" json:"subscribed"`
	ExpiresAt  *time.Time `json:"expires_at"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

func (Subscriber) TableName() string { return "subscribers" }
