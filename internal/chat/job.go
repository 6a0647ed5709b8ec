package chat

import "time"

type JobStatus string

const (
	JobQueued    JobStatus = "queued"
	JobRunning   JobStatus = "running"
	JobSucceeded JobStatus = "succeeded"
	JobFailed    JobStatus = "failed"
)

// RelayJob is an asynchronous relay request. The prompt stays on the
// job until the worker obtains a reply; only then is the message pair
// written, so a failed job leaves no conversation rows behind.
type RelayJob struct {
	ID string `gorm:"primaryKey;size:26"` // ULID length

	UserID uint64 `gorm:"not null;uniqueIndex:uniq_user_idempo"`
	IdolID string `gorm:"size:64;not null"`

	Prompt string `gorm:"type:text;not null"`

	// Unique together with UserID: the same key from two different
	// users names two different jobs.
	IdempotencyKey *string `gorm:"type:varchar(128);uniqueIndex:uniq_user_idempo" json:"idempotency_key"`

	Status JobStatus `gorm:"type:varchar(16);index;not null"`

	// Filled when succeeded
	ResultMessageID *uint64 `gorm:"index"`

	// Filled when failed
	Error *string `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (RelayJob) TableName() string { return "relay_jobs" }
