package chat

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

type Repo struct {
	db *gorm.DB
}

func NewRepo(db *gorm.DB) *Repo {
	return &Repo{db: db}
}

func (r *Repo) InsertMessage(ctx context.Context, m *Message) error {
	return r.db.WithContext(ctx).Create(m).Error
}

// InsertPair writes the user row then the idol row in one transaction.
// A turn is recorded as an atomic pair: either both rows land or
// neither does.
func (r *Repo) InsertPair(ctx context.Context, userID uint64, idolID, userText, idolText string) (*Message, *Message, error) {
	userMsg := &Message{UserID: userID, IdolID: idolID, Message: userText, Sender: SenderUser}
	idolMsg := &Message{UserID: userID, IdolID: idolID, Message: idolText, Sender: SenderIdol}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(userMsg).Error; err != nil {
			return err
		}
		return tx.Create(idolMsg).Error
	})
	if err != nil {
		return nil, nil, err
	}
	return userMsg, idolMsg, nil
}

// ListMessages returns messages in DESC id order (newest -> oldest).
func (r *Repo) ListMessages(ctx context.Context, userID uint64, idolID string, limit int, beforeID uint64) ([]Message, error) {
	q := r.db.WithContext(ctx).
		Where("user_id = ? AND idol_id = ?", userID, idolID).
		Order("id DESC").
		Limit(limit)

	if beforeID > 0 {
		q = q.Where("id < ?", beforeID)
	}

	var msgs []Message
	if err := q.Find(&msgs).Error; err != nil {
		return nil, err
	}
	return msgs, nil
}

// Job CRUD
func (r *Repo) CreateJob(ctx context.Context, job *RelayJob) error {
	return r.db.WithContext(ctx).Create(job).Error
}

func (r *Repo) GetJobByID(ctx context.Context, id string) (*RelayJob, error) {
	var j RelayJob
	if err := r.db.WithContext(ctx).First(&j, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &j, nil
}

// ClaimJob flips a queued job to running and reports whether this
// caller won the claim. A job that is already running, succeeded or
// failed cannot be claimed again, so a redelivered queue message is
// processed at most once.
func (r *Repo) ClaimJob(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Model(&RelayJob{}).
		Where("id = ? AND status = ?", id, JobQueued).
		Update("status", JobRunning)
	return res.RowsAffected == 1, res.Error
}

func (r *Repo) MarkJobSucceeded(ctx context.Context, id string, idolMsgID uint64) error {
	return r.db.WithContext(ctx).Model(&RelayJob{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":            JobSucceeded,
			"result_message_id": idolMsgID,
			"error":             nil,
		}).Error
}

func (r *Repo) MarkJobFailed(ctx context.Context, id string, errMsg string) error {
	return r.db.WithContext(ctx).Model(&RelayJob{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":            JobFailed,
			"error":             errMsg,
			"result_message_id": nil,
		}).Error
}

func (r *Repo) GetJobByUserAndIdempotencyKey(ctx context.Context, userID uint64, key string) (*RelayJob, error) {
	var job RelayJob
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND idempotency_key = ?", userID, key).
		First(&job).Error
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// CreateJobOrGetExisting tries to create a job, but if (user_id,
// idempotency_key) already exists, it returns the existing job instead.
func (r *Repo) CreateJobOrGetExisting(ctx context.Context, job *RelayJob) (*RelayJob, bool, error) {
	if job.IdempotencyKey == nil || *job.IdempotencyKey == "" {
		job.IdempotencyKey = nil
		if err := r.db.WithContext(ctx).Create(job).Error; err != nil {
			return nil, false, err
		}
		return job, true, nil
	}

	err := r.db.WithContext(ctx).Create(job).Error
	if err == nil {
		return job, true, nil
	}

	existing, getErr := r.GetJobByUserAndIdempotencyKey(ctx, job.UserID, *job.IdempotencyKey)
	if getErr == nil {
		return existing, false, nil
	}

	if errors.Is(getErr, gorm.ErrRecordNotFound) {
		return nil, false, err
	}
	return nil, false, getErr
}
