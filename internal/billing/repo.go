package billing

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrNoSubscriber = errors.New("no subscriber record")

type Repo struct {
	db *gorm.DB
}

func NewRepo(db *gorm.DB) *Repo {
	return &Repo{db: db}
}

func (r *Repo) GetByUserID(ctx context.Context, userID uint64) (*Subscriber, error) {
	var s Subscriber
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoSubscriber
		}
		return nil, err
	}
	return &s, nil
}

// Upsert creates or replaces the subscriber row for s.UserID.
func (r *Repo) Upsert(ctx context.Context, s *Subscriber) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"tier", "subscribed", "expires_at", "updated_at"}),
	}).Create(s).Error
}

func (r *Repo) Cancel(ctx context.Context, userID uint64) error {
	res := r.db.WithContext(ctx).Model(&Subscriber{}).
		Where("user_id = ?", userID).
		Updates(map[string]any{
			"subscribed": false,
			"tier":       TierNone,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNoSubscriber
	}
	return nil
}
