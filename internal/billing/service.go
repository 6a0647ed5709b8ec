package billing

import (
	"context"
	"errors"
	"time"
)

var ErrUnknownTier = errors.New("unknown tier")

// Service covers the subscription screens: view, subscribe/upgrade,
// cancel. Payment collection lives with the external billing provider;
// this only records the resulting plan state.
type Service struct {
	repo *Repo
}

func NewService(repo *Repo) *Service {
	return &Service{repo: repo}
}

func (s *Service) Get(ctx context.Context, userID uint64) (*Subscriber, error) {
	return s.repo.GetByUserID(ctx, userID)
}

func (s *Service) Subscribe(ctx context.Context, userID uint64, tierStr string, expiresAt *time.Time) (*Subscriber, error) {
	tier := ParseTier(tierStr)
	if tier == TierNone {
		return nil, ErrUnknownTier
	}
	sub := &Subscriber{
		UserID:     userID,
		Tier:       tier,
		Subscribed: true,
		ExpiresAt:  expiresAt,
	}
	if err := s.repo.Upsert(ctx, sub); err != nil {
		return nil, err
	}
	return s.repo.GetByUserID(ctx, userID)
}

func (s *Service) Cancel(ctx context.Context, userID uint64) error {
	return s.repo.Cancel(ctx, userID)
}
