package billing

import (
	"context"
	"errors"
)

// Checker decides whether a user may talk to a persona. One subscriber
// query per call; requests are independent, nothing is cached.
type Checker struct {
	repo *Repo
}

func NewChecker(repo *Repo) *Checker {
	return &Checker{repo: repo}
}

// Entitled returns true when the persona is free, or when the user has
// an active subscription whose tier satisfies the persona's requirement.
// A missing subscriber row is not-entitled, never an error.
func (c *Checker) Entitled(ctx context.Context, userID uint64, isFree bool, required Tier) (bool, error) {
	if isFree {
		return true, nil
	}

	sub, err := c.repo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNoSubscriber) {
			return false, nil
		}
		return false, err
	}

	if !sub.Subscribed {
		return false, nil
	}
	return sub.Tier.Satisfies(required), nil
}
