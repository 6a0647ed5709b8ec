package chat

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/idolchat/idolchat/internal/ai"
	"github.com/idolchat/idolchat/internal/billing"
	"github.com/idolchat/idolchat/internal/common"
	"github.com/idolchat/idolchat/internal/persona"
)

// rateLimitAction keys the shared message quota across sync and async
// relay paths.
const rateLimitAction = "chat_message"

// RateLimiter is the external admission RPC: at most max actions per
// window for (userID, action). Atomicity under concurrent callers is
// the limiter's responsibility.
type RateLimiter interface {
	AllowAction(ctx context.Context, userID uint64, action string, max int, window time.Duration) (bool, error)
}

// Quotas holds the per-tier daily message limits and the shared window.
type Quotas struct {
	Window     time.Duration
	Free       int
	Premium    int
	Enterprise int
}

func DefaultQuotas() Quotas {
	return Quotas{Window: 24 * time.Hour, Free: 50, Premium: 200, Enterprise: 500}
}

// NewQuotas builds the quota table from configuration, falling back to
// the deploy defaults for non-positive values.
func NewQuotas(windowMinutes, free, premium, enterprise int) Quotas {
	q := DefaultQuotas()
	if windowMinutes > 0 {
		q.Window = time.Duration(windowMinutes) * time.Minute
	}
	if free > 0 {
		q.Free = free
	}
	if premium > 0 {
		q.Premium = premium
	}
	if enterprise > 0 {
		q.Enterprise = enterprise
	}
	return q
}

func (q Quotas) ForTier(t billing.Tier) int {
	switch t {
	case billing.TierPremium:
		return q.Premium
	case billing.TierEnterprise:
		return q.Enterprise
	default:
		return q.Free
	}
}

type Service struct {
	repo        *Repo
	personas    *persona.Registry
	entitlement *billing.Checker
	limiter     RateLimiter
	provider    ai.Provider
	quotas      Quotas
}

func NewService(repo *Repo, personas *persona.Registry, entitlement *billing.Checker, limiter RateLimiter, provider ai.Provider, quotas Quotas) *Service {
	if quotas.Window <= 0 {
		quotas = DefaultQuotas()
	}
	return &Service{
		repo:        repo,
		personas:    personas,
		entitlement: entitlement,
		limiter:     limiter,
		provider:    provider,
		quotas:      quotas,
	}
}

// checkAdmission runs the pre-completion gate: persona resolution,
// entitlement, rate limit. Order matters: an unknown persona makes no
// downstream call at all.
func (s *Service) checkAdmission(ctx context.Context, userID uint64, idolID string) (persona.Persona, error) {
	p, ok := s.personas.Lookup(idolID)
	if !ok {
		return persona.Persona{}, ErrUnknownPersona
	}

	entitled, err := s.entitlement.Entitled(ctx, userID, p.IsFree, p.RequiredTier)
	if err != nil {
		return persona.Persona{}, fmt.Errorf("entitlement check: %w", err)
	}
	if !entitled {
		return persona.Persona{}, ErrEntitlementDenied
	}

	allowed, err := s.limiter.AllowAction(ctx, userID, rateLimitAction, s.quotas.ForTier(p.RequiredTier), s.quotas.Window)
	if err != nil {
		// a broken limiter never admits
		return persona.Persona{}, fmt.Errorf("rate limit check: %w", err)
	}
	if !allowed {
		return persona.Persona{}, ErrRateLimited
	}
	return p, nil
}

// Relay turns one inbound message into one tier-checked, rate-limited
// completion call. The conversation pair is persisted only after the
// completion succeeds, user row first, in a single transaction: a
// completion failure writes nothing, and an orphaned user row cannot
// occur. A persistence failure after the reply was obtained is
// reported as ErrPersistence alongside the reply; callers may still
// deliver the reply.
func (s *Service) Relay(ctx context.Context, userID uint64, idolID, message string) (string, error) {
	p, err := s.checkAdmission(ctx, userID, idolID)
	if err != nil {
		return "", err
	}

	reply, err := s.provider.Chat(ctx, []ai.Message{
		{Role: "system", Content: p.SystemPrompt},
		{Role: "user", Content: message},
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstreamCompletion, err)
	}

	if _, _, err := s.repo.InsertPair(ctx, userID, idolID, message, reply); err != nil {
		log.Printf("relay: persist failed user=%d idol=%s err=%v", userID, idolID, err)
		return reply, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	return reply, nil
}

// EnqueueRelay runs the admission gate now and defers the completion
// call to the worker. Returns the job and whether it was newly created
// (idempotency keys dedupe per user).
func (s *Service) EnqueueRelay(ctx context.Context, userID uint64, idolID, message string, idempotencyKey *string) (*RelayJob, bool, error) {
	if _, err := s.checkAdmission(ctx, userID, idolID); err != nil {
		return nil, false, err
	}

	jobID, err := common.NewULID()
	if err != nil {
		return nil, false, err
	}

	job := &RelayJob{
		ID:             jobID,
		UserID:         userID,
		IdolID:         idolID,
		Prompt:         message,
		IdempotencyKey: idempotencyKey,
		Status:         JobQueued,
	}
	return s.repo.CreateJobOrGetExisting(ctx, job)
}

// ProcessJob executes one queued relay job: completion then the pair
// insert, mirroring Relay. Admission was already checked at enqueue.
// The queue delivers at least once, so the job is claimed first; a
// delivery that loses the claim is dropped without touching the
// provider or the conversation.
func (s *Service) ProcessJob(ctx context.Context, jobID string) error {
	claimed, err := s.repo.ClaimJob(ctx, jobID)
	if err != nil {
		return err
	}
	if !claimed {
		log.Printf("relay job %s already claimed, skipping redelivery", jobID)
		return nil
	}

	job, err := s.repo.GetJobByID(ctx, jobID)
	if err != nil {
		return err
	}

	p, ok := s.personas.Lookup(job.IdolID)
	if !ok {
		_ = s.repo.MarkJobFailed(ctx, jobID, ErrUnknownPersona.Error())
		return ErrUnknownPersona
	}

	reply, err := s.provider.Chat(ctx, []ai.Message{
		{Role: "system", Content: p.SystemPrompt},
		{Role: "user", Content: job.Prompt},
	})
	if err != nil {
		_ = s.repo.MarkJobFailed(ctx, jobID, err.Error())
		return fmt.Errorf("%w: %v", ErrUpstreamCompletion, err)
	}

	_, idolMsg, err := s.repo.InsertPair(ctx, job.UserID, job.IdolID, job.Prompt, reply)
	if err != nil {
		_ = s.repo.MarkJobFailed(ctx, jobID, err.Error())
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	return s.repo.MarkJobSucceeded(ctx, jobID, idolMsg.ID)
}

func (s *Service) GetJob(ctx context.Context, jobID string) (*RelayJob, error) {
	return s.repo.GetJobByID(ctx, jobID)
}

func (s *Service) ListMessages(ctx context.Context, userID uint64, idolID string, limit int, beforeID uint64) ([]Message, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.repo.ListMessages(ctx, userID, idolID, limit, beforeID)
}
