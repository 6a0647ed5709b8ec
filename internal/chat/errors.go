package chat

import "errors"

// Relay failure taxonomy. Every relay error is terminal for its
// request; nothing is retried automatically.
var (
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrUnknownPersona     = errors.New("unknown persona")
	ErrEntitlementDenied  = errors.New("entitlement denied")
	ErrRateLimited        = errors.New("rate limited")
	ErrUpstreamCompletion = errors.New("upstream completion error")
	ErrPersistence        = errors.New("persistence error")
)
