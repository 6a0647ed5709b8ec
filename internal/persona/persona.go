// Package persona holds the deploy-time idol table: id, display name,
// system prompt and access tier. It is pure configuration data; the
// registry is immutable after init.
package persona

import (
	"sort"

	"github.com/idolchat/idolchat/internal/billing"
)

type Persona struct {
	ID           string
	DisplayName  string
	SystemPrompt string
	IsFree       bool
	RequiredTier billing.Tier
}

type Registry struct {
	byID  map[string]Persona
	order []string
}

func NewRegistry(personas ...Persona) *Registry {
	r := &Registry{byID: make(map[string]Persona, len(personas))}
	for _, p := range personas {
		if _, dup := r.byID[p.ID]; dup {
			continue
		}
		r.byID[p.ID] = p
		r.order = append(r.order, p.ID)
	}
	sort.Strings(r.order)
	return r
}

func (r *Registry) Lookup(id string) (Persona, bool) {
	p, ok := r.byID[id]
	return p, ok
}

// All returns every persona in stable id order, for listings.
func (r *Registry) All() []Persona {
	out := make([]Persona, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out
}

// Default returns the registry shipped with this deployment.
func Default() *Registry {
	return NewRegistry(
		Persona{
			ID:           "joon-park",
			DisplayName:  "Joon Park",
			SystemPrompt: joonParkPrompt,
			IsFree:       true,
			RequiredTier: billing.TierNone,
		},
		Persona{
			ID:           "luna-star",
			DisplayName:  "Luna Star",
			SystemPrompt: lunaStarPrompt,
			IsFree:       false,
			RequiredTier: billing.TierPremium,
		},
		Persona{
			ID:           "kai-storm",
			DisplayName:  "Kai Storm",
			SystemPrompt: kaiStormPrompt,
			IsFree:       false,
			RequiredTier: billing.TierEnterprise,
		},
	)
}
