package billing

import "strings"

// Tier is an ordered entitlement level: none < premium < enterprise.
type Tier string

const (
	TierNone       Tier = "none"
	TierPremium    Tier = "premium"
	TierEnterprise Tier = "enterprise"
)

func (t Tier) rank() int {
	switch t {
	case TierPremium:
		return 1
	case TierEnterprise:
		return 2
	default:
		return 0
	}
}

// Satisfies reports whether t grants access to a persona requiring req.
func (t Tier) Satisfies(req Tier) bool {
	return t.rank() >= req.rank()
}

// ParseTier accepts wire values and the legacy plan labels
// ("Premium"/"Enterprise") case-insensitively. Unknown input maps to none.
func ParseTier(s string) Tier {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "premium":
		return TierPremium
	case "enterprise":
		return TierEnterprise
	default:
		return TierNone
	}
}
