package persona

import (
	"testing"

	"github.com/idolchat/idolchat/internal/billing"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistry(t *testing.T) {
	reg := Default()

	joon, ok := reg.Lookup("joon-park")
	require.True(t, ok)
	require.True(t, joon.IsFree)
	require.Equal(t, billing.TierNone, joon.RequiredTier)
	require.NotEmpty(t, joon.SystemPrompt)

	luna, ok := reg.Lookup("luna-star")
	require.True(t, ok)
	require.False(t, luna.IsFree)
	require.Equal(t, billing.TierPremium, luna.RequiredTier)

	kai, ok := reg.Lookup("kai-storm")
	require.True(t, ok)
	require.Equal(t, billing.TierEnterprise, kai.RequiredTier)

	_, ok = reg.Lookup("unknown-id")
	require.False(t, ok)
}

func TestAllStableOrder(t *testing.T) {
	reg := Default()
	all := reg.All()
	require.Len(t, all, 3)

	ids := make([]string, 0, len(all))
	for _, p := range all {
		ids = append(ids, p.ID)
	}
	require.Equal(t, []string{"joon-park", "kai-storm", "luna-star"}, ids)
}

func TestNewRegistryIgnoresDuplicateIDs(t *testing.T) {
	reg := NewRegistry(
		Persona{ID: "a", DisplayName: "first"},
		Persona{ID: "a", DisplayName: "second"},
	)
	p, ok := reg.Lookup("a")
	require.True(t, ok)
	require.Equal(t, "first", p.DisplayName)
	require.Len(t, reg.All(), 1)
}
