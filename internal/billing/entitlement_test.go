package billing

import (
	"context"
	"testing"

	gormsqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(gormsqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&Subscriber{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func TestTierSatisfies(t *testing.T) {
	cases := []struct {
		have, need Tier
		want       bool
	}{
		{TierNone, TierNone, true},
		{TierNone, TierPremium, false},
		{TierPremium, TierPremium, true},
		{TierPremium, TierEnterprise, false},
		{TierEnterprise, TierPremium, true},
		{TierEnterprise, TierEnterprise, true},
	}
	for _, tc := range cases {
		if got := tc.have.Satisfies(tc.need); got != tc.want {
			t.Errorf("%s satisfies %s = %v, want %v", tc.have, tc.need, got, tc.want)
		}
	}
}

func TestParseTier_LegacyLabels(t *testing.T) {
	if ParseTier("Premium") != TierPremium {
		t.Fatalf("expected Premium to parse as premium")
	}
	if ParseTier("Enterprise") != TierEnterprise {
		t.Fatalf("expected Enterprise to parse as enterprise")
	}
	if ParseTier("gold") != TierNone {
		t.Fatalf("expected unknown label to parse as none")
	}
}

func TestEntitled_FreePersonaAlwaysAllowed(t *testing.T) {
	db := openTestDB(t)
	checker := NewChecker(NewRepo(db))

	// no subscriber row at all
	ok, err := checker.Entitled(context.Background(), 1, true, TierNone)
	if err != nil {
		t.Fatalf("entitled: %v", err)
	}
	if !ok {
		t.Fatalf("free persona must be allowed without a subscriber record")
	}
}

func TestEntitled_MissingRecordDenied(t *testing.T) {
	db := openTestDB(t)
	checker := NewChecker(NewRepo(db))

	ok, err := checker.Entitled(context.Background(), 1, false, TierPremium)
	if err != nil {
		t.Fatalf("entitled: %v", err)
	}
	if ok {
		t.Fatalf("missing subscriber record must deny non-free personas")
	}
}

func TestEntitled_TierOrdering(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepo(db)
	checker := NewChecker(repo)

	if err := repo.Upsert(context.Background(), &Subscriber{
		UserID: 7, Tier: TierEnterprise, Subscribed: true,
	}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	ok, err := checker.Entitled(context.Background(), 7, false, TierPremium)
	if err != nil {
		t.Fatalf("entitled: %v", err)
	}
	if !ok {
		t.Fatalf("enterprise subscriber must satisfy a premium persona")
	}
}

func TestEntitled_UnsubscribedDenied(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepo(db)
	checker := NewChecker(repo)

	if err := repo.Upsert(context.Background(), &Subscriber{
		UserID: 8, Tier: TierEnterprise, Subscribed: false,
	}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	ok, err := checker.Entitled(context.Background(), 8, false, TierPremium)
	if err != nil {
		t.Fatalf("entitled: %v", err)
	}
	if ok {
		t.Fatalf("subscribed=false must deny every non-free persona")
	}
}

func TestServiceSubscribeAndCancel(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepo(db)
	svc := NewService(repo)

	sub, err := svc.Subscribe(context.Background(), 3, "premium", nil)
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	if sub.Tier != TierPremium || !sub.Subscribed {
		t.Fatalf("unexpected subscriber state: %+v", sub)
	}

	// upgrade keeps a single row
	if _, err := svc.Subscribe(context.Background(), 3, "Enterprise", nil); err != nil {
		t.Fatalf("upgrade: %v", err)
	}
	var count int64
	if err := db.Model(&Subscriber{}).Where("user_id = ?", 3).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected one subscriber row, got %d", count)
	}

	if err := svc.Cancel(context.Background(), 3); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	sub, err = svc.Get(context.Background(), 3)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if sub.Subscribed || sub.Tier != TierNone {
		t.Fatalf("expected cancelled subscriber, got %+v", sub)
	}

	if _, err := svc.Subscribe(context.Background(), 3, "free", nil); err != ErrUnknownTier {
		t.Fatalf("expected ErrUnknownTier, got %v", err)
	}
}
