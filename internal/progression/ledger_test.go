package progression

import (
	"errors"
	"testing"

	"github.com/vovakirdan/oddgravity/internal/game"
	"github.com/vovakirdan/oddgravity/internal/persist"
)

func TestXPForLevel(t *testing.T) {
	tests := []struct {
		level int
		want  int
	}{
		{1, 0},
		{2, 100},
		{3, 150},
		{4, 225},
		{5, 337},
	}

	for _, tt := range tests {
		if got := XPForLevel(tt.level); got != tt.want {
			t.Errorf("XPForLevel(%d) = %d, expected %d", tt.level, got, tt.want)
		}
	}
}

func TestLedgerDefaults(t *testing.T) {
	l := NewLedger(persist.NewMemory())

	if l.Level() != 1 {
		t.Errorf("Fresh ledger level = %d, expected 1", l.Level())
	}
	if l.Coins() != 0 {
		t.Errorf("Fresh ledger coins = %d, expected 0", l.Coins())
	}
	if !l.Owns("skin_classic") || !l.Owns("trail_none") {
		t.Error("Fresh ledger should own the default cosmetics")
	}
	skin, trail := l.Equipped()
	if skin != "skin_classic" || trail != "trail_none" {
		t.Errorf("Fresh ledger equips %q/%q", skin, trail)
	}
}

func TestLedgerAddCoins(t *testing.T) {
	l := NewLedger(persist.NewMemory())

	if err := l.AddCoins(25); err != nil {
		t.Fatalf("AddCoins failed: %v", err)
	}
	if l.Coins() != 25 {
		t.Errorf("Coins = %d, expected 25", l.Coins())
	}

	if err := l.AddCoins(-5); err != nil {
		t.Fatalf("AddCoins with negative amount failed: %v", err)
	}
	if l.Coins() != 25 {
		t.Errorf("Coins after negative credit = %d, expected 25", l.Coins())
	}
}

func TestLedgerAddRun(t *testing.T) {
	l := NewLedger(persist.NewMemory())

	sum := &game.RunSummary{
		Score: 5, Coins: 10, ObstaclesPassed: 5, PowerupsTaken: 1, Mode: "Classic",
	}
	reward, err := l.AddRun(sum, 0)
	if err != nil {
		t.Fatalf("AddRun failed: %v", err)
	}

	// 10*5 + 2*10 + 5*5 + 15*1 = 110 XP: enough for level 2 (100)
	if reward.XP != 110 {
		t.Errorf("Run XP = %d, expected 110", reward.XP)
	}
	if l.Level() != 2 {
		t.Errorf("Level = %d, expected 2", l.Level())
	}
	if l.XP() != 10 {
		t.Errorf("Leftover XP = %d, expected 10", l.XP())
	}
	if l.Coins() != 10 {
		t.Errorf("Coins = %d, expected 10", l.Coins())
	}
}

func TestLedgerMissionBonus(t *testing.T) {
	l := NewLedger(persist.NewMemory())

	sum := &game.RunSummary{Mode: "Classic"}
	reward, err := l.AddRun(sum, 2)
	if err != nil {
		t.Fatalf("AddRun failed: %v", err)
	}
	if reward.XP != 100 {
		t.Errorf("Mission bonus XP = %d, expected 100", reward.XP)
	}
}

func TestLedgerMilestoneReward(t *testing.T) {
	l := NewLedger(persist.NewMemory())

	// A huge run that blows past level 5
	sum := &game.RunSummary{Score: 200, Mode: "Classic"}
	reward, err := l.AddRun(sum, 0)
	if err != nil {
		t.Fatalf("AddRun failed: %v", err)
	}

	if l.Level() < 5 {
		t.Fatalf("Expected at least level 5, got %d", l.Level())
	}
	if len(reward.Rewards) == 0 {
		t.Fatal("Milestone level should grant a reward")
	}
	if reward.Rewards[0].Level != 5 {
		t.Errorf("First milestone at level %d, expected 5", reward.Rewards[0].Level)
	}
	if !l.Owns("skin_comet") {
		t.Error("Level 5 should auto-unlock its cosmetic")
	}
	if l.Coins() < 100 {
		t.Errorf("Milestone coins not granted, wallet = %d", l.Coins())
	}
}

func TestLedgerLevelCap(t *testing.T) {
	l := NewLedger(persist.NewMemory())

	// Feed absurd runs until the cap holds; the curve is exponential so the
	// later thresholds need enormous totals
	for i := 0; i < 50; i++ {
		l.AddRun(&game.RunSummary{Score: 1_000_000_000, Mode: "Classic"}, 0)
	}

	if l.Level() != MaxLevel() {
		t.Errorf("Level should cap at %d, got %d", MaxLevel(), l.Level())
	}
	if l.XPToNext() != 0 {
		t.Errorf("At the cap XPToNext = %d, expected 0", l.XPToNext())
	}
}

func TestLedgerPersistence(t *testing.T) {
	store := persist.NewMemory()

	l := NewLedger(store)
	l.AddRun(&game.RunSummary{Score: 5, Coins: 20, Mode: "Classic"}, 0)

	// A second ledger over the same store sees the saved state
	l2 := NewLedger(store)
	if l2.Coins() != l.Coins() || l2.Level() != l.Level() || l2.XP() != l.XP() {
		t.Errorf("Reloaded ledger differs: %d/%d/%d vs %d/%d/%d",
			l2.Coins(), l2.Level(), l2.XP(), l.Coins(), l.Level(), l.XP())
	}
	if l2.Stats().Games != 1 {
		t.Errorf("Reloaded stats games = %d, expected 1", l2.Stats().Games)
	}
}

func TestLedgerCorruptBlobRecovers(t *testing.T) {
	store := persist.NewMemory()
	store.Save("progression", "not an object")

	l := NewLedger(store)
	if l.Level() != 1 || l.Coins() != 0 {
		t.Errorf("Corrupt blob should fall back to defaults, got level=%d coins=%d", l.Level(), l.Coins())
	}
}

func TestShopGuards(t *testing.T) {
	l := NewLedger(persist.NewMemory())

	if err := l.Purchase("no_such_item"); !errors.Is(err, ErrUnknownItem) {
		t.Errorf("Unknown item error = %v", err)
	}
	if err := l.Purchase("skin_classic"); !errors.Is(err, ErrAlreadyOwned) {
		t.Errorf("Owned item error = %v", err)
	}
	if err := l.Purchase("skin_bolt"); !errors.Is(err, ErrInsufficientFunds) {
		t.Errorf("Broke purchase error = %v", err)
	}
}

func TestShopPurchaseAndEquip(t *testing.T) {
	l := NewLedger(persist.NewMemory())
	l.AddRun(&game.RunSummary{Coins: 300, Mode: "Classic"}, 0)

	if err := l.Purchase("skin_bolt"); err != nil {
		t.Fatalf("Purchase failed: %v", err)
	}
	if l.Coins() != 50 {
		t.Errorf("Wallet after purchase = %d, expected 50", l.Coins())
	}
	if !l.Owns("skin_bolt") {
		t.Error("Purchased item should be owned")
	}

	if err := l.Equip("skin_bolt"); err != nil {
		t.Fatalf("Equip failed: %v", err)
	}
	skin, _ := l.Equipped()
	if skin != "skin_bolt" {
		t.Errorf("Equipped skin = %q", skin)
	}

	if err := l.Equip("trail_stars"); !errors.Is(err, ErrNotOwned) {
		t.Errorf("Equipping unowned item error = %v", err)
	}
}
