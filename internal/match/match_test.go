package match

import (
	"testing"

	"github.com/mabry1985/albion-killbot/internal/battle"
	"github.com/mabry1985/albion-killbot/internal/tracking"
)

func bt(id int64, fame int64, players ...string) battle.Battle {
	b := battle.Battle{ID: id, TotalFame: fame, Players: map[string]battle.Participant{}}
	for _, p := range players {
		b.Players[p] = battle.Participant{Name: p}
	}
	return b
}

func TestForGuildNilConfig(t *testing.T) {
	got := ForGuild([]battle.Battle{bt(1, 100, "p1")}, nil)
	if len(got) != 0 {
		t.Fatalf("expected empty result for nil config, got %+v", got)
	}
}

func TestForGuildZeroFameNeverMatches(t *testing.T) {
	cfg := &tracking.Config{Players: []string{"p1"}}
	got := ForGuild([]battle.Battle{bt(1, 0, "p1"), bt(2, -5, "p1")}, cfg)
	if len(got) != 0 {
		t.Fatalf("non-positive fame matched: %+v", got)
	}
}

func TestForGuildEntityKinds(t *testing.T) {
	cfg := &tracking.Config{
		Players:   []string{"p1"},
		Guilds:    []string{"g1"},
		Alliances: []string{"a1"},
	}
	battles := []battle.Battle{
		bt(1, 100, "p1"),
		{ID: 2, TotalFame: 100, Guilds: map[string]battle.Participant{"g1": {}}},
		{ID: 3, TotalFame: 100, Alliances: map[string]battle.Participant{"a1": {}}},
		bt(4, 100, "p2"),
	}
	got := ForGuild(battles, cfg)
	if len(got) != 3 || got[0].ID != 1 || got[1].ID != 2 || got[2].ID != 3 {
		t.Fatalf("unexpected matches: %+v", got)
	}
}

func TestForGuildPreservesOrder(t *testing.T) {
	cfg := &tracking.Config{Players: []string{"p1"}}
	battles := []battle.Battle{bt(10, 1, "p1"), bt(11, 1, "x"), bt(12, 1, "p1")}
	got := ForGuild(battles, cfg)
	if len(got) != 2 || got[0].ID != 10 || got[1].ID != 12 {
		t.Fatalf("order not preserved: %+v", got)
	}
}

func TestFilterDisabled(t *testing.T) {
	f, err := NewFilter("")
	if err != nil {
		t.Fatalf("empty filter: %v", err)
	}
	if !f.Eval(bt(1, 0)) {
		t.Fatalf("disabled filter must match everything")
	}
}

func TestFilterExpression(t *testing.T) {
	f, err := NewFilter("totalFame > 500 && 'p1' in players")
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if !f.Eval(bt(1, 1000, "p1")) {
		t.Fatalf("expected match")
	}
	if f.Eval(bt(2, 100, "p1")) {
		t.Fatalf("fame threshold ignored")
	}
	if f.Eval(bt(3, 1000, "p2")) {
		t.Fatalf("player membership ignored")
	}
}

func TestFilterCompileError(t *testing.T) {
	if _, err := NewFilter("totalFame >"); err == nil {
		t.Fatalf("expected compile error")
	}
}

func TestFilterApplyPreservesOrder(t *testing.T) {
	f, err := NewFilter("totalFame >= 10")
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	got := f.Apply([]battle.Battle{bt(1, 10, "a"), bt(2, 5, "b"), bt(3, 20, "c")})
	if len(got) != 2 || got[0].ID != 1 || got[1].ID != 3 {
		t.Fatalf("unexpected filtered set: %+v", got)
	}
}
