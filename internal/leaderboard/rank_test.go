package leaderboard

import (
	"testing"
	"time"
)

func rec(id, player string, score int, mode Mode, place string, at time.Time) Record {
	return Record{
		ID:          id,
		PlayerID:    player,
		DisplayName: player,
		Score:       score,
		Mode:        mode,
		Place:       place,
		SubmittedAt: at,
	}
}

func TestRankOrdersByScoreThenRecency(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	records := []Record{
		rec("a", "p1", 700, ModeCity, "Addis Ababa", base),
		rec("b", "p2", 900, ModeCity, "Addis Ababa", base.Add(time.Minute)),
		rec("c", "p3", 900, ModeCity, "Addis Ababa", base.Add(2*time.Minute)),
		rec("d", "p4", 850, ModeCity, "Gondar", base),
	}

	ranked := Rank(records, Filter{}, 0)
	if len(ranked) != 4 {
		t.Fatalf("len = %d, want 4", len(ranked))
	}

	// Equal scores: most recent submission wins the tie.
	wantOrder := []string{"c", "b", "d", "a"}
	for i, want := range wantOrder {
		if ranked[i].ID != want {
			t.Errorf("position %d = %s, want %s", i, ranked[i].ID, want)
		}
		if ranked[i].Rank != i+1 {
			t.Errorf("rank at position %d = %d, want %d", i, ranked[i].Rank, i+1)
		}
	}
}

func TestRankCityFilter(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	records := []Record{
		rec("a", "p1", 900, ModeCity, "Addis Ababa", base),
		rec("b", "p2", 700, ModeCity, "Addis Ababa", base.Add(time.Minute)),
		rec("c", "p3", 850, ModeCity, "Gondar", base),
	}

	ranked := Rank(records, Filter{Place: "Addis Ababa"}, 0)
	if len(ranked) != 2 {
		t.Fatalf("len = %d, want 2", len(ranked))
	}
	if ranked[0].Score != 900 || ranked[0].Rank != 1 {
		t.Errorf("first entry = score %d rank %d, want 900 rank 1", ranked[0].Score, ranked[0].Rank)
	}
	if ranked[1].Score != 700 || ranked[1].Rank != 2 {
		t.Errorf("second entry = score %d rank %d, want 700 rank 2", ranked[1].Score, ranked[1].Rank)
	}
}

func TestRankModeFilterAndLimit(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	var records []Record
	for i := 0; i < 10; i++ {
		mode := ModeRandom
		if i%2 == 0 {
			mode = ModeCity
		}
		records = append(records, rec(string(rune('a'+i)), "p", 100*i, mode, "Harar", base.Add(time.Duration(i)*time.Second)))
	}

	ranked := Rank(records, Filter{Mode: ModeRandom}, 3)
	if len(ranked) != 3 {
		t.Fatalf("len = %d, want 3", len(ranked))
	}
	for i, entry := range ranked {
		if entry.Mode != ModeRandom {
			t.Errorf("entry %d has mode %s", i, entry.Mode)
		}
		if entry.Rank != i+1 {
			t.Errorf("entry %d rank = %d, want %d", i, entry.Rank, i+1)
		}
	}
	if ranked[0].Score != 900 {
		t.Errorf("top score = %d, want 900", ranked[0].Score)
	}
}

func TestRankLimitBeyondCount(t *testing.T) {
	records := []Record{
		rec("a", "p1", 10, ModeRandom, "Sodo", time.Now()),
	}
	if got := len(Rank(records, Filter{}, 100)); got != 1 {
		t.Errorf("len = %d, want 1", got)
	}
	if got := len(Rank(nil, Filter{}, 100)); got != 0 {
		t.Errorf("len of empty input = %d, want 0", got)
	}
}

func TestRankStable(t *testing.T) {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	records := []Record{
		rec("first", "p1", 500, ModeRandom, "Jimma", at),
		rec("second", "p2", 500, ModeRandom, "Jimma", at),
	}

	for i := 0; i < 5; i++ {
		ranked := Rank(records, Filter{}, 0)
		if ranked[0].ID != "first" || ranked[1].ID != "second" {
			t.Fatalf("iteration %d: exact duplicates reordered: %s, %s", i, ranked[0].ID, ranked[1].ID)
		}
	}
}

func TestBestFor(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	records := []Record{
		rec("a", "p1", 900, ModeCity, "Addis Ababa", base),
		rec("b", "p2", 950, ModeCity, "Addis Ababa", base),
		rec("c", "p1", 400, ModeRandom, "Gondar", base),
	}

	best, ok := BestFor(records, "p1", Filter{})
	if !ok {
		t.Fatal("BestFor(p1) not found")
	}
	if best.Score != 900 || best.Rank != 2 {
		t.Errorf("best = score %d rank %d, want score 900 rank 2", best.Score, best.Rank)
	}

	if _, ok := BestFor(records, "p1", Filter{Place: "Harar"}); ok {
		t.Error("BestFor with non-matching filter should report absent")
	}
	if _, ok := BestFor(records, "ghost", Filter{}); ok {
		t.Error("BestFor for unknown player should report absent")
	}
}
