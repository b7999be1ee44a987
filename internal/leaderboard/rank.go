package leaderboard

import "sort"

// Historical page sizes for the two leaderboard views.
const (
	DefaultGlobalLimit = 100
	DefaultPlaceLimit  = 50
)

// Rank filters records, orders them by score descending with most recent
// submission winning ties, and annotates 1-based ranks. A limit of 0 means
// no truncation. The sort is stable, so repeated calls over the same input
// produce the same sequence even for exact (score, submittedAt) duplicates.
func Rank(records []Record, f Filter, limit int) []Ranked {
	filtered := make([]Record, 0, len(records))
	for _, r := range records {
		if f.Matches(r) {
			filtered = append(filtered, r)
		}
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		if filtered[i].Score != filtered[j].Score {
			return filtered[i].Score > filtered[j].Score
		}
		return filtered[i].SubmittedAt.After(filtered[j].SubmittedAt)
	})

	if limit > 0 && len(filtered) > limit {
		filtered = filtered[:limit]
	}

	ranked := make([]Ranked, len(filtered))
	for i, r := range filtered {
		ranked[i] = Ranked{Record: r, Rank: i + 1}
	}
	return ranked
}

// BestFor returns the highest-ranked record for a player within the filtered
// view, with its rank relative to that whole view. The second return value is
// false when the player has no matching record.
func BestFor(records []Record, playerID string, f Filter) (Ranked, bool) {
	for _, entry := range Rank(records, f, 0) {
		if entry.PlayerID == playerID {
			return entry, true
		}
	}
	return Ranked{}, false
}
