package leaderboard

import (
	"context"
	"log"
	"time"
)

// Sweeper periodically removes superseded duplicate records so that after
// each pass every (player, mode) pair holds exactly one row: its maximum
// score, ties broken by latest submission. It only ever deletes dominated
// records, so running concurrently with submissions is safe.
type Sweeper struct {
	store    Store
	stopChan chan struct{}
	ticker   *time.Ticker
	interval time.Duration
}

func NewSweeper(store Store, interval time.Duration) *Sweeper {
	return &Sweeper{
		store:    store,
		stopChan: make(chan struct{}),
		interval: interval,
	}
}

func (w *Sweeper) Start() {
	if w == nil {
		return
	}
	w.ticker = time.NewTicker(w.interval)
	go w.loop()
}

func (w *Sweeper) Stop() {
	if w == nil {
		return
	}
	close(w.stopChan)
	if w.ticker != nil {
		w.ticker.Stop()
	}
}

func (w *Sweeper) loop() {
	ctx := context.Background()
	for {
		select {
		case <-w.ticker.C:
			w.tick(ctx)
		case <-w.stopChan:
			return
		}
	}
}

func (w *Sweeper) tick(ctx context.Context) {
	removed, err := w.Sweep(ctx)
	if err != nil {
		log.Printf("sweep: failed to prune superseded scores: %v", err)
		return
	}
	if removed > 0 {
		log.Printf("sweep: pruned %d superseded scores", removed)
	}
}

// Sweep performs one dedup pass and reports how many records were removed.
func (w *Sweeper) Sweep(ctx context.Context) (int, error) {
	records, err := w.store.Query(ctx, Filter{}, 0)
	if err != nil {
		return 0, err
	}

	type pairKey struct {
		player string
		mode   Mode
	}
	best := make(map[pairKey]Record)
	var doomed []string

	for _, r := range records {
		k := pairKey{player: r.PlayerID, mode: r.Mode}
		b, seen := best[k]
		if !seen {
			best[k] = r
			continue
		}
		if r.Score > b.Score || (r.Score == b.Score && r.SubmittedAt.After(b.SubmittedAt)) {
			doomed = append(doomed, b.ID)
			best[k] = r
		} else {
			doomed = append(doomed, r.ID)
		}
	}

	if len(doomed) == 0 {
		return 0, nil
	}
	if err := w.store.DeleteMany(ctx, doomed); err != nil {
		return 0, err
	}
	return len(doomed), nil
}
