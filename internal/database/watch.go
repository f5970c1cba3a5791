package database

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/kchen52/CardSpendTracker/internal/models"
)

const topicCards = "cards"

func topicGoals(cardID int64) string { return fmt.Sprintf("goals/%d", cardID) }
func topicSpend(cardID int64) string { return fmt.Sprintf("spend/%d", cardID) }

// watchHub fans out change notifications per topic. Ticks are
// content-free; watchers re-query the repository on every tick, so a
// subscriber only ever observes complete post-mutation state. Tick
// channels have capacity one and sends never block, so a slow
// subscriber coalesces notifications instead of stalling mutators.
type watchHub struct {
	mu   sync.Mutex
	subs map[string]map[int]chan struct{}
	next int
}

func newWatchHub() *watchHub {
	return &watchHub{subs: make(map[string]map[int]chan struct{})}
}

func (h *watchHub) notify(topics ...string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, topic := range topics {
		for _, ch := range h.subs[topic] {
			select {
			case ch <- struct{}{}:
			default:
			}
		}
	}
}

func (h *watchHub) subscribe(topic string) (<-chan struct{}, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := h.next
	h.next++
	ch := make(chan struct{}, 1)
	if h.subs[topic] == nil {
		h.subs[topic] = make(map[int]chan struct{})
	}
	h.subs[topic][id] = ch
	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.subs[topic], id)
		if len(h.subs[topic]) == 0 {
			delete(h.subs, topic)
		}
	}
	return ch, cancel
}

// WatchCards streams the full card list, newest first: the current list
// on subscribe, then a fresh snapshot after every card mutation. The
// channel closes when ctx is cancelled.
func (r *Repository) WatchCards(ctx context.Context) <-chan []models.Card {
	out := make(chan []models.Card, 1)
	watch(ctx, r.hub, topicCards, out, func() ([]models.Card, error) {
		return r.ListCards()
	})
	return out
}

// WatchGoalsForCard streams the goal list of one card, newest first.
func (r *Repository) WatchGoalsForCard(ctx context.Context, cardID int64) <-chan []models.Goal {
	out := make(chan []models.Goal, 1)
	watch(ctx, r.hub, topicGoals(cardID), out, func() ([]models.Goal, error) {
		return r.ListGoalsForCard(cardID)
	})
	return out
}

// WatchTransactionsForCard streams the transaction list of one card,
// newest date first. Transactions and total spend change together, so
// both watch the same topic.
func (r *Repository) WatchTransactionsForCard(ctx context.Context, cardID int64) <-chan []models.Transaction {
	out := make(chan []models.Transaction, 1)
	watch(ctx, r.hub, topicSpend(cardID), out, func() ([]models.Transaction, error) {
		return r.ListTransactionsForCard(cardID)
	})
	return out
}

// WatchTotalSpend streams the sum of all transaction amounts for one
// card (zero when it has none).
func (r *Repository) WatchTotalSpend(ctx context.Context, cardID int64) <-chan decimal.Decimal {
	out := make(chan decimal.Decimal, 1)
	watch(ctx, r.hub, topicSpend(cardID), out, func() (decimal.Decimal, error) {
		return r.TotalSpend(cardID)
	})
	return out
}

func watch[T any](ctx context.Context, hub *watchHub, topic string, out chan T, query func() (T, error)) {
	ticks, cancel := hub.subscribe(topic)
	go func() {
		defer cancel()
		defer close(out)
		for {
			v, err := query()
			if err != nil {
				log.Printf("watch %s: query failed: %v", topic, err)
			} else {
				select {
				case out <- v:
				case <-ctx.Done():
					return
				}
			}
			select {
			case <-ticks:
			case <-ctx.Done():
				return
			}
		}
	}()
}
