// Package aggregate recombines the live card, goal and total-spend
// streams into denormalized per-card summaries.
package aggregate

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kchen52/CardSpendTracker/internal/database"
	"github.com/kchen52/CardSpendTracker/internal/models"
	"github.com/kchen52/CardSpendTracker/internal/progress"
)

// Pipeline subscribes to the repository's change streams and publishes
// a full []CardSummary snapshot whenever any input changes. All state
// is owned by the Run goroutine; per-card watchers only forward events
// into it, so a snapshot never mixes old goals with new spend.
type Pipeline struct {
	repo *database.Repository
	now  func() time.Time

	mu     sync.Mutex
	latest []models.CardSummary
	subs   map[int]chan []models.CardSummary
	nextID int
}

func New(repo *database.Repository) *Pipeline {
	return &Pipeline{
		repo:   repo,
		now:    time.Now,
		latest: []models.CardSummary{},
		subs:   make(map[int]chan []models.CardSummary),
	}
}

type cardState struct {
	spend  decimal.Decimal
	goals  []models.Goal
	cancel context.CancelFunc
}

type inputEvent struct {
	cardID   int64
	spend    *decimal.Decimal
	goals    []models.Goal
	hasGoals bool
}

// Run drives the pipeline until ctx is cancelled. Whenever the card
// list changes, per-card watchers are rebuilt to match exactly the
// current card set; summaries follow the card list's order.
func (p *Pipeline) Run(ctx context.Context) {
	cardsCh := p.repo.WatchCards(ctx)
	events := make(chan inputEvent, 64)

	var order []models.Card
	states := make(map[int64]*cardState)
	defer func() {
		for _, st := range states {
			st.cancel()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case cards, ok := <-cardsCh:
			if !ok {
				return
			}
			order = cards
			seen := make(map[int64]bool, len(cards))
			for _, c := range cards {
				seen[c.ID] = true
				if _, exists := states[c.ID]; !exists {
					cctx, cancel := context.WithCancel(ctx)
					st := &cardState{cancel: cancel}
					st.spend, st.goals = p.loadCardState(c.ID)
					states[c.ID] = st
					go p.watchCard(cctx, c.ID, events)
				}
			}
			for id, st := range states {
				if !seen[id] {
					st.cancel()
					delete(states, id)
				}
			}
			p.publish(order, states)
		case ev := <-events:
			st, exists := states[ev.cardID]
			if !exists {
				// stale event from a removed card's watcher
				continue
			}
			if ev.spend != nil {
				st.spend = *ev.spend
			}
			if ev.hasGoals {
				st.goals = ev.goals
			}
			p.publish(order, states)
		}
	}
}

// loadCardState reads a card's current spend and goals synchronously
// so a newly tracked card never appears in a snapshot with placeholder
// values before its watcher delivers. The watcher's own initial
// emission then just republishes the same state.
func (p *Pipeline) loadCardState(cardID int64) (decimal.Decimal, []models.Goal) {
	spend, err := p.repo.TotalSpend(cardID)
	if err != nil {
		log.Printf("pipeline: failed to read spend for card %d: %v", cardID, err)
		spend = decimal.Zero
	}
	goals, err := p.repo.ListGoalsForCard(cardID)
	if err != nil {
		log.Printf("pipeline: failed to read goals for card %d: %v", cardID, err)
		goals = []models.Goal{}
	}
	return spend, goals
}

func (p *Pipeline) watchCard(ctx context.Context, cardID int64, events chan<- inputEvent) {
	spendCh := p.repo.WatchTotalSpend(ctx, cardID)
	goalsCh := p.repo.WatchGoalsForCard(ctx, cardID)
	for {
		var ev inputEvent
		select {
		case <-ctx.Done():
			return
		case spend, ok := <-spendCh:
			if !ok {
				return
			}
			ev = inputEvent{cardID: cardID, spend: &spend}
		case goals, ok := <-goalsCh:
			if !ok {
				return
			}
			ev = inputEvent{cardID: cardID, goals: goals, hasGoals: true}
		}
		select {
		case events <- ev:
		case <-ctx.Done():
			return
		}
	}
}

// publish rebuilds the whole summary list and replaces the previous
// snapshot. Subscribers with an unread snapshot get it swapped for the
// newer one rather than blocking the pipeline.
func (p *Pipeline) publish(order []models.Card, states map[int64]*cardState) {
	now := p.now()
	summaries := make([]models.CardSummary, 0, len(order))
	for _, card := range order {
		st := states[card.ID]
		if st == nil {
			continue
		}
		goals := make([]models.GoalProgress, 0, len(st.goals))
		for _, g := range st.goals {
			goals = append(goals, progress.ComputeGoalProgress(g, st.spend, now))
		}
		summaries = append(summaries, models.CardSummary{
			Card:       card,
			TotalSpend: st.spend,
			Goals:      goals,
		})
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.latest = summaries
	for _, ch := range p.subs {
		select {
		case ch <- summaries:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- summaries:
			default:
			}
		}
	}
}

// Subscribe returns a channel that delivers the current snapshot
// immediately and every replacement snapshot after it, until ctx is
// cancelled.
func (p *Pipeline) Subscribe(ctx context.Context) <-chan []models.CardSummary {
	ch := make(chan []models.CardSummary, 1)
	p.mu.Lock()
	id := p.nextID
	p.nextID++
	p.subs[id] = ch
	ch <- p.latest
	p.mu.Unlock()

	go func() {
		<-ctx.Done()
		p.mu.Lock()
		delete(p.subs, id)
		close(ch)
		p.mu.Unlock()
	}()
	return ch
}

// Latest returns the most recently published snapshot.
func (p *Pipeline) Latest() []models.CardSummary {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.latest
}
