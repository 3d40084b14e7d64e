package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/phrazzld/scry-cards/internal/domain"
	"github.com/phrazzld/scry-cards/internal/store"
)

// fakeStore is an in-memory store.CardStore.
type fakeStore struct {
	mu     sync.Mutex
	order  []string
	cards  map[string]domain.Card
	states map[string]domain.ReviewState

	addErr    error
	saveErr   error
	lookupErr error
	dueErr    error
	countErr  error

	addCalls int
}

var _ store.CardStore = (*fakeStore)(nil)

func newFakeStore() *fakeStore {
	return &fakeStore{
		cards:  make(map[string]domain.Card),
		states: make(map[string]domain.ReviewState),
	}
}

func (f *fakeStore) AddCardsBatch(_ context.Context, cards []domain.Card) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.addCalls++
	if f.addErr != nil {
		return f.addErr
	}
	for _, c := range cards {
		if _, ok := f.cards[c.Hash]; ok {
			continue
		}
		f.cards[c.Hash] = c
		f.order = append(f.order, c.Hash)
	}
	return nil
}

func (f *fakeStore) SaveReviewState(_ context.Context, hash string, state domain.ReviewState) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.saveErr != nil {
		return f.saveErr
	}
	if _, ok := f.cards[hash]; !ok {
		return store.ErrCardNotFound
	}
	f.states[hash] = state
	return nil
}

func (f *fakeStore) ReviewStates(_ context.Context, hashes []string) (map[string]domain.ReviewState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	out := make(map[string]domain.ReviewState)
	for _, h := range hashes {
		if _, ok := f.cards[h]; ok {
			out[h] = f.states[h]
		}
	}
	return out, nil
}

func (f *fakeStore) DueCards(_ context.Context, now time.Time, hashes []string) ([]store.CardRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.dueErr != nil {
		return nil, f.dueErr
	}

	wanted := make(map[string]bool, len(hashes))
	for _, h := range hashes {
		wanted[h] = true
	}

	var scheduled, fresh []store.CardRecord
	for _, h := range f.order {
		if !wanted[h] {
			continue
		}
		state := f.states[h]
		if !state.IsDue(now) {
			continue
		}
		rec := store.CardRecord{Card: f.cards[h], State: state}
		if state.DueDate == nil {
			fresh = append(fresh, rec)
		} else {
			scheduled = append(scheduled, rec)
		}
	}
	sort.SliceStable(scheduled, func(i, j int) bool {
		return scheduled[i].State.DueDate.Before(*scheduled[j].State.DueDate)
	})
	return append(scheduled, fresh...), nil
}

func (f *fakeStore) CountCards(context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.countErr != nil {
		return 0, f.countErr
	}
	return int64(len(f.cards)), nil
}

func (f *fakeStore) Close() error { return nil }
