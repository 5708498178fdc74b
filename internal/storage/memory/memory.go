package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"myexpense/internal/core"
)

// Store keeps transactions in process memory. Writers replace the committed
// slice instead of mutating it, so a slice returned by All stays valid and
// unchanged for as long as the caller holds it.
type Store struct {
	mu    sync.RWMutex
	items []core.Transaction // newest first
	ids   map[string]bool    // every id ever appended; false once deleted
}

func New(seed ...core.Transaction) (*Store, error) {
	s := &Store{ids: map[string]bool{}}
	for _, t := range seed {
		if err := s.Append(context.Background(), t); err != nil {
			return nil, fmt.Errorf("seed transaction %s: %w", t.ID, err)
		}
	}
	return s, nil
}

// Append stores the transaction keeping the list ordered by date, newest
// first. Among equal dates the latest insert comes first.
func (s *Store) Append(_ context.Context, t core.Transaction) error {
	if err := t.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.ids[t.ID]; ok {
		return fmt.Errorf("append %s: %w", t.ID, core.ErrDuplicateID)
	}
	pos := sort.Search(len(s.items), func(i int) bool {
		return !s.items[i].Date.After(t.Date)
	})
	next := make([]core.Transaction, 0, len(s.items)+1)
	next = append(next, s.items[:pos]...)
	next = append(next, t)
	next = append(next, s.items[pos:]...)
	s.items = next
	s.ids[t.ID] = true
	return nil
}

// Delete removes the transaction with the given id, reporting whether it
// existed. The id stays reserved and cannot be appended again.
func (s *Store) Delete(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ids[id] {
		return false, nil
	}
	next := make([]core.Transaction, 0, len(s.items)-1)
	for _, t := range s.items {
		if t.ID != id {
			next = append(next, t)
		}
	}
	s.items = next
	s.ids[id] = false
	return true, nil
}

// All returns the committed snapshot. Callers must not modify it.
func (s *Store) All(_ context.Context) ([]core.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.items, nil
}

// Len returns the number of stored transactions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
