package store

import (
	"errors"
	"sort"
	"sync"
)

// SubscriberStore persists the chat ids that receive broadcasts.
type SubscriberStore struct {
	mu   sync.Mutex
	path string
}

// NewSubscriberStore returns a store backed by the JSON array at path.
func NewSubscriberStore(path string) *SubscriberStore {
	return &SubscriberStore{path: path}
}

// List returns subscribed chat ids in ascending order.
func (s *SubscriberStore) List() ([]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Add subscribes chatID. It reports false when the chat was already subscribed.
func (s *SubscriberStore) Add(chatID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids, err := s.load()
	if err != nil {
		return false, err
	}
	for _, id := range ids {
		if id == chatID {
			return false, nil
		}
	}
	ids = append(ids, chatID)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return true, writeJSON(s.path, ids)
}

// Remove unsubscribes chatID. It reports false when the chat was not subscribed.
func (s *SubscriberStore) Remove(chatID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids, err := s.load()
	if err != nil {
		return false, err
	}
	out := ids[:0]
	removed := false
	for _, id := range ids {
		if id == chatID {
			removed = true
			continue
		}
		out = append(out, id)
	}
	if !removed {
		return false, nil
	}
	return true, writeJSON(s.path, out)
}

func (s *SubscriberStore) load() ([]int64, error) {
	ids := []int64{}
	if err := readJSON(s.path, &ids); err != nil {
		if errors.Is(err, ErrMissing) {
			return []int64{}, nil
		}
		return nil, err
	}
	return ids, nil
}
