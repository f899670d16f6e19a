package logic

import (
	"slices"
	"sync"

	"combogrip/internal/domain"
)

// MemoryCandidateStore is an in-memory implementation of CandidateStore
type MemoryCandidateStore struct {
	mu         sync.RWMutex
	order      []string
	candidates map[string][]domain.Candidate
}

// NewMemoryCandidateStore creates a new memory-based candidate store
func NewMemoryCandidateStore() *MemoryCandidateStore {
	return &MemoryCandidateStore{
		candidates: make(map[string][]domain.Candidate),
	}
}

// SetOrder fixes the order All concatenates sources in. Sources loaded
// without being listed follow in arrival order.
func (s *MemoryCandidateStore) SetOrder(sources []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	order := slices.Clone(sources)
	for _, src := range s.order {
		if !slices.Contains(order, src) {
			order = append(order, src)
		}
	}
	s.order = order
}

func (s *MemoryCandidateStore) Replace(source string, candidates []domain.Candidate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !slices.Contains(s.order, source) {
		s.order = append(s.order, source)
	}
	s.candidates[source] = slices.Clone(candidates)
}

func (s *MemoryCandidateStore) Remove(source string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.candidates, source)
}

func (s *MemoryCandidateStore) Get(source string) []domain.Candidate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.candidates[source])
}

// All returns a fresh slice with every candidate in source order
func (s *MemoryCandidateStore) All() []domain.Candidate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var all []domain.Candidate
	for _, src := range s.order {
		all = append(all, s.candidates[src]...)
	}
	return all
}

// Sources returns the sources that produced candidates, in order
func (s *MemoryCandidateStore) Sources() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var loaded []string
	for _, src := range s.order {
		if _, ok := s.candidates[src]; ok {
			loaded = append(loaded, src)
		}
	}
	return loaded
}

func (s *MemoryCandidateStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, c := range s.candidates {
		n += len(c)
	}
	return n
}
