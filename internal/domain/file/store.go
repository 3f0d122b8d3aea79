package file

import (
	"context"
	"iter"
	"slices"
	"sync"
)

// Store is the keyed storage of file records. It enforces id uniqueness and
// nothing else; validation belongs to Service.
type Store interface {
	Put(ctx context.Context, rec *FileRecord) error
	Get(ctx context.Context, id string) (*FileRecord, error)
	Delete(ctx context.Context, id string) (bool, error)
	// All yields records in insertion order. Every call starts a fresh pass.
	All(ctx context.Context) iter.Seq2[FileRecord, error]
}

// memoryStore keeps records in process memory. Used when DATABASE_URL=memory
// and in tests.
type memoryStore struct {
	mu      sync.RWMutex
	nextSeq int64
	order   []FileRecord
	byID    map[string]int64 // id -> seq
}

func NewMemoryStore() Store {
	return &memoryStore{byID: make(map[string]int64)}
}

func (s *memoryStore) Put(_ context.Context, rec *FileRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[rec.ID]; ok {
		return ErrDuplicateID
	}
	s.nextSeq++
	rec.Seq = s.nextSeq
	s.order = append(s.order, *rec)
	s.byID[rec.ID] = rec.Seq
	return nil
}

func (s *memoryStore) Get(_ context.Context, id string) (*FileRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.indexOf(id)
	if !ok {
		return nil, ErrNotFound
	}
	rec := s.order[i]
	return &rec, nil
}

func (s *memoryStore) Delete(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.indexOf(id)
	if !ok {
		return false, nil
	}
	s.order = slices.Delete(s.order, i, i+1)
	delete(s.byID, id)
	return true, nil
}

func (s *memoryStore) All(ctx context.Context) iter.Seq2[FileRecord, error] {
	return func(yield func(FileRecord, error) bool) {
		s.mu.RLock()
		snapshot := slices.Clone(s.order)
		s.mu.RUnlock()

		for _, rec := range snapshot {
			if err := ctx.Err(); err != nil {
				yield(FileRecord{}, err)
				return
			}
			if !yield(rec, nil) {
				return
			}
		}
	}
}

// indexOf must be called with s.mu held.
func (s *memoryStore) indexOf(id string) (int, bool) {
	seq, ok := s.byID[id]
	if !ok {
		return 0, false
	}
	// order is sorted by seq
	return slices.BinarySearchFunc(s.order, seq, func(r FileRecord, target int64) int {
		switch {
		case r.Seq < target:
			return -1
		case r.Seq > target:
			return 1
		}
		return 0
	})
}
