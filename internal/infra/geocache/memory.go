package geocache

import (
	"context"
	"sync"
	"time"

	"github.com/yanqian/ai-horoscope/internal/domain/geo"
)

type memoryRecord struct {
	entry     geo.Entry
	expiresAt time.Time
}

// MemoryStore is a process local geocode cache bounded to maxEntries.
type MemoryStore struct {
	mu         sync.RWMutex
	records    map[string]memoryRecord
	maxEntries int
	now        func() time.Time
}

// NewMemoryStore constructs a store backed by process memory.
// A non-positive maxEntries leaves the store unbounded.
func NewMemoryStore(maxEntries int) *MemoryStore {
	return &MemoryStore{
		records:    make(map[string]memoryRecord),
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

// Get implements geo.Cache.
func (s *MemoryStore) Get(_ context.Context, key string) (geo.Entry, bool, error) {
	s.mu.RLock()
	record, ok := s.records[key]
	s.mu.RUnlock()
	if !ok {
		return geo.Entry{}, false, nil
	}
	if hasExpired(record.expiresAt, s.now()) {
		s.mu.Lock()
		delete(s.records, key)
		s.mu.Unlock()
		return geo.Entry{}, false, nil
	}
	return record.entry, true, nil
}

// Put implements geo.Cache. Concurrent writers for one key race; the last write wins.
func (s *MemoryStore) Put(_ context.Context, key string, entry geo.Entry, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	exp := time.Time{}
	if ttl > 0 {
		exp = now.Add(ttl)
	}
	if _, exists := s.records[key]; !exists && s.maxEntries > 0 && len(s.records) >= s.maxEntries {
		s.evictLocked(now)
	}
	s.records[key] = memoryRecord{entry: entry, expiresAt: exp}
	return nil
}

// Len reports the number of stored records, expired ones included.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// evictLocked drops expired records, or the oldest fetched one if none expired.
func (s *MemoryStore) evictLocked(now time.Time) {
	var (
		oldestKey string
		oldest    time.Time
	)
	for key, record := range s.records {
		if hasExpired(record.expiresAt, now) {
			delete(s.records, key)
			continue
		}
		if oldestKey == "" || record.entry.FetchedAt.Before(oldest) {
			oldestKey = key
			oldest = record.entry.FetchedAt
		}
	}
	if len(s.records) >= s.maxEntries && oldestKey != "" {
		delete(s.records, oldestKey)
	}
}

func hasExpired(ts, now time.Time) bool {
	if ts.IsZero() {
		return false
	}
	return !ts.After(now)
}

var _ geo.Cache = (*MemoryStore)(nil)
