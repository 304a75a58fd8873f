// Package history keeps a small, bounded list of recently scored places so
// loan officers can re-select them quickly. In-memory only; losing it on
// restart is acceptable.
package history

import (
	"fmt"
	"sync"
	"time"
)

// Entry is one remembered place.
type Entry struct {
	Place   string    `json:"place"`
	Lat     float64   `json:"lat"`
	Lon     float64   `json:"lon"`
	SavedAt time.Time `json:"saved_at"`
}

// Store is a thread-safe most-recent-first place list, de-duplicated by
// coordinates (rounded to 4 decimals, ~11m) and capped at maxEntries.
type Store struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[string]*node
	head       *node // most recently used
	tail       *node // least recently used
}

type node struct {
	key   string
	value Entry
	prev  *node
	next  *node
}

// NewStore creates a place history capped at maxEntries.
func NewStore(maxEntries int) *Store {
	return &Store{
		maxEntries: maxEntries,
		entries:    make(map[string]*node),
	}
}

// Add records a place, replacing any earlier entry at the same coordinates
// and evicting the oldest entry once the cap is exceeded.
func (s *Store) Add(place string, lat, lon float64) {
	key := fmt.Sprintf("%.4f,%.4f", lat, lon)
	value := Entry{Place: place, Lat: lat, Lon: lon, SavedAt: time.Now().UTC()}

	s.mu.Lock()
	defer s.mu.Unlock()

	if n, ok := s.entries[key]; ok {
		n.value = value
		s.moveToFront(n)
		return
	}

	n := &node{key: key, value: value}
	s.entries[key] = n
	s.addToFront(n)

	if len(s.entries) > s.maxEntries {
		s.evictTail()
	}
}

// Recent returns all entries, most recent first.
func (s *Store) Recent() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Entry, 0, len(s.entries))
	for n := s.head; n != nil; n = n.next {
		out = append(out, n.value)
	}
	return out
}

// Len returns the number of remembered places.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Clear forgets everything.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = make(map[string]*node)
	s.head = nil
	s.tail = nil
}

func (s *Store) moveToFront(n *node) {
	if n == s.head {
		return
	}
	s.remove(n)
	s.addToFront(n)
}

func (s *Store) addToFront(n *node) {
	n.next = s.head
	n.prev = nil
	if s.head != nil {
		s.head.prev = n
	}
	s.head = n
	if s.tail == nil {
		s.tail = n
	}
}

func (s *Store) remove(n *node) {
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		s.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		s.tail = n.prev
	}
}

func (s *Store) evictTail() {
	if s.tail == nil {
		return
	}
	delete(s.entries, s.tail.key)
	s.remove(s.tail)
}
