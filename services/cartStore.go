package services

import (
	"crypto/rand"
	"encoding/hex"
	"sync"
)

// CartStore keeps one cart per ordering session, keyed by an opaque
// session id handed to the client on first use. Each session owns its
// cart exclusively; the store only guards the map itself.
type CartStore struct {
	mu    sync.Mutex
	carts map[string]*Cart
}

func NewCartStore() *CartStore {
	return &CartStore{carts: make(map[string]*Cart)}
}

// NewSession creates an empty cart and returns its session id.
func (s *CartStore) NewSession() (string, *Cart) {
	buf := make([]byte, 16)
	rand.Read(buf)
	id := hex.EncodeToString(buf)

	cart := NewCart()
	s.mu.Lock()
	s.carts[id] = cart
	s.mu.Unlock()
	return id, cart
}

// Get returns the cart for a session id, or nil when the session is
// unknown or already discarded.
func (s *CartStore) Get(sessionID string) *Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.carts[sessionID]
}

// Discard drops a session's cart, typically after its order was
// submitted.
func (s *CartStore) Discard(sessionID string) {
	s.mu.Lock()
	delete(s.carts, sessionID)
	s.mu.Unlock()
}
