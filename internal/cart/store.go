// Package cart holds the shopper's cart: line items keyed by product and size,
// with derived totals and optional persistence.
package cart

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/Fashion-Store/Aradaa/internal/logger"
)

const persistTimeout = 3 * time.Second

// Item is one cart line. Price is in minor currency units.
type Item struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Image     string `json:"image"`
	Size      string `json:"size"`
	Quantity  int    `json:"quantity"`
}

// Subtotal is price × quantity.
func (i Item) Subtotal() int64 {
	return i.Price * int64(i.Quantity)
}

// Persister saves and restores the full item list under a key.
type Persister interface {
	Load(ctx context.Context, key string) ([]Item, error)
	Save(ctx context.Context, key string, items []Item) error
}

// Store is the cart state. Operations never fail: unknown keys are ignored and
// persistence problems are logged. Saves happen in mutation order, so the
// persisted cart always matches the latest in-memory state.
type Store struct {
	mu    sync.RWMutex
	items []Item

	// saveMu is held from mutation through Save.
	saveMu    sync.Mutex
	persister Persister
	key       string
	logger    *slog.Logger
}

// New returns an empty in-memory cart.
func New() *Store {
	return &Store{logger: logger.Discard()}
}

// Open returns a cart backed by p under key, preloaded with whatever p has saved.
// A load failure is logged and yields an empty cart.
func Open(ctx context.Context, p Persister, key string, log *slog.Logger) *Store {
	if log == nil {
		log = logger.Discard()
	}
	s := &Store{persister: p, key: key, logger: log}

	items, err := p.Load(ctx, key)
	if err != nil {
		log.Warn("cart load failed, starting empty", slog.String("key", key), slog.Any("err", err))
		return s
	}
	for _, it := range items {
		if it.Quantity >= 1 && s.indexOf(it.ProductID, it.Size) < 0 {
			s.items = append(s.items, it)
		}
	}
	return s
}

// Add merges item into the cart. An existing (productId, size) line grows by the
// added amount; otherwise a new line is appended. The added amount is 1 for a
// plain add (Quantity 0), which is what the product page sends; a Quantity of
// 1 or more adds that many at once, so a new line starts at item.Quantity
// rather than always at 1.
func (s *Store) Add(item Item) {
	qty := item.Quantity
	if qty < 1 {
		qty = 1
	}

	s.mutate(func() bool {
		if i := s.indexOf(item.ProductID, item.Size); i >= 0 {
			s.items[i].Quantity += qty
			return true
		}
		item.Quantity = qty
		s.items = append(s.items, item)
		return true
	})
}

// Remove drops the (productID, size) line if present.
func (s *Store) Remove(productID, size string) {
	s.mutate(func() bool {
		i := s.indexOf(productID, size)
		if i < 0 {
			return false
		}
		s.items = append(s.items[:i], s.items[i+1:]...)
		return true
	})
}

// UpdateQuantity sets the quantity of a line. Quantities below 1 remove the line.
func (s *Store) UpdateQuantity(productID, size string, quantity int) {
	if quantity < 1 {
		s.Remove(productID, size)
		return
	}

	s.mutate(func() bool {
		i := s.indexOf(productID, size)
		if i < 0 {
			return false
		}
		s.items[i].Quantity = quantity
		return true
	})
}

// Clear empties the cart.
func (s *Store) Clear() {
	s.mutate(func() bool {
		s.items = nil
		return true
	})
}

// mutate applies fn under the state lock and saves the result when fn reports
// a change. Readers only wait for fn, not for the save.
func (s *Store) mutate(fn func() bool) {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	s.mu.Lock()
	changed := fn()
	snapshot := s.snapshot()
	s.mu.Unlock()

	if changed {
		s.persist(snapshot)
	}
}

// Items returns a copy of the lines in insertion order.
func (s *Store) Items() []Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot()
}

// Len is the number of distinct lines.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// TotalItems is the sum of quantities.
func (s *Store) TotalItems() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := 0
	for _, it := range s.items {
		total += it.Quantity
	}
	return total
}

// TotalPrice is the sum of price × quantity.
func (s *Store) TotalPrice() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var total int64
	for _, it := range s.items {
		total += it.Subtotal()
	}
	return total
}

func (s *Store) indexOf(productID, size string) int {
	for i, it := range s.items {
		if it.ProductID == productID && it.Size == size {
			return i
		}
	}
	return -1
}

func (s *Store) snapshot() []Item {
	if len(s.items) == 0 {
		return nil
	}
	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store) persist(items []Item) {
	if s.persister == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	if err := s.persister.Save(ctx, s.key, items); err != nil {
		s.logger.Warn("cart save failed", slog.String("key", s.key), slog.Any("err", err))
	}
}
