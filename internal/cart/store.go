package cart

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"karesave-backend/internal/catalog"
	"karesave-backend/pkg/money"
)

// Lookup resolves product IDs. *catalog.Catalog satisfies it.
type Lookup interface {
	ProductByID(id string) (catalog.Product, bool)
}

const defaultSaveTimeout = 3 * time.Second

// Store is the cart of one browsing session. All mutations go through a
// single locked path, so concurrent requests on one session never lose
// updates. Lines keep insertion order and there is at most one per product.
type Store struct {
	lookup  Lookup
	pricing Pricing
	logger  *zap.Logger

	mu      sync.Mutex
	lines   []Line
	version uint64

	subMu   sync.Mutex
	subs    map[int]func(Snapshot)
	nextSub int

	pubMu     sync.Mutex
	published uint64

	side        SideStore
	sideKey     string
	saveTimeout time.Duration
	flushMu     sync.Mutex
	pending     *PersistedState
	handedOff   uint64
	flushing    bool
	flushDone   chan struct{}
}

type Option func(*Store)

// WithSideStore mirrors the cart under key after every change.
func WithSideStore(side SideStore, key string) Option {
	return func(s *Store) {
		s.side = side
		s.sideKey = key
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

func WithSaveTimeout(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.saveTimeout = d
		}
	}
}

func NewStore(lookup Lookup, pricing Pricing, opts ...Option) *Store {
	s := &Store{
		lookup:      lookup,
		pricing:     pricing,
		logger:      zap.NewNop(),
		subs:        make(map[int]func(Snapshot)),
		saveTimeout: defaultSaveTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddItem adds quantity units of product, merging into an existing line.
// The combined quantity is clamped to stock, reported through Change.Notice.
func (s *Store) AddItem(product catalog.Product, quantity int) (Change, error) {
	if quantity < 1 {
		return Change{}, ErrInvalidQuantity
	}
	// Stock is taken from the catalog, not from the caller's copy.
	p, ok := s.lookup.ProductByID(product.ID)
	if !ok {
		return Change{}, fmt.Errorf("%w: %s", ErrUnknownProduct, product.ID)
	}
	if p.Stock <= 0 {
		return Change{}, fmt.Errorf("%w: %s", ErrOutOfStock, p.ID)
	}

	var change Change
	s.mutate(func(lines []Line) []Line {
		requested := quantity
		idx := indexOf(lines, p.ID)
		if idx >= 0 {
			requested += lines[idx].Quantity
		}
		qty := requested
		if qty > p.Stock {
			qty = p.Stock
			change.Clamped = true
			change.Notice = ErrQuantityClamped
		}
		change.Line = Line{ProductID: p.ID, Quantity: qty}
		if idx >= 0 {
			lines[idx].Quantity = qty
			return lines
		}
		return append(lines, change.Line)
	})
	return change, nil
}

// UpdateQuantity sets the quantity of an existing line, clamped to
// [1, stock]. A quantity <= 0 removes the line. A product that is not in
// the cart fails with ErrNotFound and changes nothing.
func (s *Store) UpdateQuantity(productID string, quantity int) (Change, error) {
	var change Change
	var err error
	s.mutate(func(lines []Line) []Line {
		idx := indexOf(lines, productID)
		if idx < 0 {
			err = fmt.Errorf("%w: %s", ErrNotFound, productID)
			return lines
		}
		if quantity <= 0 {
			change = Change{Line: Line{ProductID: productID}, Removed: true}
			return append(lines[:idx], lines[idx+1:]...)
		}
		stock := 0
		if p, ok := s.lookup.ProductByID(productID); ok {
			stock = p.Stock
		}
		qty := quantity
		if qty > stock {
			qty = stock
			change.Clamped = true
			change.Notice = ErrQuantityClamped
		}
		if qty < 1 {
			// Stock ran out since the line was added.
			change = Change{Line: Line{ProductID: productID}, Removed: true, Clamped: true, Notice: ErrQuantityClamped}
			return append(lines[:idx], lines[idx+1:]...)
		}
		lines[idx].Quantity = qty
		change.Line = lines[idx]
		return lines
	})
	return change, err
}

// RemoveItem drops the line for productID. It reports whether a line was
// removed; removing an absent product is a no-op.
func (s *Store) RemoveItem(productID string) bool {
	removed := false
	s.mutate(func(lines []Line) []Line {
		idx := indexOf(lines, productID)
		if idx < 0 {
			return lines
		}
		removed = true
		return append(lines[:idx], lines[idx+1:]...)
	})
	return removed
}

// Clear empties the cart.
func (s *Store) Clear() {
	s.mutate(func(lines []Line) []Line {
		return lines[:0]
	})
}

// Deduct takes ordered quantities out of the cart. Whatever was added after
// the order's snapshot stays, so with no concurrent change it empties the
// cart like Clear.
func (s *Store) Deduct(ordered []Line) {
	s.mutate(func(lines []Line) []Line {
		out := lines[:0]
		for _, l := range lines {
			for _, o := range ordered {
				if o.ProductID == l.ProductID {
					l.Quantity -= o.Quantity
					break
				}
			}
			if l.Quantity > 0 {
				out = append(out, l)
			}
		}
		return out
	})
}

// mutate applies fn to a private copy of the lines under the store lock.
// Only a changed result is committed, published and persisted.
func (s *Store) mutate(fn func(lines []Line) []Line) {
	s.mu.Lock()
	next := fn(append([]Line(nil), s.lines...))
	if equalLines(s.lines, next) {
		s.mu.Unlock()
		return
	}
	s.lines = next
	s.version++
	snap := buildSnapshot(s.version, s.lines, s.lookup, s.pricing)
	state := PersistedState{Lines: append([]Line(nil), s.lines...), Version: s.version, SavedAt: time.Now().UTC()}
	s.mu.Unlock()

	s.publish(snap)
	s.persist(state)
}

// Lines returns a copy of the lines in insertion order.
func (s *Store) Lines() []Line {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Line(nil), s.lines...)
}

func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return buildSnapshot(s.version, s.lines, s.lookup, s.pricing)
}

func (s *Store) Version() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

func (s *Store) TotalItemCount() int {
	return s.Snapshot().ItemCount
}

func (s *Store) Subtotal() money.Money {
	return s.Snapshot().Subtotal
}

func (s *Store) TotalSavings() money.Money {
	return s.Snapshot().Savings
}

func (s *Store) DeliveryFee() money.Money {
	return s.Snapshot().DeliveryFee
}

func (s *Store) GrandTotal() money.Money {
	return s.Snapshot().GrandTotal
}

func (s *Store) Pricing() Pricing {
	return s.pricing
}

// Subscribe registers fn for every committed change. Snapshots arrive in
// version order; fn runs on the mutating goroutine and must not call back
// into the store's mutations.
func (s *Store) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.subMu.Lock()
			delete(s.subs, id)
			s.subMu.Unlock()
		})
	}
}

// Subscribers reports how many subscriptions are open.
func (s *Store) Subscribers() int {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	return len(s.subs)
}

func (s *Store) publish(snap Snapshot) {
	s.pubMu.Lock()
	defer s.pubMu.Unlock()
	if snap.Version <= s.published {
		return
	}
	s.published = snap.Version

	s.subMu.Lock()
	subs := make([]func(Snapshot), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.subMu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}
}

// persist hands state to the background flusher. Only the newest pending
// state is kept. Mutations race to get here after releasing s.mu, so a
// state no newer than the last one handed off is dropped.
func (s *Store) persist(state PersistedState) {
	if s.side == nil {
		return
	}
	s.flushMu.Lock()
	defer s.flushMu.Unlock()
	if state.Version <= s.handedOff {
		return
	}
	s.handedOff = state.Version
	s.pending = &state
	if s.flushing {
		return
	}
	s.flushing = true
	s.flushDone = make(chan struct{})
	go s.flushLoop(s.flushDone)
}

func (s *Store) flushLoop(done chan struct{}) {
	defer close(done)
	for {
		s.flushMu.Lock()
		state := s.pending
		s.pending = nil
		if state == nil {
			s.flushing = false
			s.flushMu.Unlock()
			return
		}
		s.flushMu.Unlock()

		ctx, cancel := context.WithTimeout(context.Background(), s.saveTimeout)
		if err := s.side.Save(ctx, s.sideKey, *state); err != nil {
			s.logger.Warn("cart mirror write failed",
				zap.String("key", s.sideKey),
				zap.Uint64("version", state.Version),
				zap.Error(fmt.Errorf("%w: %v", ErrPersistenceWriteFailed, err)),
			)
		}
		cancel()
	}
}

// Flush waits until pending mirror writes have been attempted.
func (s *Store) Flush(ctx context.Context) error {
	s.flushMu.Lock()
	done := s.flushDone
	flushing := s.flushing
	s.flushMu.Unlock()
	if !flushing {
		return nil
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Restore loads the mirrored cart. Lines for unknown or sold out products
// are dropped and quantities are clamped to current stock. A missing or
// unreadable mirror leaves the cart empty.
func (s *Store) Restore(ctx context.Context) error {
	if s.side == nil {
		return nil
	}
	state, found, err := s.side.Load(ctx, s.sideKey)
	if err != nil {
		s.logger.Warn("cart mirror read failed", zap.String("key", s.sideKey), zap.Error(err))
		return err
	}
	if !found {
		return nil
	}

	restored := make([]Line, 0, len(state.Lines))
	adjusted := false
	for _, l := range state.Lines {
		p, ok := s.lookup.ProductByID(l.ProductID)
		if !ok || p.Stock <= 0 || l.Quantity <= 0 || indexOf(restored, l.ProductID) >= 0 {
			adjusted = true
			continue
		}
		qty := l.Quantity
		if qty > p.Stock {
			qty = p.Stock
			adjusted = true
		}
		restored = append(restored, Line{ProductID: l.ProductID, Quantity: qty})
	}

	s.mu.Lock()
	if len(s.lines) > 0 || s.version > 0 {
		// The session already mutated the cart; the live state wins.
		s.mu.Unlock()
		return nil
	}
	s.lines = restored
	s.version++
	snap := buildSnapshot(s.version, s.lines, s.lookup, s.pricing)
	fixed := PersistedState{Lines: append([]Line(nil), s.lines...), Version: s.version, SavedAt: time.Now().UTC()}
	s.mu.Unlock()

	s.publish(snap)
	if adjusted {
		s.persist(fixed)
	}
	return nil
}

// IsNotice reports whether err is an informational notice rather than a
// failure.
func IsNotice(err error) bool {
	return errors.Is(err, ErrQuantityClamped)
}

func indexOf(lines []Line, productID string) int {
	for i, l := range lines {
		if l.ProductID == productID {
			return i
		}
	}
	return -1
}

func equalLines(a, b []Line) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
