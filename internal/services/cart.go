package service

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"github.com/shopspring/decimal"
	"github.com/tungshoop/tungcart/internal/audit"
	"github.com/tungshoop/tungcart/internal/catalog"
	"github.com/tungshoop/tungcart/internal/errors"
	"github.com/tungshoop/tungcart/internal/metrics"
	"github.com/tungshoop/tungcart/internal/models"
	repository "github.com/tungshoop/tungcart/internal/repositories"
)

const (
	ActionAddItem        = "add_item"
	ActionUpdateQuantity = "update_quantity"
	ActionRemoveItem     = "remove_item"
	ActionClearCart      = "clear_cart"
)

// CartService is the sole mutator of the catalog/cart pair. Every mutation
// sees a consistent pre-state and leaves a consistent post-state: the mutex
// makes the pair one transactional unit, and reads never observe a
// half-applied stock+line update.
type CartService struct {
	mu       sync.Mutex
	catalog  *catalog.Catalog
	repo     repository.CartRepository
	sink     audit.Sink
	order    []string
	quantity map[string]int
}

// NewCartService restores the persisted cart state against the given catalog.
// Persisted lines whose product no longer exists in the catalog are silently
// dropped. A nil sink disables auditing.
func NewCartService(cat *catalog.Catalog, repo repository.CartRepository, sink audit.Sink) (*CartService, error) {
	if sink == nil {
		sink = audit.NewNopSink()
	}

	s := &CartService{
		catalog:  cat,
		repo:     repo,
		sink:     sink,
		quantity: make(map[string]int),
	}

	lines, err := repo.Load()
	if err != nil {
		return nil, errors.MalformedStateError("Failed to load cart state").WithError(err)
	}

	for _, line := range lines {
		if _, ok := cat.Get(line.ProductID); !ok {
			continue
		}

		s.order = append(s.order, line.ProductID)
		s.quantity[line.ProductID] = line.Quantity
	}

	return s, nil
}

// AddItem reserves quantity units of a product and merges them into the cart.
// It returns false without mutating when the product is unknown, the quantity
// is not positive, or the quantity exceeds available stock. Unexpected
// failures are recovered, audited with an "error" status, and reported as a
// false result so the process stays usable.
func (s *CartService) AddItem(ctx context.Context, productID string, quantity int) (ok bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	defer func() {
		if r := recover(); r != nil {
			slog.Error("Unexpected failure while adding item",
				slog.String("product_id", productID),
				slog.Any("panic", r))
			s.emit(ctx, ActionAddItem, audit.StatusError)

			ok = false
			err = errors.InternalError("Unexpected error while adding item to cart")
		}
	}()

	product, exists := s.catalog.Get(productID)
	if !exists {
		s.emit(ctx, ActionAddItem, audit.StatusFailed)

		return false, errors.NotFoundError("Invalid product ID")
	}

	if quantity <= 0 || quantity > product.Stock {
		s.emit(ctx, ActionAddItem, audit.StatusFailed)

		return false, errors.InvalidQuantityError("Not enough stock available")
	}

	created := false
	if _, present := s.quantity[productID]; !present {
		s.order = append(s.order, productID)
		created = true
	}

	s.quantity[productID] += quantity
	product.DecreaseStock(quantity)

	if err := s.persist(); err != nil {
		// Roll back so a reported failure never leaves partial state.
		s.quantity[productID] -= quantity
		if created {
			s.order = s.order[:len(s.order)-1]
			delete(s.quantity, productID)
		}

		product.IncreaseStock(quantity)
		s.emit(ctx, ActionAddItem, audit.StatusError)

		return false, errors.InternalError("Failed to persist cart state").WithError(err)
	}

	slog.Info("Item added to cart",
		slog.String("product_id", productID),
		slog.Int("quantity", quantity))
	s.emit(ctx, ActionAddItem, audit.StatusSuccess)

	return true, nil
}

// UpdateQuantity sets a cart line to newQuantity, reserving or releasing the
// difference against the catalog. Setting a line to zero removes it after the
// release; a negative target is rejected. A positive difference larger than
// the available stock leaves both quantity and stock untouched but still
// persists and reports success; this mirrors the legacy ledger exactly and is
// asserted by tests rather than silently corrected.
func (s *CartService) UpdateQuantity(ctx context.Context, productID string, newQuantity int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, present := s.quantity[productID]
	if !present {
		s.emit(ctx, ActionUpdateQuantity, audit.StatusFailed)

		return false, errors.NotFoundError("Item not found in cart")
	}

	if newQuantity < 0 {
		s.emit(ctx, ActionUpdateQuantity, audit.StatusFailed)

		return false, errors.InvalidQuantityError("Quantity cannot be negative")
	}

	product, _ := s.catalog.Get(productID)
	diff := newQuantity - current
	prevStock := product.Stock
	prevOrder := slices.Clone(s.order)

	switch {
	case diff > 0 && product.Stock >= diff:
		product.DecreaseStock(diff)
		s.quantity[productID] = newQuantity
	case diff < 0:
		product.IncreaseStock(-diff)
		s.quantity[productID] = newQuantity
	}

	if newQuantity == 0 {
		s.removeLine(productID)
	}

	if err := s.persist(); err != nil {
		product.Stock = prevStock
		s.order = prevOrder
		s.quantity[productID] = current
		s.emit(ctx, ActionUpdateQuantity, audit.StatusError)

		return false, errors.InternalError("Failed to persist cart state").WithError(err)
	}

	slog.Info("Cart quantity updated",
		slog.String("product_id", productID),
		slog.Int("quantity", newQuantity))
	s.emit(ctx, ActionUpdateQuantity, audit.StatusSuccess)

	return true, nil
}

// RemoveItem deletes a cart line and releases its full reserved quantity back
// to the catalog.
func (s *CartService) RemoveItem(ctx context.Context, productID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	quantity, present := s.quantity[productID]
	if !present {
		s.emit(ctx, ActionRemoveItem, audit.StatusFailed)

		return false, errors.NotFoundError("Item not found in cart")
	}

	prevOrder := slices.Clone(s.order)
	s.removeLine(productID)
	s.catalog.IncreaseStock(productID, quantity)

	if err := s.persist(); err != nil {
		s.order = prevOrder
		s.quantity[productID] = quantity

		if p, ok := s.catalog.Get(productID); ok {
			p.Stock -= quantity
		}

		s.emit(ctx, ActionRemoveItem, audit.StatusError)

		return false, errors.InternalError("Failed to persist cart state").WithError(err)
	}

	slog.Info("Item removed from cart", slog.String("product_id", productID))
	s.emit(ctx, ActionRemoveItem, audit.StatusSuccess)

	return true, nil
}

// ClearCart unconditionally empties the cart. Reserved stock is not returned
// to the catalog: cleared items count as gone, matching checkout semantics.
func (s *CartService) ClearCart(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.clearLocked(ctx)
}

// Checkout returns the cart contents at the moment of purchase and then
// empties the cart. There is no confirmation step and no payment leg.
func (s *CartService) Checkout(ctx context.Context) (*models.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.snapshotLocked()

	if _, err := s.clearLocked(ctx); err != nil {
		return nil, err
	}

	return snapshot, nil
}

func (s *CartService) clearLocked(ctx context.Context) (bool, error) {
	prevOrder, prevQuantity := s.order, s.quantity
	s.order = nil
	s.quantity = make(map[string]int)

	if err := s.persist(); err != nil {
		s.order, s.quantity = prevOrder, prevQuantity
		s.emit(ctx, ActionClearCart, audit.StatusError)

		return false, errors.InternalError("Failed to persist cart state").WithError(err)
	}

	slog.Info("Cart cleared")
	s.emit(ctx, ActionClearCart, audit.StatusSuccess)

	return true, nil
}

// Total is the sum of all line subtotals.
func (s *CartService) Total() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.totalLocked()
}

// Snapshot derives the read-only cart summary in insertion order.
func (s *CartService) Snapshot() *models.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.snapshotLocked()
}

// Products lists the catalog in insertion order.
func (s *CartService) Products() []*models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.catalog.Products()
}

// Len reports the number of cart lines.
func (s *CartService) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.order)
}

func (s *CartService) removeLine(productID string) {
	delete(s.quantity, productID)

	for i, id := range s.order {
		if id == productID {
			s.order = append(s.order[:i], s.order[i+1:]...)

			break
		}
	}
}

func (s *CartService) persist() error {
	lines := make([]models.CartLine, 0, len(s.order))
	for _, id := range s.order {
		lines = append(lines, models.CartLine{ProductID: id, Quantity: s.quantity[id]})
	}

	return s.repo.Save(lines)
}

// subtotal charges shipping once per line, not per unit, and only for
// physical goods.
func subtotal(p *models.Product, quantity int) decimal.Decimal {
	value := p.UnitPrice.Mul(decimal.NewFromInt(int64(quantity)))
	if p.Kind == models.KindPhysical {
		value = value.Add(p.ShippingCost)
	}

	return value
}

func (s *CartService) totalLocked() decimal.Decimal {
	total := decimal.Zero

	for _, id := range s.order {
		if p, ok := s.catalog.Get(id); ok {
			total = total.Add(subtotal(p, s.quantity[id]))
		}
	}

	return total
}

func (s *CartService) snapshotLocked() *models.Snapshot {
	items := make([]models.SnapshotItem, 0, len(s.order))

	for _, id := range s.order {
		p, ok := s.catalog.Get(id)
		if !ok {
			continue
		}

		quantity := s.quantity[id]
		items = append(items, models.SnapshotItem{
			ProductID: id,
			Name:      p.Name,
			Quantity:  quantity,
			Price:     p.UnitPrice,
			Shipping:  p.ShippingCost,
			Subtotal:  subtotal(p, quantity),
		})
	}

	return &models.Snapshot{Items: items, Total: s.totalLocked()}
}

// emit sends the audit record and counts the operation. Sink failures are
// logged and swallowed: auditing must never change ledger behavior.
func (s *CartService) emit(ctx context.Context, action, status string) {
	if err := s.sink.Log(ctx, action, status, s.snapshotLocked()); err != nil {
		slog.Warn("Failed to write audit record",
			slog.String("action", action),
			slog.String("status", status),
			slog.String("error", err.Error()))
	}

	metrics.RecordCartOperation(action, status)
}
