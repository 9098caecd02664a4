package repository

import (
	"context"
	"slices"
	"sync"

	"homebite/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// orderRepository implements OrderRepository in memory.
type orderRepository struct {
	mu     sync.RWMutex
	orders []model.OrderDTO
	logger zerolog.Logger
}

// NewOrderRepository creates an empty in-memory order repository.
func NewOrderRepository(logger zerolog.Logger) OrderRepository {
	return &orderRepository{
		logger: logger.With().Str("repository", "order").Logger(),
	}
}

// Create stores a new order with its items.
func (r *orderRepository) Create(ctx context.Context, order *model.OrderDTO) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	for i := range order.Items {
		if order.Items[i].ID == uuid.Nil {
			order.Items[i].ID = uuid.New()
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.orders = append(r.orders, cloneOrder(*order))

	r.logger.Debug().
		Str("order_id", order.ID.String()).
		Int("item_count", len(order.Items)).
		Msg("order stored")
	return nil
}

// ListByBuyer retrieves orders placed by buyerID.
func (r *orderRepository) ListByBuyer(ctx context.Context, buyerID uuid.UUID) ([]model.OrderDTO, error) {
	return r.list(ctx, func(o model.OrderDTO) bool { return o.BuyerID == buyerID })
}

// ListByCook retrieves orders for dishes cooked by cookID.
func (r *orderRepository) ListByCook(ctx context.Context, cookID uuid.UUID) ([]model.OrderDTO, error) {
	return r.list(ctx, func(o model.OrderDTO) bool { return o.CookID != nil && *o.CookID == cookID })
}

func (r *orderRepository) list(ctx context.Context, keep func(model.OrderDTO) bool) ([]model.OrderDTO, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	orders := []model.OrderDTO{}
	for i := len(r.orders) - 1; i >= 0; i-- {
		if keep(r.orders[i]) {
			orders = append(orders, cloneOrder(r.orders[i]))
		}
	}
	return orders, nil
}

func cloneOrder(o model.OrderDTO) model.OrderDTO {
	o.Items = slices.Clone(o.Items)
	return o
}
