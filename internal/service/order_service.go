package service

import (
	"context"
	"fmt"
	"time"

	"homebite/internal/model"
	"homebite/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// orderService implements OrderService.
type orderService struct {
	orders repository.OrderRepository
	dishes repository.DishRepository
	now    func() time.Time
	logger zerolog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(
	orders repository.OrderRepository,
	dishes repository.DishRepository,
	logger zerolog.Logger,
) OrderService {
	return &orderService{
		orders: orders,
		dishes: dishes,
		now:    time.Now,
		logger: logger.With().Str("service", "order").Logger(),
	}
}

// CreateOrder places an order. The cook is the cook of the first item's
// dish; quantities below one count as one; barter dishes are priced at zero.
func (s *orderService) CreateOrder(ctx context.Context, buyerID uuid.UUID, req *model.OrderCreateRequest) (*model.OrderDTO, error) {
	if req == nil || len(req.Items) == 0 {
		return nil, model.ErrEmptyOrder
	}

	currency := req.Currency
	if currency == "" {
		currency = model.DefaultCurrency
	}

	order := &model.OrderDTO{
		ID:              uuid.New(),
		BuyerID:         buyerID,
		Status:          string(model.OrderStatusPending),
		Currency:        currency,
		ScheduledPickup: req.ScheduledPickup,
		PickupNotes:     req.PickupNotes,
		PickupLocation:  req.PickupLocation,
		Items:           make([]model.OrderItemOut, 0, len(req.Items)),
	}

	for i, item := range req.Items {
		dish, err := s.dishes.GetByID(ctx, item.DishID)
		if err != nil {
			s.logger.Error().Err(err).Str("dish_id", item.DishID.String()).Msg("failed to get dish")
			return nil, fmt.Errorf("failed to get dish: %w", err)
		}
		if dish == nil {
			s.logger.Warn().Str("dish_id", item.DishID.String()).Int("item_index", i).Msg("order for unknown dish")
			if i == 0 {
				return nil, model.ErrDishNotFound
			}
			return nil, model.NewDomainError(model.ErrCodeDishNotFound, fmt.Sprintf("Dish %s not found", item.DishID))
		}

		if i == 0 {
			cookID := dish.CookID
			order.CookID = &cookID
			if order.PickupLocation == nil {
				order.PickupLocation = dish.PickupLocation
			}
		}

		qty := max(1, item.Quantity)
		unit := 0.0
		if dish.Price != nil {
			unit = *dish.Price
		}
		line := float64(qty) * unit
		order.Total += line

		dishID := dish.ID
		order.Items = append(order.Items, model.OrderItemOut{
			ID:                  uuid.New(),
			DishID:              &dishID,
			Quantity:            qty,
			UnitPrice:           unit,
			TotalPrice:          line,
			SpecialInstructions: item.SpecialInstructions,
		})
	}

	created := model.NewTimestamp(s.now())
	order.CreatedAt = &created

	if err := s.orders.Create(ctx, order); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to create order")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.logger.Info().
		Str("order_id", order.ID.String()).
		Int("item_count", len(order.Items)).
		Float64("total", order.Total).
		Msg("order created successfully")

	return order, nil
}

// List retrieves the orders of userID from the given perspective.
func (s *orderService) List(ctx context.Context, userID uuid.UUID, as string) ([]model.OrderDTO, error) {
	var (
		orders []model.OrderDTO
		err    error
	)
	if as == AsCook {
		orders, err = s.orders.ListByCook(ctx, userID)
	} else {
		orders, err = s.orders.ListByBuyer(ctx, userID)
	}
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID.String()).Str("as", as).Msg("failed to list orders")
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}
