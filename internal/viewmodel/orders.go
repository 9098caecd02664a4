package viewmodel

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"homebite/internal/client"
	"homebite/internal/model"
	"homebite/internal/observe"
	"homebite/internal/sample"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// OrderAPI is the part of the API client the orders screen uses.
type OrderAPI interface {
	ListOrders(ctx context.Context, as client.OrderScope) ([]model.OrderDTO, error)
	CreateOrder(ctx context.Context, req model.OrderCreateRequest) (*model.OrderDTO, error)
}

// OrderBuckets groups orders for display.
type OrderBuckets struct {
	Upcoming     []model.Order
	Past         []model.Order
	CookBookings []model.Order
}

// Orders backs the order history screen. Orders scheduled strictly after
// now are upcoming; everything else is past.
type Orders struct {
	mu       sync.RWMutex
	api      OrderAPI
	catalog  *sample.Catalog
	now      Clock
	buckets  OrderBuckets
	notifier observe.Notifier
	logger   zerolog.Logger
}

// NewOrders creates an empty orders view-model. A nil now uses time.Now.
func NewOrders(api OrderAPI, catalog *sample.Catalog, now Clock, logger zerolog.Logger) *Orders {
	if now == nil {
		now = time.Now
	}
	if catalog == nil {
		catalog = sample.Default(now())
	}
	return &Orders{
		api:     api,
		catalog: catalog,
		now:     now,
		buckets: OrderBuckets{Upcoming: []model.Order{}, Past: []model.Order{}, CookBookings: []model.Order{}},
		logger:  logger.With().Str("viewmodel", "orders").Logger(),
	}
}

// Subscribe returns a channel signalled on every state change.
func (o *Orders) Subscribe() (<-chan struct{}, func()) {
	return o.notifier.Subscribe()
}

// LoadMock buckets the sample orders. Orders sold by user to someone else
// become cook bookings.
func (o *Orders) LoadMock(user *model.User) {
	now := o.now()
	b := bucket(o.catalog.Orders, now)
	if user != nil {
		for _, ord := range o.catalog.Orders {
			if ord.SellerID == user.ID && ord.BuyerID != user.ID && ord.IsUpcoming(now) {
				b.CookBookings = append(b.CookBookings, ord)
			}
		}
	}
	o.set(b)
}

// LoadFromAPI fetches the user's orders as buyer and as cook. If the buyer
// list fails the sample orders are shown; a failed cook list leaves cook
// bookings empty. Either error is returned in the Result.
func (o *Orders) LoadFromAPI(ctx context.Context) Result[OrderBuckets] {
	bought, err := o.api.ListOrders(ctx, client.AsBuyer)
	if err != nil {
		o.logger.Warn().Err(err).Msg("failed to load orders, showing sample data")
		o.LoadMock(nil)
		return Result[OrderBuckets]{Data: o.Buckets(), Source: SourceSample, Err: err}
	}

	now := o.now()
	b := bucket(o.mapOrders(bought, now), now)

	cooked, cookErr := o.api.ListOrders(ctx, client.AsCook)
	if cookErr != nil {
		o.logger.Warn().Err(cookErr).Msg("failed to load cook bookings")
	} else {
		b.CookBookings = o.mapOrders(cooked, now)
	}

	o.set(b)
	return Result[OrderBuckets]{Data: o.Buckets(), Source: SourceAPI, Err: cookErr}
}

// Book schedules a pickup of dish at the given time. The time must be in
// the future. Sub-second times are rounded up to the next whole second,
// the precision the wire carries. The created order is appended to the
// upcoming list.
func (o *Orders) Book(ctx context.Context, dish model.Dish, at time.Time, notes string) (model.Order, error) {
	now := o.now()
	if !at.After(now) {
		return model.Order{}, model.ErrPickupInPast
	}

	if whole := at.Truncate(time.Second); !whole.Equal(at) {
		at = whole.Add(time.Second)
	}
	pickup := model.NewTimestamp(at)
	if !pickup.After(now) {
		return model.Order{}, model.ErrPickupInPast
	}
	req := model.OrderCreateRequest{
		Items:           []model.OrderItemIn{{DishID: dish.ID, Quantity: 1}},
		ScheduledPickup: &pickup,
		Currency:        model.DefaultCurrency,
	}
	if n := strings.TrimSpace(notes); n != "" {
		req.PickupNotes = &n
	}

	dto, err := o.api.CreateOrder(ctx, req)
	if err != nil {
		o.logger.Error().Err(err).Str("dish_id", dish.ID.String()).Msg("failed to book pickup")
		return model.Order{}, fmt.Errorf("failed to book pickup: %w", err)
	}

	order := model.OrderFromDTO(*dto, pickup.Time)
	if order.DishID == uuid.Nil {
		order.DishID = dish.ID
	}
	if order.SellerID == uuid.Nil {
		order.SellerID = dish.CookID
	}

	o.mu.Lock()
	if order.IsUpcoming(now) {
		o.buckets.Upcoming = append(o.buckets.Upcoming, order)
	} else {
		o.buckets.Past = append(o.buckets.Past, order)
	}
	o.mu.Unlock()
	o.notifier.Notify()

	o.logger.Info().Str("order_id", order.ID.String()).Time("pickup", order.ScheduledAt).Msg("pickup booked")
	return order, nil
}

// Buckets returns a copy of the current buckets.
func (o *Orders) Buckets() OrderBuckets {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return OrderBuckets{
		Upcoming:     append([]model.Order{}, o.buckets.Upcoming...),
		Past:         append([]model.Order{}, o.buckets.Past...),
		CookBookings: append([]model.Order{}, o.buckets.CookBookings...),
	}
}

// Upcoming returns orders scheduled after now.
func (o *Orders) Upcoming() []model.Order {
	return o.Buckets().Upcoming
}

// Past returns orders scheduled at or before now.
func (o *Orders) Past() []model.Order {
	return o.Buckets().Past
}

// CookBookings returns orders placed with the user as cook.
func (o *Orders) CookBookings() []model.Order {
	return o.Buckets().CookBookings
}

func (o *Orders) mapOrders(dtos []model.OrderDTO, now time.Time) []model.Order {
	out := make([]model.Order, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, model.OrderFromDTO(d, now))
	}
	return out
}

func (o *Orders) set(b OrderBuckets) {
	o.mu.Lock()
	o.buckets = b
	o.mu.Unlock()
	o.notifier.Notify()
}

func bucket(orders []model.Order, now time.Time) OrderBuckets {
	b := OrderBuckets{Upcoming: []model.Order{}, Past: []model.Order{}, CookBookings: []model.Order{}}
	for _, ord := range orders {
		if ord.IsUpcoming(now) {
			b.Upcoming = append(b.Upcoming, ord)
		} else {
			b.Past = append(b.Past, ord)
		}
	}
	return b
}
