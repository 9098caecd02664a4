package model

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus is the fulfilment state of an order.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// orderTransitions lists the forward moves allowed from each status.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:   {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed: {OrderStatusCompleted, OrderStatusCancelled},
}

// ParseOrderStatus maps a wire status to an OrderStatus.
// Unknown values map to pending.
func ParseOrderStatus(s string) OrderStatus {
	switch OrderStatus(s) {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusCompleted, OrderStatusCancelled:
		return OrderStatus(s)
	default:
		return OrderStatusPending
	}
}

// CanTransitionTo reports whether moving to next is a forward transition.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transition is possible.
func (s OrderStatus) IsTerminal() bool {
	return len(orderTransitions[s]) == 0
}

// Order represents a scheduled pickup of a dish.
type Order struct {
	ID          uuid.UUID   `json:"id"`
	DishID      uuid.UUID   `json:"dishId"`
	BuyerID     uuid.UUID   `json:"buyerId"`
	SellerID    uuid.UUID   `json:"sellerId"`
	ScheduledAt time.Time   `json:"scheduledAt"`
	Status      OrderStatus `json:"status"`
	TotalPrice  *float64    `json:"totalPrice,omitempty"`
}

// IsUpcoming reports whether the pickup is strictly after now.
func (o Order) IsUpcoming(now time.Time) bool {
	return o.ScheduledAt.After(now)
}
