package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/storefront/backend/internal/logging"
	"github.com/storefront/backend/internal/models"
	"github.com/storefront/backend/internal/repo"
)

type OrderService struct {
	Orders OrderRepo
	Users  UserRepo
}

type CreateOrderParams struct {
	OrderItems      []models.OrderItem     `json:"orderItems"`
	ShippingAddress models.ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string                 `json:"paymentMethod"`
	ItemsPrice      float64                `json:"itemsPrice"`
	TaxPrice        float64                `json:"taxPrice"`
	ShippingPrice   float64                `json:"shippingPrice"`
	TotalPrice      float64                `json:"totalPrice"`
}

// UserSummary is the owner projection attached to order reads.
type UserSummary struct {
	ID    primitive.ObjectID `json:"_id"`
	Name  string             `json:"name"`
	Email string             `json:"email,omitempty"`
}

type OrderDetail struct {
	models.Order
	UserInfo *UserSummary `json:"userInfo,omitempty"`
}

func (s *OrderService) Create(ctx context.Context, ident Identity, params CreateOrderParams) (*models.Order, error) {
	l := logging.FromContext(ctx).With("svc", "order.create")

	if len(params.OrderItems) == 0 {
		return nil, fmt.Errorf("%w: no order items", ErrValidation)
	}
	for i := range params.OrderItems {
		if params.OrderItems[i].Product.IsZero() {
			return nil, fmt.Errorf("%w: product required", ErrValidation)
		}
		if params.OrderItems[i].Qty <= 0 {
			return nil, fmt.Errorf("%w: qty must be > 0", ErrValidation)
		}
		if params.OrderItems[i].Price < 0 {
			return nil, fmt.Errorf("%w: price must be >= 0", ErrValidation)
		}
	}
	if params.ItemsPrice < 0 || params.TaxPrice < 0 || params.ShippingPrice < 0 || params.TotalPrice < 0 {
		return nil, fmt.Errorf("%w: prices must be >= 0", ErrValidation)
	}

	order := &models.Order{
		User:            ident.UserID,
		OrderItems:      params.OrderItems,
		ShippingAddress: params.ShippingAddress,
		PaymentMethod:   params.PaymentMethod,
		ItemsPrice:      params.ItemsPrice,
		TaxPrice:        params.TaxPrice,
		ShippingPrice:   params.ShippingPrice,
		TotalPrice:      params.TotalPrice,
		CreatedAt:       time.Now(),
	}
	if err := s.Orders.CreateOrder(ctx, order); err != nil {
		return nil, err
	}

	l.Info("order_created", "order_id", order.ID.Hex(), "user_id", ident.UserID.Hex())
	return order, nil
}

// Get returns the order joined with its owner's name and email at read time.
func (s *OrderService) Get(ctx context.Context, id primitive.ObjectID) (*OrderDetail, error) {
	order, err := s.Orders.GetOrder(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	detail := &OrderDetail{Order: *order}
	if owner, err := s.Users.GetUserByID(ctx, order.User); err == nil {
		detail.UserInfo = &UserSummary{ID: owner.ID, Name: owner.Name, Email: owner.Email}
	}
	return detail, nil
}

// MarkPaid sets the paid flag, timestamp and confirmation exactly once. A
// repeat call on an already-paid order is a no-op that returns the stored
// record untouched.
func (s *OrderService) MarkPaid(ctx context.Context, id primitive.ObjectID, result models.PaymentResult) (*models.Order, error) {
	l := logging.FromContext(ctx).With("svc", "order.mark_paid", "order_id", id.Hex())

	order, err := s.Orders.MarkOrderPaid(ctx, id, result, time.Now())
	if err == nil {
		l.Info("order_paid")
		return order, nil
	}
	if !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}

	// The conditional update missed: either the order is absent or it is
	// already paid.
	order, err = s.Orders.GetOrder(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return order, nil
}

func (s *OrderService) MarkDelivered(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	l := logging.FromContext(ctx).With("svc", "order.mark_delivered", "order_id", id.Hex())

	order, err := s.Orders.MarkOrderDelivered(ctx, id, time.Now())
	if err == nil {
		l.Info("order_delivered")
		return order, nil
	}
	if !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}

	order, err = s.Orders.GetOrder(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return order, nil
}

func (s *OrderService) ListMine(ctx context.Context, ident Identity) ([]models.Order, error) {
	orders, err := s.Orders.ListOrdersByUser(ctx, ident.UserID)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []models.Order{}
	}
	return orders, nil
}

// ListAll is the privileged listing; each order carries its owner's id and
// name, resolved with one batched lookup.
func (s *OrderService) ListAll(ctx context.Context) ([]OrderDetail, error) {
	orders, err := s.Orders.ListOrders(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]primitive.ObjectID, 0, len(orders))
	seen := make(map[primitive.ObjectID]bool, len(orders))
	for i := range orders {
		if !seen[orders[i].User] {
			seen[orders[i].User] = true
			ids = append(ids, orders[i].User)
		}
	}

	owners := make(map[primitive.ObjectID]models.User, len(ids))
	if len(ids) > 0 {
		users, err := s.Users.GetUsersByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		for i := range users {
			owners[users[i].ID] = users[i]
		}
	}

	details := make([]OrderDetail, len(orders))
	for i := range orders {
		details[i] = OrderDetail{Order: orders[i]}
		if owner, ok := owners[orders[i].User]; ok {
			details[i].UserInfo = &UserSummary{ID: owner.ID, Name: owner.Name}
		}
	}
	return details, nil
}
