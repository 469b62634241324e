package service

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/storefront/backend/internal/models"
)

var (
	ErrValidation         = errors.New("validation")          // 400
	ErrNotFound           = errors.New("not found")           // 404
	ErrConflict           = errors.New("conflict")            // 400/409
	ErrInvalidCredentials = errors.New("invalid credentials") // 401
)

// Identity is the authenticated caller, resolved by the bearer-token
// middleware and passed explicitly into every operation.
type Identity struct {
	UserID  primitive.ObjectID
	IsAdmin bool
}

type UserRepo interface {
	CreateUser(ctx context.Context, u *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	GetUsersByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error)
	UpdateUser(ctx context.Context, u *models.User) error
	DeleteUser(ctx context.Context, id primitive.ObjectID) error
	AddWishlistEntry(ctx context.Context, userID primitive.ObjectID, entry models.WishlistEntry) error
	RemoveWishlistEntry(ctx context.Context, userID, productID primitive.ObjectID) (bool, error)
}

type ProductRepo interface {
	GetProduct(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	ListProducts(ctx context.Context, keyword string) ([]models.Product, error)
}

type OrderRepo interface {
	CreateOrder(ctx context.Context, o *models.Order) error
	GetOrder(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	ListOrdersByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error)
	ListOrders(ctx context.Context) ([]models.Order, error)
	MarkOrderPaid(ctx context.Context, id primitive.ObjectID, result models.PaymentResult, at time.Time) (*models.Order, error)
	MarkOrderDelivered(ctx context.Context, id primitive.ObjectID, at time.Time) (*models.Order, error)
}
