package service

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/storefront/backend/internal/logging"
	"github.com/storefront/backend/internal/models"
	"github.com/storefront/backend/internal/repo"
)

// WishlistService is the single authority over a user's saved products.
// Every mutation is keyed by product id; entry ids stay internal.
type WishlistService struct {
	Users    UserRepo
	Products ProductRepo
}

func (s *WishlistService) Add(ctx context.Context, ident Identity, productID primitive.ObjectID) error {
	l := logging.FromContext(ctx).With("svc", "wishlist.add", "product_id", productID.Hex())

	product, err := s.Products.GetProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	entry := models.WishlistEntry{
		ID:      primitive.NewObjectID(),
		Name:    product.Name,
		Image:   product.Image,
		Price:   product.Price,
		Product: product.ID,
	}
	if err := s.Users.AddWishlistEntry(ctx, ident.UserID, entry); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotFound
		}
		if errors.Is(err, repo.ErrDuplicate) {
			return fmt.Errorf("%w: product already in wishlist", ErrConflict)
		}
		return err
	}

	l.Info("wishlist_entry_added", "user_id", ident.UserID.Hex())
	return nil
}

func (s *WishlistService) Remove(ctx context.Context, ident Identity, productID primitive.ObjectID) error {
	l := logging.FromContext(ctx).With("svc", "wishlist.remove", "product_id", productID.Hex())

	if _, err := s.Products.GetProduct(ctx, productID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	removed, err := s.Users.RemoveWishlistEntry(ctx, ident.UserID, productID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	if !removed {
		return fmt.Errorf("%w: product not in wishlist", ErrConflict)
	}

	l.Info("wishlist_entry_removed", "user_id", ident.UserID.Hex())
	return nil
}

func (s *WishlistService) List(ctx context.Context, ident Identity) ([]models.WishlistEntry, error) {
	user, err := s.Users.GetUserByID(ctx, ident.UserID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if user.Wishlist == nil {
		return []models.WishlistEntry{}, nil
	}
	return user.Wishlist, nil
}
