package service

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/storefront/backend/internal/models"
	"github.com/storefront/backend/internal/repo"
)

// ProductService reads the catalog. Products are owned by an external
// pipeline; nothing here writes them.
type ProductService struct {
	Products ProductRepo
}

func (s *ProductService) Get(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	product, err := s.Products.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return product, nil
}

func (s *ProductService) List(ctx context.Context, keyword string) ([]models.Product, error) {
	products, err := s.Products.ListProducts(ctx, keyword)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []models.Product{}
	}
	return products, nil
}
