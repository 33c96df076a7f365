package service

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sreemonkavungal/BurgerByte/internal/domain"
	"github.com/sreemonkavungal/BurgerByte/internal/repository"
)

// UserService covers user listing and per-user product favorites.
type UserService struct {
	users   repository.UserRepository
	catalog Catalog
}

func NewUserService(users repository.UserRepository, catalog Catalog) *UserService {
	return &UserService{
		users:   users,
		catalog: catalog,
	}
}

func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.users.List(ctx)
}

func (s *UserService) Favorites(ctx context.Context, userID primitive.ObjectID) ([]*domain.Product, error) {
	ids, err := s.users.GetFavorites(ctx, userID)
	if err != nil {
		return nil, mapUserErr(err)
	}
	return s.resolveFavorites(ctx, ids)
}

// AddFavorite is idempotent: favoriting a product twice keeps one entry.
func (s *UserService) AddFavorite(ctx context.Context, userID, productID primitive.ObjectID) ([]*domain.Product, error) {
	if _, err := s.catalog.GetByID(ctx, productID); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	if err := s.users.AddFavorite(ctx, userID, productID); err != nil {
		return nil, mapUserErr(err)
	}
	return s.Favorites(ctx, userID)
}

func (s *UserService) RemoveFavorite(ctx context.Context, userID, productID primitive.ObjectID) ([]*domain.Product, error) {
	if err := s.users.RemoveFavorite(ctx, userID, productID); err != nil {
		return nil, mapUserErr(err)
	}
	return s.Favorites(ctx, userID)
}

func (s *UserService) resolveFavorites(ctx context.Context, ids []primitive.ObjectID) ([]*domain.Product, error) {
	byID, err := s.catalog.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	// Preserve favoriting order; skip products no longer in the catalog.
	products := make([]*domain.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			products = append(products, p)
		}
	}
	return products, nil
}
