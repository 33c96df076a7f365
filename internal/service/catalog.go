package service

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sreemonkavungal/BurgerByte/internal/domain"
)

// Catalog is the read-only product lookup the cart and order services
// depend on. Order pricing reads go through GetByIDs exactly once, at
// order creation; the result is never re-read afterwards.
type Catalog interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Product, error)
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*domain.Product, error)
}
