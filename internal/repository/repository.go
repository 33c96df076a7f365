package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sreemonkavungal/BurgerByte/internal/domain"
)

var (
	ErrUserNotFound           = errors.New("user not found")
	ErrDuplicateEmail         = errors.New("email already registered")
	ErrProductNotFound        = errors.New("product not found")
	ErrCategoryNotFound       = errors.New("category not found")
	ErrOrderNotFound          = errors.New("order not found")
	ErrRefundAlreadyRequested = errors.New("refund already requested for order")
	ErrConcurrentModification = errors.New("order was modified concurrently")
)

// UserRepository owns the users collection. Carts and favorites are
// embedded in the user document, so their operations live here too.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)

	GetCart(ctx context.Context, userID primitive.ObjectID) ([]domain.CartLine, error)
	SaveCart(ctx context.Context, userID primitive.ObjectID, lines []domain.CartLine) error

	GetFavorites(ctx context.Context, userID primitive.ObjectID) ([]primitive.ObjectID, error)
	AddFavorite(ctx context.Context, userID, productID primitive.ObjectID) error
	RemoveFavorite(ctx context.Context, userID, productID primitive.ObjectID) error
}

type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Product, error)
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*domain.Product, error)
	List(ctx context.Context, availableOnly bool) ([]*domain.Product, error)
	Update(ctx context.Context, product *domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) error
	List(ctx context.Context) ([]*domain.Category, error)
	Update(ctx context.Context, category *domain.Category) (*domain.Category, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// StatusUpdate is a partial update of an order's lifecycle fields. Nil
// fields are left untouched. When RefundStatus is set, the write is
// conditional on ExpectedRefundStatus so a racing refund request cannot be
// silently overwritten.
type StatusUpdate struct {
	Status               *domain.OrderStatus
	PaymentStatus        *domain.PaymentStatus
	RefundStatus         *domain.RefundStatus
	ExpectedRefundStatus *domain.RefundStatus
}

type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Order, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]*domain.Order, error)
	List(ctx context.Context, status domain.OrderStatus) ([]*domain.Order, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, update StatusUpdate) (*domain.Order, error)
	MarkRefundRequested(ctx context.Context, id primitive.ObjectID) (*domain.Order, error)
	ListPaidBetween(ctx context.Context, from, to time.Time) ([]*domain.Order, error)
}
