package httpapi

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sreemonkavungal/BurgerByte/internal/cache"
	"github.com/sreemonkavungal/BurgerByte/internal/domain"
	"github.com/sreemonkavungal/BurgerByte/internal/repository"
)

// In-memory repositories backing full-stack handler tests. They honor the
// same sentinel contract as the Mongo implementations.

type memUserRepo struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]*domain.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[primitive.ObjectID]*domain.User)}
}

func (m *memUserRepo) Create(_ context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}
	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	m.users[user.ID] = user
	return nil
}

func (m *memUserRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return user, nil
}

func (m *memUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, user := range m.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (m *memUserRepo) List(context.Context) ([]*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	users := make([]*domain.User, 0, len(m.users))
	for _, user := range m.users {
		users = append(users, user)
	}
	return users, nil
}

func (m *memUserRepo) GetCart(_ context.Context, userID primitive.ObjectID) ([]domain.CartLine, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[userID]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return append([]domain.CartLine(nil), user.Cart...), nil
}

func (m *memUserRepo) SaveCart(_ context.Context, userID primitive.ObjectID, lines []domain.CartLine) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[userID]
	if !ok {
		return repository.ErrUserNotFound
	}
	user.Cart = append([]domain.CartLine(nil), lines...)
	return nil
}

func (m *memUserRepo) GetFavorites(_ context.Context, userID primitive.ObjectID) ([]primitive.ObjectID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[userID]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return append([]primitive.ObjectID(nil), user.Favorites...), nil
}

func (m *memUserRepo) AddFavorite(_ context.Context, userID, productID primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[userID]
	if !ok {
		return repository.ErrUserNotFound
	}
	for _, id := range user.Favorites {
		if id == productID {
			return nil
		}
	}
	user.Favorites = append(user.Favorites, productID)
	return nil
}

func (m *memUserRepo) RemoveFavorite(_ context.Context, userID, productID primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[userID]
	if !ok {
		return repository.ErrUserNotFound
	}
	kept := user.Favorites[:0]
	for _, id := range user.Favorites {
		if id != productID {
			kept = append(kept, id)
		}
	}
	user.Favorites = kept
	return nil
}

type memProductRepo struct {
	mu       sync.Mutex
	products map[primitive.ObjectID]*domain.Product
}

func newMemProductRepo(products ...*domain.Product) *memProductRepo {
	repo := &memProductRepo{products: make(map[primitive.ObjectID]*domain.Product)}
	for _, p := range products {
		if p.ID.IsZero() {
			p.ID = primitive.NewObjectID()
		}
		repo.products[p.ID] = p
	}
	return repo
}

func (m *memProductRepo) Create(_ context.Context, product *domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	product.ID = primitive.NewObjectID()
	product.CreatedAt = time.Now()
	product.UpdatedAt = product.CreatedAt
	m.products[product.ID] = product
	return nil
}

func (m *memProductRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	product, ok := m.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	return product, nil
}

func (m *memProductRepo) GetByIDs(_ context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make(map[primitive.ObjectID]*domain.Product)
	for _, id := range ids {
		if product, ok := m.products[id]; ok {
			result[id] = product
		}
	}
	return result, nil
}

func (m *memProductRepo) List(_ context.Context, availableOnly bool) ([]*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var products []*domain.Product
	for _, product := range m.products {
		if availableOnly && !product.IsAvailable {
			continue
		}
		products = append(products, product)
	}
	return products, nil
}

func (m *memProductRepo) Update(_ context.Context, product *domain.Product) (*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.products[product.ID]; !ok {
		return nil, repository.ErrProductNotFound
	}
	product.UpdatedAt = time.Now()
	m.products[product.ID] = product
	return product, nil
}

func (m *memProductRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.products[id]; !ok {
		return repository.ErrProductNotFound
	}
	delete(m.products, id)
	return nil
}

type memCategoryRepo struct {
	mu         sync.Mutex
	categories map[primitive.ObjectID]*domain.Category
}

func newMemCategoryRepo() *memCategoryRepo {
	return &memCategoryRepo{categories: make(map[primitive.ObjectID]*domain.Category)}
}

func (m *memCategoryRepo) Create(_ context.Context, category *domain.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	category.ID = primitive.NewObjectID()
	m.categories[category.ID] = category
	return nil
}

func (m *memCategoryRepo) List(context.Context) ([]*domain.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	categories := make([]*domain.Category, 0, len(m.categories))
	for _, category := range m.categories {
		categories = append(categories, category)
	}
	return categories, nil
}

func (m *memCategoryRepo) Update(_ context.Context, category *domain.Category) (*domain.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.categories[category.ID]; !ok {
		return nil, repository.ErrCategoryNotFound
	}
	m.categories[category.ID] = category
	return category, nil
}

func (m *memCategoryRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.categories[id]; !ok {
		return repository.ErrCategoryNotFound
	}
	delete(m.categories, id)
	return nil
}

type memOrderRepo struct {
	mu     sync.Mutex
	orders map[primitive.ObjectID]*domain.Order
}

func newMemOrderRepo() *memOrderRepo {
	return &memOrderRepo{orders: make(map[primitive.ObjectID]*domain.Order)}
}

func (m *memOrderRepo) Create(_ context.Context, order *domain.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	order.ID = primitive.NewObjectID()
	order.CreatedAt = time.Now()
	order.UpdatedAt = order.CreatedAt
	copied := *order
	m.orders[order.ID] = &copied
	return nil
}

func (m *memOrderRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	order, ok := m.orders[id]
	if !ok {
		return nil, repository.ErrOrderNotFound
	}
	copied := *order
	return &copied, nil
}

func (m *memOrderRepo) ListByUser(_ context.Context, userID primitive.ObjectID) ([]*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var orders []*domain.Order
	for _, order := range m.orders {
		if order.UserID == userID {
			copied := *order
			orders = append(orders, &copied)
		}
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].CreatedAt.After(orders[j].CreatedAt) })
	return orders, nil
}

func (m *memOrderRepo) List(_ context.Context, status domain.OrderStatus) ([]*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var orders []*domain.Order
	for _, order := range m.orders {
		if status == "" || order.Status == status {
			copied := *order
			orders = append(orders, &copied)
		}
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].CreatedAt.After(orders[j].CreatedAt) })
	return orders, nil
}

func (m *memOrderRepo) UpdateStatus(_ context.Context, id primitive.ObjectID, update repository.StatusUpdate) (*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	order, ok := m.orders[id]
	if !ok {
		return nil, repository.ErrOrderNotFound
	}
	if update.RefundStatus != nil && update.ExpectedRefundStatus != nil &&
		order.RefundStatus != *update.ExpectedRefundStatus {
		return nil, repository.ErrConcurrentModification
	}
	if update.Status != nil {
		order.Status = *update.Status
	}
	if update.PaymentStatus != nil {
		order.PaymentStatus = *update.PaymentStatus
	}
	if update.RefundStatus != nil {
		order.RefundStatus = *update.RefundStatus
	}
	order.UpdatedAt = time.Now()
	copied := *order
	return &copied, nil
}

func (m *memOrderRepo) MarkRefundRequested(_ context.Context, id primitive.ObjectID) (*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	order, ok := m.orders[id]
	if !ok {
		return nil, repository.ErrOrderNotFound
	}
	if order.RefundRequested {
		return nil, repository.ErrRefundAlreadyRequested
	}
	order.RefundRequested = true
	order.RefundStatus = domain.RefundStatusRequested
	order.UpdatedAt = time.Now()
	copied := *order
	return &copied, nil
}

func (m *memOrderRepo) ListPaidBetween(_ context.Context, from, to time.Time) ([]*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var orders []*domain.Order
	for _, order := range m.orders {
		if order.PaymentStatus != domain.PaymentStatusPaid {
			continue
		}
		if order.CreatedAt.Before(from) || order.CreatedAt.After(to) {
			continue
		}
		copied := *order
		orders = append(orders, &copied)
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].CreatedAt.Before(orders[j].CreatedAt) })
	return orders, nil
}

type memCache struct {
	mu    sync.Mutex
	lines map[string][]domain.CartLine
}

func newMemCache() *memCache {
	return &memCache{lines: make(map[string][]domain.CartLine)}
}

func (m *memCache) Get(_ context.Context, userID string) ([]domain.CartLine, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	lines, ok := m.lines[userID]
	if !ok {
		return nil, cache.ErrCacheMiss
	}
	return lines, nil
}

func (m *memCache) Set(_ context.Context, userID string, lines []domain.CartLine) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lines[userID] = lines
	return nil
}

func (m *memCache) Delete(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.lines, userID)
	return nil
}
