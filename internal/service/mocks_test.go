package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sreemonkavungal/BurgerByte/internal/cache"
	"github.com/sreemonkavungal/BurgerByte/internal/domain"
	"github.com/sreemonkavungal/BurgerByte/internal/events"
	"github.com/sreemonkavungal/BurgerByte/internal/repository"
)

type mockUserRepo struct {
	m     sync.Mutex
	users map[primitive.ObjectID]*domain.User
	err   error
}

func newMockUserRepo(users ...*domain.User) *mockUserRepo {
	repo := &mockUserRepo{users: make(map[primitive.ObjectID]*domain.User)}
	for _, u := range users {
		repo.users[u.ID] = u
	}
	return repo
}

func (m *mockUserRepo) Create(_ context.Context, user *domain.User) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
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

func (m *mockUserRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.User, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	user, ok := m.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return user, nil
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	for _, user := range m.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (m *mockUserRepo) List(context.Context) ([]*domain.User, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	users := make([]*domain.User, 0, len(m.users))
	for _, user := range m.users {
		users = append(users, user)
	}
	return users, nil
}

func (m *mockUserRepo) GetCart(_ context.Context, userID primitive.ObjectID) ([]domain.CartLine, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	user, ok := m.users[userID]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return append([]domain.CartLine(nil), user.Cart...), nil
}

func (m *mockUserRepo) SaveCart(_ context.Context, userID primitive.ObjectID, lines []domain.CartLine) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	user, ok := m.users[userID]
	if !ok {
		return repository.ErrUserNotFound
	}
	user.Cart = append([]domain.CartLine(nil), lines...)
	return nil
}

func (m *mockUserRepo) GetFavorites(_ context.Context, userID primitive.ObjectID) ([]primitive.ObjectID, error) {
	m.m.Lock()
	defer m.m.Unlock()
	user, ok := m.users[userID]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return append([]primitive.ObjectID(nil), user.Favorites...), nil
}

func (m *mockUserRepo) AddFavorite(_ context.Context, userID, productID primitive.ObjectID) error {
	m.m.Lock()
	defer m.m.Unlock()
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

func (m *mockUserRepo) RemoveFavorite(_ context.Context, userID, productID primitive.ObjectID) error {
	m.m.Lock()
	defer m.m.Unlock()
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

func (m *mockUserRepo) cartOf(userID primitive.ObjectID) []domain.CartLine {
	m.m.Lock()
	defer m.m.Unlock()
	return append([]domain.CartLine(nil), m.users[userID].Cart...)
}

type mockCatalog struct {
	m        sync.Mutex
	products map[primitive.ObjectID]*domain.Product
	err      error
}

func newMockCatalog(products ...*domain.Product) *mockCatalog {
	c := &mockCatalog{products: make(map[primitive.ObjectID]*domain.Product)}
	for _, p := range products {
		c.products[p.ID] = p
	}
	return c
}

func (m *mockCatalog) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Product, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	product, ok := m.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	return product, nil
}

func (m *mockCatalog) GetByIDs(_ context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*domain.Product, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	result := make(map[primitive.ObjectID]*domain.Product)
	for _, id := range ids {
		if product, ok := m.products[id]; ok {
			result[id] = product
		}
	}
	return result, nil
}

func (m *mockCatalog) setPrice(id primitive.ObjectID, price float64) {
	m.m.Lock()
	defer m.m.Unlock()
	m.products[id].Price = price
}

type mockCache struct {
	m     sync.Mutex
	lines map[string][]domain.CartLine
	err   error
}

func newMockCache() *mockCache {
	return &mockCache{lines: make(map[string][]domain.CartLine)}
}

func (m *mockCache) Get(_ context.Context, userID string) ([]domain.CartLine, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	lines, ok := m.lines[userID]
	if !ok {
		return nil, cache.ErrCacheMiss
	}
	return lines, nil
}

func (m *mockCache) Set(_ context.Context, userID string, lines []domain.CartLine) error {
	m.m.Lock()
	defer m.m.Unlock()
	m.lines[userID] = lines
	return m.err
}

func (m *mockCache) Delete(_ context.Context, userID string) error {
	m.m.Lock()
	defer m.m.Unlock()
	delete(m.lines, userID)
	return m.err
}

func (m *mockCache) cached(userID string) ([]domain.CartLine, bool) {
	m.m.Lock()
	defer m.m.Unlock()
	lines, ok := m.lines[userID]
	return lines, ok
}

type mockOrderRepo struct {
	m      sync.Mutex
	orders map[primitive.ObjectID]*domain.Order
	err    error
}

func newMockOrderRepo(orders ...*domain.Order) *mockOrderRepo {
	repo := &mockOrderRepo{orders: make(map[primitive.ObjectID]*domain.Order)}
	for _, o := range orders {
		repo.orders[o.ID] = o
	}
	return repo
}

func (m *mockOrderRepo) Create(_ context.Context, order *domain.Order) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	order.ID = primitive.NewObjectID()
	order.CreatedAt = time.Now()
	order.UpdatedAt = order.CreatedAt
	copied := *order
	m.orders[order.ID] = &copied
	return nil
}

func (m *mockOrderRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Order, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	order, ok := m.orders[id]
	if !ok {
		return nil, repository.ErrOrderNotFound
	}
	copied := *order
	return &copied, nil
}

func (m *mockOrderRepo) ListByUser(_ context.Context, userID primitive.ObjectID) ([]*domain.Order, error) {
	m.m.Lock()
	defer m.m.Unlock()
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

func (m *mockOrderRepo) List(_ context.Context, status domain.OrderStatus) ([]*domain.Order, error) {
	m.m.Lock()
	defer m.m.Unlock()
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

func (m *mockOrderRepo) UpdateStatus(_ context.Context, id primitive.ObjectID, update repository.StatusUpdate) (*domain.Order, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return nil, m.err
	}
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

func (m *mockOrderRepo) MarkRefundRequested(_ context.Context, id primitive.ObjectID) (*domain.Order, error) {
	m.m.Lock()
	defer m.m.Unlock()
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

func (m *mockOrderRepo) ListPaidBetween(_ context.Context, from, to time.Time) ([]*domain.Order, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return nil, m.err
	}
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

func (m *mockOrderRepo) get(id primitive.ObjectID) *domain.Order {
	m.m.Lock()
	defer m.m.Unlock()
	copied := *m.orders[id]
	return &copied
}

func (m *mockOrderRepo) count() int {
	m.m.Lock()
	defer m.m.Unlock()
	return len(m.orders)
}

type mockPublisher struct {
	m      sync.Mutex
	events []events.OrderEvent
	err    error
}

func (m *mockPublisher) Publish(_ context.Context, event events.OrderEvent) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	m.events = append(m.events, event)
	return nil
}

func (m *mockPublisher) Close() error { return nil }

func (m *mockPublisher) published() []events.OrderEvent {
	m.m.Lock()
	defer m.m.Unlock()
	return append([]events.OrderEvent(nil), m.events...)
}
