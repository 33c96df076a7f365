package service

import (
	"context"
	"errors"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/singleflight"

	"github.com/sreemonkavungal/BurgerByte/internal/cache"
	"github.com/sreemonkavungal/BurgerByte/internal/domain"
	"github.com/sreemonkavungal/BurgerByte/internal/repository"
)

// CartService owns cart line identity and merge semantics. A cart holds at
// most one line per (product, customization) key; adding the same key again
// replaces quantity and customization instead of duplicating the line.
type CartService struct {
	users   repository.UserRepository
	catalog Catalog
	cache   cache.CartCache
	sfg     singleflight.Group // prevents cache stampede
	locks   keyedMutex         // serializes read-modify-write per user
	gens    sync.Map           // userID -> *atomic.Uint64, bumped on every write
}

func NewCartService(users repository.UserRepository, catalog Catalog, cartCache cache.CartCache) *CartService {
	return &CartService{
		users:   users,
		catalog: catalog,
		cache:   cartCache,
	}
}

// AddOrUpdate adds a line to the user's cart, or replaces the quantity and
// customization of the line with the same identity key. Quantity 0 means
// unspecified and defaults to 1. Unavailable products are rejected for
// non-admin callers.
func (s *CartService) AddOrUpdate(ctx context.Context, user *domain.User, productID primitive.ObjectID, quantity int, customization domain.Customization) ([]domain.CartLineView, error) {
	if quantity == 0 {
		quantity = 1
	}
	if quantity < 0 {
		return nil, ErrInvalidQuantity
	}

	product, err := s.catalog.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	if !product.IsAvailable && !user.IsAdmin() {
		return nil, ErrProductUnavailable
	}

	unlock := s.locks.lock(user.ID.Hex())
	defer unlock()

	lines, err := s.users.GetCart(ctx, user.ID)
	if err != nil {
		return nil, mapUserErr(err)
	}

	newLine := domain.CartLine{
		ID:            primitive.NewObjectID(),
		ProductID:     productID,
		Quantity:      quantity,
		Customization: customization,
	}

	merged := false
	for i := range lines {
		if lines[i].Key() == newLine.Key() {
			lines[i].Quantity = quantity
			lines[i].Customization = customization
			merged = true
			break
		}
	}
	if !merged {
		lines = append(lines, newLine)
	}

	if err := s.users.SaveCart(ctx, user.ID, lines); err != nil {
		return nil, mapUserErr(err)
	}

	s.invalidate(user.ID)
	return s.resolve(ctx, lines)
}

// Get returns the user's cart lines with current product details attached.
// The attached prices are for display only.
func (s *CartService) Get(ctx context.Context, userID primitive.ObjectID) ([]domain.CartLineView, error) {
	key := userID.Hex()

	// Singleflight collapses concurrent cache misses for the same user.
	v, err, _ := s.sfg.Do(key, func() (interface{}, error) {
		lines, cacheErr := s.cache.Get(ctx, key)
		if cacheErr == nil {
			return lines, nil
		}
		if !errors.Is(cacheErr, cache.ErrCacheMiss) {
			log.Printf("cart cache get error: %v", cacheErr)
		}

		gen := s.gen(key)
		before := gen.Load()

		lines, repoErr := s.users.GetCart(ctx, userID)
		if repoErr != nil {
			return nil, mapUserErr(repoErr)
		}

		go func() {
			setCtx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()

			// A write since this read makes the lines stale; skip the Set.
			if gen.Load() != before {
				return
			}
			if setErr := s.cache.Set(setCtx, key, lines); setErr != nil {
				log.Printf("cart cache set error: %v", setErr)
				return
			}
			// A write may also land while the Set is in flight. Its own
			// invalidation can race the Set, so re-check and drop the
			// entry instead of leaving a stale cart cached until TTL.
			if gen.Load() != before {
				if delErr := s.cache.Delete(setCtx, key); delErr != nil {
					log.Printf("cart cache invalidate error: %v", delErr)
				}
			}
		}()

		return lines, nil
	})
	if err != nil {
		return nil, err
	}

	return s.resolve(ctx, v.([]domain.CartLine))
}

// Remove deletes the line with the given id. Removing an absent line is
// not an error.
func (s *CartService) Remove(ctx context.Context, userID, lineID primitive.ObjectID) ([]domain.CartLineView, error) {
	unlock := s.locks.lock(userID.Hex())
	defer unlock()

	lines, err := s.users.GetCart(ctx, userID)
	if err != nil {
		return nil, mapUserErr(err)
	}

	kept := lines[:0]
	for _, line := range lines {
		if line.ID != lineID {
			kept = append(kept, line)
		}
	}

	if err := s.users.SaveCart(ctx, userID, kept); err != nil {
		return nil, mapUserErr(err)
	}

	s.invalidate(userID)
	return s.resolve(ctx, kept)
}

func (s *CartService) Clear(ctx context.Context, userID primitive.ObjectID) error {
	unlock := s.locks.lock(userID.Hex())
	defer unlock()

	if err := s.users.SaveCart(ctx, userID, nil); err != nil {
		return mapUserErr(err)
	}

	s.invalidate(userID)
	return nil
}

// resolve attaches current product details to each line. A product that
// disappeared from the catalog leaves the view's Product nil rather than
// failing the whole cart.
func (s *CartService) resolve(ctx context.Context, lines []domain.CartLine) ([]domain.CartLineView, error) {
	ids := make([]primitive.ObjectID, 0, len(lines))
	seen := make(map[primitive.ObjectID]bool, len(lines))
	for _, line := range lines {
		if !seen[line.ProductID] {
			seen[line.ProductID] = true
			ids = append(ids, line.ProductID)
		}
	}

	products, err := s.catalog.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	views := make([]domain.CartLineView, len(lines))
	for i, line := range lines {
		views[i] = domain.CartLineView{CartLine: line, Product: products[line.ProductID]}
	}
	return views, nil
}

// invalidate bumps the user's write generation before deleting the cached
// entry, so an in-flight read-side Set observes the bump and backs off.
func (s *CartService) invalidate(userID primitive.ObjectID) {
	key := userID.Hex()
	s.gen(key).Add(1)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.cache.Delete(ctx, key); err != nil {
		log.Printf("cart cache invalidate error: %v", err)
	}
}

func (s *CartService) gen(key string) *atomic.Uint64 {
	v, _ := s.gens.LoadOrStore(key, &atomic.Uint64{})
	return v.(*atomic.Uint64)
}

func mapUserErr(err error) error {
	if errors.Is(err, repository.ErrUserNotFound) {
		return ErrUserNotFound
	}
	return err
}

// keyedMutex hands out one mutex per key. Entries are never evicted; the
// map grows with the number of active users, which is acceptable for a
// single-process deployment.
type keyedMutex struct {
	locks sync.Map // key -> *sync.Mutex
}

func (k *keyedMutex) lock(key string) func() {
	v, _ := k.locks.LoadOrStore(key, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}
