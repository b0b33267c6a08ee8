package repository

import (
	"context"
	"sync"
	"time"

	"github.com/spec-kit/shop-directory/internal/domain"
)

// memoryShopRepository keeps shops in process memory. It backs the service
// when no Postgres DSN is configured and in tests.
type memoryShopRepository struct {
	mu      sync.RWMutex
	byID    map[string]*domain.Shop
	byEmail map[string]string
	order   []string
	now     func() time.Time
}

// NewMemoryShopRepository returns an empty in-memory store.
func NewMemoryShopRepository() ShopRepository {
	return &memoryShopRepository{
		byID:    make(map[string]*domain.Shop),
		byEmail: make(map[string]string),
		now:     time.Now,
	}
}

func (r *memoryShopRepository) Create(_ context.Context, shop *domain.Shop) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[shop.Email]; exists {
		return ErrDuplicateEmail
	}
	now := r.now().UTC()
	shop.CreatedAt = now
	shop.UpdatedAt = now

	stored := *shop
	r.byID[shop.ID] = &stored
	r.byEmail[shop.Email] = shop.ID
	r.order = append(r.order, shop.ID)
	return nil
}

func (r *memoryShopRepository) GetByID(_ context.Context, id string) (*domain.Shop, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	shop, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := *shop
	return &out, nil
}

func (r *memoryShopRepository) GetByEmail(ctx context.Context, email string) (*domain.Shop, error) {
	r.mu.RLock()
	id, ok := r.byEmail[email]
	r.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *memoryShopRepository) FindByNormalizedName(_ context.Context, name string) ([]domain.Shop, error) {
	want := domain.NormalizeShopName(name)
	return r.collect(func(s *domain.Shop) bool {
		return domain.NormalizeShopName(s.ShopName) == want
	}), nil
}

func (r *memoryShopRepository) List(_ context.Context) ([]domain.Shop, error) {
	return r.collect(func(*domain.Shop) bool { return true }), nil
}

func (r *memoryShopRepository) UpdateNames(_ context.Context, id string, shopName, ownerName *string) (*domain.Shop, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	shop, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	if shopName != nil {
		shop.ShopName = *shopName
	}
	if ownerName != nil {
		shop.OwnerName = *ownerName
	}
	shop.UpdatedAt = r.now().UTC()

	out := *shop
	return &out, nil
}

func (r *memoryShopRepository) Delete(_ context.Context, id string) (*domain.Shop, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	shop, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	delete(r.byID, id)
	delete(r.byEmail, shop.Email)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return shop, nil
}

func (r *memoryShopRepository) collect(match func(*domain.Shop) bool) []domain.Shop {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Shop, 0)
	for _, id := range r.order {
		if shop := r.byID[id]; match(shop) {
			result = append(result, *shop)
		}
	}
	return result
}
