package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/motopecasjacare/erp/internal/domain"
	apperrors "github.com/motopecasjacare/erp/internal/pkg/errors"
)

const (
	cartPrefix        = "cart:"
	cartUpdateRetries = 5
)

// CartStore keeps sales carts in Redis with a sliding TTL
type CartStore struct {
	client *redis.Client
	ttl    time.Duration
	now    func() time.Time
}

// NewCartStore creates a new cart store
func NewCartStore(client *redis.Client, ttl time.Duration) *CartStore {
	return &CartStore{client: client, ttl: ttl, now: time.Now}
}

// Create stores a new empty cart
func (s *CartStore) Create(ctx context.Context) (*domain.Cart, error) {
	now := s.now().UTC()
	cart := &domain.Cart{
		ID:        uuid.NewString(),
		Items:     []domain.CartItem{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	data, err := json.Marshal(cart)
	if err != nil {
		return nil, err
	}
	if err := s.client.Set(ctx, cartPrefix+cart.ID, data, s.ttl).Err(); err != nil {
		return nil, fmt.Errorf("failed to store cart: %w", err)
	}
	return cart, nil
}

// Get loads a cart
func (s *CartStore) Get(ctx context.Context, id string) (*domain.Cart, error) {
	return s.load(ctx, s.client, id)
}

type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func (s *CartStore) load(ctx context.Context, c getter, id string) (*domain.Cart, error) {
	data, err := c.Get(ctx, cartPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, apperrors.NotFound("cart")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	var cart domain.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		return nil, fmt.Errorf("failed to decode cart: %w", err)
	}
	if cart.Items == nil {
		cart.Items = []domain.CartItem{}
	}
	return &cart, nil
}

// Update applies fn to a cart under optimistic locking and stores the
// result. fn may be called more than once when the cart changes concurrently.
func (s *CartStore) Update(ctx context.Context, id string, fn func(*domain.Cart) error) (*domain.Cart, error) {
	key := cartPrefix + id
	var updated *domain.Cart

	txf := func(tx *redis.Tx) error {
		cart, err := s.load(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := fn(cart); err != nil {
			return err
		}
		cart.UpdatedAt = s.now().UTC()

		data, err := json.Marshal(cart)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, s.ttl)
			return nil
		})
		if err == nil {
			updated = cart
		}
		return err
	}

	for range cartUpdateRetries {
		err := s.client.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return updated, nil
	}
	return nil, apperrors.Conflict("cart was modified concurrently, try again")
}

// Delete removes a cart
func (s *CartStore) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, cartPrefix+id).Err()
}
