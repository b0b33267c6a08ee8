package service

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/shop-directory/internal/auth"
	"github.com/spec-kit/shop-directory/internal/config"
	"github.com/spec-kit/shop-directory/internal/domain"
	"github.com/spec-kit/shop-directory/internal/events"
	"github.com/spec-kit/shop-directory/internal/geocode"
	"github.com/spec-kit/shop-directory/internal/proximity"
	"github.com/spec-kit/shop-directory/internal/repository"
	apperrors "github.com/spec-kit/shop-directory/pkg/util"
)

// ShopService coordinates registration, login and shop queries.
type ShopService struct {
	shops      repository.ShopRepository
	resolver   geocode.Resolver
	dispatcher events.Dispatcher
	tokenMgr   *auth.TokenManager
	logger     *zap.Logger
	bcryptCost int
	radiusKm   float64
}

// ShopDependencies bundles collaborators for the shop service.
type ShopDependencies struct {
	ShopRepo   repository.ShopRepository
	Resolver   geocode.Resolver
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// RegisterInput describes a registration request. Nil coordinates mean the
// client did not send them.
type RegisterInput struct {
	ShopName  string
	Email     string
	Password  string
	OwnerName string
	Address   string
	City      string
	Pincode   string
	Latitude  *float64
	Longitude *float64

	resolved bool
}

// LoginResult is returned by a successful login.
type LoginResult struct {
	Shop      *domain.Shop
	Token     string
	ExpiresAt time.Time
}

// NewShopService builds the service.
func NewShopService(cfg config.Config, deps ShopDependencies) *ShopService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	resolver := deps.Resolver
	if resolver == nil {
		resolver = geocode.Disabled{}
	}
	radius := cfg.Proximity.RadiusKm
	if radius <= 0 {
		radius = proximity.DefaultRadiusKm
	}
	return &ShopService{
		shops:      deps.ShopRepo,
		resolver:   resolver,
		dispatcher: deps.Dispatcher,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, auth.DefaultTokenTTL),
		logger:     logger,
		bcryptCost: cfg.Auth.BcryptCost,
		radiusKm:   radius,
	}
}

// FillCoordinates resolves the address when the client did not send both
// coordinates. It calls the resolver at most once and never retries.
func (s *ShopService) FillCoordinates(ctx context.Context, in *RegisterInput) error {
	if in.Latitude != nil && in.Longitude != nil {
		return nil
	}

	address := geocode.FormatAddress(in.Address, in.City, in.Pincode)
	coords, err := s.resolver.Resolve(ctx, address)
	switch {
	case errors.Is(err, geocode.ErrNotFound):
		return apperrors.NewValidationError("unable to fetch coordinates for the provided address", nil)
	case err != nil:
		s.logger.Error("geocoding failed", zap.String("address", address), zap.Error(err))
		return apperrors.NewProviderError("an error occurred while fetching coordinates", err)
	}

	in.Latitude = &coords.Latitude
	in.Longitude = &coords.Longitude
	in.resolved = true
	return nil
}

// Register creates a new shop account.
func (s *ShopService) Register(ctx context.Context, in RegisterInput) (*domain.Shop, error) {
	if in.Latitude == nil || in.Longitude == nil {
		return nil, apperrors.NewValidationError("all fields are required", map[string]any{
			"latitude":  "is required",
			"longitude": "is required",
		})
	}
	coords := domain.Coordinates{Latitude: *in.Latitude, Longitude: *in.Longitude}
	if !coords.Valid() {
		return nil, apperrors.NewValidationError("latitude and longitude must be numbers", nil)
	}

	email := strings.TrimSpace(in.Email)
	if _, err := s.shops.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewConflict("shop already exists", map[string]any{"email": email})
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NewInternalError(err)
	}

	hash, err := auth.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, apperrors.NewValidationError("password must be at most 72 bytes", map[string]any{
				"password": "must be at most 72 bytes",
			})
		}
		return nil, apperrors.NewInternalError(err)
	}

	shop := &domain.Shop{
		ID:           uuid.NewString(),
		ShopName:     strings.TrimSpace(in.ShopName),
		Email:        email,
		PasswordHash: hash,
		OwnerName:    strings.TrimSpace(in.OwnerName),
		Address:      strings.TrimSpace(in.Address),
		City:         strings.TrimSpace(in.City),
		Pincode:      strings.TrimSpace(in.Pincode),
		Latitude:     coords.Latitude,
		Longitude:    coords.Longitude,
	}
	if err := s.shops.Create(ctx, shop); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, apperrors.NewConflict("shop already exists", map[string]any{"email": email})
		}
		return nil, apperrors.NewInternalError(err)
	}

	s.publish(ctx, events.EventShopRegistered, shop.ID, events.ShopRegisteredPayload{
		ShopName:           shop.ShopName,
		City:               shop.City,
		Latitude:           shop.Latitude,
		Longitude:          shop.Longitude,
		CoordinatesFromAPI: in.resolved,
	})
	return shop, nil
}

// Login authenticates a shop owner and issues a session token.
func (s *ShopService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	shop, err := s.shops.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewInvalidCredentials()
		}
		return nil, apperrors.NewInternalError(err)
	}
	if err := auth.ComparePassword(shop.PasswordHash, password); err != nil {
		return nil, apperrors.NewInvalidCredentials()
	}

	token, exp, err := s.tokenMgr.GenerateToken(shop.ID)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return &LoginResult{Shop: shop, Token: token, ExpiresAt: exp}, nil
}

// SearchByName returns shops whose name matches ignoring case and whitespace.
func (s *ShopService) SearchByName(ctx context.Context, name string) ([]domain.Shop, error) {
	if domain.NormalizeShopName(name) == "" {
		return nil, apperrors.NewValidationError("shop name is required", nil)
	}
	shops, err := s.shops.FindByNormalizedName(ctx, name)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if len(shops) == 0 {
		return nil, apperrors.NewNotFound("shop", map[string]any{"shopName": name})
	}
	return shops, nil
}

// ListAll returns every registered shop.
func (s *ShopService) ListAll(ctx context.Context) ([]domain.Shop, error) {
	shops, err := s.shops.List(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if len(shops) == 0 {
		return nil, apperrors.NewNotFound("shops", nil)
	}
	return shops, nil
}

// Nearby lists the other shops within radiusKm of the given shop, nearest
// first. A nil radius uses the configured default.
func (s *ShopService) Nearby(ctx context.Context, shopID string, radiusKm *float64) ([]proximity.Result, error) {
	radius := s.radiusKm
	if radiusKm != nil {
		if *radiusKm < 0 || math.IsNaN(*radiusKm) || math.IsInf(*radiusKm, 0) {
			return nil, apperrors.NewValidationError("radiusKm must be a non-negative number", nil)
		}
		radius = *radiusKm
	}

	origin, err := s.shops.GetByID(ctx, shopID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("shop", nil)
		}
		return nil, apperrors.NewInternalError(err)
	}

	population, err := s.shops.List(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return proximity.Nearby(*origin, population, radius), nil
}

// UpdateDetails changes the shop and/or owner name. Blank values count as
// not provided; a request with neither is rejected.
func (s *ShopService) UpdateDetails(ctx context.Context, shopID string, shopName, ownerName *string) (*domain.Shop, error) {
	shopName = nonBlank(shopName)
	ownerName = nonBlank(ownerName)
	if shopName == nil && ownerName == nil {
		return nil, apperrors.NewValidationError("no updates provided", nil)
	}

	shop, err := s.shops.UpdateNames(ctx, shopID, shopName, ownerName)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("shop", nil)
		}
		return nil, apperrors.NewInternalError(err)
	}

	s.publish(ctx, events.EventShopUpdated, shop.ID, events.ShopUpdatedPayload{ShopName: shopName, OwnerName: ownerName})
	return shop, nil
}

// Delete removes the shop and returns what was stored.
func (s *ShopService) Delete(ctx context.Context, shopID string) (*domain.Shop, error) {
	shop, err := s.shops.Delete(ctx, shopID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("shop", nil)
		}
		return nil, apperrors.NewInternalError(err)
	}

	s.publish(ctx, events.EventShopDeleted, shop.ID, events.ShopDeletedPayload{Email: shop.Email})
	return shop, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *ShopService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *ShopService) publish(ctx context.Context, eventType events.EventType, shopID string, payload any) {
	if s.dispatcher == nil {
		return
	}
	event := events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		ShopID:    shopID,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("event handler failed", zap.String("event_type", string(eventType)), zap.Error(err))
	}
}

func nonBlank(v *string) *string {
	if v == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*v)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
