package handlers

import (
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/shop-directory/internal/api/dto"
	"github.com/spec-kit/shop-directory/internal/auth"
	"github.com/spec-kit/shop-directory/internal/service"
	apperrors "github.com/spec-kit/shop-directory/pkg/util"
	"github.com/spec-kit/shop-directory/pkg/validation"
)

const registerInputKey = "register_input"

// ShopsHandler exposes the shop directory endpoints.
type ShopsHandler struct {
	shops *service.ShopService
}

// NewShopsHandler constructs handler.
func NewShopsHandler(shopService *service.ShopService) *ShopsHandler {
	return &ShopsHandler{shops: shopService}
}

// BindRegister parses and validates the registration payload and hands it to
// the next handler in the chain.
func (h *ShopsHandler) BindRegister(c *fiber.Ctx) error {
	var req dto.ShopRegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", validation.ToDetails(err))
	}
	req.Normalize()
	if err := validation.Struct(req); err != nil {
		return apperrors.NewValidationError("all fields are required", validation.ToDetails(err))
	}

	c.Locals(registerInputKey, &service.RegisterInput{
		ShopName:  req.ShopName,
		Email:     req.Email,
		Password:  req.Password,
		OwnerName: req.OwnerName,
		Address:   req.Address,
		City:      req.City,
		Pincode:   string(req.Pincode),
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	})
	return c.Next()
}

// ResolveCoordinates fills missing coordinates from the address before
// registration proceeds.
func (h *ShopsHandler) ResolveCoordinates(c *fiber.Ctx) error {
	in, err := registerInput(c)
	if err != nil {
		return err
	}
	if err := h.shops.FillCoordinates(c.UserContext(), in); err != nil {
		return err
	}
	return c.Next()
}

// Register handles POST /api/shops/register.
func (h *ShopsHandler) Register(c *fiber.Ctx) error {
	in, err := registerInput(c)
	if err != nil {
		return err
	}
	shop, err := h.shops.Register(c.UserContext(), *in)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewShopResponse(shop))
}

// Login handles POST /api/shops/login.
func (h *ShopsHandler) Login(c *fiber.Ctx) error {
	var req dto.ShopLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", validation.ToDetails(err))
	}
	req.Email = strings.TrimSpace(req.Email)
	if err := validation.Struct(req); err != nil {
		return apperrors.NewValidationError("email and password are required", validation.ToDetails(err))
	}

	res, err := h.shops.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(dto.LoginResponse{
		Message:   "login successful",
		Token:     res.Token,
		ExpiresAt: res.ExpiresAt,
		Shop:      dto.NewShopResponse(res.Shop),
	})
}

// Search handles GET /api/shops/search/:shopName.
func (h *ShopsHandler) Search(c *fiber.Ctx) error {
	name, err := url.PathUnescape(c.Params("shopName"))
	if err != nil {
		return apperrors.NewValidationError("invalid shop name", nil)
	}
	shops, err := h.shops.SearchByName(c.UserContext(), name)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewShopListResponse(shops))
}

// AllShops handles GET /api/shops/allshops.
func (h *ShopsHandler) AllShops(c *fiber.Ctx) error {
	shops, err := h.shops.ListAll(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewShopListResponse(shops))
}

// NearMe handles GET /api/shops/nearme. An optional radiusKm query parameter
// overrides the configured radius.
func (h *ShopsHandler) NearMe(c *fiber.Ctx) error {
	shopID, ok := auth.ShopIDFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("token or session expired")
	}

	var radius *float64
	if raw := strings.TrimSpace(c.Query("radiusKm")); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return apperrors.NewValidationError("radiusKm must be a non-negative number", map[string]any{"radiusKm": raw})
		}
		radius = &v
	}

	results, err := h.shops.Nearby(c.UserContext(), shopID, radius)
	if err != nil {
		return err
	}

	out := dto.NearbyResponse{NearbyShops: make([]dto.NearbyShopResponse, 0, len(results))}
	for i := range results {
		out.NearbyShops = append(out.NearbyShops, dto.NearbyShopResponse{
			ShopResponse: dto.NewShopResponse(&results[i].Shop),
			DistanceInKm: results[i].DistanceKm,
		})
	}
	return c.JSON(out)
}

// Update handles PUT /api/shops/update.
func (h *ShopsHandler) Update(c *fiber.Ctx) error {
	shopID, ok := auth.ShopIDFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("token or session expired")
	}

	var req dto.ShopUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", validation.ToDetails(err))
	}
	if err := validation.Struct(req); err != nil {
		return apperrors.NewValidationError("invalid update", validation.ToDetails(err))
	}

	shop, err := h.shops.UpdateDetails(c.UserContext(), shopID, req.ShopName, req.OwnerName)
	if err != nil {
		return err
	}
	return c.JSON(dto.ShopMessageResponse{Message: "shop details updated successfully", Shop: dto.NewShopResponse(shop)})
}

// Delete handles DELETE /api/shops/delete.
func (h *ShopsHandler) Delete(c *fiber.Ctx) error {
	shopID, ok := auth.ShopIDFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("token or session expired")
	}

	shop, err := h.shops.Delete(c.UserContext(), shopID)
	if err != nil {
		return err
	}
	return c.JSON(dto.ShopMessageResponse{Message: "shop deleted successfully", Shop: dto.NewShopResponse(shop)})
}

func registerInput(c *fiber.Ctx) (*service.RegisterInput, error) {
	in, ok := c.Locals(registerInputKey).(*service.RegisterInput)
	if !ok || in == nil {
		return nil, apperrors.NewInternalError(nil)
	}
	return in, nil
}
