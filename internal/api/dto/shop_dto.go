package dto

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"github.com/spec-kit/shop-directory/internal/domain"
)

// FlexString accepts either a JSON string or a JSON number. Pincodes arrive
// in both forms.
type FlexString string

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexString(n.String())
	return nil
}

// ShopRegisterRequest payload for POST /api/shops/register.
type ShopRegisterRequest struct {
	ShopName  string     `json:"shopName" validate:"required,max=200"`
	Email     string     `json:"email" validate:"required,email"`
	Password  string     `json:"password" validate:"required"`
	OwnerName string     `json:"ownerName" validate:"required,max=200"`
	Address   string     `json:"address" validate:"required"`
	City      string     `json:"city" validate:"required"`
	Pincode   FlexString `json:"pincode" validate:"required"`
	Latitude  *float64   `json:"latitude" validate:"omitempty,latitude"`
	Longitude *float64   `json:"longitude" validate:"omitempty,longitude"`
}

// Normalize trims surrounding whitespace so blank fields fail "required".
func (r *ShopRegisterRequest) Normalize() {
	r.ShopName = strings.TrimSpace(r.ShopName)
	r.Email = strings.TrimSpace(r.Email)
	r.OwnerName = strings.TrimSpace(r.OwnerName)
	r.Address = strings.TrimSpace(r.Address)
	r.City = strings.TrimSpace(r.City)
	r.Pincode = FlexString(strings.TrimSpace(string(r.Pincode)))
}

// ShopLoginRequest payload for POST /api/shops/login.
type ShopLoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// ShopUpdateRequest payload for PUT /api/shops/update.
type ShopUpdateRequest struct {
	ShopName  *string `json:"shopName" validate:"omitempty,max=200"`
	OwnerName *string `json:"ownerName" validate:"omitempty,max=200"`
}

// ShopResponse is the public view of a shop. The password hash never leaves
// the service.
type ShopResponse struct {
	ID        string    `json:"id"`
	ShopName  string    `json:"shopName"`
	Email     string    `json:"email"`
	OwnerName string    `json:"ownerName"`
	Address   string    `json:"address"`
	City      string    `json:"city"`
	Pincode   string    `json:"pincode"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	CreatedAt time.Time `json:"createdAt"`
}

// NearbyShopResponse adds the distance from the caller's shop.
type NearbyShopResponse struct {
	ShopResponse
	DistanceInKm float64 `json:"distanceInKm"`
}

// NearbyResponse wraps the nearby list.
type NearbyResponse struct {
	NearbyShops []NearbyShopResponse `json:"nearbyShops"`
}

// LoginResponse is returned by a successful login.
type LoginResponse struct {
	Message   string       `json:"message"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	Shop      ShopResponse `json:"shop"`
}

// ShopMessageResponse carries a confirmation message and the affected shop.
type ShopMessageResponse struct {
	Message string       `json:"message"`
	Shop    ShopResponse `json:"shop"`
}

// NewShopResponse maps a domain shop to its public view.
func NewShopResponse(s *domain.Shop) ShopResponse {
	return ShopResponse{
		ID:        s.ID,
		ShopName:  s.ShopName,
		Email:     s.Email,
		OwnerName: s.OwnerName,
		Address:   s.Address,
		City:      s.City,
		Pincode:   s.Pincode,
		Latitude:  s.Latitude,
		Longitude: s.Longitude,
		CreatedAt: s.CreatedAt,
	}
}

// NewShopListResponse maps a slice of shops.
func NewShopListResponse(shops []domain.Shop) []ShopResponse {
	out := make([]ShopResponse, 0, len(shops))
	for i := range shops {
		out = append(out, NewShopResponse(&shops[i]))
	}
	return out
}
