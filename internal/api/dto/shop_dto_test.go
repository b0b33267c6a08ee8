package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/shop-directory/internal/domain"
)

func TestFlexString_AcceptsStringOrNumber(t *testing.T) {
	var req ShopRegisterRequest
	require.NoError(t, json.Unmarshal([]byte(`{"pincode":560001}`), &req))
	assert.Equal(t, FlexString("560001"), req.Pincode)

	require.NoError(t, json.Unmarshal([]byte(`{"pincode":"560 001"}`), &req))
	assert.Equal(t, FlexString("560 001"), req.Pincode)

	assert.Error(t, json.Unmarshal([]byte(`{"pincode":true}`), &req))
}

func TestShopResponse_OmitsPasswordHash(t *testing.T) {
	shop := &domain.Shop{
		ID:           "id-1",
		ShopName:     "Sai Stores",
		Email:        "a@x.com",
		PasswordHash: "$2a$10$secret",
		CreatedAt:    time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	raw, err := json.Marshal(NewShopResponse(shop))
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "secret")
	assert.Contains(t, string(raw), `"shopName":"Sai Stores"`)
}

func TestNearbyShopResponse_FlattensShop(t *testing.T) {
	raw, err := json.Marshal(NearbyShopResponse{
		ShopResponse: ShopResponse{ID: "b", ShopName: "B"},
		DistanceInKm: 1.11,
	})
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "b", decoded["id"])
	assert.Equal(t, 1.11, decoded["distanceInKm"])
}
