package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventShopRegistered EventType = "shop_registered"
	EventShopUpdated    EventType = "shop_updated"
	EventShopDeleted    EventType = "shop_deleted"
)

// Event represents a shop lifecycle event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	ShopID    string      `json:"shop_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// ShopRegisteredPayload payload.
type ShopRegisteredPayload struct {
	ShopName           string  `json:"shop_name"`
	City               string  `json:"city"`
	Latitude           float64 `json:"latitude"`
	Longitude          float64 `json:"longitude"`
	CoordinatesFromAPI bool    `json:"coordinates_from_api"`
}

// ShopUpdatedPayload lists the fields that were supplied.
type ShopUpdatedPayload struct {
	ShopName  *string `json:"shop_name,omitempty"`
	OwnerName *string `json:"owner_name,omitempty"`
}

// ShopDeletedPayload payload.
type ShopDeletedPayload struct {
	Email string `json:"email"`
}
