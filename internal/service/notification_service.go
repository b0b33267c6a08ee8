package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/shop-directory/internal/events"
)

// NotificationService records shop lifecycle events.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventShopRegistered, n.handleShopRegistered)
	n.dispatcher.Subscribe(events.EventShopUpdated, n.handleShopUpdated)
	n.dispatcher.Subscribe(events.EventShopDeleted, n.handleShopDeleted)
}

func (n *NotificationService) handleShopRegistered(_ context.Context, event events.Event) error {
	fields := []zap.Field{zap.String("shop_id", event.ShopID), zap.String("event_id", event.ID)}
	if p, ok := event.Payload.(events.ShopRegisteredPayload); ok {
		fields = append(fields,
			zap.String("city", p.City),
			zap.Float64("latitude", p.Latitude),
			zap.Float64("longitude", p.Longitude),
			zap.Bool("geocoded", p.CoordinatesFromAPI))
	}
	n.logger.Info("ShopRegistered", fields...)
	return nil
}

func (n *NotificationService) handleShopUpdated(_ context.Context, event events.Event) error {
	n.logger.Info("ShopUpdated", zap.String("shop_id", event.ShopID), zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handleShopDeleted(_ context.Context, event events.Event) error {
	n.logger.Info("ShopDeleted", zap.String("shop_id", event.ShopID))
	return nil
}
