package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/pekay23/raymond-gray-platform/internal/config"
	"github.com/pekay23/raymond-gray-platform/internal/events"
)

// NotificationService handles emitting notifications for domain events.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventInquiryReceived, n.handleInquiryReceived)
	n.dispatcher.Subscribe(events.EventJobAssigned, n.handleJobAssigned)
	n.dispatcher.Subscribe(events.EventJobStarted, n.handleJobStarted)
	n.dispatcher.Subscribe(events.EventJobCompleted, n.handleJobCompleted)
	n.dispatcher.Subscribe(events.EventArrivalConfirmed, n.handleArrivalConfirmed)
}

func (n *NotificationService) handleInquiryReceived(ctx context.Context, event events.Event) error {
	n.logger.Info("InquiryReceived", zap.Int64("inquiry_id", event.InquiryID), zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleJobAssigned(ctx context.Context, event events.Event) error {
	n.logger.Info("JobAssigned", zap.Int64("inquiry_id", event.InquiryID), zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleJobStarted(ctx context.Context, event events.Event) error {
	n.logger.Info("JobStarted", zap.Int64("inquiry_id", event.InquiryID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleJobCompleted(ctx context.Context, event events.Event) error {
	n.logger.Info("JobCompleted", zap.Int64("inquiry_id", event.InquiryID), zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleArrivalConfirmed(ctx context.Context, event events.Event) error {
	n.logger.Info("ArrivalConfirmed", zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) sendEmailNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	n.logger.Debug("sendEmailNotificationStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.Int64("inquiry_id", event.InquiryID),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendWebhookNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.Int64("inquiry_id", event.InquiryID),
		zap.String("event_type", string(event.Type)))
}
