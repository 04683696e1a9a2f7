package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/sbilibin2017/gw-user-accounts/internal/logger"
	"github.com/sbilibin2017/gw-user-accounts/internal/models"
)

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error // Writes messages to Kafka
	Close() error                                                   // Closes the Kafka writer
}

// publishUserEvent publishes an account lifecycle event to Kafka.
// Publishing is best-effort: failures are logged, never surfaced to the
// request that triggered the event.
func publishUserEvent(ctx context.Context, writer KafkaWriter, eventType string, user *models.UserDB) {
	if writer == nil {
		logger.Log.Debugw("Kafka writer not configured, skipping event", "type", eventType, "user_id", user.UserID)
		return
	}

	event := models.UserEvent{
		EventID:    uuid.New().String(),
		Type:       eventType,
		UserID:     user.UserID,
		Username:   user.Username,
		OccurredAt: time.Now().UTC(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Log.Errorw("failed to marshal user event", "type", eventType, "user_id", user.UserID, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(user.UserID.String()),
		Value: data,
	}

	if err := writer.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("failed to publish user event", "type", eventType, "user_id", user.UserID, "error", err)
		return
	}

	logger.Log.Infow("user event published", "type", eventType, "user_id", user.UserID)
}
