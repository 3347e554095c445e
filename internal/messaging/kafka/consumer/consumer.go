package consumer

import (
	"context"
	"encoding/json"
	"strings"

	"go-attendance/internal/bootstrap"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is the part of *kafkago.Reader the consumer uses.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// ConsumeAuditEvents turns every employee/attendance domain event into an
// audit entry. Undecodable messages are committed and skipped so one bad
// payload cannot stall the partition.
func ConsumeAuditEvents(
	ctx context.Context,
	reader MessageReader,
	audit bootstrap.AuditLogger,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.audit")
	log.Info("audit consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("audit consumer stopped")
				return
			}
			log.Error("fetch audit message failed", zap.Error(err))
			continue
		}

		entry, err := toAuditLog(msg)
		if err != nil {
			log.Warn("decode domain event failed, skipping",
				zap.String("topic", msg.Topic),
				zap.Int64("offset", msg.Offset),
				zap.Error(err),
			)
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		audit.Log(ctx, entry)

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit audit message failed", zap.Error(err))
			continue
		}
	}
}

func toAuditLog(msg kafkago.Message) (bootstrap.AuditLog, error) {
	var payload map[string]any
	if err := json.Unmarshal(msg.Value, &payload); err != nil {
		return bootstrap.AuditLog{}, err
	}

	eventType, _ := payload["event_type"].(string)
	if eventType == "" {
		eventType = "unknown_event"
	}

	meta := map[string]any{
		"topic":     msg.Topic,
		"partition": msg.Partition,
		"offset":    msg.Offset,
		"key":       string(msg.Key),
		"payload":   payload,
	}
	for _, h := range msg.Headers {
		if h.Key == "request_id" {
			meta["request_id"] = string(h.Value)
		}
	}

	return bootstrap.AuditLog{
		Action:  strings.ToUpper(eventType),
		Message: "domain event received from " + msg.Topic,
		Meta:    meta,
	}, nil
}
