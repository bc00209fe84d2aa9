package stream

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-lambda-go/events"
)

// Handler routes DynamoDB stream events to registered appliers.
type Handler struct {
	registry *Registry
	logger   *slog.Logger
}

// NewHandler creates a new stream handler.
func NewHandler(r *Registry, logger *slog.Logger) *Handler {
	if r == nil {
		r = NewRegistry()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		registry: r,
		logger:   logger,
	}
}

// HandleEvent applies every record in event, in order.
// This function is designed to be used as an AWS Lambda handler. It stops at
// the first failing record so the batch can be retried.
func (h *Handler) HandleEvent(ctx context.Context, event events.DynamoDBEvent) error {
	applied := 0
	for _, record := range event.Records {
		if err := ctx.Err(); err != nil {
			return err
		}

		table := TableFromARN(record.EventSourceArn)
		applier := h.registry.For(table)
		if applier == nil {
			h.logger.Debug("skipping record for unregistered table",
				"eventID", record.EventID,
				"table", table,
			)
			continue
		}

		if err := applier.Apply(record); err != nil {
			h.logger.Error("failed to apply record",
				"eventID", record.EventID,
				"table", table,
				"eventName", record.EventName,
				"error", err,
			)
			return fmt.Errorf("record %s: %w", record.EventID, err)
		}
		applied++
	}

	h.logger.Info("stream batch applied",
		"records", len(event.Records),
		"applied", applied,
	)
	return nil
}
