package application

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"

	"github.com/viralforge/sigpac-weather/internal/domain"
)

// normalizeEmail lower-cases and validates an email before storage or comparison.
func normalizeEmail(email string) (string, error) {
	trimmed := strings.ToLower(strings.TrimSpace(email))
	if trimmed == "" {
		return "", fmt.Errorf("%w: email is required", domain.ErrValidation)
	}
	addr, err := mail.ParseAddress(trimmed)
	if err != nil || addr.Address != trimmed {
		return "", fmt.Errorf("%w: invalid email", domain.ErrValidation)
	}
	return trimmed, nil
}

// publishEvent is best-effort: the write it describes has already succeeded.
func (s *Service) publishEvent(ctx context.Context, eventType, partitionKey string, payload map[string]any) {
	if s.publisher == nil {
		return
	}
	raw, err := json.Marshal(payload)
	if err == nil {
		err = s.publisher.Publish(ctx, eventType, raw, partitionKey)
	}
	if err != nil {
		slog.Default().WarnContext(ctx, "event publish failed",
			"module", "application",
			"layer", "application",
			"operation", "publish_event",
			"outcome", "failure",
			"event_type", eventType,
			"error", err,
		)
	}
}
