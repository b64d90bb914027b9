package bot

import (
	"context"
	"errors"
	"strings"

	"github.com/heartmarshall/postbot/internal/adapter/telegram"
	"github.com/heartmarshall/postbot/internal/domain"
	"github.com/heartmarshall/postbot/internal/metrics"
)

// deliver relays text into the channel. The gateway wants some channel
// kinds addressed by a -100-prefixed broadcast form, and the store
// records only the bare id, so delivery tries the raw id first and the
// transformed form on gateway rejection. Transport-level failures
// (network, context) are not retried with the second form.
func (c *Controller) deliver(ctx context.Context, target domain.Channel, username, text string) error {
	params := telegram.SendMessageParams{
		ChatID:                target.ID,
		Text:                  renderPost(username, text),
		ParseMode:             "HTML",
		DisableWebPagePreview: true,
	}

	_, firstErr := c.gw.SendMessage(ctx, params)
	if firstErr == nil {
		metrics.Deliveries.WithLabelValues("direct").Inc()
		return nil
	}

	var apiErr *telegram.APIError
	if !errors.As(firstErr, &apiErr) {
		metrics.Deliveries.WithLabelValues("failed").Inc()
		return firstErr
	}

	params.ChatID = broadcastForm(target.ID)
	_, secondErr := c.gw.SendMessage(ctx, params)
	if secondErr == nil {
		metrics.Deliveries.WithLabelValues("broadcast_form").Inc()
		return nil
	}

	metrics.Deliveries.WithLabelValues("failed").Inc()
	return &domain.DeliveryError{ChannelID: target.ID, First: firstErr, Second: secondErr}
}

// broadcastForm converts a destination id to the -100-prefixed form
// the gateway requires for broadcast channels: 123456 → -100123456,
// -123456 → -100123456.
func broadcastForm(id string) string {
	return "-100" + strings.TrimPrefix(id, "-")
}
