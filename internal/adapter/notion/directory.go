package notion

import (
	"context"
	"log/slog"

	"github.com/heartmarshall/postbot/internal/domain"
	"github.com/heartmarshall/postbot/internal/metrics"
)

// Directory combines the reader and the projection into the two reads
// the resolver needs: the full channel collection and a single user's
// entitlement record.
type Directory struct {
	client     *Client
	channelsID string
	peopleID   string
	log        *slog.Logger
}

// NewDirectory creates a Directory over the given collections.
func NewDirectory(client *Client, channelsID, peopleID string, logger *slog.Logger) *Directory {
	return &Directory{
		client:     client,
		channelsID: channelsID,
		peopleID:   peopleID,
		log:        logger.With("adapter", "notion"),
	}
}

// Channels reads and decodes the full channel collection.
func (d *Directory) Channels(ctx context.Context) ([]domain.Channel, error) {
	records, err := d.client.QueryAll(ctx, d.channelsID)
	if err != nil {
		return nil, err
	}
	metrics.StoreReads.WithLabelValues("channels").Inc()

	channels := DecodeChannels(records)
	if skipped := len(records) - len(channels); skipped > 0 {
		d.log.DebugContext(ctx, "malformed channel records skipped",
			slog.Int("skipped", skipped),
			slog.Int("decoded", len(channels)),
		)
	}
	return channels, nil
}

// UserTags reads the people record matching the handle and returns its
// entitlement tags in store order. found is false when no record
// matches; that is a successful read, not an error.
func (d *Directory) UserTags(ctx context.Context, handle string) (tags []string, found bool, err error) {
	records, err := d.client.QueryFiltered(ctx, d.peopleID, propTelegram, "url", handle)
	if err != nil {
		return nil, false, err
	}
	metrics.StoreReads.WithLabelValues("people").Inc()

	if len(records) == 0 {
		return nil, false, nil
	}
	return DecodeUserTags(records[0]), true, nil
}
