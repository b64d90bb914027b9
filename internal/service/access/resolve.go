package access

import (
	"context"
	"errors"
	"log/slog"

	"github.com/heartmarshall/postbot/internal/domain"
	"github.com/heartmarshall/postbot/internal/metrics"
)

// Resolve returns the channels visible to username, each exactly once,
// ordered by the user's first matching tag and, within a tag, by
// collection order.
//
// An absent user yields domain.ErrUserNotFound. A present user whose
// tags match nothing yields an empty, non-nil slice; callers must keep
// the empty-vs-absent distinction intact.
func (s *Service) Resolve(ctx context.Context, username string) ([]domain.Channel, error) {
	if username == "" {
		return nil, domain.ErrMissingUsername
	}

	channels, err := s.cachedChannels(ctx)
	if err != nil {
		metrics.Resolutions.WithLabelValues("error").Inc()
		return nil, err
	}

	user, err := s.cachedUser(ctx, "@"+username)
	if err != nil {
		metrics.Resolutions.WithLabelValues("error").Inc()
		return nil, err
	}
	if !user.Found {
		metrics.Resolutions.WithLabelValues("user_not_found").Inc()
		return nil, domain.ErrUserNotFound
	}

	result := intersect(user.Tags, channels)

	metrics.Resolutions.WithLabelValues("ok").Inc()
	s.log.DebugContext(ctx, "resolved channels",
		slog.String("username", username),
		slog.Int("tags", len(user.Tags)),
		slog.Int("channels", len(result)),
	)

	return result, nil
}

// IsUserNotFound reports whether err is the absent-user result.
func IsUserNotFound(err error) bool {
	return errors.Is(err, domain.ErrUserNotFound)
}

// intersect walks userTags in order and appends each tag's bucket from
// the tag→channels index, skipping channels already emitted.
// First occurrence wins, so a channel reachable through several tags
// appears once, at the position of its earliest match.
func intersect(userTags []string, channels []domain.Channel) []domain.Channel {
	index := buildIndex(channels)

	result := make([]domain.Channel, 0, len(channels))
	seen := make(map[string]struct{}, len(channels))

	for _, tag := range userTags {
		for _, ch := range index[tag] {
			if _, dup := seen[ch.RecordID]; dup {
				continue
			}
			seen[ch.RecordID] = struct{}{}
			result = append(result, ch)
		}
	}
	return result
}

// buildIndex maps every tag of every channel to the channels carrying
// it, preserving collection order within each bucket.
func buildIndex(channels []domain.Channel) map[string][]domain.Channel {
	index := make(map[string][]domain.Channel)
	for _, ch := range channels {
		for _, tag := range ch.Tags {
			index[tag] = append(index[tag], ch)
		}
	}
	return index
}
