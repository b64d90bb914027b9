package access

import (
	"context"
	"log/slog"
	"time"

	"github.com/heartmarshall/postbot/internal/domain"
	"github.com/heartmarshall/postbot/internal/metrics"
	"github.com/heartmarshall/postbot/pkg/memo"
)

// channelsKey is the single key of the channel-collection cache. Only
// one collection is ever read, so its namespace has capacity 1.
const channelsKey = "channels"

type directory interface {
	Channels(ctx context.Context) ([]domain.Channel, error)
	UserTags(ctx context.Context, handle string) (tags []string, found bool, err error)
}

// userEntry caches the outcome of a filtered people read. A handle
// with no record is a cacheable outcome, not an error: the store read
// succeeded.
type userEntry struct {
	Tags  []string
	Found bool
}

// Service resolves a username to the ordered, deduplicated list of
// channels its entitlement tags grant. Both remote reads are memoized
// under the configured TTL; within the window a resolution costs no
// store calls.
//
// Safe for concurrent use with different usernames: the caches are the
// only shared state and take no cross-user locks.
type Service struct {
	dir      directory
	channels *memo.Cache[string, []domain.Channel]
	users    *memo.Cache[string, userEntry]
	log      *slog.Logger
}

// NewService creates a Service. ttl bounds the staleness of both cache
// namespaces; userCapacity bounds the number of distinct handles
// cached at once.
func NewService(dir directory, ttl time.Duration, userCapacity int, logger *slog.Logger) *Service {
	return &Service{
		dir:      dir,
		channels: memo.New[string, []domain.Channel](1, ttl),
		users:    memo.New[string, userEntry](userCapacity, ttl),
		log:      logger.With("service", "access"),
	}
}

// Reset drops both caches. The next resolution re-reads the store.
func (s *Service) Reset() {
	s.channels.Purge()
	s.users.Purge()
}

func (s *Service) cachedChannels(ctx context.Context) ([]domain.Channel, error) {
	missed := false
	channels, err := s.channels.GetOrPopulate(channelsKey, func() ([]domain.Channel, error) {
		missed = true
		return s.dir.Channels(ctx)
	})
	s.countLookup("channels", missed)
	return channels, err
}

func (s *Service) cachedUser(ctx context.Context, handle string) (userEntry, error) {
	missed := false
	entry, err := s.users.GetOrPopulate(handle, func() (userEntry, error) {
		missed = true
		tags, found, err := s.dir.UserTags(ctx, handle)
		if err != nil {
			return userEntry{}, err
		}
		return userEntry{Tags: tags, Found: found}, nil
	})
	s.countLookup("users", missed)
	return entry, err
}

func (s *Service) countLookup(cache string, missed bool) {
	outcome := "hit"
	if missed {
		outcome = "miss"
	}
	metrics.CacheLookups.WithLabelValues(cache, outcome).Inc()
}
