package bot

import (
	"sync"

	"github.com/heartmarshall/postbot/internal/domain"
)

// Conversation state is a closed union: each variant carries only the
// fields valid in that state, and entry-point commands replace the
// value wholesale, so nothing leaks from an abandoned flow.

type convState interface{ isConvState() }

// idle: no flow in progress.
type idle struct{}

// choosingChannel: a keyboard was offered; offered maps transport ids
// to the channels behind the buttons.
type choosingChannel struct {
	offered map[string]domain.Channel
}

// awaitingText: a channel was chosen; the next text message is relayed
// into target.
type awaitingText struct {
	target domain.Channel
}

func (idle) isConvState()            {}
func (choosingChannel) isConvState() {}
func (awaitingText) isConvState()    {}

// conversation is the per-user slot. Its mutex serializes update
// handling for one user; different users' conversations proceed
// concurrently.
type conversation struct {
	mu    sync.Mutex
	state convState
}

func (c *Controller) conversationFor(userID int64) *conversation {
	c.mu.Lock()
	defer c.mu.Unlock()

	conv, ok := c.convs[userID]
	if !ok {
		conv = &conversation{state: idle{}}
		c.convs[userID] = conv
	}
	return conv
}
