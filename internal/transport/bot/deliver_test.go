package bot

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/postbot/internal/adapter/telegram"
	"github.com/heartmarshall/postbot/internal/domain"
)

// deliveryGateway scripts sendMessage outcomes per chat id and records
// attempts in order.
type deliveryGateway struct {
	outcomes map[string]error
	attempts []string
}

func (g *deliveryGateway) SendMessage(_ context.Context, p telegram.SendMessageParams) (*telegram.Message, error) {
	g.attempts = append(g.attempts, p.ChatID)
	if err, ok := g.outcomes[p.ChatID]; ok && err != nil {
		return nil, err
	}
	return &telegram.Message{ID: 1}, nil
}

func (g *deliveryGateway) EditMessageText(context.Context, int64, int64, string, string) error {
	return nil
}

func (g *deliveryGateway) AnswerCallbackQuery(context.Context, string, string) error {
	return nil
}

func newDeliveryController(gw gateway) *Controller {
	c := newTestController(&gatewayMock{}, staticResolver(nil, nil))
	c.gw = gw
	return c
}

func TestDeliver_FirstAttemptSucceeds(t *testing.T) {
	t.Parallel()

	gw := &deliveryGateway{outcomes: map[string]error{}}
	c := newDeliveryController(gw)

	err := c.deliver(context.Background(), domain.Channel{ID: "123456"}, "alice", "hi")
	require.NoError(t, err)
	assert.Equal(t, []string{"123456"}, gw.attempts, "no second attempt after success")
}

func TestDeliver_FallsBackToBroadcastForm(t *testing.T) {
	t.Parallel()

	gw := &deliveryGateway{outcomes: map[string]error{
		"123456": &telegram.APIError{Code: 400, Description: "Bad Request: chat not found"},
	}}
	c := newDeliveryController(gw)

	err := c.deliver(context.Background(), domain.Channel{ID: "123456"}, "alice", "hi")
	require.NoError(t, err)
	assert.Equal(t, []string{"123456", "-100123456"}, gw.attempts)
}

func TestDeliver_BothFormsRejected(t *testing.T) {
	t.Parallel()

	gw := &deliveryGateway{outcomes: map[string]error{
		"-123456":    &telegram.APIError{Code: 400, Description: "chat not found"},
		"-100123456": &telegram.APIError{Code: 400, Description: "chat not found"},
	}}
	c := newDeliveryController(gw)

	err := c.deliver(context.Background(), domain.Channel{ID: "-123456"}, "alice", "hi")

	var deliveryErr *domain.DeliveryError
	require.ErrorAs(t, err, &deliveryErr)
	assert.Equal(t, "-123456", deliveryErr.ChannelID)
	assert.Equal(t, []string{"-123456", "-100123456"}, gw.attempts)
}

func TestDeliver_TransportErrorIsNotRetried(t *testing.T) {
	t.Parallel()

	netErr := errors.New("dial tcp: connection refused")
	gw := &deliveryGateway{outcomes: map[string]error{"123456": netErr}}
	c := newDeliveryController(gw)

	err := c.deliver(context.Background(), domain.Channel{ID: "123456"}, "alice", "hi")
	require.ErrorIs(t, err, netErr)
	assert.Len(t, gw.attempts, 1, "only gateway rejections trigger the broadcast form")
}

func TestDeliver_FailureReportsToUserOnce(t *testing.T) {
	t.Parallel()

	gw := &gatewayMock{failChats: map[string]error{
		"111":    &telegram.APIError{Code: 400, Description: "chat not found"},
		"-100111": &telegram.APIError{Code: 400, Description: "chat not found"},
	}}
	c := newTestController(gw, staticResolver(testChannels(), nil))

	c.HandleUpdate(context.Background(), messageUpdate(1, "alice", "/post"))
	c.HandleUpdate(context.Background(), callbackUpdate(1, "alice", callbackPrefix+"111"))
	c.HandleUpdate(context.Background(), messageUpdate(1, "alice", "text"))

	assert.Equal(t, msgDeliveryFailed, gw.lastSent(t).Text)

	failures := 0
	for _, p := range gw.sent {
		if p.Text == msgDeliveryFailed {
			failures++
		}
	}
	assert.Equal(t, 1, failures, "exactly one failure message to the user")

	conv := c.conversationFor(1)
	_, isIdle := conv.state.(idle)
	assert.True(t, isIdle, "conversation returns to idle after delivery failure")
}

func TestBroadcastForm(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"123456":  "-100123456",
		"-123456": "-100123456",
	}
	for in, want := range cases {
		assert.Equal(t, want, broadcastForm(in), "input %q", in)
	}
}
