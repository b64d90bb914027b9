package bot

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/postbot/internal/adapter/telegram"
	"github.com/heartmarshall/postbot/internal/domain"
	"github.com/heartmarshall/postbot/pkg/ctxutil"
)

// callbackPrefix namespaces channel-choice callback payloads.
const callbackPrefix = "choose_channel:"

type gateway interface {
	SendMessage(ctx context.Context, p telegram.SendMessageParams) (*telegram.Message, error)
	EditMessageText(ctx context.Context, chatID, messageID int64, text, parseMode string) error
	AnswerCallbackQuery(ctx context.Context, callbackID, text string) error
}

type resolver interface {
	Resolve(ctx context.Context, username string) ([]domain.Channel, error)
}

// Controller drives the three-state conversation machine over
// incoming updates: Idle → ChoosingChannel → AwaitingText → Idle.
type Controller struct {
	gw     gateway
	access resolver
	log    *slog.Logger

	mu    sync.Mutex
	convs map[int64]*conversation
}

// NewController creates a Controller.
func NewController(gw gateway, access resolver, logger *slog.Logger) *Controller {
	return &Controller{
		gw:     gw,
		access: access,
		log:    logger.With("transport", "bot"),
		convs:  make(map[int64]*conversation),
	}
}

// logger returns the controller logger tagged with the per-update
// correlation id, so one turn's log entries can be tied together.
func (c *Controller) logger(ctx context.Context) *slog.Logger {
	if id := ctxutil.CorrelationIDFromCtx(ctx); id != "" {
		return c.log.With(slog.String("correlation_id", id))
	}
	return c.log
}

// HandleUpdate processes one update end to end. A panic inside a
// handler is recovered and logged; only the current turn dies, never
// the process. Safe for concurrent invocation; updates for the same
// user serialize on the conversation lock.
func (c *Controller) HandleUpdate(ctx context.Context, upd telegram.Update) {
	ctx = ctxutil.WithCorrelationID(ctx, uuid.NewString())

	defer func() {
		if r := recover(); r != nil {
			c.logger(ctx).ErrorContext(ctx, "panic while handling update",
				slog.Int64("update_id", upd.ID),
				slog.Any("panic", r),
			)
		}
	}()

	switch {
	case upd.CallbackQuery != nil:
		cb := upd.CallbackQuery
		conv := c.conversationFor(cb.From.ID)
		conv.mu.Lock()
		defer conv.mu.Unlock()
		c.handleCallback(ctx, conv, cb)

	case upd.Message != nil && upd.Message.From != nil:
		msg := upd.Message
		conv := c.conversationFor(msg.From.ID)
		conv.mu.Lock()
		defer conv.mu.Unlock()
		c.handleMessage(ctx, conv, msg)
	}
}

func (c *Controller) handleMessage(ctx context.Context, conv *conversation, msg *telegram.Message) {
	switch command(msg.Text) {
	case "/start", "/help":
		conv.state = idle{}
		c.reply(ctx, msg.Chat.ID, msgHelp)
	case "/my_channels":
		conv.state = idle{}
		c.handleMyChannels(ctx, msg)
	case "/post":
		c.handlePost(ctx, conv, msg)
	default:
		if st, ok := conv.state.(awaitingText); ok {
			conv.state = idle{}
			c.handlePostText(ctx, st.target, msg)
			return
		}
		// Free text outside a flow falls back to help, like any
		// unknown command.
		conv.state = idle{}
		c.reply(ctx, msg.Chat.ID, msgHelp)
	}
}

// command extracts the leading slash command, dropping arguments and
// the @botname suffix used in group mentions.
func command(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "/") {
		return ""
	}
	cmd, _, _ := strings.Cut(text, " ")
	cmd, _, _ = strings.Cut(cmd, "@")
	return cmd
}

func (c *Controller) handleMyChannels(ctx context.Context, msg *telegram.Message) {
	channels, err := c.access.Resolve(ctx, msg.From.Username)
	if err != nil {
		c.replyResolveError(ctx, msg.Chat.ID, msg.From.Username, err)
		return
	}
	if len(channels) == 0 {
		c.reply(ctx, msg.Chat.ID, msgNoChannels)
		return
	}

	_, err = c.gw.SendMessage(ctx, telegram.SendMessageParams{
		ChatID:                strconv.FormatInt(msg.Chat.ID, 10),
		Text:                  renderChannelList(channels),
		ParseMode:             "HTML",
		DisableWebPagePreview: true,
	})
	if err != nil {
		c.logSendFailure(ctx, msg.Chat.ID, err)
	}
}

func (c *Controller) handlePost(ctx context.Context, conv *conversation, msg *telegram.Message) {
	conv.state = idle{}

	channels, err := c.access.Resolve(ctx, msg.From.Username)
	if err != nil {
		c.replyResolveError(ctx, msg.Chat.ID, msg.From.Username, err)
		return
	}

	postable := make([]domain.Channel, 0, len(channels))
	offered := make(map[string]domain.Channel, len(channels))
	for _, ch := range channels {
		if !ch.Postable() {
			continue
		}
		postable = append(postable, ch)
		offered[ch.ID] = ch
	}

	if len(postable) == 0 {
		c.reply(ctx, msg.Chat.ID, msgCannotPost)
		return
	}

	_, err = c.gw.SendMessage(ctx, telegram.SendMessageParams{
		ChatID:      strconv.FormatInt(msg.Chat.ID, 10),
		Text:        msgChooseChannel,
		ReplyMarkup: keyboard(postable),
	})
	if err != nil {
		c.logSendFailure(ctx, msg.Chat.ID, err)
		return
	}

	conv.state = choosingChannel{offered: offered}
}

func (c *Controller) handleCallback(ctx context.Context, conv *conversation, cb *telegram.CallbackQuery) {
	channelID, ok := strings.CutPrefix(cb.Data, callbackPrefix)
	if !ok {
		c.answerCallback(ctx, cb.ID, "")
		return
	}

	st, choosing := conv.state.(choosingChannel)
	if !choosing {
		// Stale button from an abandoned or completed flow.
		c.answerCallback(ctx, cb.ID, msgStaleChoice)
		return
	}
	target, known := st.offered[channelID]
	if !known {
		c.logger(ctx).WarnContext(ctx, "callback for unoffered channel",
			slog.String("channel_id", channelID),
		)
		c.answerCallback(ctx, cb.ID, msgStaleChoice)
		return
	}

	c.answerCallback(ctx, cb.ID, "")
	conv.state = awaitingText{target: target}

	if cb.Message != nil {
		err := c.gw.EditMessageText(ctx, cb.Message.Chat.ID, cb.Message.ID, renderWritePrompt(target), "HTML")
		if err != nil {
			c.logSendFailure(ctx, cb.Message.Chat.ID, err)
		}
	}
}

func (c *Controller) handlePostText(ctx context.Context, target domain.Channel, msg *telegram.Message) {
	err := c.deliver(ctx, target, msg.From.Username, msg.Text)
	if err != nil {
		var deliveryErr *domain.DeliveryError
		if errors.As(err, &deliveryErr) {
			c.logger(ctx).ErrorContext(ctx, "channel delivery failed",
				slog.String("channel_id", deliveryErr.ChannelID),
				slog.String("channel_name", target.Name),
				slog.String("username", msg.From.Username),
				slog.String("first_attempt", deliveryErr.First.Error()),
				slog.String("second_attempt", deliveryErr.Second.Error()),
			)
		} else {
			c.logSendFailure(ctx, msg.Chat.ID, err)
		}
		c.reply(ctx, msg.Chat.ID, msgDeliveryFailed)
		return
	}

	c.reply(ctx, msg.Chat.ID, msgPosted)
}

func (c *Controller) replyResolveError(ctx context.Context, chatID int64, username string, err error) {
	switch {
	case errors.Is(err, domain.ErrMissingUsername):
		c.reply(ctx, chatID, msgMissingUsername)
	case errors.Is(err, domain.ErrUserNotFound):
		c.reply(ctx, chatID, msgUserNotFound)
	default:
		c.logger(ctx).ErrorContext(ctx, "resolve failed",
			slog.String("username", username),
			slog.String("error", err.Error()),
		)
		c.reply(ctx, chatID, msgTemporaryError)
	}
}

func (c *Controller) reply(ctx context.Context, chatID int64, text string) {
	_, err := c.gw.SendMessage(ctx, telegram.SendMessageParams{
		ChatID: strconv.FormatInt(chatID, 10),
		Text:   text,
	})
	if err != nil {
		c.logSendFailure(ctx, chatID, err)
	}
}

func (c *Controller) answerCallback(ctx context.Context, callbackID, text string) {
	if err := c.gw.AnswerCallbackQuery(ctx, callbackID, text); err != nil {
		c.logger(ctx).WarnContext(ctx, "answer callback failed", slog.String("error", err.Error()))
	}
}

func (c *Controller) logSendFailure(ctx context.Context, chatID int64, err error) {
	c.logger(ctx).WarnContext(ctx, "send to user failed",
		slog.Int64("chat_id", chatID),
		slog.String("error", err.Error()),
	)
}
