package bot

import (
	"fmt"
	"strings"

	"github.com/heartmarshall/postbot/internal/adapter/telegram"
	"github.com/heartmarshall/postbot/internal/domain"
)

// User-facing texts. The bot speaks Russian; identifiers stay English.
const (
	msgHelp            = "Доступные команды: /start, /help, /my_channels, /post."
	msgNoChannels      = "У вас пока нет доступов к каналам"
	msgCannotPost      = "Вы пока не можете постить запросы в каналы"
	msgUserNotFound    = "Вас нет в нашей базе. Обратитесь к администратору."
	msgMissingUsername = "У вашего аккаунта нет публичного имени пользователя (@username), без него бот работать не может."
	msgChooseChannel   = "Выберите канал для отправки запроса:"
	msgPosted          = "Ваш запрос отправлен в канал"
	msgDeliveryFailed  = "Не удалось отправить запрос в канал. Попробуйте позже."
	msgTemporaryError  = "Что-то пошло не так, попробуйте позже."
	msgStaleChoice     = "Эта кнопка устарела, отправьте /post ещё раз"
)

// renderChannelList formats the /my_channels reply: one linked name
// per line.
func renderChannelList(channels []domain.Channel) string {
	var b strings.Builder
	b.WriteString("Доступные вам каналы:")
	for _, ch := range channels {
		fmt.Fprintf(&b, "\n<a href=\"%s\">%s</a>", ch.URL, ch.Label())
	}
	return b.String()
}

// renderWritePrompt formats the "now type your request" message shown
// after a channel was chosen.
func renderWritePrompt(ch domain.Channel) string {
	return fmt.Sprintf("Напечатайте запрос, который вы хотите отправить в канал\n<a href=\"%s\">%s</a>", ch.URL, ch.Name)
}

// renderPost formats the message relayed into the channel.
func renderPost(username, text string) string {
	return fmt.Sprintf("Запрос от @%s\n\n%s", username, text)
}

// keyboard builds one button row per postable channel.
func keyboard(channels []domain.Channel) *telegram.InlineKeyboardMarkup {
	rows := make([][]telegram.InlineKeyboardButton, 0, len(channels))
	for _, ch := range channels {
		rows = append(rows, []telegram.InlineKeyboardButton{{
			Text:         ch.Label(),
			CallbackData: callbackPrefix + ch.ID,
		}})
	}
	return &telegram.InlineKeyboardMarkup{InlineKeyboard: rows}
}
