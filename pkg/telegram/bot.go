package telegram

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/korjavin/maaqo/pkg/commands"
	"github.com/korjavin/maaqo/pkg/logger"
)

// maxMessageLength is Telegram's limit for a text message
const maxMessageLength = 4096

// Callback data of the ingredient input keyboard
const (
	callbackDone    = "done_adding"
	callbackAddMore = "add_more"
)

// Handler produces replies for chat input
type Handler interface {
	HandleCommand(ctx context.Context, chatID int64, command, args string) string
	HandleText(ctx context.Context, chatID int64, text string) (string, bool)
}

// Bot represents a Telegram bot instance
type Bot struct {
	api     *tgbotapi.BotAPI
	handler Handler
	logger  *logger.Logger
}

// New creates a new Telegram bot instance
func New(token string, handler Handler) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram bot: %w", err)
	}

	bot := &Bot{
		api:     api,
		handler: handler,
		logger:  logger.New("telegram"),
	}

	bot.logger.Info("Telegram bot created: @%s", api.Self.UserName)
	return bot, nil
}

// SetCommands publishes the command menu shown by Telegram clients
func (b *Bot) SetCommands(list []commands.Command) error {
	if _, err := b.api.Request(tgbotapi.NewSetMyCommands(botCommands(list)...)); err != nil {
		return fmt.Errorf("failed to set bot commands: %w", err)
	}
	b.logger.Info("Published %d bot commands", len(list))
	return nil
}

func botCommands(list []commands.Command) []tgbotapi.BotCommand {
	out := make([]tgbotapi.BotCommand, 0, len(list))
	for _, c := range list {
		out = append(out, tgbotapi.BotCommand{Command: c.Name, Description: c.Description})
	}
	return out
}

// Start listens for updates until ctx is cancelled
func (b *Bot) Start(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	defer b.api.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			for _, c := range b.route(ctx, update) {
				if _, err := b.api.Request(c); err != nil {
					b.logger.Error("Failed to send reply: %v", err)
				}
			}
		}
	}
}

// route turns an update into the requests to send back
func (b *Bot) route(ctx context.Context, update tgbotapi.Update) []tgbotapi.Chattable {
	if cb := update.CallbackQuery; cb != nil {
		return b.routeCallback(ctx, cb)
	}

	msg := update.Message
	if msg == nil || msg.Chat == nil || msg.Text == "" {
		return nil
	}
	chatID := msg.Chat.ID

	if msg.IsCommand() {
		b.logger.Debug("Command /%s from chat %d", msg.Command(), chatID)
		reply := b.handler.HandleCommand(ctx, chatID, msg.Command(), msg.CommandArguments())
		return textMessages(chatID, reply)
	}

	reply, ok := b.handler.HandleText(ctx, chatID, msg.Text)
	if !ok {
		return nil
	}

	out := textMessages(chatID, reply)
	if last, ok := out[len(out)-1].(tgbotapi.MessageConfig); ok {
		last.ReplyMarkup = inputKeyboard()
		out[len(out)-1] = last
	}
	return out
}

func (b *Bot) routeCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) []tgbotapi.Chattable {
	if cb.Message == nil || cb.Message.Chat == nil {
		return []tgbotapi.Chattable{tgbotapi.NewCallback(cb.ID, "")}
	}
	chatID := cb.Message.Chat.ID

	switch cb.Data {
	case callbackDone:
		reply := b.handler.HandleCommand(ctx, chatID, "done", "")
		return []tgbotapi.Chattable{
			tgbotapi.NewCallback(cb.ID, "Thanks! Your pantry is updated."),
			tgbotapi.NewEditMessageText(chatID, cb.Message.MessageID, reply),
		}
	case callbackAddMore:
		return []tgbotapi.Chattable{
			tgbotapi.NewCallback(cb.ID, "Please send more ingredients!"),
			tgbotapi.NewEditMessageText(chatID, cb.Message.MessageID, "Please send more ingredients. I'll add them to your pantry."),
		}
	default:
		b.logger.Warn("Unknown callback %q from chat %d", cb.Data, chatID)
		return []tgbotapi.Chattable{tgbotapi.NewCallback(cb.ID, "")}
	}
}

func inputKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Done adding ingredients", callbackDone),
			tgbotapi.NewInlineKeyboardButtonData("Add more", callbackAddMore),
		),
	)
}

// textMessages builds one or more messages for text, split to fit the limit
func textMessages(chatID int64, text string) []tgbotapi.Chattable {
	chunks := splitMessage(text, maxMessageLength)
	out := make([]tgbotapi.Chattable, len(chunks))
	for i, chunk := range chunks {
		out[i] = tgbotapi.NewMessage(chatID, chunk)
	}
	return out
}

// splitMessage cuts text into pieces of at most limit bytes, preferring
// line breaks and never splitting a UTF-8 sequence.
func splitMessage(text string, limit int) []string {
	var out []string
	for len(text) > limit {
		cut := strings.LastIndex(text[:limit], "\n")
		if cut <= 0 {
			cut = limit
			for cut > 0 && !isRuneStart(text[cut]) {
				cut--
			}
			if cut == 0 {
				cut = limit
			}
		}
		out = append(out, text[:cut])
		text = strings.TrimPrefix(text[cut:], "\n")
	}
	return append(out, text)
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}
