// Package telegram bridges Telegram long polling to the conversation
// controller. It owns everything Telegram-specific: decoding updates into
// domain events, session keys, inline keyboards, and the edit-with-fallback
// delivery rule.
package telegram

import (
	"context"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"coinwatch/internal/domain"
)

const (
	pollTimeoutSec  = 30
	placeholderText = "⏳ Please wait, fetching the latest prices..."
)

// dispatcher is the controller contract the transport depends on.
type dispatcher interface {
	Handle(ctx context.Context, sessionKey string, ev domain.Event) (domain.Reply, domain.ViewMode)
}

// Bot runs the Telegram update loop and delivers controller replies.
type Bot struct {
	api        *tgbotapi.BotAPI
	dispatcher dispatcher
	logger     *zap.Logger
}

// NewBot creates a bot bound to the given token.
func NewBot(token string, d dispatcher, logger *zap.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create telegram API client")
	}

	return &Bot{api: api, dispatcher: d, logger: logger}, nil
}

// Run polls for updates until the context is cancelled. Each update is
// handled in its own goroutine so one session's provider call never blocks
// another session's events.
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = pollTimeoutSec

	updates := b.api.GetUpdatesChan(u)
	b.logger.Info("telegram polling started", zap.String("bot", b.api.Self.UserName))

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			go b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil && update.Message.IsCommand():
		b.handleCommand(ctx, update.Message)
	}
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	key := sessionKey(chatID)

	switch msg.Command() {
	case "start":
		var name string
		if msg.From != nil {
			name = msg.From.FirstName
		}
		reply, _ := b.dispatcher.Handle(ctx, key, domain.StartRequested{Name: name})
		if err := b.send(chatID, reply); err != nil {
			b.logger.Error("failed to send greeting", zap.Int64("chat", chatID), zap.Error(err))
		}
	case "price":
		placeholder, err := b.api.Send(tgbotapi.NewMessage(chatID, placeholderText))
		if err != nil {
			b.logger.Error("failed to send placeholder", zap.Int64("chat", chatID), zap.Error(err))
			return
		}

		reply, _ := b.dispatcher.Handle(ctx, key, domain.ListRequested{})
		b.editOrSend(chatID, placeholder.MessageID, reply)
	default:
		reply, _ := b.dispatcher.Handle(ctx, key, domain.UnknownCommand{Text: msg.Command()})
		if err := b.send(chatID, reply); err != nil {
			b.logger.Error("failed to send guidance", zap.Int64("chat", chatID), zap.Error(err))
		}
	}
}

func (b *Bot) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if _, err := b.api.Request(tgbotapi.NewCallback(cb.ID, "")); err != nil {
		b.logger.Warn("failed to ack callback query", zap.Error(err))
	}

	if cb.Message == nil {
		return
	}
	chatID := cb.Message.Chat.ID

	// decode the token exactly once: the reserved sentinel routes back to the
	// overview, anything else is an asset id
	var ev domain.Event
	if cb.Data == domain.BackToListToken {
		ev = domain.BackToList{}
	} else {
		ev = domain.AssetSelected{ID: domain.AssetID(cb.Data)}
	}

	reply, _ := b.dispatcher.Handle(ctx, sessionKey(chatID), ev)
	b.editOrSend(chatID, cb.Message.MessageID, reply)
}

// editOrSend replaces the message in place, falling back to a fresh send when
// the edit is rejected (e.g. the message is too old). Only both steps failing
// is treated as a delivery error, and it is logged rather than surfaced.
func (b *Bot) editOrSend(chatID int64, messageID int, reply domain.Reply) {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, reply.Text)
	edit.ParseMode = tgbotapi.ModeMarkdown
	if kb, ok := keyboard(reply.Controls); ok {
		edit.ReplyMarkup = &kb
	}

	_, editErr := b.api.Send(edit)
	if editErr == nil {
		return
	}

	if sendErr := b.send(chatID, reply); sendErr != nil {
		b.logger.Error("reply delivery failed",
			zap.Int64("chat", chatID),
			zap.NamedError("edit_error", editErr),
			zap.NamedError("send_error", sendErr))
		return
	}

	b.logger.Warn("message edit failed, sent a new message instead",
		zap.Int64("chat", chatID), zap.Error(editErr))
}

func (b *Bot) send(chatID int64, reply domain.Reply) error {
	msg := tgbotapi.NewMessage(chatID, reply.Text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	if kb, ok := keyboard(reply.Controls); ok {
		msg.ReplyMarkup = kb
	}

	_, err := b.api.Send(msg)
	return errors.Wrap(err, "send message")
}

func keyboard(controls []domain.Control) (tgbotapi.InlineKeyboardMarkup, bool) {
	if len(controls) == 0 {
		return tgbotapi.InlineKeyboardMarkup{}, false
	}

	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(controls))
	for _, c := range controls {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(c.Label, c.Token)))
	}

	return tgbotapi.NewInlineKeyboardMarkup(rows...), true
}

func sessionKey(chatID int64) string {
	return strconv.FormatInt(chatID, 10)
}
