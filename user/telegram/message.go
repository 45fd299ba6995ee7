package telegram

import (
	"context"
	"strconv"

	"github.com/drakos74/free-iris/internal/api"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
	"github.com/rs/zerolog/log"
)

// newMessage creates a new telegram message config
func newMessage(chatID int64, message *api.Message) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, message.Text)
	if message.Reply > 0 {
		msg.ReplyToMessageID = message.Reply
	}
	return msg
}

// listenToUpdates listens to updates for the telegram bot.
func (b *Bot) listenToUpdates(ctx context.Context, updates tgbotapi.UpdatesChannel) {
	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("closing telegram bot")
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			if update.Message == nil || update.Message.Chat == nil { // ignore any non-Message Updates
				continue
			}
			if !b.interpreter.Matches(update.Message.Text) {
				continue
			}
			var from string
			if update.Message.From != nil {
				from = update.Message.From.UserName
			}
			chatID := update.Message.Chat.ID
			log.Info().
				Str("from", from).
				Str("text", update.Message.Text).
				Int64("chat", chatID).
				Msg("message received")
			// commands may wait on the prediction service, keep polling meanwhile
			go b.execute(ctx, chatID, api.ParseCommand(update.Message.MessageID, from, update.Message.Text))
		}
	}
}

func (b *Bot) execute(ctx context.Context, chatID int64, cmd api.Command) {
	session := strconv.FormatInt(chatID, 10)
	reply := b.interpreter.Execute(ctx, session, cmd)
	if _, err := b.bot.Send(newMessage(chatID, reply)); err != nil {
		log.Error().Err(err).Int64("chat", chatID).Msg("could not send message")
	}
}
