package telegram

import (
	"context"
	"fmt"

	"github.com/drakos74/free-iris/user"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
	"github.com/rs/zerolog/log"
)

type botAPI interface {
	GetUpdatesChan(config tgbotapi.UpdateConfig) (tgbotapi.UpdatesChannel, error)
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Bot is the telegram channel of the iris form.
// Each chat works on its own form.
type Bot struct {
	bot         botAPI
	interpreter *user.Interpreter
}

// NewBot creates a new telegram bot for the given token.
func NewBot(token string, interpreter *user.Interpreter) (*Bot, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("error creating bot: %w", err)
	}
	bot.Buffer = 0
	log.Info().Str("account", bot.Self.UserName).Msg("telegram bot authorized")
	return newBot(bot, interpreter), nil
}

func newBot(bot botAPI, interpreter *user.Interpreter) *Bot {
	return &Bot{
		bot:         bot,
		interpreter: interpreter,
	}
}

// Run starts polling for updates from telegram.
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 10

	updates, err := b.bot.GetUpdatesChan(u)
	if err != nil {
		return err
	}

	go b.listenToUpdates(ctx, updates)
	return nil
}
