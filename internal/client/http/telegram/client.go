package tgclient

import (
	"context"

	"github.com/go-telegram/bot"
)

type client struct {
	bot    *bot.Bot
	chatID int64
}

// NewClient sends operator alerts to one chat.
func NewClient(bot *bot.Bot, chatID int64) *client {
	return &client{bot: bot, chatID: chatID}
}

func (c *client) Alert(ctx context.Context, text string) error {
	if _, err := c.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: c.chatID,
		Text:   text,
	}); err != nil {
		return err
	}

	return nil
}
