package telegram

import (
	"context"
	"fmt"
	"net/url"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// UpdateFunc handles one update. Returned errors are logged by the transport.
type UpdateFunc func(ctx context.Context, upd tgbotapi.Update) error

type Requester interface {
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

func NewBot(token string) (*tgbotapi.BotAPI, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}
	bot.Debug = false
	return bot, nil
}

func SetWebhook(bot Requester, webhookURL string) error {
	wh, err := tgbotapi.NewWebhook(webhookURL)
	if err != nil {
		return fmt.Errorf("build webhook config: %w", err)
	}
	if _, err := bot.Request(wh); err != nil {
		return fmt.Errorf("set webhook: %w", err)
	}
	return nil
}

// DeleteWebhook switches the bot back to getUpdates delivery.
func DeleteWebhook(bot Requester) error {
	if _, err := bot.Request(tgbotapi.DeleteWebhookConfig{}); err != nil {
		return fmt.Errorf("delete webhook: %w", err)
	}
	return nil
}

func BuildWebhookURL(baseURL, secret string) (string, error) {
	if baseURL == "" {
		return "", fmt.Errorf("base URL is empty")
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid BOT_BASE_URL: %w", err)
	}
	parsed.Path = "/webhook/" + secret
	return parsed.String(), nil
}
