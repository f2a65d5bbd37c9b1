package bot

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"telegram-codeforces-bot/internal/vote"
)

// scoreKeyboard renders one button per vote category, in category order.
func scoreKeyboard(counts map[vote.Category]int, mention string) tgbotapi.InlineKeyboardMarkup {
	buttons := make([]tgbotapi.InlineKeyboardButton, 0, len(vote.Categories))
	for _, c := range vote.Categories {
		label := fmt.Sprintf("%s %d", c.Emoji(), counts[c])
		buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(label, callbackData(mention, c)))
	}
	return tgbotapi.NewInlineKeyboardMarkup(tgbotapi.NewInlineKeyboardRow(buttons...))
}

func callbackData(mention string, c vote.Category) string {
	return mention + " " + string(c)
}

func parseCallbackData(data string) (string, vote.Category, error) {
	parts := strings.Fields(data)
	if len(parts) != 2 {
		return "", "", fmt.Errorf("malformed callback data %q", data)
	}
	c, err := vote.ParseCategory(parts[1])
	if err != nil {
		return "", "", err
	}
	return parts[0], c, nil
}
