package bot

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"

	"telegram-codeforces-bot/internal/codeforces"
)

const problemThumbURL = "https://sta.codeforces.com/s/54849/images/codeforces-telegram-square.png"

func newResultID() string {
	return uuid.NewString()
}

func (s *Service) handleInlineQuery(ctx context.Context, q *tgbotapi.InlineQuery) error {
	problems, err := s.store.QueryProblems(ctx, q.Query, inlineResultLimit)
	if err != nil {
		return fmt.Errorf("inline query %q: %w", q.Query, err)
	}

	results := make([]interface{}, 0, len(problems))
	for _, p := range problems {
		article, err := s.problemArticle(ctx, p)
		if err != nil {
			return fmt.Errorf("inline query %q: %w", q.Query, err)
		}
		results = append(results, article)
	}

	answer := tgbotapi.InlineConfig{
		InlineQueryID: q.ID,
		Results:       results,
		CacheTime:     inlineCacheTime,
	}
	if _, err := s.sender.Request(answer); err != nil {
		return fmt.Errorf("answer inline query: %w", err)
	}
	return nil
}

func (s *Service) problemArticle(ctx context.Context, p codeforces.Problem) (tgbotapi.InlineQueryResultArticle, error) {
	counts, err := s.store.GetScores(ctx, p.Mention())
	if err != nil {
		return tgbotapi.InlineQueryResultArticle{}, err
	}
	kb := scoreKeyboard(counts, p.Mention())

	article := tgbotapi.NewInlineQueryResultArticleHTML(s.newID(), p.Mention(), p.HTML())
	article.Description = p.DisplayName()
	article.ThumbURL = problemThumbURL
	article.InputMessageContent = tgbotapi.InputTextMessageContent{
		Text:                  p.HTML(),
		ParseMode:             tgbotapi.ModeHTML,
		DisableWebPagePreview: true,
	}
	article.ReplyMarkup = &kb
	return article, nil
}
