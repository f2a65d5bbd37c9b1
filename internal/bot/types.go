package bot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"telegram-codeforces-bot/internal/codeforces"
	"telegram-codeforces-bot/internal/recommend"
	"telegram-codeforces-bot/internal/storage"
	"telegram-codeforces-bot/internal/vote"
)

// Sender is the part of *tgbotapi.BotAPI the service talks to.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

type Store interface {
	RegisterUser(ctx context.Context, user storage.ChatUser, profile codeforces.User) error
	IngestProblems(ctx context.Context, problems []codeforces.Problem, forceReplace bool) (int, error)
	QueryProblems(ctx context.Context, text string, maxCount int) ([]codeforces.Problem, error)
	GetScores(ctx context.Context, mention string) (map[vote.Category]int, error)
	ToggleScore(ctx context.Context, mention string, category vote.Category, chatUserID int64) (bool, error)
}

type Recommender interface {
	Recommend(ctx context.Context, chatUserID int64, query []string) (recommend.Result, error)
}

type Archive interface {
	UserInfo(ctx context.Context, handles []string) ([]codeforces.User, error)
	ProblemsetProblems(ctx context.Context, p codeforces.ProblemsetParams) (codeforces.Problemset, error)
}
