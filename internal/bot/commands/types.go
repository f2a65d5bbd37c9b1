package commands

import (
	"context"
	"errors"

	"telegram-codeforces-bot/internal/codeforces"
	"telegram-codeforces-bot/internal/recommend"
)

// ErrReplied marks errors the user was already told about.
var ErrReplied = errors.New("user already notified")

// User is the chat identity that issued a command.
type User struct {
	ID       int64
	FullName string
}

type Message struct {
	ChatID int64
	From   User
	Text   string
}

type Dependencies interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
	SendProblem(ctx context.Context, chatID int64, p codeforces.Problem) error

	LookupHandle(ctx context.Context, handle string) (codeforces.User, error)
	RegisterUser(ctx context.Context, user User, profile codeforces.User) error
	Recommend(ctx context.Context, chatUserID int64, query []string) (recommend.Result, error)
	FetchProblemset(ctx context.Context) ([]codeforces.Problem, error)
	IngestProblems(ctx context.Context, problems []codeforces.Problem, forceReplace bool) (int, error)

	IsAdmin(userID int64) bool
	IsBlockedHandle(handle string) bool
	Infow(msg string, keysAndValues ...any)
	Warnw(msg string, keysAndValues ...any)
}
