package bot

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"telegram-codeforces-bot/internal/bot/commands"
	"telegram-codeforces-bot/internal/codeforces"
	"telegram-codeforces-bot/internal/recommend"
	"telegram-codeforces-bot/internal/storage"
)

type commandDeps struct {
	service *Service
}

func newCommandHandler(service *Service) *commands.Handler {
	return commands.NewHandler(&commandDeps{service: service})
}

func (d *commandDeps) SendMessage(_ context.Context, chatID int64, text string) error {
	_, err := d.service.sender.Send(tgbotapi.NewMessage(chatID, text))
	return err
}

func (d *commandDeps) SendProblem(ctx context.Context, chatID int64, p codeforces.Problem) error {
	counts, err := d.service.store.GetScores(ctx, p.Mention())
	if err != nil {
		return err
	}

	msg := tgbotapi.NewMessage(chatID, p.HTML())
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true
	msg.ReplyMarkup = scoreKeyboard(counts, p.Mention())
	_, err = d.service.sender.Send(msg)
	return err
}

func (d *commandDeps) LookupHandle(ctx context.Context, handle string) (codeforces.User, error) {
	users, err := d.service.archive.UserInfo(ctx, []string{handle})
	if err != nil {
		return codeforces.User{}, err
	}
	if len(users) == 0 {
		return codeforces.User{}, &codeforces.APIError{Method: "user.info", Comment: fmt.Sprintf("no user returned for %q", handle)}
	}
	return users[0], nil
}

func (d *commandDeps) RegisterUser(ctx context.Context, user commands.User, profile codeforces.User) error {
	return d.service.store.RegisterUser(ctx, storage.ChatUser{ID: user.ID, FullName: user.FullName}, profile)
}

func (d *commandDeps) Recommend(ctx context.Context, chatUserID int64, query []string) (recommend.Result, error) {
	return d.service.recommender.Recommend(ctx, chatUserID, query)
}

func (d *commandDeps) FetchProblemset(ctx context.Context) ([]codeforces.Problem, error) {
	set, err := d.service.archive.ProblemsetProblems(ctx, codeforces.ProblemsetParams{})
	if err != nil {
		return nil, err
	}
	return set.Problems, nil
}

func (d *commandDeps) IngestProblems(ctx context.Context, problems []codeforces.Problem, forceReplace bool) (int, error) {
	return d.service.store.IngestProblems(ctx, problems, forceReplace)
}

func (d *commandDeps) IsAdmin(userID int64) bool {
	return d.service.isAdmin(userID)
}

func (d *commandDeps) IsBlockedHandle(handle string) bool {
	return d.service.isBlockedHandle(handle)
}

func (d *commandDeps) Infow(msg string, keysAndValues ...any) {
	d.service.logger.Infow(msg, keysAndValues...)
}

func (d *commandDeps) Warnw(msg string, keysAndValues ...any) {
	d.service.logger.Warnw(msg, keysAndValues...)
}
