package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"telegram-codeforces-bot/internal/bot/commands"
)

const (
	inlineResultLimit = 10
	inlineCacheTime   = 10
	failureReply      = "something goes wrong"
)

type Service struct {
	logger         *zap.SugaredLogger
	sender         Sender
	store          Store
	recommender    Recommender
	archive        Archive
	admins         map[int64]struct{}
	blocked        map[string]struct{}
	commandHandler *commands.Handler
	newID          func() string
}

func NewService(
	logger *zap.SugaredLogger,
	sender Sender,
	store Store,
	recommender Recommender,
	archive Archive,
	admins []int64,
	blockedHandles []string,
) *Service {
	svc := &Service{
		logger:      logger,
		sender:      sender,
		store:       store,
		recommender: recommender,
		archive:     archive,
		admins:      make(map[int64]struct{}, len(admins)),
		blocked:     make(map[string]struct{}, len(blockedHandles)),
		newID:       newResultID,
	}
	for _, id := range admins {
		svc.admins[id] = struct{}{}
	}
	for _, handle := range blockedHandles {
		if handle = normalizeHandle(handle); handle != "" {
			svc.blocked[handle] = struct{}{}
		}
	}
	svc.commandHandler = newCommandHandler(svc)
	return svc
}

// HandleUpdate routes one Telegram update. Updates the bot does not react to
// are ignored.
func (s *Service) HandleUpdate(ctx context.Context, upd tgbotapi.Update) error {
	switch {
	case upd.Message != nil:
		return s.handleMessage(ctx, upd.Message)
	case upd.InlineQuery != nil:
		return s.handleInlineQuery(ctx, upd.InlineQuery)
	case upd.CallbackQuery != nil:
		return s.handleCallback(ctx, upd.CallbackQuery)
	default:
		return nil
	}
}

func (s *Service) handleMessage(ctx context.Context, msg *tgbotapi.Message) error {
	if msg.From == nil || msg.Chat == nil {
		return nil
	}
	text := strings.TrimSpace(msg.Text)
	if !strings.HasPrefix(text, "/") {
		return nil
	}

	err := s.commandHandler.Handle(ctx, commands.Message{
		ChatID: msg.Chat.ID,
		From:   commands.User{ID: msg.From.ID, FullName: fullName(msg.From)},
		Text:   text,
	})
	if err == nil || errors.Is(err, commands.ErrReplied) {
		return err
	}

	if _, sendErr := s.sender.Send(tgbotapi.NewMessage(msg.Chat.ID, failureReply)); sendErr != nil {
		s.logger.Warnw("failure reply not sent", "chat_id", msg.Chat.ID, "error", sendErr)
	}
	return fmt.Errorf("command %q from %d: %w", firstField(text), msg.From.ID, err)
}

func (s *Service) isAdmin(userID int64) bool {
	_, ok := s.admins[userID]
	return ok
}

func (s *Service) isBlockedHandle(handle string) bool {
	_, ok := s.blocked[normalizeHandle(handle)]
	return ok
}

func normalizeHandle(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

func fullName(u *tgbotapi.User) string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

func firstField(text string) string {
	if fields := strings.Fields(text); len(fields) > 0 {
		return fields[0]
	}
	return ""
}
