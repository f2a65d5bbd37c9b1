package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

var errVoteTargetMismatch = errors.New("vote target does not match message")

func (s *Service) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) error {
	if cb.From == nil {
		return nil
	}

	reply, err := s.applyVote(ctx, cb)
	if err != nil {
		if answerErr := s.answerCallback(cb.ID, failureReply); answerErr != nil {
			s.logger.Warnw("callback answer failed", "callback_id", cb.ID, "error", answerErr)
		}
		return fmt.Errorf("callback %q from %d: %w", cb.Data, cb.From.ID, err)
	}
	return s.answerCallback(cb.ID, reply)
}

func (s *Service) applyVote(ctx context.Context, cb *tgbotapi.CallbackQuery) (string, error) {
	mention, category, err := parseCallbackData(cb.Data)
	if err != nil {
		return "", err
	}
	if cb.Message != nil && !strings.HasPrefix(cb.Message.Text, mention+" - ") {
		return "", fmt.Errorf("%w: %s", errVoteTargetMismatch, mention)
	}

	added, err := s.store.ToggleScore(ctx, mention, category, cb.From.ID)
	if err != nil {
		return "", err
	}

	counts, err := s.store.GetScores(ctx, mention)
	if err != nil {
		s.logger.Warnw("scores reload failed", "mention", mention, "error", err)
	} else if err := s.refreshKeyboard(cb, scoreKeyboard(counts, mention)); err != nil {
		s.logger.Warnw("keyboard refresh failed", "mention", mention, "error", err)
	}

	if added {
		return fmt.Sprintf("you vote %s for %s", category.Emoji(), mention), nil
	}
	return fmt.Sprintf("you took vote %s for %s", category.Emoji(), mention), nil
}

func (s *Service) refreshKeyboard(cb *tgbotapi.CallbackQuery, kb tgbotapi.InlineKeyboardMarkup) error {
	var edit tgbotapi.EditMessageReplyMarkupConfig
	switch {
	case cb.Message != nil && cb.Message.Chat != nil:
		edit = tgbotapi.NewEditMessageReplyMarkup(cb.Message.Chat.ID, cb.Message.MessageID, kb)
	case cb.InlineMessageID != "":
		edit = tgbotapi.EditMessageReplyMarkupConfig{
			BaseEdit: tgbotapi.BaseEdit{InlineMessageID: cb.InlineMessageID, ReplyMarkup: &kb},
		}
	default:
		return nil
	}
	_, err := s.sender.Request(edit)
	return err
}

func (s *Service) answerCallback(id, text string) error {
	if _, err := s.sender.Request(tgbotapi.NewCallback(id, text)); err != nil {
		return fmt.Errorf("answer callback: %w", err)
	}
	return nil
}
