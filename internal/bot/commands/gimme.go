package commands

import (
	"context"
	"errors"
	"fmt"

	"telegram-codeforces-bot/internal/codeforces"
	"telegram-codeforces-bot/internal/recommend"
)

func (h *Handler) cmdGimme(ctx context.Context, msg Message, args []string) error {
	if tags := recommend.ExpandTags(args); len(tags) > 0 {
		text := "looking for problems with tags: " + quoteList(tags)
		if err := h.deps.SendMessage(ctx, msg.ChatID, text); err != nil {
			return err
		}
	}

	res, err := h.deps.Recommend(ctx, msg.From.ID, args)
	if err != nil {
		if errors.Is(err, codeforces.ErrAPI) {
			if sendErr := h.deps.SendMessage(ctx, msg.ChatID, "codeforces api error"); sendErr != nil {
				return sendErr
			}
			return fmt.Errorf("%w: recommend: %w", ErrReplied, err)
		}
		return err
	}

	if !res.Found {
		return h.deps.SendMessage(ctx, msg.ChatID, "no problem found")
	}
	return h.deps.SendProblem(ctx, msg.ChatID, res.Problem)
}
