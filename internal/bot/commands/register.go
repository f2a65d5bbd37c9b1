package commands

import (
	"context"
	"errors"
	"fmt"

	"telegram-codeforces-bot/internal/codeforces"
)

func (h *Handler) cmdRegister(ctx context.Context, msg Message, args []string) error {
	if len(args) == 0 {
		return h.deps.SendMessage(ctx, msg.ChatID, "handle is empty")
	}

	handle := args[0]
	if h.deps.IsBlockedHandle(handle) {
		h.deps.Warnw("blocked handle rejected", "handle", handle, "user_id", msg.From.ID)
		return h.deps.SendMessage(ctx, msg.ChatID, "this handle can not be registered")
	}

	profile, err := h.deps.LookupHandle(ctx, handle)
	if err != nil {
		if errors.Is(err, codeforces.ErrAPI) {
			if sendErr := h.deps.SendMessage(ctx, msg.ChatID, "codeforces api error"); sendErr != nil {
				return sendErr
			}
			return fmt.Errorf("%w: register %s: %w", ErrReplied, handle, err)
		}
		return err
	}

	if err := h.deps.RegisterUser(ctx, msg.From, profile); err != nil {
		return err
	}

	h.deps.Infow("user registered", "user_id", msg.From.ID, "handle", profile.Handle)
	return h.deps.SendMessage(ctx, msg.ChatID, fmt.Sprintf("register %q", profile.Handle))
}
