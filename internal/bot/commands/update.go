package commands

import (
	"context"
	"fmt"
	"strings"
)

// cmdUpdate refreshes the stored problemset. "/update soft" keeps the stored
// problems and only adds new ones.
func (h *Handler) cmdUpdate(ctx context.Context, msg Message, args []string) error {
	if !h.deps.IsAdmin(msg.From.ID) {
		h.deps.Warnw("update refused for non-admin", "user_id", msg.From.ID)
		return nil
	}

	force := !(len(args) > 0 && strings.EqualFold(args[0], "soft"))

	if err := h.deps.SendMessage(ctx, msg.ChatID, "update started"); err != nil {
		return err
	}

	problems, err := h.deps.FetchProblemset(ctx)
	if err != nil {
		return err
	}
	inserted, err := h.deps.IngestProblems(ctx, problems, force)
	if err != nil {
		return err
	}

	h.deps.Infow("problemset updated", "fetched", len(problems), "inserted", inserted, "force", force)
	return h.deps.SendMessage(ctx, msg.ChatID, fmt.Sprintf("update done with %d new problems", inserted))
}
