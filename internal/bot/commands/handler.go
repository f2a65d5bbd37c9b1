package commands

import (
	"context"
	"strings"
)

type Handler struct {
	deps Dependencies
}

func NewHandler(deps Dependencies) *Handler {
	return &Handler{deps: deps}
}

func (h *Handler) Handle(ctx context.Context, msg Message) error {
	parts := strings.Fields(msg.Text)
	if len(parts) == 0 {
		return nil
	}

	cmd := normalizeCommand(parts[0])
	args := parts[1:]

	switch cmd {
	case "/start":
		return h.cmdStart(ctx, msg.ChatID)
	case "/help":
		return h.cmdHelp(ctx, msg.ChatID)
	case "/register":
		return h.cmdRegister(ctx, msg, args)
	case "/gimme":
		return h.cmdGimme(ctx, msg, args)
	case "/update":
		return h.cmdUpdate(ctx, msg, args)
	default:
		return h.deps.SendMessage(ctx, msg.ChatID, "Unknown command. Use /help to see available commands.")
	}
}
