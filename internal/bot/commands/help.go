package commands

import "context"

func (h *Handler) cmdStart(ctx context.Context, chatID int64) error {
	return h.deps.SendMessage(ctx, chatID, "Hi!\n\n"+helpText())
}

func (h *Handler) cmdHelp(ctx context.Context, chatID int64) error {
	return h.deps.SendMessage(ctx, chatID, helpText())
}

func helpText() string {
	return `Commands:
/register <handle> - Link your Codeforces handle
/gimme [tags...] - Get a problem you have not solved yet, e.g. /gimme gr dp
/help - Show this message

Tags can be prefixes: "gr" means greedy, graphs and graph matchings.
Type @bot_name <query> in any chat to search problems by id, name or tag.
Vote on a problem with the buttons under it.`
}
