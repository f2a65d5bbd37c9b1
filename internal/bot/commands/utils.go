package commands

import (
	"strconv"
	"strings"
)

func normalizeCommand(token string) string {
	if idx := strings.Index(token, "@"); idx >= 0 {
		token = token[:idx]
	}
	return strings.ToLower(token)
}

func quoteList(items []string) string {
	quoted := make([]string, 0, len(items))
	for _, item := range items {
		quoted = append(quoted, strconv.Quote(item))
	}
	return strings.Join(quoted, ", ")
}
