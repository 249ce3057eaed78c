package app

import (
	"fmt"
	"strings"
	"time"

	"cruze/models"
)

const exportTimeLayout = "2006-01-02 15:04:05"

// exportTranscript renders the whole session collection as a flat text
// transcript, one block per chat in display order. Derived read-only view,
// never persisted.
func exportTranscript(chats []models.Chat) string {
	if len(chats) == 0 {
		return ""
	}

	blocks := make([]string, 0, len(chats))
	for _, chat := range chats {
		var b strings.Builder
		fmt.Fprintf(&b, "--- SESSION: %s ---\n", chat.Title)
		fmt.Fprintf(&b, "Created: %s\n\n", formatMillis(chat.CreatedAt))
		for _, m := range chat.Messages {
			fmt.Fprintf(&b, "[%s] %s: %s\n", formatMillis(m.Timestamp), strings.ToUpper(string(m.Role)), m.Content)
		}
		b.WriteString("\n")
		blocks = append(blocks, b.String())
	}
	return strings.Join(blocks, "\n"+strings.Repeat("=", 50)+"\n\n")
}

func formatMillis(ms int64) string {
	return time.UnixMilli(ms).Format(exportTimeLayout)
}
