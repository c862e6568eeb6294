package telegram

import (
	"fmt"
	"strings"

	"github.com/Berani354/Barang/internal/delivery/render"
	"github.com/Berani354/Barang/internal/domain/entity"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const welcomeMessage = `Hello! 👋

I keep track of the warehouse: electronics, clothing and school supplies.
Ask me anything about what is in stock, or see /help for the commands.`

const helpMessage = `📦 Inventory:
/list [category] - items in stock
/find <name> - look up one item
/total - total inventory value
/breakdown - items per category

💬 Assistant:
/ask <question> - or just write a message
/clear - forget our conversation

🔐 Admin:
/login - log in as admin
/logout - log out
/add - add an item step by step
/stock <name> <delta> - change stock, e.g. /stock TV -2
/remove <name> - delete an item
/export - download the spreadsheet
Send an .xlsx file to replace the whole inventory.
/cancel - stop the current form`

const adminMessage = `✅ Logged in as admin.

/add - add an item
/stock <name> <delta> - change stock
/remove <name> - delete an item
/export - download the spreadsheet

To replace the inventory, send an .xlsx file (max 5MB) with the columns
Nama, Harga, Stok, Kategori, Merek, Garansi, Ukuran, Bahan, Jenis.`

func displayName(u *tgbotapi.User) string {
	if u.UserName != "" {
		return u.UserName
	}
	return u.FirstName
}

func breakdownText(b entity.Breakdown) string {
	if b.Total == 0 {
		return "The warehouse is empty."
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d item(s) in total\n", b.Total)
	for _, s := range b.Shares {
		fmt.Fprintf(&sb, "• %s: %d (%s%%), value %s\n",
			s.Category.Label(), s.Count, s.Percent.StringFixed(1), render.FormatPrice(s.Value))
	}
	return strings.TrimRight(sb.String(), "\n")
}

// splitMessage cuts text at line breaks into chunks of at most limit bytes.
// A single line longer than limit is cut as is.
func splitMessage(text string, limit int) []string {
	if len(text) <= limit {
		return []string{text}
	}

	var chunks []string
	var current strings.Builder
	for _, line := range strings.SplitAfter(text, "\n") {
		for len(line) > limit {
			if current.Len() > 0 {
				chunks = append(chunks, current.String())
				current.Reset()
			}
			chunks = append(chunks, line[:limit])
			line = line[limit:]
		}
		if current.Len()+len(line) > limit {
			chunks = append(chunks, current.String())
			current.Reset()
		}
		current.WriteString(line)
	}
	if current.Len() > 0 {
		chunks = append(chunks, current.String())
	}
	return chunks
}

func isQuotaError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "quota") || strings.Contains(msg, "retry in") || strings.Contains(msg, "rate limit")
}
