package telegram

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/Berani354/Barang/internal/delivery/render"
	"github.com/Berani354/Barang/internal/domain/entity"
	"github.com/Berani354/Barang/internal/usecase"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

const (
	maxUploadSize  = 5 * 1024 * 1024
	maxMessageSize = 4000
	formTimeout    = 15 * time.Minute
	exportFileName = "gudang.xlsx"
)

var errFileTooLarge = errors.New("file too large")

// BotHandler Telegram bot handler
type BotHandler struct {
	bot        *tgbotapi.BotAPI
	inventory  usecase.InventoryUseCase
	assistant  usecase.AssistantUseCase
	admin      usecase.AdminUseCase
	logger     *zap.Logger
	httpClient *http.Client

	formMu sync.RWMutex
	forms  map[int64]*addForm

	// users expected to type the admin password next
	awaitingPassword map[int64]bool
	mu               sync.RWMutex
}

// NewBotHandler creates the bot and checks the token against the Telegram API
func NewBotHandler(
	token string,
	inventory usecase.InventoryUseCase,
	assistant usecase.AssistantUseCase,
	admin usecase.AdminUseCase,
	logger *zap.Logger,
) (*BotHandler, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &BotHandler{
		bot:              bot,
		inventory:        inventory,
		assistant:        assistant,
		admin:            admin,
		logger:           logger.With(zap.String("bot", bot.Self.UserName)),
		httpClient:       &http.Client{Timeout: 60 * time.Second},
		forms:            make(map[int64]*addForm),
		awaitingPassword: make(map[int64]bool),
	}, nil
}

// Start polls for updates until ctx is cancelled
func (h *BotHandler) Start(ctx context.Context) error {
	h.logger.Info("bot started")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)
	defer h.bot.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			h.logger.Info("bot stopping")
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return errors.New("update channel closed")
			}
			if update.Message == nil {
				continue
			}

			go h.handleMessage(ctx, update.Message)
		}
	}
}

func (h *BotHandler) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	if message.From == nil {
		return
	}
	userID := message.From.ID

	if message.Document != nil {
		h.handleDocumentMessage(ctx, message)
		return
	}

	if h.isAwaitingPassword(userID) && !message.IsCommand() {
		h.handlePasswordInput(ctx, message)
		return
	}

	if message.IsCommand() {
		h.handleCommand(ctx, message)
		return
	}

	if h.hasForm(userID) {
		h.handleFormInput(ctx, message)
		return
	}

	if message.Text != "" {
		h.handleQuestion(ctx, message, message.Text)
	}
}

func (h *BotHandler) handleCommand(ctx context.Context, message *tgbotapi.Message) {
	switch message.Command() {
	case "start":
		h.sendMessage(message.Chat.ID, welcomeMessage)
	case "help":
		h.sendMessage(message.Chat.ID, helpMessage)
	case "list":
		h.handleListCommand(ctx, message)
	case "find":
		h.handleFindCommand(ctx, message)
	case "total":
		h.sendMessage(message.Chat.ID, "Total inventory value: "+render.FormatPrice(h.inventory.TotalValue(ctx)))
	case "breakdown":
		h.sendMessage(message.Chat.ID, breakdownText(h.inventory.Breakdown(ctx)))
	case "ask":
		h.handleQuestion(ctx, message, message.CommandArguments())
	case "clear":
		h.handleClearCommand(ctx, message)
	case "login":
		h.handleLoginCommand(ctx, message)
	case "logout":
		h.handleLogoutCommand(ctx, message)
	case "cancel":
		h.handleCancelCommand(message)
	case "add":
		h.handleAddCommand(ctx, message)
	case "stock":
		h.handleStockCommand(ctx, message)
	case "remove":
		h.handleRemoveCommand(ctx, message)
	case "export":
		h.handleExportCommand(ctx, message)
	default:
		h.sendMessage(message.Chat.ID, "Unknown command. See /help.")
	}
}

func (h *BotHandler) handleListCommand(ctx context.Context, message *tgbotapi.Message) {
	items := h.inventory.List(ctx)
	if arg := strings.TrimSpace(message.CommandArguments()); arg != "" {
		category, ok := entity.ParseCategory(arg)
		if !ok {
			h.sendMessage(message.Chat.ID, fmt.Sprintf("Unknown category %q.", arg))
			return
		}
		items = h.inventory.ListByCategory(ctx, category)
	}

	for _, chunk := range splitMessage(render.ItemsPlain(items), maxMessageSize) {
		h.sendMessage(message.Chat.ID, chunk)
	}
}

func (h *BotHandler) handleFindCommand(ctx context.Context, message *tgbotapi.Message) {
	name := strings.TrimSpace(message.CommandArguments())
	if name == "" {
		h.sendMessage(message.Chat.ID, "Usage: /find <name>")
		return
	}

	item, ok := h.inventory.Find(ctx, name)
	if !ok {
		h.sendMessage(message.Chat.ID, fmt.Sprintf("%q is not in stock.", name))
		return
	}
	h.sendMessage(message.Chat.ID, fmt.Sprintf("%s\n%s\nStock value: %s",
		item.Category().Label(), item.Describe(), render.FormatPrice(item.Value())))
}

func (h *BotHandler) handleQuestion(ctx context.Context, message *tgbotapi.Message, question string) {
	chatID := message.Chat.ID
	if strings.TrimSpace(question) == "" {
		h.sendMessage(chatID, "Usage: /ask <question>")
		return
	}

	h.bot.Request(tgbotapi.NewChatAction(chatID, tgbotapi.ChatTyping))

	answer, err := h.assistant.Ask(ctx, message.From.ID, displayName(message.From), question)
	switch {
	case errors.Is(err, usecase.ErrAssistantDisabled):
		h.sendMessage(chatID, "The assistant is not configured. Try /list or /find instead.")
		return
	case isQuotaError(err):
		h.logger.Warn("assistant quota exhausted", zap.Error(err))
		h.sendMessage(chatID, "The assistant is busy right now, please try again in a minute.")
		return
	case err != nil:
		h.logger.Error("assistant failed", zap.Int64("user_id", message.From.ID), zap.Error(err))
		h.sendMessage(chatID, "Sorry, I could not answer that.")
		return
	}

	if strings.TrimSpace(answer) == "" {
		h.sendMessage(chatID, "Sorry, I could not answer that.")
		return
	}
	for _, chunk := range splitMessage(answer, maxMessageSize) {
		h.sendMessage(chatID, chunk)
	}
}

func (h *BotHandler) handleClearCommand(ctx context.Context, message *tgbotapi.Message) {
	if err := h.assistant.ClearHistory(ctx, message.From.ID); err != nil {
		h.logger.Error("failed to clear history", zap.Int64("user_id", message.From.ID), zap.Error(err))
		h.sendMessage(message.Chat.ID, "Could not clear the conversation.")
		return
	}
	h.sendMessage(message.Chat.ID, "Conversation cleared.")
}

func (h *BotHandler) handleLoginCommand(ctx context.Context, message *tgbotapi.Message) {
	userID := message.From.ID

	isAdmin, _ := h.admin.IsAdmin(ctx, userID)
	if isAdmin {
		h.sendMessage(message.Chat.ID, "You are already logged in.")
		return
	}

	h.setAwaitingPassword(userID, true)
	h.sendMessage(message.Chat.ID, "🔐 Enter the admin password:")
}

func (h *BotHandler) handlePasswordInput(ctx context.Context, message *tgbotapi.Message) {
	userID := message.From.ID
	h.setAwaitingPassword(userID, false)

	// the password should not stay in the chat
	if _, err := h.bot.Request(tgbotapi.NewDeleteMessage(message.Chat.ID, message.MessageID)); err != nil {
		h.logger.Debug("failed to delete password message", zap.Error(err))
	}

	ok, err := h.admin.Login(ctx, userID, message.Text)
	if err != nil {
		h.logger.Error("login failed", zap.Int64("user_id", userID), zap.Error(err))
		h.sendMessage(message.Chat.ID, "❌ Login failed.")
		return
	}
	if !ok {
		h.sendMessage(message.Chat.ID, "❌ Wrong password.")
		return
	}
	h.sendMessage(message.Chat.ID, adminMessage)
}

func (h *BotHandler) handleLogoutCommand(ctx context.Context, message *tgbotapi.Message) {
	h.clearForm(message.From.ID)
	if err := h.admin.Logout(ctx, message.From.ID); err != nil {
		h.logger.Error("logout failed", zap.Int64("user_id", message.From.ID), zap.Error(err))
		h.sendMessage(message.Chat.ID, "❌ Logout failed.")
		return
	}
	h.sendMessage(message.Chat.ID, "Logged out.")
}

func (h *BotHandler) handleCancelCommand(message *tgbotapi.Message) {
	h.setAwaitingPassword(message.From.ID, false)
	h.clearForm(message.From.ID)
	h.sendMessage(message.Chat.ID, "Cancelled.")
}

// requireAdmin replies and returns false for users without an admin session
func (h *BotHandler) requireAdmin(ctx context.Context, message *tgbotapi.Message) bool {
	isAdmin, err := h.admin.IsAdmin(ctx, message.From.ID)
	if err != nil || !isAdmin {
		h.sendMessage(message.Chat.ID, "❌ Only admins can change the inventory. Use /login first.")
		return false
	}
	return true
}

func (h *BotHandler) handleAddCommand(ctx context.Context, message *tgbotapi.Message) {
	if !h.requireAdmin(ctx, message) {
		return
	}
	h.startForm(message.From.ID)
	h.sendMessage(message.Chat.ID, "New item. /cancel stops at any point.\n"+categoryPrompt())
}

func (h *BotHandler) handleFormInput(ctx context.Context, message *tgbotapi.Message) {
	userID := message.From.ID
	chatID := message.Chat.ID
	now := time.Now()

	h.formMu.Lock()
	form, ok := h.forms[userID]
	if !ok {
		h.formMu.Unlock()
		return
	}
	if now.Sub(form.LastUpdate) > formTimeout {
		delete(h.forms, userID)
		h.formMu.Unlock()
		h.sendMessage(chatID, "The form expired. Start again with /add.")
		return
	}

	prompt, err := form.step(message.Text, now)
	if err != nil {
		h.formMu.Unlock()
		h.sendMessage(chatID, fmt.Sprintf("❌ %v. Try again or /cancel.", err))
		return
	}
	if form.Stage != formStageDone {
		h.formMu.Unlock()
		h.sendMessage(chatID, prompt)
		return
	}
	completed := *form
	delete(h.forms, userID)
	h.formMu.Unlock()

	item, err := completed.item()
	if err != nil {
		h.sendMessage(chatID, fmt.Sprintf("❌ %v", err))
		return
	}
	if err := h.inventory.Add(ctx, item); err != nil {
		h.logger.Error("failed to add item", zap.String("name", item.Name), zap.Error(err))
		h.sendMessage(chatID, fmt.Sprintf("❌ Could not save the item: %v", err))
		return
	}
	h.sendMessage(chatID, "✅ Added\n"+item.Describe())
}

func (h *BotHandler) handleStockCommand(ctx context.Context, message *tgbotapi.Message) {
	if !h.requireAdmin(ctx, message) {
		return
	}
	name, delta, err := parseStockArgs(message.CommandArguments())
	if err != nil {
		h.sendMessage(message.Chat.ID, err.Error())
		return
	}

	ok, err := h.inventory.UpdateStock(ctx, name, delta)
	if err != nil {
		h.logger.Error("failed to update stock", zap.String("name", name), zap.Error(err))
		h.sendMessage(message.Chat.ID, fmt.Sprintf("❌ Could not save the change: %v", err))
		return
	}
	if !ok {
		h.sendMessage(message.Chat.ID, fmt.Sprintf("%q is not in the inventory.", name))
		return
	}

	item, _ := h.inventory.Find(ctx, name)
	if item == nil {
		h.sendMessage(message.Chat.ID, "✅ Stock updated.")
		return
	}
	h.sendMessage(message.Chat.ID, fmt.Sprintf("✅ %s now has %d in stock.", item.Name, item.Stock))
}

func (h *BotHandler) handleRemoveCommand(ctx context.Context, message *tgbotapi.Message) {
	if !h.requireAdmin(ctx, message) {
		return
	}
	name := strings.TrimSpace(message.CommandArguments())
	if name == "" {
		h.sendMessage(message.Chat.ID, "Usage: /remove <name>")
		return
	}

	ok, err := h.inventory.Remove(ctx, name)
	if err != nil {
		h.logger.Error("failed to remove item", zap.String("name", name), zap.Error(err))
		h.sendMessage(message.Chat.ID, fmt.Sprintf("❌ Could not save the change: %v", err))
		return
	}
	if !ok {
		h.sendMessage(message.Chat.ID, fmt.Sprintf("%q is not in the inventory.", name))
		return
	}
	h.sendMessage(message.Chat.ID, fmt.Sprintf("🗑 Removed %q.", name))
}

func (h *BotHandler) handleExportCommand(ctx context.Context, message *tgbotapi.Message) {
	if !h.requireAdmin(ctx, message) {
		return
	}
	data, err := h.inventory.Export(ctx)
	if err != nil {
		h.logger.Error("export failed", zap.Error(err))
		h.sendMessage(message.Chat.ID, "❌ Export failed.")
		return
	}

	doc := tgbotapi.NewDocument(message.Chat.ID, tgbotapi.FileBytes{Name: exportFileName, Bytes: data})
	doc.Caption = fmt.Sprintf("%d item(s)", len(h.inventory.List(ctx)))
	if _, err := h.bot.Send(doc); err != nil {
		h.logger.Error("failed to send export", zap.Error(err))
	}
}

// handleDocumentMessage replaces the inventory with an uploaded spreadsheet
func (h *BotHandler) handleDocumentMessage(ctx context.Context, message *tgbotapi.Message) {
	if !h.requireAdmin(ctx, message) {
		return
	}
	doc := message.Document

	if doc.FileSize > maxUploadSize {
		h.sendMessage(message.Chat.ID, "❌ The file must not exceed 5MB.")
		return
	}
	if !strings.HasSuffix(strings.ToLower(doc.FileName), ".xlsx") {
		h.sendMessage(message.Chat.ID, "❌ Only .xlsx spreadsheets are accepted.")
		return
	}

	h.sendMessage(message.Chat.ID, "⏳ Importing...")

	data, err := h.downloadFile(ctx, doc.FileID)
	if errors.Is(err, errFileTooLarge) {
		h.sendMessage(message.Chat.ID, "❌ The file must not exceed 5MB.")
		return
	}
	if err != nil {
		h.logger.Error("file download failed", zap.String("file", doc.FileName), zap.Error(err))
		h.sendMessage(message.Chat.ID, "❌ Could not download the file.")
		return
	}

	result, err := h.inventory.Import(ctx, data, doc.FileName)
	if errors.Is(err, usecase.ErrNothingToImport) {
		h.sendMessage(message.Chat.ID, fmt.Sprintf("❌ No known items in %s (%d row(s) skipped). The inventory is unchanged.", doc.FileName, result.Skipped))
		return
	}
	if err != nil {
		h.logger.Error("import failed", zap.String("file", doc.FileName), zap.Error(err))
		h.sendMessage(message.Chat.ID, fmt.Sprintf("❌ Import failed: %v", err))
		return
	}

	text := fmt.Sprintf("✅ Imported %d item(s) from %s.", result.Imported, doc.FileName)
	if result.Skipped > 0 {
		text += fmt.Sprintf("\n%d row(s) with an unknown category were skipped.", result.Skipped)
	}
	h.sendMessage(message.Chat.ID, text)
}

func (h *BotHandler) downloadFile(ctx context.Context, fileID string) ([]byte, error) {
	file, err := h.bot.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, file.Link(h.bot.Token), nil)
	if err != nil {
		return nil, err
	}
	resp, err := h.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return readLimited(resp.Body, maxUploadSize)
}

// readLimited reads r fully, failing with errFileTooLarge past limit bytes
func readLimited(r io.Reader, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, errFileTooLarge
	}
	return data, nil
}

func (h *BotHandler) startForm(userID int64) {
	h.formMu.Lock()
	defer h.formMu.Unlock()
	h.forms[userID] = newAddForm(time.Now())
}

func (h *BotHandler) hasForm(userID int64) bool {
	h.formMu.RLock()
	defer h.formMu.RUnlock()
	_, ok := h.forms[userID]
	return ok
}

func (h *BotHandler) clearForm(userID int64) {
	h.formMu.Lock()
	defer h.formMu.Unlock()
	delete(h.forms, userID)
}

func (h *BotHandler) isAwaitingPassword(userID int64) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.awaitingPassword[userID]
}

func (h *BotHandler) setAwaitingPassword(userID int64, awaiting bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if awaiting {
		h.awaitingPassword[userID] = true
	} else {
		delete(h.awaitingPassword, userID)
	}
}

func (h *BotHandler) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := h.bot.Send(msg); err != nil {
		h.logger.Warn("failed to send message", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

// GetBotUsername bot username
func (h *BotHandler) GetBotUsername() string {
	return h.bot.Self.UserName
}
