package telegram

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"voicetask/internal/extraction"
	"voicetask/internal/model"
	pkgLog "voicetask/pkg/log"
	"voicetask/pkg/priority"
	pkgResponse "voicetask/pkg/response"
	pkgTelegram "voicetask/pkg/telegram"
)

const replyTimeFormat = "02.01.2006 15:04"

type handler struct {
	l   pkgLog.Logger
	uc  extraction.UseCase
	bot *pkgTelegram.Bot
}

// HandleWebhook is the Gin handler for incoming Telegram webhook updates.
// It responds with HTTP 200 immediately and processes the message in a
// background goroutine so calendar and geocoder calls cannot push the
// handler past the Telegram webhook timeout.
func (h *handler) HandleWebhook(c *gin.Context) {
	ctx := c.Request.Context()

	var update pkgTelegram.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		h.l.Errorf(ctx, "telegram handler: failed to parse update: %v", err)
		pkgResponse.Error(c, err, nil)
		return
	}

	// Ignore non-message updates (polls, channel_post, etc.)
	if update.Message == nil {
		pkgResponse.OK(c, map[string]string{"status": "ignored"})
		return
	}

	// Snapshot the message before spawning goroutine to avoid data races on gin context
	msg := update.Message

	go func() {
		// Detach from HTTP request context (which gets cancelled after response)
		bgCtx := context.Background()
		if err := h.processMessage(bgCtx, msg); err != nil {
			h.l.Errorf(bgCtx, "telegram handler: background processMessage failed: %v", err)
			_ = h.bot.SendMessage(msg.Chat.ID, "Произошла ошибка при обработке сообщения. Попробуйте ещё раз.")
		}
	}()

	pkgResponse.OK(c, map[string]string{"status": "accepted"})
}

// processMessage handles a single Telegram message.
func (h *handler) processMessage(ctx context.Context, msg *pkgTelegram.Message) error {
	if msg.Text == "" {
		return nil
	}

	switch msg.Text {
	case "/start":
		return h.bot.SendMessageWithMode(msg.Chat.ID,
			"👋 Привет! Это *VoiceTask*.\n\nПродиктуйте или напишите список дел одним сообщением, и я разберу его на задачи:\n• 📅 Пойму даты и время\n• 🔴 Отмечу срочные\n• 📍 Найду адреса\n\n_Например: \"завтра в 10 позвонить врачу потом срочно оплатить счёт\"_",
			"Markdown",
		)
	case "/help":
		return h.bot.SendMessageWithMode(msg.Chat.ID,
			"*Как пользоваться:*\n\nОтправьте список дел обычным текстом, например:\n`встреча с командой в понедельник потом купить молоко сегодня в 19`\n\nБот разберёт сообщение, создаст события в календаре и напомнит вовремя.",
			"Markdown",
		)
	}

	sc := model.Scope{
		UserID:   fmt.Sprintf("telegram_%d", msg.From.ID),
		Username: msg.From.Username,
	}

	if err := h.bot.SendMessage(msg.Chat.ID, "⏳ Разбираю..."); err != nil {
		h.l.Warnf(ctx, "telegram handler: failed to send ack message: %v", err)
	}

	extracted, err := h.uc.Extract(ctx, sc, extraction.ExtractInput{Transcript: msg.Text})
	if err != nil {
		h.l.Errorf(ctx, "telegram handler: Extract failed: %v", err)
		return h.bot.SendMessage(msg.Chat.ID, fmt.Sprintf("Не удалось обработать сообщение: %s", errorMessage(err)))
	}

	if extracted.TaskCount == 0 {
		return h.bot.SendMessage(msg.Chat.ID, "⚠️ Не нашёл задач в сообщении. Попробуйте сформулировать конкретнее.")
	}

	confirmed, err := h.uc.Confirm(ctx, sc, extraction.ConfirmInput{Drafts: extracted.Drafts})
	if err != nil {
		h.l.Errorf(ctx, "telegram handler: Confirm failed: %v", err)
		return h.bot.SendMessage(msg.Chat.ID, fmt.Sprintf("Не удалось сохранить задачи: %s", errorMessage(err)))
	}

	return h.bot.SendMessageWithMode(msg.Chat.ID, formatReply(extracted.Drafts, confirmed.Tasks), "Markdown")
}

// formatReply renders the confirmed tasks as a Markdown list.
// Drafts and tasks are index-aligned.
func formatReply(drafts []model.TaskDraft, tasks []extraction.ConfirmedTask) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Готово, *%d задач(и)*:\n\n", len(tasks))

	for i, task := range tasks {
		fmt.Fprintf(&b, "%d. %s*%s*\n", i+1, priorityMark(drafts[i].Priority), task.Title)
		if drafts[i].DueAt != nil {
			fmt.Fprintf(&b, "   🕒 %s\n", drafts[i].DueAt.Format(replyTimeFormat))
		}
		if drafts[i].Address != "" {
			fmt.Fprintf(&b, "   📍 %s\n", drafts[i].Address)
		}
		if task.CalendarLink != "" {
			fmt.Fprintf(&b, "   📅 [Открыть в календаре](%s)\n", task.CalendarLink)
		}
		if task.ReminderAt != nil {
			fmt.Fprintf(&b, "   🔔 напомню %s\n", task.ReminderAt.In(taskLocation(drafts[i].DueAt)).Format(replyTimeFormat))
		}
		b.WriteString("\n")
	}

	return b.String()
}

func priorityMark(p priority.Priority) string {
	switch p {
	case priority.Urgent:
		return "🔴 "
	case priority.Important:
		return "🟡 "
	default:
		return ""
	}
}

// taskLocation keeps reminder times in the same zone the due date resolved to.
func taskLocation(dueAt *time.Time) *time.Location {
	if dueAt == nil {
		return time.Local
	}
	return dueAt.Location()
}
