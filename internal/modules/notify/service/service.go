package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-telegram/bot"

	"github.com/dailydonald/ragefeed/internal/modules/news/domain"
)

const maxItemsPerMessage = 5

// Service pushes breaking level-5 news items to a Telegram chat. It is
// only wired up when a bot token and chat ID are configured.
type Service struct {
	bot    *bot.Bot
	chatID string
}

// New creates a new notify service
func New(b *bot.Bot, chatID string) *Service {
	return &Service{
		bot:    b,
		chatID: chatID,
	}
}

// BreakingNews sends a single message summarizing the given items.
// Delivery failures are logged and swallowed; notification is best
// effort and must never affect aggregation.
func (s *Service) BreakingNews(ctx context.Context, items []domain.NewsItem) {
	if len(items) == 0 {
		return
	}

	if len(items) > maxItemsPerMessage {
		items = items[:maxItemsPerMessage]
	}

	var sb strings.Builder
	sb.WriteString("🚨 Breaking news:\n")
	for _, item := range items {
		sb.WriteString(fmt.Sprintf("\n%s (%s)\n%s\n", item.Title, item.Source, item.Link))
	}

	_, err := s.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: s.chatID,
		Text:   sb.String(),
	})
	if err != nil {
		slog.Error("Failed to send breaking news notification", "items", len(items), "error", err)
		return
	}

	slog.Info("Sent breaking news notification", "items", len(items))
}
