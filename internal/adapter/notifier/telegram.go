package notifier

import (
	"context"
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/0FL01/docker-pg-dump-auto/internal/config"
	"github.com/0FL01/docker-pg-dump-auto/internal/domain"
)

type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegram(cfg *config.TelegramConfig) (*TelegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	return &TelegramNotifier{
		bot:    bot,
		chatID: cfg.ChatID,
	}, nil
}

func (t *TelegramNotifier) Notify(ctx context.Context, report domain.RunReport) error {
	status := "✅ Backup run succeeded"
	if report.Stats.Failure > 0 {
		status = "❌ Backup run had failures"
	}

	var totalBytes int64
	for _, a := range report.Artifacts {
		totalBytes += a.SizeBytes
	}

	message := fmt.Sprintf(
		"%s\n\n"+
			"🎯 Targets: %d\n"+
			"✔ Succeeded: %d\n"+
			"✖ Failed: %d\n"+
			"📊 Total size: %.2f MB\n"+
			"⏱ Duration: %s",
		status,
		report.Stats.Total,
		report.Stats.Success,
		report.Stats.Failure,
		float64(totalBytes)/(1024*1024),
		report.Duration.Round(time.Second),
	)

	msg := tgbotapi.NewMessage(t.chatID, message)
	if _, err := t.bot.Send(msg); err != nil {
		return fmt.Errorf("failed to send telegram message: %w", err)
	}

	return nil
}
