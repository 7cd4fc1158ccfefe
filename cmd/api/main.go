package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"voicetask/config"
	tgDelivery "voicetask/internal/extraction/delivery/telegram"
	"voicetask/internal/extraction/usecase"
	"voicetask/internal/httpserver"
	"voicetask/internal/reminder"
	"voicetask/pkg/dateparse"
	"voicetask/pkg/gcalendar"
	"voicetask/pkg/geocode"
	"voicetask/pkg/log"
	"voicetask/pkg/telegram"
)

func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting VoiceTask...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)

	// 3. Date parser
	dates, dtErr := dateparse.NewParser(cfg.Extraction.Timezone)
	if dtErr != nil {
		logger.Warnf(ctx, "Invalid timezone %q, falling back to UTC: %v", cfg.Extraction.Timezone, dtErr)
		dates, _ = dateparse.NewParser("UTC")
	}

	// 4. Google Calendar client (optional)
	var calendarClient *gcalendar.Client
	if cfg.GoogleCalendar.CredentialsPath != "" {
		calendarClient, err = gcalendar.NewClientFromCredentialsFile(ctx, cfg.GoogleCalendar.CredentialsPath)
		if err != nil {
			logger.Warnf(ctx, "Google Calendar not available (optional): %v", err)
			calendarClient = nil
		} else {
			logger.Info(ctx, "✅ Google Calendar initialized")
		}
	}

	// 5. Geocoder (always available, cache-backed)
	geocoder := geocode.NewClient(cfg.Geocoder.UserAgent, cfg.Geocoder.CacheSize, cfg.Geocoder.CacheTTL)

	// 6. Reminder scheduler
	reminders := reminder.New(logger, func(ctx context.Context, r reminder.Reminder) {
		logger.Infof(ctx, "🔔 Reminder due: %s (task %s)", r.Title, r.TaskID)
	})
	defer reminders.Stop()

	// 7. Extraction UseCase
	var calendar usecase.Calendar
	if calendarClient != nil {
		calendar = calendarClient
	}
	extractionUC := usecase.New(
		logger,
		dates,
		calendar,
		geocoder,
		reminders,
		cfg.Extraction.Timezone,
		cfg.GoogleCalendar.CalendarID,
	)

	// 8. Telegram delivery (optional)
	var telegramHandler tgDelivery.Handler
	if cfg.Telegram.BotToken != "" {
		telegramBot := telegram.NewBot(cfg.Telegram.BotToken)
		telegramHandler = tgDelivery.New(logger, extractionUC, telegramBot)

		// Register webhook: auto-detect ngrok or fallback to manual config
		webhookURL := cfg.Telegram.WebhookURL
		if webhookURL == "" {
			ngrokURL, ngrokErr := detectNgrokURL(ctx, "http://ngrok:4040")
			if ngrokErr != nil {
				logger.Warnf(ctx, "Could not detect ngrok URL: %v", ngrokErr)
			} else {
				webhookURL = ngrokURL + "/webhook/telegram"
				logger.Infof(ctx, "Auto-detected ngrok URL: %s", webhookURL)
			}
		}

		if webhookURL != "" {
			if whErr := telegramBot.SetWebhook(webhookURL); whErr != nil {
				logger.Warnf(ctx, "Failed to set Telegram webhook: %v", whErr)
			} else {
				logger.Infof(ctx, "✅ Telegram webhook registered at %s", webhookURL)
			}
		}
	} else {
		logger.Warn(ctx, "Telegram delivery skipped: TELEGRAM_BOT_TOKEN is missing")
	}

	// 9. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:          logger,
		Port:            cfg.HTTPServer.Port,
		Mode:            cfg.HTTPServer.Mode,
		Environment:     cfg.Environment.Name,
		ExtractionUC:    extractionUC,
		RateLimitPerMin: cfg.HTTPServer.RateLimitPerMin,
		TelegramHandler: telegramHandler,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 10. Run
	if err := httpServer.Run(ctx); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}
