package main

import (
	"Feedback_Backend/internal/config"
	"Feedback_Backend/internal/handler"
	"Feedback_Backend/internal/mongodb"
	repoFeedback "Feedback_Backend/internal/repository/feedback"
	"Feedback_Backend/internal/router"
	"Feedback_Backend/internal/schedule"
	"Feedback_Backend/internal/service/feedback"
	"Feedback_Backend/internal/socketio"
	"Feedback_Backend/internal/telegram"
	"Feedback_Backend/internal/web"
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	Execute()
}

func run(ctx context.Context, cfg config.Config) error {
	log.SetLevel(cfg.FiberLogLevel())

	repo, closeRepo, err := openRepository(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeRepo()

	var notifiers feedback.Notifiers
	if cfg.WSPort != "" {
		socketServer := socketio.NewSocketServer(cfg.WSPort)
		notifiers = append(notifiers, socketServer)
		go socketServer.Start()
	}
	if cfg.TelegramBotToken != "" {
		notifiers = append(notifiers, telegram.NewClient(cfg.TelegramBotToken, cfg.TelegramChatID))
	}

	feedbackService := feedback.NewFeedbackService(repo, notifiers)

	templates, err := web.Templates()
	if err != nil {
		return fmt.Errorf("loading page templates: %w", err)
	}
	feedbackHandler := handler.NewFeedbackHandler(feedbackService, templates, web.PageData{
		Title:       cfg.Title,
		LiveFeedURL: cfg.LiveFeedURL,
	})

	app := router.NewApp(cfg.IPv6Only)
	app.Use(logger.New())
	router.Register(app, feedbackHandler)

	if cfg.Dev {
		for _, route := range app.GetRoutes(true) {
			log.Debugf("%-7s %s", route.Method, route.Path)
		}
	}

	if cfg.HealthCheckInterval > 0 {
		scheduler, err := schedule.Start(ctx, feedbackService, cfg.HealthCheckInterval)
		if err != nil {
			return err
		}
		defer func() { _ = scheduler.Shutdown() }()
	}

	go func() {
		<-ctx.Done()
		log.Info("Shutting down")
		if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
			log.Error("Error while shutting down:", err)
		}
	}()

	return app.Listen(":" + cfg.Port)
}

func openRepository(ctx context.Context, cfg config.Config) (repoFeedback.Repository, func(), error) {
	switch cfg.StorageDriver {
	case config.StorageMongo:
		client, err := mongodb.NewClient(ctx, cfg.MongoURI, cfg.DBName)
		if err != nil {
			return nil, nil, fmt.Errorf("connecting to MongoDB: %w", err)
		}
		log.Infof("Storing feedback in MongoDB database %q", cfg.DBName)
		closeClient := func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := client.Close(ctx); err != nil {
				log.Error("Error while closing MongoDB client:", err)
			}
		}
		return repoFeedback.NewFeedbackRepository(client), closeClient, nil
	default:
		log.Infof("Storing feedback in %s", cfg.FeedbackFile)
		return repoFeedback.NewFileRepository(cfg.FeedbackFile), func() {}, nil
	}
}
