package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	firebase "firebase.google.com/go/v4"
	"github.com/gin-gonic/gin"
	"github.com/navbryce/yatube/app"
	"github.com/navbryce/yatube/config"
	"github.com/navbryce/yatube/controllers"
	"github.com/navbryce/yatube/db/migrate"
	"github.com/navbryce/yatube/logging"
	"github.com/navbryce/yatube/middleware"
	"github.com/navbryce/yatube/routes"
	"github.com/navbryce/yatube/services"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func ServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the web server",
		RunE: func(cmd *cobra.Command, args []string) error {
			runMigrations, _ := cmd.Flags().GetBool("migrate")
			return serve(cmd.Context(), runMigrations)
		},
	}
	cmd.Flags().Bool("migrate", false, "Migrate the schema before serving")
	return cmd
}

func serve(parent context.Context, runMigrations bool) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	database, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	if runMigrations {
		if err := migrate.Run(ctx, database.Driver(), database.GetSQLDB()); err != nil {
			return err
		}
	}

	credentialsPath, err := config.ConfigureFirebaseCredentials()
	if err != nil {
		return fmt.Errorf("an error occurred while configuring firebase credentials: %w", err)
	}
	log.Info().Str(logging.EVENT, "firebase_credentials").Str("path", credentialsPath).Msg("using firebase credentials")

	fbApp, err := firebase.NewApp(ctx, nil)
	if err != nil {
		return fmt.Errorf("error initializing firebase: %w", err)
	}
	authClient, err := fbApp.Auth(ctx)
	if err != nil {
		return fmt.Errorf("error initializing auth client: %w", err)
	}

	var (
		images    services.ImageStore
		mediaRoot string
	)
	if cfg.StorageBucket != "" {
		bucket, err := services.NewStorageBucket(ctx, fbApp, cfg.StorageBucket)
		if err != nil {
			return fmt.Errorf("an error occurred while connecting to the uploads bucket: %w", err)
		}
		images = bucket
	} else {
		local, err := services.NewLocalStore(cfg.MediaRoot, "/media")
		if err != nil {
			return fmt.Errorf("an error occurred while preparing %v: %w", cfg.MediaRoot, err)
		}
		images = local
		mediaRoot = cfg.MediaRoot
	}

	groupController, err := controllers.NewGroupController(ctx, database)
	if err != nil {
		return fmt.Errorf("an error occurred while initializing the group controller: %w", err)
	}

	gin.SetMode(cfg.GinMode)
	engine, err := routes.NewEngine(&routes.EngineOpts{
		DB:          database,
		SessionAuth: authClient,
		Images:      images,
		Groups:      groupController,
		PageCache:   middleware.NewPageCache(cfg.IndexCacheTTL),
		PageOpts:    &app.PageOpts{PageSize: cfg.PostsOnPage},
		Session: &routes.SessionOpts{
			TTL:    cfg.SessionTTL,
			Secure: cfg.SecureCookies,
		},
		Origins:   cfg.Origins,
		MediaRoot: mediaRoot,
	})
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	serveErr := make(chan error, 1)
	go func() {
		log.Info().Str(logging.EVENT, "listening").Str("addr", server.Addr).Msg("serving")
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("error when attempting to run web server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Str(logging.EVENT, "shutdown").Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
