package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"bastion/internal/config"
	"bastion/internal/database"
	"bastion/internal/eventbus"
	"bastion/internal/executor"
	"bastion/internal/firewall"
	"bastion/internal/httphandlers"
	dockerclient "bastion/internal/integrations/docker"
	"bastion/internal/service"
	"bastion/internal/storage"
	"bastion/logger"
)

func main() {
	if err := logger.InitLogger(os.Getenv("MODE")); err != nil {
		fmt.Printf("Error initializing logger: %v\n", err)
		return
	}
	defer logger.Sync()

	cfg := config.New()
	srv, teardown, err := setup(cfg)
	if err != nil {
		log.Fatal(err)
	}

	go func() {
		logger.Info("serving http(s) on :3650")
		if cfg.HasTLSConfig() {
			if err := srv.ListenAndServeTLS(cfg.ServerSSLCertFile, cfg.ServerSSLKeyFile); err != nil {
				log.Fatal("server closed: ", err)
			}
		} else {
			if err := srv.ListenAndServe(); err != nil {
				log.Fatal("server closed: ", err)
			}
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, syscall.SIGINT, syscall.SIGTERM)

	<-done
	log.Println("Shutting down...")

	if teardown != nil {
		if err := teardown(); err != nil {
			logger.Error("teardown failed", zap.Error(err))
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %s\n", err)
	}
}

func setup(cfg config.Config) (*http.Server, func() error, error) {
	eventBus := eventbus.New()
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	db, err := database.Open(cfg.DatabasePath)
	if err != nil {
		cancel()
		return nil, nil, err
	}

	eventRepo := database.NewRuleEventRepository(db)
	backupRepo := database.NewBackupRepository(db)
	settingsRepo := database.NewBackupSettingsRepository(db)

	var opts []firewall.Option
	opts = append(opts, firewall.WithTool(cfg.FirewallTool))
	if cfg.StrictMatch {
		opts = append(opts, firewall.WithStrictMatch())
	}
	if cfg.RestoreValidation {
		opts = append(opts, firewall.WithRestoreValidation())
	}

	manager := firewall.NewManager(executor.NewShellExecutor(cfg.UseSudo), opts...)
	firewallService := service.NewFirewallService(manager, eventRepo, eventBus)

	var objectStorage storage.Storage
	if cfg.HasS3Config() {
		objectStorage, err = storage.NewObjectStorage(storage.Credentials{
			Endpoint:    cfg.S3Endpoint,
			AccessKeyID: cfg.S3AccessKeyID,
			SecretKey:   cfg.S3SecretKey,
			Region:      cfg.S3Region,
		})
		if err != nil {
			cancel()
			return nil, nil, err
		}
	}

	backupService, err := service.NewBackupService(manager, backupRepo, settingsRepo, objectStorage, cfg.BackupDir)
	if err != nil {
		cancel()
		return nil, nil, err
	}

	if err := backupService.Run(ctx); err != nil {
		cancel()
		return nil, nil, err
	}

	if cfg.DockerSync {
		docker, err := dockerclient.NewClient()
		if err != nil {
			cancel()
			return nil, nil, err
		}

		sync := dockerclient.NewSync(docker, firewallService)
		go func() {
			if err := sync.Run(ctx); err != nil {
				logger.Error("docker sync stopped", zap.Error(err))
			}
		}()
	}

	apiHandler := httphandlers.NewApiHandler(firewallService, backupService, eventBus)
	routes := httphandlers.Routes(apiHandler, cfg.AccessKey)

	addr := ":3650"
	return &http.Server{
			Addr:    addr,
			Handler: routes,
		}, func() error {
			sqlDB, _ := db.DB()
			if sqlDB != nil {
				err = sqlDB.Close()
				logger.Info("DB Closed", zap.Error(err))
			}
			cancel()
			return nil
		}, nil
}
