package main

import (
	"context"
	"encoding/json"
	"math/rand"
	"os"
	"time"

	"nexus-crm/internal/config"
	"nexus-crm/internal/features/automation"
	"nexus-crm/internal/features/lead"
	"nexus-crm/internal/features/notification"
	"nexus-crm/internal/features/pipeline"
	"nexus-crm/internal/features/task"
	"nexus-crm/internal/features/user"
	"nexus-crm/internal/logger"
	"nexus-crm/internal/seed"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// Dataset is the full generated mock dataset, written as JSON for
// inspection.
type Dataset struct {
	Users         []user.User                 `json:"users"`
	Leads         []lead.Lead                 `json:"leads"`
	Tasks         []task.Task                 `json:"tasks"`
	Notifications []notification.Notification `json:"notifications"`
	Rules         []automation.Rule           `json:"rules"`
}

func NewRand(cfg *config.Config) *rand.Rand {
	seedValue := cfg.SeedRandom
	if seedValue == 0 {
		seedValue = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seedValue))
}

// Dump generates one dataset, writes it to stdout and shuts the app down.
func Dump(
	lc fx.Lifecycle,
	cfg *config.Config,
	generator *seed.Generator,
	users []user.User,
	log *zap.Logger,
	shutdowner fx.Shutdowner,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				defer func() {
					if err := shutdowner.Shutdown(); err != nil {
						log.Error("Failed to shutdown", zap.Error(err))
					}
				}()

				leads := generator.GenerateLeads(cfg.SeedLeadCount, users)
				dataset := Dataset{
					Users:         users,
					Leads:         leads,
					Tasks:         generator.GenerateTasks(leads),
					Notifications: generator.GenerateNotifications(),
					Rules:         seed.DefaultRules(),
				}

				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				if err := enc.Encode(dataset); err != nil {
					log.Error("Failed to encode dataset", zap.Error(err))
				}
			}()
			return nil
		},
	})
}

func main() {
	app := fx.New(
		fx.Provide(
			config.LoadConfig,
			logger.NewLogger,
			pipeline.DefaultCatalog,
			seed.DefaultUsers,
			NewRand,
			seed.NewGenerator,
		),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		fx.Invoke(Dump),
	)

	app.Run()
}
