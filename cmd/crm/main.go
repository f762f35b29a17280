package main

import (
	"context"
	"math/rand"
	"time"

	"nexus-crm/internal/config"
	"nexus-crm/internal/features/automation"
	"nexus-crm/internal/features/lead"
	"nexus-crm/internal/features/notification"
	"nexus-crm/internal/features/pipeline"
	"nexus-crm/internal/features/routing"
	"nexus-crm/internal/features/sla"
	"nexus-crm/internal/features/task"
	"nexus-crm/internal/features/user"
	"nexus-crm/internal/logger"
	"nexus-crm/internal/seed"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// NewRand builds the generator's random source; SEED_RANDOM pins it for
// reproducible datasets.
func NewRand(cfg *config.Config) *rand.Rand {
	seedValue := cfg.SeedRandom
	if seedValue == 0 {
		seedValue = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seedValue))
}

// SeedStores fills the in-memory stores with the generated dataset before
// anything else runs.
func SeedStores(
	lc fx.Lifecycle,
	cfg *config.Config,
	generator *seed.Generator,
	users []user.User,
	leadService lead.LeadService,
	taskService task.TaskService,
	automationService automation.AutomationService,
	notificationRepo notification.NotificationRepository,
	ruleRepo automation.RuleRepository,
	log *zap.Logger,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return generator.Populate(ctx, cfg.SeedLeadCount, users, seed.Stores{
				Leads:         leadService,
				Tasks:         taskService,
				Automation:    automationService,
				Notifications: notificationRepo,
				Rules:         ruleRepo,
			}, log)
		},
	})
}

// StartSLAMonitor runs the SLA sweep on its schedule for the lifetime of
// the app.
func StartSLAMonitor(lc fx.Lifecycle, monitor sla.SLAMonitor) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return monitor.Start(ctx)
		},
		OnStop: func(ctx context.Context) error {
			return monitor.Stop()
		},
	})
}

func main() {
	app := fx.New(
		fx.Provide(
			// Load Config
			config.LoadConfig,

			// Initialize Logger
			logger.NewLogger,

			// Static configuration
			pipeline.DefaultCatalog,
			seed.DefaultUsers,
			NewRand,
			seed.NewGenerator,

			// Initialize Repositories
			user.NewUserRepository,
			lead.NewLeadRepository,
			task.NewTaskRepository,
			notification.NewNotificationRepository,
			automation.NewRuleRepository,

			// Initialize Services
			notification.NewNotificationService,
			routing.NewUniformRandomPolicy,
			routing.NewRoutingService,
			lead.NewLeadService,
			task.NewTaskService,
			automation.NewActionExecutor,
			automation.NewAutomationService,
			sla.NewSLAMonitor,

			// Interface Adapters to break circular dependencies and satisfy Fx
			func(s routing.RoutingService) lead.OwnerAssigner { return s },
		),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		fx.Invoke(
			SeedStores,
			StartSLAMonitor,
		),
	)

	app.Run()
}
