package sla

import (
	"context"
	"fmt"
	"time"

	"nexus-crm/internal/config"
	"nexus-crm/internal/features/lead"
	"nexus-crm/internal/features/notification"
	"nexus-crm/internal/features/pipeline"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// warningFraction of the stage's max time at which a lead turns to warning.
const warningFraction = 0.8

// SLAMonitor sweeps the lead store on a fixed interval and classifies each
// lead's time-in-stage against the configured thresholds.
type SLAMonitor interface {
	Sweep(ctx context.Context) error
	Start(ctx context.Context) error
	Stop() error
}

// SLAMonitorImpl implements SLAMonitor
type SLAMonitorImpl struct {
	LeadRepo            lead.LeadRepository
	NotificationService notification.NotificationService
	Catalog             *pipeline.Catalog
	Logger              *zap.Logger

	interval  time.Duration
	scheduler *cron.Cron
}

// NewSLAMonitor creates a new SLA monitor
func NewSLAMonitor(
	leadRepo lead.LeadRepository,
	notificationService notification.NotificationService,
	catalog *pipeline.Catalog,
	cfg *config.Config,
	logger *zap.Logger,
) SLAMonitor {
	return &SLAMonitorImpl{
		LeadRepo:            leadRepo,
		NotificationService: notificationService,
		Catalog:             catalog,
		Logger:              logger,
		interval:            time.Duration(cfg.SLASweepSeconds) * time.Second,
	}
}

// Start registers the sweep with the scheduler and starts it
func (m *SLAMonitorImpl) Start(ctx context.Context) error {
	m.Logger.Info("starting SLA monitor", zap.Duration("interval", m.interval))
	m.scheduler = cron.New()

	_, err := m.scheduler.AddFunc(fmt.Sprintf("@every %ds", int(m.interval.Seconds())), func() {
		if err := m.Sweep(context.Background()); err != nil {
			m.Logger.Error("SLA sweep failed", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule SLA sweep: %w", err)
	}

	m.scheduler.Start()
	return nil
}

// Stop halts the scheduler and waits for a running sweep to finish
func (m *SLAMonitorImpl) Stop() error {
	if m.scheduler != nil {
		ctx := m.scheduler.Stop()
		<-ctx.Done()
	}
	return nil
}

// Sweep evaluates every lead once. A failure on one lead never stops the
// rest of the sweep.
func (m *SLAMonitorImpl) Sweep(ctx context.Context) error {
	leads, err := m.LeadRepo.FindAll(ctx)
	if err != nil {
		return err
	}

	now := time.Now()
	for i := range leads {
		if err := m.evaluateLead(ctx, &leads[i], now); err != nil {
			m.Logger.Warn("SLA evaluation failed for lead",
				zap.String("lead_id", leads[i].ID.Hex()),
				zap.Error(err))
		}
	}
	return nil
}

func (m *SLAMonitorImpl) evaluateLead(ctx context.Context, l *lead.Lead, now time.Time) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic evaluating lead: %v", r)
		}
	}()

	policy, monitored := m.Catalog.PolicyFor(l.Status)
	if !monitored {
		return nil
	}

	elapsed := now.Sub(l.StageEnteredAt)
	target := lead.SLAStatusOK
	switch {
	case elapsed > policy.MaxTimeInStage:
		target = lead.SLAStatusBreached
	case elapsed > time.Duration(warningFraction*float64(policy.MaxTimeInStage)):
		target = lead.SLAStatusWarning
	}

	// The swap is atomic; the previous state decides whether this sweep
	// crossed into breached, so a lead already breached never re-notifies.
	previous, err := m.LeadRepo.UpdateSLAStatus(ctx, l.ID.Hex(), target)
	if err != nil {
		return err
	}

	if target == lead.SLAStatusBreached && previous != lead.SLAStatusBreached {
		m.Logger.Warn("SLA breached",
			zap.String("lead_id", l.ID.Hex()),
			zap.String("stage", string(l.Status)),
			zap.Duration("time_in_stage", elapsed))
		return m.NotificationService.CreateNotification(ctx,
			"SLA Breach Detected",
			fmt.Sprintf("%s has been in %s for %s, exceeding the %s limit.",
				l.FullName(), l.Status, elapsed.Round(time.Minute), policy.MaxTimeInStage),
			notification.NotificationTypeAlert)
	}
	return nil
}
