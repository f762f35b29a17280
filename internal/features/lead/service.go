package lead

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"nexus-crm/internal/features/notification"
	"nexus-crm/internal/features/pipeline"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

var (
	ErrSameStage    = errors.New("lead is already in the target stage")
	ErrUnknownStage = errors.New("unknown pipeline stage")
	ErrSelfMerge    = errors.New("cannot merge a lead into itself")
)

// OwnerAssigner picks an owner for a newly created lead. Implemented by the
// routing service; declared here to keep the dependency pointing inward.
type OwnerAssigner interface {
	AssignOwner(ctx context.Context, l *Lead) (primitive.ObjectID, error)
}

// LeadUpdate is a partial update; nil fields are left untouched.
// CustomFields entries are merged key by key.
type LeadUpdate struct {
	FirstName      *string
	LastName       *string
	Email          *string
	Phone          *string
	Company        *string
	Position       *string
	Source         *string
	Score          *int
	PotentialValue *float64
	Tags           *[]string
	LastContacted  *time.Time
	IsFollowed     *bool
	Address        *Address
	CustomFields   map[string]any
}

// LeadService defines the store's operation surface
type LeadService interface {
	AddLead(ctx context.Context, l *Lead) error
	GetLead(ctx context.Context, id string) (*Lead, error)
	ListLeads(ctx context.Context) ([]Lead, error)
	UpdateLead(ctx context.Context, id string, updates LeadUpdate) error
	DeleteLead(ctx context.Context, id string) error
	MoveLeadStage(ctx context.Context, id string, target pipeline.StageID) (*TransitionResult, error)
	ImportLeads(ctx context.Context, leads []Lead) error
	FindDuplicates(ctx context.Context, probe *Lead) ([]Lead, error)
	MergeLeads(ctx context.Context, primaryID, duplicateID string) error
	ToggleFollow(ctx context.Context, id string) error
	AddActivity(ctx context.Context, leadID string, activity Activity) error
}

// LeadServiceImpl implements LeadService
type LeadServiceImpl struct {
	LeadRepo            LeadRepository
	NotificationService notification.NotificationService
	Assigner            OwnerAssigner
	Catalog             *pipeline.Catalog
	Logger              *zap.Logger
}

// NewLeadService creates a new lead service
func NewLeadService(
	leadRepo LeadRepository,
	notificationService notification.NotificationService,
	assigner OwnerAssigner,
	catalog *pipeline.Catalog,
	logger *zap.Logger,
) LeadService {
	return &LeadServiceImpl{
		LeadRepo:            leadRepo,
		NotificationService: notificationService,
		Assigner:            assigner,
		Catalog:             catalog,
		Logger:              logger,
	}
}

// AddLead routes an owner for the lead and appends it to the store. When no
// owner can be assigned the lead is not inserted.
func (s *LeadServiceImpl) AddLead(ctx context.Context, l *Lead) error {
	s.stampDefaults(l)
	if !s.Catalog.IsValidStage(l.Status) {
		return fmt.Errorf("%w: %s", ErrUnknownStage, l.Status)
	}

	ownerID, err := s.Assigner.AssignOwner(ctx, l)
	if err != nil {
		return fmt.Errorf("failed to route lead: %w", err)
	}
	l.OwnerID = ownerID

	if err := s.LeadRepo.Insert(ctx, l); err != nil {
		return err
	}

	s.Logger.Info("lead created",
		zap.String("lead_id", l.ID.Hex()),
		zap.String("owner_id", ownerID.Hex()),
		zap.String("stage", string(l.Status)))
	return nil
}

// GetLead retrieves a lead by ID
func (s *LeadServiceImpl) GetLead(ctx context.Context, id string) (*Lead, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, errors.New("invalid lead ID")
	}
	return s.LeadRepo.FindByID(ctx, id)
}

// ListLeads returns a snapshot of the collection, newest first
func (s *LeadServiceImpl) ListLeads(ctx context.Context) ([]Lead, error) {
	return s.LeadRepo.FindAll(ctx)
}

// UpdateLead shallow-merges the given fields into the lead. The merge runs
// inside the repository lock; SLAStatus is never touched here, so a sweep
// that fires mid-update keeps its verdict.
func (s *LeadServiceImpl) UpdateLead(ctx context.Context, id string, updates LeadUpdate) error {
	return s.LeadRepo.Mutate(ctx, id, func(l *Lead) error {
		if updates.FirstName != nil {
			l.FirstName = *updates.FirstName
		}
		if updates.LastName != nil {
			l.LastName = *updates.LastName
		}
		if updates.Email != nil {
			l.Email = *updates.Email
		}
		if updates.Phone != nil {
			l.Phone = *updates.Phone
		}
		if updates.Company != nil {
			l.Company = *updates.Company
		}
		if updates.Position != nil {
			l.Position = *updates.Position
		}
		if updates.Source != nil {
			l.Source = *updates.Source
		}
		if updates.Score != nil {
			l.Score = *updates.Score
		}
		if updates.PotentialValue != nil {
			l.PotentialValue = *updates.PotentialValue
		}
		if updates.Tags != nil {
			l.Tags = *updates.Tags
		}
		if updates.LastContacted != nil {
			l.LastContacted = updates.LastContacted
		}
		if updates.IsFollowed != nil {
			l.IsFollowed = *updates.IsFollowed
		}
		if updates.Address != nil {
			l.Address = updates.Address
		}
		if len(updates.CustomFields) > 0 {
			if l.CustomFields == nil {
				l.CustomFields = make(map[string]any, len(updates.CustomFields))
			}
			for k, v := range updates.CustomFields {
				l.CustomFields[k] = v
			}
		}
		return nil
	})
}

// DeleteLead removes a lead from the store
func (s *LeadServiceImpl) DeleteLead(ctx context.Context, id string) error {
	return s.LeadRepo.Delete(ctx, id)
}

// MoveLeadStage validates the current stage's exit criteria and, when they
// are satisfied, applies the transition atomically: stage updated, a
// milestone activity prepended, SLA state reset. A failed check returns the
// missing field names and mutates nothing.
func (s *LeadServiceImpl) MoveLeadStage(ctx context.Context, id string, target pipeline.StageID) (*TransitionResult, error) {
	if !s.Catalog.IsValidStage(target) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownStage, target)
	}

	var result *TransitionResult
	err := s.LeadRepo.Mutate(ctx, id, func(l *Lead) error {
		if l.Status == target {
			return ErrSameStage
		}
		if missing := missingExitFields(s.Catalog.ExitCriteria(l.Status), l); len(missing) > 0 {
			result = &TransitionResult{Success: false, MissingFields: missing}
			return nil
		}

		now := time.Now()
		milestone := Activity{
			ID:          primitive.NewObjectID(),
			Type:        ActivityTypeStageChange,
			Description: fmt.Sprintf("Stage changed from %s to %s", l.Status, target),
			Timestamp:   now,
			PerformedBy: "System",
		}
		l.Activities = append([]Activity{milestone}, l.Activities...)
		l.Status = target
		l.StageEnteredAt = now
		l.SLAStatus = SLAStatusOK
		result = &TransitionResult{Success: true}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.Success {
		s.Logger.Info("lead stage changed",
			zap.String("lead_id", id),
			zap.String("stage", string(target)))
	}
	return result, nil
}

// ImportLeads appends records whose email does not collide with an existing
// lead or an earlier record in the same batch, then emits one summary
// notification. Emails are compared case-insensitively. Surviving records
// without an owner are routed the same way AddLead routes them.
func (s *LeadServiceImpl) ImportLeads(ctx context.Context, leads []Lead) error {
	existing, err := s.LeadRepo.FindAll(ctx)
	if err != nil {
		return err
	}

	seen := make(map[string]struct{}, len(existing))
	for i := range existing {
		seen[strings.ToLower(existing[i].Email)] = struct{}{}
	}

	imported := 0
	for i := range leads {
		l := leads[i]
		key := strings.ToLower(l.Email)
		if _, dup := seen[key]; dup {
			continue
		}

		s.stampDefaults(&l)
		if !s.Catalog.IsValidStage(l.Status) {
			l.Status = pipeline.StageNew
		}
		if l.OwnerID.IsZero() {
			ownerID, err := s.Assigner.AssignOwner(ctx, &l)
			if err != nil {
				return fmt.Errorf("failed to route lead: %w", err)
			}
			l.OwnerID = ownerID
		}
		if err := s.LeadRepo.Insert(ctx, &l); err != nil {
			return err
		}
		seen[key] = struct{}{}
		imported++
	}

	s.Logger.Info("leads imported",
		zap.Int("received", len(leads)),
		zap.Int("imported", imported))
	return s.NotificationService.CreateNotification(ctx,
		"Import Successful",
		fmt.Sprintf("Successfully imported %d new leads.", imported),
		notification.NotificationTypeSystem)
}

// FindDuplicates scans the store for leads scoring at or above the
// duplicate threshold against the probe. The probe itself is excluded.
// Linear scan; fine at prototype scale, index by normalized email/phone
// before pointing this at a real dataset.
func (s *LeadServiceImpl) FindDuplicates(ctx context.Context, probe *Lead) ([]Lead, error) {
	all, err := s.LeadRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	var duplicates []Lead
	for i := range all {
		if all[i].ID == probe.ID {
			continue
		}
		if DuplicateScore(probe, &all[i]) >= DuplicateThreshold {
			duplicates = append(duplicates, all[i])
		}
	}
	return duplicates, nil
}

// MergeLeads folds the duplicate's timeline into the primary record and
// hard-deletes the duplicate. The duplicate's other fields are discarded;
// that is the documented merge semantics, not field-level reconciliation.
func (s *LeadServiceImpl) MergeLeads(ctx context.Context, primaryID, duplicateID string) error {
	if primaryID == duplicateID {
		return ErrSelfMerge
	}

	duplicate, err := s.LeadRepo.FindByID(ctx, duplicateID)
	if err != nil {
		return fmt.Errorf("duplicate lead: %w", err)
	}

	mergeRecord := Activity{
		ID:          primitive.NewObjectID(),
		Type:        ActivityTypeMerge,
		Description: fmt.Sprintf("Merged duplicate record %s (%s)", duplicate.FullName(), duplicate.Email),
		Timestamp:   time.Now(),
		PerformedBy: "System",
		Details:     duplicate.ID.Hex(),
	}

	var primaryName string
	err = s.LeadRepo.Mutate(ctx, primaryID, func(primary *Lead) error {
		combined := make([]Activity, 0, len(primary.Activities)+len(duplicate.Activities)+1)
		combined = append(combined, primary.Activities...)
		combined = append(combined, duplicate.Activities...)
		combined = append(combined, mergeRecord)
		sort.SliceStable(combined, func(i, j int) bool {
			return combined[i].Timestamp.After(combined[j].Timestamp)
		})
		primary.Activities = combined
		primaryName = primary.FullName()
		return nil
	})
	if err != nil {
		return fmt.Errorf("primary lead: %w", err)
	}
	if err := s.LeadRepo.Delete(ctx, duplicateID); err != nil {
		return err
	}

	s.Logger.Info("leads merged",
		zap.String("primary_id", primaryID),
		zap.String("duplicate_id", duplicateID))
	return s.NotificationService.CreateNotification(ctx,
		"Leads Merged",
		fmt.Sprintf("%s was merged into %s.", duplicate.FullName(), primaryName),
		notification.NotificationTypeSystem)
}

// ToggleFollow flips the followed flag on a lead
func (s *LeadServiceImpl) ToggleFollow(ctx context.Context, id string) error {
	return s.LeadRepo.Mutate(ctx, id, func(l *Lead) error {
		l.IsFollowed = !l.IsFollowed
		return nil
	})
}

// AddActivity prepends a timeline entry to the lead
func (s *LeadServiceImpl) AddActivity(ctx context.Context, leadID string, activity Activity) error {
	if activity.ID.IsZero() {
		activity.ID = primitive.NewObjectID()
	}
	if activity.Timestamp.IsZero() {
		activity.Timestamp = time.Now()
	}
	return s.LeadRepo.Mutate(ctx, leadID, func(l *Lead) error {
		l.Activities = append([]Activity{activity}, l.Activities...)
		return nil
	})
}

func (s *LeadServiceImpl) stampDefaults(l *Lead) {
	now := time.Now()
	if l.ID.IsZero() {
		l.ID = primitive.NewObjectID()
	}
	if l.CreatedAt.IsZero() {
		l.CreatedAt = now
	}
	if l.StageEnteredAt.IsZero() {
		l.StageEnteredAt = now
	}
	if l.Status == "" {
		l.Status = pipeline.StageNew
	}
	if l.SLAStatus == "" {
		l.SLAStatus = SLAStatusOK
	}
}
