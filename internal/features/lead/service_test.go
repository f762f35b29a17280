package lead

import (
	"context"
	"errors"
	"testing"
	"time"

	"nexus-crm/internal/features/notification"
	"nexus-crm/internal/features/pipeline"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type fixedAssigner struct {
	id  primitive.ObjectID
	err error
}

func (a fixedAssigner) AssignOwner(ctx context.Context, l *Lead) (primitive.ObjectID, error) {
	return a.id, a.err
}

func newTestService(assigner OwnerAssigner) (*LeadServiceImpl, notification.NotificationService) {
	notifService := notification.NewNotificationService(notification.NewNotificationRepository())
	svc := &LeadServiceImpl{
		LeadRepo:            NewLeadRepository(),
		NotificationService: notifService,
		Assigner:            assigner,
		Catalog:             pipeline.DefaultCatalog(),
		Logger:              zap.NewNop(),
	}
	return svc, notifService
}

func mustAdd(t *testing.T, svc *LeadServiceImpl, l *Lead) *Lead {
	t.Helper()
	if err := svc.AddLead(context.Background(), l); err != nil {
		t.Fatalf("AddLead() error = %v", err)
	}
	return l
}

func TestAddLead(t *testing.T) {
	ownerID := primitive.NewObjectID()
	svc, _ := newTestService(fixedAssigner{id: ownerID})
	ctx := context.Background()

	l := mustAdd(t, svc, &Lead{FirstName: "Jane", LastName: "Doe", Email: "jane@acme.com"})

	if l.OwnerID != ownerID {
		t.Errorf("OwnerID = %v, want %v", l.OwnerID, ownerID)
	}
	if l.Status != pipeline.StageNew {
		t.Errorf("Status = %v, want %v", l.Status, pipeline.StageNew)
	}
	if l.SLAStatus != SLAStatusOK {
		t.Errorf("SLAStatus = %v, want %v", l.SLAStatus, SLAStatusOK)
	}

	all, _ := svc.ListLeads(ctx)
	if len(all) != 1 {
		t.Fatalf("store has %d leads, want 1", len(all))
	}
}

func TestAddLeadRoutingFailure(t *testing.T) {
	svc, _ := newTestService(fixedAssigner{err: errors.New("no users available for assignment")})
	ctx := context.Background()

	if err := svc.AddLead(ctx, &Lead{FirstName: "Jane"}); err == nil {
		t.Fatal("AddLead() expected error when routing fails")
	}

	all, _ := svc.ListLeads(ctx)
	if len(all) != 0 {
		t.Errorf("lead was inserted despite routing failure")
	}
}

func TestMoveLeadStage(t *testing.T) {
	svc, _ := newTestService(fixedAssigner{id: primitive.NewObjectID()})
	ctx := context.Background()

	t.Run("Rejected with missing fields and no mutation", func(t *testing.T) {
		l := mustAdd(t, svc, &Lead{
			FirstName: "Jane",
			LastName:  "Doe",
			Email:     "jane.gate@acme.com",
			Company:   "Acme Corp",
			Status:    pipeline.StageNew,
		})
		before, _ := svc.GetLead(ctx, l.ID.Hex())

		result, err := svc.MoveLeadStage(ctx, l.ID.Hex(), pipeline.StageContacted)
		if err != nil {
			t.Fatalf("MoveLeadStage() error = %v", err)
		}
		if result.Success {
			t.Fatal("transition should have been rejected")
		}
		want := []string{"phone", "potentialValue"}
		if len(result.MissingFields) != len(want) {
			t.Fatalf("MissingFields = %v, want %v", result.MissingFields, want)
		}
		for i := range want {
			if result.MissingFields[i] != want[i] {
				t.Errorf("MissingFields = %v, want %v", result.MissingFields, want)
			}
		}

		after, _ := svc.GetLead(ctx, l.ID.Hex())
		if after.Status != before.Status || len(after.Activities) != len(before.Activities) {
			t.Error("rejected transition mutated the lead")
		}
	})

	t.Run("Applied atomically on success", func(t *testing.T) {
		l := mustAdd(t, svc, &Lead{
			FirstName: "John",
			LastName:  "Brown",
			Email:     "john.gate@acme.com",
			Status:    pipeline.StageContacted,
		})
		// Simulate a breached lead so the reset is observable
		if _, err := svc.LeadRepo.UpdateSLAStatus(ctx, l.ID.Hex(), SLAStatusBreached); err != nil {
			t.Fatal(err)
		}
		before, _ := svc.GetLead(ctx, l.ID.Hex())

		result, err := svc.MoveLeadStage(ctx, l.ID.Hex(), pipeline.StageQualified)
		if err != nil {
			t.Fatalf("MoveLeadStage() error = %v", err)
		}
		if !result.Success {
			t.Fatalf("transition rejected: %v", result.MissingFields)
		}

		after, _ := svc.GetLead(ctx, l.ID.Hex())
		if after.Status != pipeline.StageQualified {
			t.Errorf("Status = %v, want %v", after.Status, pipeline.StageQualified)
		}
		if len(after.Activities) != len(before.Activities)+1 {
			t.Errorf("activity count = %d, want %d", len(after.Activities), len(before.Activities)+1)
		}
		if after.Activities[0].Type != ActivityTypeStageChange {
			t.Errorf("newest activity type = %v, want %v", after.Activities[0].Type, ActivityTypeStageChange)
		}
		if after.Activities[0].Description != "Stage changed from Contacted to Qualified" {
			t.Errorf("unexpected milestone description: %s", after.Activities[0].Description)
		}
		if after.SLAStatus != SLAStatusOK {
			t.Errorf("SLAStatus = %v, want reset to %v", after.SLAStatus, SLAStatusOK)
		}
		if !after.StageEnteredAt.After(before.StageEnteredAt) {
			t.Error("StageEnteredAt was not reset")
		}
	})

	t.Run("Same stage rejected before validation", func(t *testing.T) {
		l := mustAdd(t, svc, &Lead{Email: "same.stage@acme.com", Status: pipeline.StageContacted})
		if _, err := svc.MoveLeadStage(ctx, l.ID.Hex(), pipeline.StageContacted); !errors.Is(err, ErrSameStage) {
			t.Errorf("error = %v, want ErrSameStage", err)
		}
	})

	t.Run("Unknown target stage", func(t *testing.T) {
		l := mustAdd(t, svc, &Lead{Email: "bad.stage@acme.com", Status: pipeline.StageContacted})
		if _, err := svc.MoveLeadStage(ctx, l.ID.Hex(), "Archived"); !errors.Is(err, ErrUnknownStage) {
			t.Errorf("error = %v, want ErrUnknownStage", err)
		}
	})

	t.Run("Unknown lead", func(t *testing.T) {
		if _, err := svc.MoveLeadStage(ctx, primitive.NewObjectID().Hex(), pipeline.StageContacted); !errors.Is(err, ErrLeadNotFound) {
			t.Errorf("error = %v, want ErrLeadNotFound", err)
		}
	})
}

func TestUpdateLead(t *testing.T) {
	svc, _ := newTestService(fixedAssigner{id: primitive.NewObjectID()})
	ctx := context.Background()

	l := mustAdd(t, svc, &Lead{FirstName: "Jane", Email: "jane.update@acme.com"})

	phone := "(555) 999-0000"
	score := 80
	if err := svc.UpdateLead(ctx, l.ID.Hex(), LeadUpdate{
		Phone:        &phone,
		Score:        &score,
		CustomFields: map[string]any{"industry": "SaaS"},
	}); err != nil {
		t.Fatalf("UpdateLead() error = %v", err)
	}

	updated, _ := svc.GetLead(ctx, l.ID.Hex())
	if updated.Phone != phone || updated.Score != score {
		t.Errorf("update not applied: %+v", updated)
	}
	if updated.FirstName != "Jane" {
		t.Errorf("untouched field changed: %s", updated.FirstName)
	}
	if updated.CustomFields["industry"] != "SaaS" {
		t.Errorf("custom field not merged")
	}

	if err := svc.UpdateLead(ctx, primitive.NewObjectID().Hex(), LeadUpdate{Phone: &phone}); !errors.Is(err, ErrLeadNotFound) {
		t.Errorf("error = %v, want ErrLeadNotFound", err)
	}
}

func TestImportLeads(t *testing.T) {
	svc, notifService := newTestService(fixedAssigner{id: primitive.NewObjectID()})
	ctx := context.Background()

	mustAdd(t, svc, &Lead{FirstName: "Jane", Email: "jane.doe@example.com"})

	batch := []Lead{
		{FirstName: "Jane", Email: "JANE.DOE@example.com"}, // collides with existing
		{FirstName: "Mark", Email: "mark@example.com"},
		{FirstName: "Marcus", Email: "MARK@example.com"}, // collides within batch
	}
	if err := svc.ImportLeads(ctx, batch); err != nil {
		t.Fatalf("ImportLeads() error = %v", err)
	}

	all, _ := svc.ListLeads(ctx)
	if len(all) != 2 {
		t.Fatalf("store has %d leads, want 2", len(all))
	}
	emails := make(map[string]int)
	for i := range all {
		emails[all[i].Email]++
	}
	for email, count := range emails {
		if count > 1 {
			t.Errorf("duplicate email %s survived import", email)
		}
	}

	feed, _ := notifService.ListNotifications(ctx)
	found := false
	for _, n := range feed {
		if n.Title == "Import Successful" {
			found = true
			if n.Message != "Successfully imported 1 new leads." {
				t.Errorf("unexpected summary message: %s", n.Message)
			}
		}
	}
	if !found {
		t.Error("no import summary notification emitted")
	}
}

func TestImportLeadsRoutesOwners(t *testing.T) {
	routedID := primitive.NewObjectID()
	svc, _ := newTestService(fixedAssigner{id: routedID})
	ctx := context.Background()

	presetID := primitive.NewObjectID()
	batch := []Lead{
		{FirstName: "Noor", Email: "noor@example.com"},
		{FirstName: "Owen", Email: "owen@example.com", OwnerID: presetID},
	}
	if err := svc.ImportLeads(ctx, batch); err != nil {
		t.Fatalf("ImportLeads() error = %v", err)
	}

	all, _ := svc.ListLeads(ctx)
	owners := make(map[string]primitive.ObjectID, len(all))
	for i := range all {
		if all[i].OwnerID.IsZero() {
			t.Errorf("imported lead %s has no owner", all[i].Email)
		}
		owners[all[i].Email] = all[i].OwnerID
	}
	if owners["noor@example.com"] != routedID {
		t.Errorf("ownerless record was not routed: owner = %v", owners["noor@example.com"])
	}
	if owners["owen@example.com"] != presetID {
		t.Errorf("preset owner was overwritten: owner = %v", owners["owen@example.com"])
	}
}

func TestImportLeadsRoutingFailure(t *testing.T) {
	svc, _ := newTestService(fixedAssigner{err: errors.New("no users available for assignment")})
	ctx := context.Background()

	batch := []Lead{{FirstName: "Noor", Email: "noor@example.com"}}
	if err := svc.ImportLeads(ctx, batch); err == nil {
		t.Fatal("ImportLeads() expected error when routing fails")
	}
}

func TestFindDuplicates(t *testing.T) {
	svc, _ := newTestService(fixedAssigner{id: primitive.NewObjectID()})
	ctx := context.Background()

	a := mustAdd(t, svc, &Lead{FirstName: "Ada", Email: "x@y.com"})
	b := mustAdd(t, svc, &Lead{FirstName: "Beth", Email: "X@Y.com"})
	mustAdd(t, svc, &Lead{FirstName: "Cleo", Email: "unrelated@z.com"})

	dupsOfA, err := svc.FindDuplicates(ctx, a)
	if err != nil {
		t.Fatalf("FindDuplicates() error = %v", err)
	}
	if len(dupsOfA) != 1 || dupsOfA[0].ID != b.ID {
		t.Errorf("FindDuplicates(a) = %v, want exactly b", dupsOfA)
	}
	for i := range dupsOfA {
		if dupsOfA[i].ID == a.ID {
			t.Error("probe lead reported as its own duplicate")
		}
	}

	dupsOfB, _ := svc.FindDuplicates(ctx, b)
	if len(dupsOfB) != 1 || dupsOfB[0].ID != a.ID {
		t.Errorf("duplicates are not mutual: FindDuplicates(b) = %v", dupsOfB)
	}
}

func TestMergeLeads(t *testing.T) {
	svc, notifService := newTestService(fixedAssigner{id: primitive.NewObjectID()})
	ctx := context.Background()

	now := time.Now()
	primary := mustAdd(t, svc, &Lead{FirstName: "Ada", LastName: "Prime", Email: "merge@y.com"})
	svc.AddActivity(ctx, primary.ID.Hex(), Activity{Type: ActivityTypeCall, Description: "Intro call", Timestamp: now.Add(-2 * time.Hour)})
	svc.AddActivity(ctx, primary.ID.Hex(), Activity{Type: ActivityTypeEmail, Description: "Sent deck", Timestamp: now.Add(-time.Hour)})

	duplicate := mustAdd(t, svc, &Lead{FirstName: "Ada", LastName: "Dupe", Email: "MERGE@y.com"})
	svc.AddActivity(ctx, duplicate.ID.Hex(), Activity{Type: ActivityTypeMeeting, Description: "Demo", Timestamp: now.Add(-30 * time.Minute)})

	primaryBefore, _ := svc.GetLead(ctx, primary.ID.Hex())
	duplicateBefore, _ := svc.GetLead(ctx, duplicate.ID.Hex())
	wantActivities := len(primaryBefore.Activities) + len(duplicateBefore.Activities) + 1

	if err := svc.MergeLeads(ctx, primary.ID.Hex(), duplicate.ID.Hex()); err != nil {
		t.Fatalf("MergeLeads() error = %v", err)
	}

	if _, err := svc.GetLead(ctx, duplicate.ID.Hex()); !errors.Is(err, ErrLeadNotFound) {
		t.Error("duplicate still exists after merge")
	}

	merged, _ := svc.GetLead(ctx, primary.ID.Hex())
	if len(merged.Activities) != wantActivities {
		t.Errorf("activity count = %d, want %d", len(merged.Activities), wantActivities)
	}
	for i := 1; i < len(merged.Activities); i++ {
		if merged.Activities[i-1].Timestamp.Before(merged.Activities[i].Timestamp) {
			t.Error("activities not sorted descending by timestamp")
			break
		}
	}
	hasMergeRecord := false
	for _, a := range merged.Activities {
		if a.Type == ActivityTypeMerge && a.Details == duplicate.ID.Hex() {
			hasMergeRecord = true
		}
	}
	if !hasMergeRecord {
		t.Error("no merge activity recorded")
	}

	feed, _ := notifService.ListNotifications(ctx)
	found := false
	for _, n := range feed {
		if n.Title == "Leads Merged" {
			found = true
		}
	}
	if !found {
		t.Error("no merge notification emitted")
	}
}

func TestMergeLeadsErrors(t *testing.T) {
	svc, _ := newTestService(fixedAssigner{id: primitive.NewObjectID()})
	ctx := context.Background()

	l := mustAdd(t, svc, &Lead{Email: "solo@y.com"})

	if err := svc.MergeLeads(ctx, l.ID.Hex(), l.ID.Hex()); !errors.Is(err, ErrSelfMerge) {
		t.Errorf("error = %v, want ErrSelfMerge", err)
	}
	if err := svc.MergeLeads(ctx, l.ID.Hex(), primitive.NewObjectID().Hex()); !errors.Is(err, ErrLeadNotFound) {
		t.Errorf("error = %v, want ErrLeadNotFound", err)
	}
}

func TestToggleFollow(t *testing.T) {
	svc, _ := newTestService(fixedAssigner{id: primitive.NewObjectID()})
	ctx := context.Background()

	l := mustAdd(t, svc, &Lead{Email: "follow@y.com"})
	if err := svc.ToggleFollow(ctx, l.ID.Hex()); err != nil {
		t.Fatalf("ToggleFollow() error = %v", err)
	}
	got, _ := svc.GetLead(ctx, l.ID.Hex())
	if !got.IsFollowed {
		t.Error("follow flag not set")
	}
	svc.ToggleFollow(ctx, l.ID.Hex())
	got, _ = svc.GetLead(ctx, l.ID.Hex())
	if got.IsFollowed {
		t.Error("follow flag not cleared")
	}
}
