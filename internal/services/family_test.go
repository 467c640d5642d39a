package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/brightsteps/brightsteps-backend/internal/data/repos"
	"github.com/brightsteps/brightsteps-backend/internal/data/repos/testutil"
	"github.com/brightsteps/brightsteps-backend/internal/pkg/ctxutil"
)

func familyFixture(t *testing.T) (FamilyService, *gorm.DB) {
	t.Helper()
	gdb := testutil.DB(t)
	log := testutil.Logger(t)
	return NewFamilyService(
		gdb,
		log,
		repos.NewChildRepo(gdb, log),
		repos.NewBehaviorTypeRepo(gdb, log),
		repos.NewGoalRepo(gdb, log),
	), gdb
}

func asUser(ctx context.Context, userID uuid.UUID) context.Context {
	return ctxutil.WithRequestData(ctx, &ctxutil.RequestData{UserID: userID, Email: "parent@example.com"})
}

func TestFamilyServiceChildOwnership(t *testing.T) {
	svc, gdb := familyFixture(t)
	ctx := context.Background()
	owner := testutil.SeedUser(t, ctx, gdb, "owner@example.com")
	stranger := testutil.SeedUser(t, ctx, gdb, "stranger@example.com")

	child, err := svc.CreateChild(asUser(ctx, owner.ID), "Milo", "", 2019)
	if err != nil {
		t.Fatalf("CreateChild: %v", err)
	}
	if child.UserID != owner.ID {
		t.Fatalf("child owner = %s, want %s", child.UserID, owner.ID)
	}

	if _, err := svc.GetOwnedChild(asUser(ctx, owner.ID), child.ID); err != nil {
		t.Fatalf("owner denied: %v", err)
	}
	if _, err := svc.GetOwnedChild(asUser(ctx, stranger.ID), child.ID); err == nil {
		t.Fatalf("stranger was granted access")
	}
	if _, err := svc.GetOwnedChild(ctx, child.ID); err == nil {
		t.Fatalf("anonymous context was granted access")
	}
}

func TestFamilyServiceSetGoalReplacesActive(t *testing.T) {
	svc, gdb := familyFixture(t)
	ctx := context.Background()
	owner := testutil.SeedUser(t, ctx, gdb, "owner@example.com")
	uctx := asUser(ctx, owner.ID)
	child, err := svc.CreateChild(uctx, "Milo", "", 2019)
	if err != nil {
		t.Fatalf("CreateChild: %v", err)
	}

	deadline := time.Now().UTC().Add(30 * 24 * time.Hour).Format(time.RFC3339)
	first, err := svc.SetGoal(uctx, child.ID, "New bike", 50, deadline)
	if err != nil {
		t.Fatalf("SetGoal: %v", err)
	}
	second, err := svc.SetGoal(uctx, child.ID, "Lego set", 30, deadline)
	if err != nil {
		t.Fatalf("second SetGoal: %v", err)
	}

	active, err := svc.ActiveGoal(uctx, child.ID)
	if err != nil {
		t.Fatalf("ActiveGoal: %v", err)
	}
	if active == nil || active.ID != second.ID {
		t.Fatalf("active goal = %+v, want %s", active, second.ID)
	}
	if active.ID == first.ID {
		t.Fatalf("first goal still active")
	}
}

func TestFamilyServiceSetGoalValidation(t *testing.T) {
	svc, gdb := familyFixture(t)
	ctx := context.Background()
	owner := testutil.SeedUser(t, ctx, gdb, "owner@example.com")
	uctx := asUser(ctx, owner.ID)
	child, err := svc.CreateChild(uctx, "Milo", "", 2019)
	if err != nil {
		t.Fatalf("CreateChild: %v", err)
	}

	future := time.Now().UTC().Add(24 * time.Hour).Format(time.RFC3339)
	if _, err := svc.SetGoal(uctx, child.ID, "", 50, future); err == nil {
		t.Fatalf("accepted empty title")
	}
	if _, err := svc.SetGoal(uctx, child.ID, "Bike", 0, future); err == nil {
		t.Fatalf("accepted zero target")
	}
	past := time.Now().UTC().Add(-24 * time.Hour).Format(time.RFC3339)
	if _, err := svc.SetGoal(uctx, child.ID, "Bike", 50, past); err == nil {
		t.Fatalf("accepted past deadline")
	}
}
