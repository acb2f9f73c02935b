package app

import (
	"context"
	"testing"
	"time"

	"github.com/example/garland/internal/core/fault"
	"github.com/example/garland/internal/ports/primary"
	"github.com/example/garland/internal/ports/secondary"
)

// teardownFixture seeds a deployment in active_teardown with two deployed
// items in FY.
func teardownFixture(t *testing.T) (*testEnv, context.Context) {
	t.Helper()
	env := newTestEnv()
	ctx := context.Background()
	env.seedDeployment("DEP-2026-CHRISTMAS", "active_teardown")
	env.sessionRepo.Create(ctx, &secondary.SessionRecord{
		ID:           "SESS-001",
		DeploymentID: "DEP-2026-CHRISTMAS",
		ZoneCode:     "FY",
		StartTime:    time.Now().UTC(),
		Closed:       true,
	})
	env.sessionRepo.AddItem(ctx, "SESS-001", "ITEM-SANTA")
	env.sessionRepo.AddItem(ctx, "SESS-001", "ITEM-CORD")
	return env, ctx
}

// ============================================================================
// TeardownItem Tests
// ============================================================================

func TestTeardownItem_RecordsAndPushesStatus(t *testing.T) {
	env, ctx := teardownFixture(t)

	resp, err := env.teardown.TeardownItem(ctx, primary.TeardownItemRequest{
		DeploymentID: "DEP-2026-CHRISTMAS",
		ZoneCode:     "FY",
		ItemID:       "ITEM-SANTA",
	})

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if resp.AlreadyDone {
		t.Error("expected first teardown not to be a repeat")
	}
	if resp.ZoneCompleted {
		t.Error("expected zone incomplete while ITEM-CORD remains")
	}
	if env.items.statusPushes["ITEM-SANTA"] != secondary.ItemStatusTearDown {
		t.Errorf("expected TearDown pushed, got '%s'", env.items.statusPushes["ITEM-SANTA"])
	}
}

func TestTeardownItem_RepeatIsNoOp(t *testing.T) {
	env, ctx := teardownFixture(t)

	req := primary.TeardownItemRequest{
		DeploymentID: "DEP-2026-CHRISTMAS",
		ZoneCode:     "FY",
		ItemID:       "ITEM-SANTA",
	}
	if _, err := env.teardown.TeardownItem(ctx, req); err != nil {
		t.Fatalf("first teardown failed: %v", err)
	}
	env.items.statusPushes = map[string]string{}

	resp, err := env.teardown.TeardownItem(ctx, req)

	if err != nil {
		t.Fatalf("expected repeat to succeed, got %v", err)
	}
	if !resp.AlreadyDone {
		t.Error("expected AlreadyDone on repeat")
	}
	if len(env.items.statusPushes) != 0 {
		t.Errorf("expected no status push on repeat, got %v", env.items.statusPushes)
	}
}

func TestTeardownItem_LastItemCompletesZone(t *testing.T) {
	env, ctx := teardownFixture(t)

	if _, err := env.teardown.TeardownItem(ctx, primary.TeardownItemRequest{
		DeploymentID: "DEP-2026-CHRISTMAS", ZoneCode: "FY", ItemID: "ITEM-SANTA",
	}); err != nil {
		t.Fatalf("first teardown failed: %v", err)
	}

	resp, err := env.teardown.TeardownItem(ctx, primary.TeardownItemRequest{
		DeploymentID: "DEP-2026-CHRISTMAS", ZoneCode: "FY", ItemID: "ITEM-CORD",
	})

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !resp.ZoneCompleted {
		t.Error("expected zone completed after last item")
	}
}

func TestTeardownItem_OutsideActiveTeardownRejected(t *testing.T) {
	env := newTestEnv()
	env.seedDeployment("DEP-2026-CHRISTMAS", "completed")

	_, err := env.teardown.TeardownItem(context.Background(), primary.TeardownItemRequest{
		DeploymentID: "DEP-2026-CHRISTMAS",
		ZoneCode:     "FY",
		ItemID:       "ITEM-SANTA",
	})

	if fault.KindOf(err) != fault.KindTeardownNotStarted {
		t.Fatalf("expected TeardownNotStarted, got %v", err)
	}
}

// ============================================================================
// ZoneFullyTornDown Tests
// ============================================================================

func TestZoneFullyTornDown_EmptyZoneIsComplete(t *testing.T) {
	env, ctx := teardownFixture(t)

	done, err := env.teardown.ZoneFullyTornDown(ctx, "DEP-2026-CHRISTMAS", "SW")

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !done {
		t.Error("expected zone with no deployed items to count as torn down")
	}
}

func TestZoneFullyTornDown_DerivedFromItems(t *testing.T) {
	env, ctx := teardownFixture(t)

	done, err := env.teardown.ZoneFullyTornDown(ctx, "DEP-2026-CHRISTMAS", "FY")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if done {
		t.Error("expected FY incomplete with nothing torn down")
	}

	env.teardownRepo.MarkTornDown(ctx, "DEP-2026-CHRISTMAS", "FY", "ITEM-SANTA", time.Now().UTC())
	env.teardownRepo.MarkTornDown(ctx, "DEP-2026-CHRISTMAS", "FY", "ITEM-CORD", time.Now().UTC())

	done, err = env.teardown.ZoneFullyTornDown(ctx, "DEP-2026-CHRISTMAS", "FY")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !done {
		t.Error("expected FY complete after both items torn down")
	}
}
