package app

import (
	"context"
	"testing"
	"time"

	"github.com/example/garland/internal/core/fault"
)

func TestLocker_SecondAcquireTimesOutBusy(t *testing.T) {
	locker := NewDeploymentLocker(50 * time.Millisecond)
	ctx := context.Background()

	release, err := locker.Acquire(ctx, "DEP-2026-CHRISTMAS")
	if err != nil {
		t.Fatalf("first acquire failed: %v", err)
	}
	defer release()

	_, err = locker.Acquire(ctx, "DEP-2026-CHRISTMAS")
	if fault.KindOf(err) != fault.KindBusy {
		t.Fatalf("expected Busy, got %v", err)
	}
	if !fault.Retryable(err) {
		t.Error("expected Busy to be retryable")
	}
}

func TestLocker_DifferentDeploymentsIndependent(t *testing.T) {
	locker := NewDeploymentLocker(50 * time.Millisecond)
	ctx := context.Background()

	release1, err := locker.Acquire(ctx, "DEP-2026-CHRISTMAS")
	if err != nil {
		t.Fatalf("first acquire failed: %v", err)
	}
	defer release1()

	release2, err := locker.Acquire(ctx, "DEP-2026-HALLOWEEN")
	if err != nil {
		t.Fatalf("expected independent lock, got %v", err)
	}
	release2()
}

func TestLocker_ReleaseAllowsReacquire(t *testing.T) {
	locker := NewDeploymentLocker(50 * time.Millisecond)
	ctx := context.Background()

	release, err := locker.Acquire(ctx, "DEP-2026-CHRISTMAS")
	if err != nil {
		t.Fatalf("acquire failed: %v", err)
	}
	release()
	// Double release must not free a second slot.
	release()

	again, err := locker.Acquire(ctx, "DEP-2026-CHRISTMAS")
	if err != nil {
		t.Fatalf("reacquire failed: %v", err)
	}
	again()

	if _, err := locker.Acquire(ctx, "DEP-2026-CHRISTMAS"); err != nil {
		t.Fatalf("expected lock free after single logical release, got %v", err)
	}
}
