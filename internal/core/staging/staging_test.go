package staging

import (
	"testing"

	"github.com/example/garland/internal/core/deployment"
	"github.com/example/garland/internal/core/fault"
)

func TestCanStageTote(t *testing.T) {
	tests := []struct {
		name        string
		ctx         StageContext
		wantAllowed bool
		wantKind    fault.Kind
	}{
		{
			name: "fresh items pre-deployment",
			ctx: StageContext{
				ToteID:        "TOTE-001",
				Phase:         deployment.PhasePreDeployment,
				ItemIDs:       []string{"DEC-1", "DEC-2"},
				AlreadyStaged: []bool{false, false},
			},
			wantAllowed: true,
		},
		{
			name: "staging continues during setup",
			ctx: StageContext{
				ToteID:        "TOTE-001",
				Phase:         deployment.PhaseActiveSetup,
				ItemIDs:       []string{"DEC-1"},
				AlreadyStaged: []bool{false},
			},
			wantAllowed: true,
		},
		{
			name: "one staged item aborts the whole tote",
			ctx: StageContext{
				ToteID:        "TOTE-001",
				Phase:         deployment.PhasePreDeployment,
				ItemIDs:       []string{"DEC-1", "DEC-2"},
				AlreadyStaged: []bool{true, false},
			},
			wantKind: fault.KindAlreadyStaged,
		},
		{
			name: "staging after completion is rejected",
			ctx: StageContext{
				ToteID:  "TOTE-001",
				Phase:   deployment.PhaseCompleted,
				ItemIDs: []string{"DEC-1"},
			},
			wantKind: fault.KindInvalidPhaseTransition,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CanStageTote(tt.ctx)
			if result.Allowed != tt.wantAllowed {
				t.Errorf("CanStageTote() Allowed = %v, want %v", result.Allowed, tt.wantAllowed)
			}
			if !tt.wantAllowed && result.Fault.Kind != tt.wantKind {
				t.Errorf("CanStageTote() Kind = %s, want %s", result.Fault.Kind, tt.wantKind)
			}
		})
	}
}

func TestCanStageToteNamesOffendingItem(t *testing.T) {
	result := CanStageTote(StageContext{
		ToteID:        "TOTE-001",
		Phase:         deployment.PhasePreDeployment,
		ItemIDs:       []string{"DEC-1", "DEC-2", "DEC-3"},
		AlreadyStaged: []bool{false, true, true},
	})
	if result.Allowed {
		t.Fatal("expected rejection")
	}
	if result.Fault.EntityID != "DEC-2" {
		t.Errorf("EntityID = %s, want DEC-2", result.Fault.EntityID)
	}
	if len(result.Fault.Offending) != 2 {
		t.Errorf("Offending = %v, want two items", result.Fault.Offending)
	}
}

func TestIsFullyStaged(t *testing.T) {
	tests := []struct {
		name     string
		contents []string
		staged   map[string]bool
		want     bool
	}{
		{"all staged", []string{"A", "B"}, map[string]bool{"A": true, "B": true}, true},
		{"one missing", []string{"A", "B"}, map[string]bool{"A": true}, false},
		{"empty tote never staged", nil, map[string]bool{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsFullyStaged(tt.contents, tt.staged); got != tt.want {
				t.Errorf("IsFullyStaged() = %v, want %v", got, tt.want)
			}
		})
	}
}
