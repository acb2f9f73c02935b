package connection

import (
	"reflect"
	"testing"

	"github.com/example/garland/internal/core/fault"
)

func TestDeriveDestinationPort(t *testing.T) {
	tests := []struct {
		socketType string
		want       string
	}{
		{"male", PortMale1},
		{"inlet", PortPowerInlet},
		{"", PortPowerInlet},
	}
	for _, tt := range tests {
		if got := DeriveDestinationPort(tt.socketType); got != tt.want {
			t.Errorf("DeriveDestinationPort(%q) = %s, want %s", tt.socketType, got, tt.want)
		}
	}
}

func TestCanCreateConnection(t *testing.T) {
	tests := []struct {
		name        string
		ctx         CreateContext
		wantAllowed bool
		wantKind    fault.Kind
	}{
		{
			name: "open session and free port",
			ctx: CreateContext{
				SessionID:      "SESS-001",
				SessionOpen:    true,
				FromItemID:     "DEC-1",
				FromPort:       "Male_1",
				SourcePortFree: true,
			},
			wantAllowed: true,
		},
		{
			name: "closed session",
			ctx: CreateContext{
				SessionID:      "SESS-001",
				SourcePortFree: true,
			},
			wantKind: fault.KindSessionAlreadyClosed,
		},
		{
			name: "source port taken",
			ctx: CreateContext{
				SessionID:   "SESS-001",
				SessionOpen: true,
				FromItemID:  "DEC-1",
				FromPort:    "Male_1",
				HeldBy:      "CONN-003",
			},
			wantKind: fault.KindPortConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CanCreateConnection(tt.ctx)
			if result.Allowed != tt.wantAllowed {
				t.Errorf("CanCreateConnection() Allowed = %v, want %v", result.Allowed, tt.wantAllowed)
			}
			if !tt.wantAllowed && result.Fault.Kind != tt.wantKind {
				t.Errorf("CanCreateConnection() Kind = %s, want %s", result.Fault.Kind, tt.wantKind)
			}
		})
	}
}

func TestMergePhotoIDs(t *testing.T) {
	tests := []struct {
		name     string
		existing []string
		incoming []string
		want     []string
	}{
		{
			name:     "append new ids",
			existing: []string{"PH-1"},
			incoming: []string{"PH-2", "PH-3"},
			want:     []string{"PH-1", "PH-2", "PH-3"},
		},
		{
			name:     "duplicates dropped",
			existing: []string{"PH-1", "PH-2"},
			incoming: []string{"PH-2", "PH-1", "PH-4"},
			want:     []string{"PH-1", "PH-2", "PH-4"},
		},
		{
			name:     "incoming duplicates collapse",
			existing: nil,
			incoming: []string{"PH-9", "PH-9"},
			want:     []string{"PH-9"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MergePhotoIDs(tt.existing, tt.incoming); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("MergePhotoIDs() = %v, want %v", got, tt.want)
			}
		})
	}
}
