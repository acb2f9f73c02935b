package photos

import (
	"reflect"
	"testing"
)

func TestRequiresEvidence(t *testing.T) {
	tests := []struct {
		class string
		want  bool
	}{
		{ClassDecoration, true},
		{ClassAccessory, false},
		{ClassLight, false},
		{"", false},
	}
	for _, tt := range tests {
		if got := RequiresEvidence(tt.class); got != tt.want {
			t.Errorf("RequiresEvidence(%q) = %v, want %v", tt.class, got, tt.want)
		}
	}
}

func TestMissingPhotoConnections(t *testing.T) {
	tests := []struct {
		name  string
		conns []ConnectionEvidence
		want  []string
	}{
		{
			name: "decoration without photos is flagged",
			conns: []ConnectionEvidence{
				{ConnectionID: "CONN-001", ToItemClass: ClassDecoration, PhotoCount: 0},
			},
			want: []string{"CONN-001"},
		},
		{
			name: "documented decoration passes",
			conns: []ConnectionEvidence{
				{ConnectionID: "CONN-001", ToItemClass: ClassDecoration, PhotoCount: 2},
			},
			want: nil,
		},
		{
			name: "exempt classes never flagged",
			conns: []ConnectionEvidence{
				{ConnectionID: "CONN-002", ToItemClass: ClassAccessory, PhotoCount: 0},
				{ConnectionID: "CONN-003", ToItemClass: ClassLight, PhotoCount: 0},
			},
			want: nil,
		},
		{
			name: "mixed set keeps input order",
			conns: []ConnectionEvidence{
				{ConnectionID: "CONN-004", ToItemClass: ClassDecoration, PhotoCount: 0},
				{ConnectionID: "CONN-005", ToItemClass: ClassLight, PhotoCount: 0},
				{ConnectionID: "CONN-006", ToItemClass: ClassDecoration, PhotoCount: 0},
			},
			want: []string{"CONN-004", "CONN-006"},
		},
		{
			name:  "no connections",
			conns: nil,
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MissingPhotoConnections(tt.conns); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("MissingPhotoConnections() = %v, want %v", got, tt.want)
			}
		})
	}
}
