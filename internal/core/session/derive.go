package session

import "time"

// ZoneStatus is the derived status of a zone. It is never stored; it is
// recomputed from the zone's sessions and deployed items on every read.
type ZoneStatus string

const (
	// ZoneInProgress means the zone currently has an open session.
	ZoneInProgress ZoneStatus = "in_progress"
	// ZoneDeployed means no session is open but items are deployed.
	ZoneDeployed ZoneStatus = "deployed"
	// ZonePending means nothing has happened in the zone yet.
	ZonePending ZoneStatus = "pending"
)

// DeriveZoneStatus computes a zone's status from its canonical state.
func DeriveZoneStatus(hasOpenSession bool, itemsDeployed int) ZoneStatus {
	switch {
	case hasOpenSession:
		return ZoneInProgress
	case itemsDeployed > 0:
		return ZoneDeployed
	default:
		return ZonePending
	}
}

// Duration computes a closed session's duration in whole seconds.
func Duration(start, end time.Time) int64 {
	return int64(end.Sub(start) / time.Second)
}

// Interval is the minimal session view the statistics need.
type Interval struct {
	Start time.Time
	End   time.Time // zero while the session is open
	Open  bool
}

// ZoneStats are the per-zone aggregates shown on the dashboard, recomputed
// from the zone's sessions.
type ZoneStats struct {
	ItemCount      int
	SessionCount   int
	TotalMinutes   int64
	LongestMinutes int64
}

// ComputeZoneStats aggregates session durations for one zone. Open sessions
// count toward the session count but contribute no duration until closed.
func ComputeZoneStats(itemCount int, sessions []Interval) ZoneStats {
	stats := ZoneStats{ItemCount: itemCount, SessionCount: len(sessions)}
	for _, s := range sessions {
		if s.Open {
			continue
		}
		minutes := int64(s.End.Sub(s.Start) / time.Minute)
		stats.TotalMinutes += minutes
		if minutes > stats.LongestMinutes {
			stats.LongestMinutes = minutes
		}
	}
	return stats
}
