package api

import "github.com/example/garland/internal/ports/primary"

// Wire representations of the primary port views. Field names follow the
// snake_case convention of the external items and photo services.

type deploymentJSON struct {
	ID                  string `json:"id"`
	Season              string `json:"season"`
	Year                int    `json:"year"`
	Status              string `json:"status"`
	SetupStartedAt      string `json:"setup_started_at,omitempty"`
	SetupCompletedAt    string `json:"setup_completed_at,omitempty"`
	TeardownStartedAt   string `json:"teardown_started_at,omitempty"`
	TeardownCompletedAt string `json:"teardown_completed_at,omitempty"`
}

func toDeploymentJSON(d *primary.Deployment) deploymentJSON {
	return deploymentJSON{
		ID:                  d.ID,
		Season:              d.Season,
		Year:                d.Year,
		Status:              d.Status,
		SetupStartedAt:      d.SetupStartedAt,
		SetupCompletedAt:    d.SetupCompletedAt,
		TeardownStartedAt:   d.TeardownStartedAt,
		TeardownCompletedAt: d.TeardownCompletedAt,
	}
}

type completeDeploymentJSON struct {
	Deployment   deploymentJSON `json:"deployment"`
	ItemsUpdated int            `json:"items_updated"`
	ItemsFailed  int            `json:"items_failed"`
	FailedItems  []string       `json:"failed_items,omitempty"`
}

type zoneJSON struct {
	Code           string `json:"code"`
	Name           string `json:"name"`
	ReceptacleID   string `json:"receptacle_id"`
	Status         string `json:"status"`
	OpenSessionID  string `json:"open_session_id,omitempty"`
	ItemCount      int    `json:"item_count"`
	SessionCount   int    `json:"session_count"`
	TotalMinutes   int64  `json:"total_minutes"`
	LongestMinutes int64  `json:"longest_minutes"`
}

type zoneTeardownJSON struct {
	Code           string   `json:"code"`
	DeployedItems  int      `json:"deployed_items"`
	TornDownItems  int      `json:"torn_down_items"`
	FullyTornDown  bool     `json:"fully_torn_down"`
	RemainingItems []string `json:"remaining_items,omitempty"`
}

type boardJSON struct {
	Deployment deploymentJSON     `json:"deployment"`
	Zones      []zoneJSON         `json:"zones"`
	Staging    *stagingBoardJSON  `json:"staging,omitempty"`
	Teardown   []zoneTeardownJSON `json:"teardown,omitempty"`
}

func toBoardJSON(b *primary.Board) boardJSON {
	out := boardJSON{Deployment: toDeploymentJSON(b.Deployment)}
	for _, z := range b.Zones {
		out.Zones = append(out.Zones, zoneJSON{
			Code:           z.Code,
			Name:           z.Name,
			ReceptacleID:   z.ReceptacleID,
			Status:         z.Status,
			OpenSessionID:  z.OpenSessionID,
			ItemCount:      z.ItemCount,
			SessionCount:   z.SessionCount,
			TotalMinutes:   z.TotalMinutes,
			LongestMinutes: z.LongestMinutes,
		})
	}
	if b.Staging != nil {
		sb := toStagingBoardJSON(b.Staging)
		out.Staging = &sb
	}
	if b.Teardown != nil {
		for _, z := range b.Teardown.Zones {
			out.Teardown = append(out.Teardown, zoneTeardownJSON{
				Code:           z.Code,
				DeployedItems:  z.DeployedItems,
				TornDownItems:  z.TornDownItems,
				FullyTornDown:  z.FullyTornDown,
				RemainingItems: z.RemainingItems,
			})
		}
	}
	return out
}

type connectionJSON struct {
	ID            string   `json:"id"`
	SessionID     string   `json:"session_id"`
	ZoneCode      string   `json:"zone_code"`
	FromItemID    string   `json:"from_item_id"`
	FromPort      string   `json:"from_port"`
	ToItemID      string   `json:"to_item_id"`
	ToPort        string   `json:"to_port"`
	Illuminates   []string `json:"illuminates,omitempty"`
	PhotoIDs      []string `json:"photo_ids,omitempty"`
	Notes         string   `json:"notes,omitempty"`
	ConnectedAt   string   `json:"connected_at"`
	Removed       bool     `json:"removed"`
	RemovalReason string   `json:"removal_reason,omitempty"`
	RemovedAt     string   `json:"removed_at,omitempty"`
}

func toConnectionJSON(conn *primary.Connection) connectionJSON {
	return connectionJSON{
		ID:            conn.ID,
		SessionID:     conn.SessionID,
		ZoneCode:      conn.ZoneCode,
		FromItemID:    conn.FromItemID,
		FromPort:      conn.FromPort,
		ToItemID:      conn.ToItemID,
		ToPort:        conn.ToPort,
		Illuminates:   conn.Illuminates,
		PhotoIDs:      conn.PhotoIDs,
		Notes:         conn.Notes,
		ConnectedAt:   conn.ConnectedAt,
		Removed:       conn.Removed,
		RemovalReason: conn.RemovalReason,
		RemovedAt:     conn.RemovedAt,
	}
}

type sessionJSON struct {
	ID              string           `json:"id"`
	DeploymentID    string           `json:"deployment_id"`
	ZoneCode        string           `json:"zone_code"`
	StartTime       string           `json:"start_time"`
	EndTime         string           `json:"end_time,omitempty"`
	DurationSeconds int64            `json:"duration_seconds,omitempty"`
	Notes           string           `json:"notes,omitempty"`
	ItemsDeployed   []string         `json:"items_deployed,omitempty"`
	Connections     []connectionJSON `json:"connections,omitempty"`
	Removed         []connectionJSON `json:"removed,omitempty"`
}

func toSessionJSON(sess *primary.Session) sessionJSON {
	out := sessionJSON{
		ID:              sess.ID,
		DeploymentID:    sess.DeploymentID,
		ZoneCode:        sess.ZoneCode,
		StartTime:       sess.StartTime,
		EndTime:         sess.EndTime,
		DurationSeconds: sess.DurationSeconds,
		Notes:           sess.Notes,
		ItemsDeployed:   sess.ItemsDeployed,
	}
	for _, c := range sess.Connections {
		out.Connections = append(out.Connections, toConnectionJSON(c))
	}
	for _, c := range sess.Removed {
		out.Removed = append(out.Removed, toConnectionJSON(c))
	}
	return out
}

type toteJSON struct {
	ID          string   `json:"id"`
	Label       string   `json:"label"`
	Contents    []string `json:"contents"`
	StagedItems []string `json:"staged_items,omitempty"`
	Staged      bool     `json:"staged"`
}

func toToteJSON(t *primary.Tote) toteJSON {
	return toteJSON{
		ID:          t.ID,
		Label:       t.Label,
		Contents:    t.Contents,
		StagedItems: t.StagedItems,
		Staged:      t.Staged,
	}
}

type stagingBoardJSON struct {
	Available []toteJSON `json:"available"`
	Staged    []toteJSON `json:"staged"`
}

func toStagingBoardJSON(b *primary.StagingBoard) stagingBoardJSON {
	out := stagingBoardJSON{Available: []toteJSON{}, Staged: []toteJSON{}}
	for _, t := range b.Available {
		out.Available = append(out.Available, toToteJSON(t))
	}
	for _, t := range b.Staged {
		out.Staged = append(out.Staged, toToteJSON(t))
	}
	return out
}

type teardownItemJSON struct {
	ItemID        string `json:"item_id"`
	ZoneCode      string `json:"zone_code"`
	AlreadyDone   bool   `json:"already_done"`
	ZoneCompleted bool   `json:"zone_completed"`
}
