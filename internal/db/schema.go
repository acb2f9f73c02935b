package db

// SchemaSQL is the complete schema for fresh installs.
//
// This is the single source of truth for the database schema. All repository
// tests load it via GetSchemaSQL(), so a repository referencing a column that
// does not exist here fails immediately with "no such column".
const SchemaSQL = `
-- Deployments (one per season/year, e.g. DEP-2026-CHRISTMAS)
CREATE TABLE IF NOT EXISTS deployments (
	id TEXT PRIMARY KEY,
	season TEXT NOT NULL,
	year INTEGER NOT NULL,
	status TEXT NOT NULL CHECK(status IN ('pre_deployment', 'active_setup', 'completed', 'active_teardown', 'archived')) DEFAULT 'pre_deployment',
	setup_started_at DATETIME,
	setup_completed_at DATETIME,
	teardown_started_at DATETIME,
	teardown_completed_at DATETIME,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	UNIQUE(season, year)
);

-- Zones (fixed set per deployment: FY, BY, SW)
CREATE TABLE IF NOT EXISTS zones (
	deployment_id TEXT NOT NULL,
	code TEXT NOT NULL,
	name TEXT NOT NULL,
	receptacle_id TEXT NOT NULL,
	position INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY (deployment_id, code),
	FOREIGN KEY (deployment_id) REFERENCES deployments(id) ON DELETE CASCADE
);

-- Work sessions (at most one open per zone)
CREATE TABLE IF NOT EXISTS sessions (
	id TEXT PRIMARY KEY,
	deployment_id TEXT NOT NULL,
	zone_code TEXT NOT NULL,
	start_time DATETIME NOT NULL,
	end_time DATETIME,
	closed INTEGER NOT NULL DEFAULT 0,
	duration_seconds INTEGER NOT NULL DEFAULT 0,
	notes TEXT,
	FOREIGN KEY (deployment_id) REFERENCES deployments(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_sessions_deployment ON sessions(deployment_id);
CREATE INDEX IF NOT EXISTS idx_sessions_zone ON sessions(deployment_id, zone_code);

-- Items touched during a session
CREATE TABLE IF NOT EXISTS session_items (
	session_id TEXT NOT NULL,
	item_id TEXT NOT NULL,
	position INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY (session_id, item_id),
	FOREIGN KEY (session_id) REFERENCES sessions(id) ON DELETE CASCADE
);

-- Wiring connections (soft-removed, never deleted)
CREATE TABLE IF NOT EXISTS connections (
	id TEXT PRIMARY KEY,
	deployment_id TEXT NOT NULL,
	session_id TEXT NOT NULL,
	zone_code TEXT NOT NULL,
	from_item_id TEXT NOT NULL,
	from_port TEXT NOT NULL,
	to_item_id TEXT NOT NULL,
	to_port TEXT NOT NULL,
	notes TEXT,
	connected_at DATETIME NOT NULL,
	removed INTEGER NOT NULL DEFAULT 0,
	removal_reason TEXT,
	removed_at DATETIME,
	FOREIGN KEY (deployment_id) REFERENCES deployments(id) ON DELETE CASCADE,
	FOREIGN KEY (session_id) REFERENCES sessions(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_connections_deployment ON connections(deployment_id);
CREATE INDEX IF NOT EXISTS idx_connections_session ON connections(session_id);

-- Items a connection powers beyond its direct destination
CREATE TABLE IF NOT EXISTS connection_illuminates (
	connection_id TEXT NOT NULL,
	item_id TEXT NOT NULL,
	position INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY (connection_id, item_id),
	FOREIGN KEY (connection_id) REFERENCES connections(id) ON DELETE CASCADE
);

-- Photo evidence attached to a connection
CREATE TABLE IF NOT EXISTS connection_photos (
	connection_id TEXT NOT NULL,
	photo_id TEXT NOT NULL,
	position INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY (connection_id, photo_id),
	FOREIGN KEY (connection_id) REFERENCES connections(id) ON DELETE CASCADE
);

-- Staging totes
CREATE TABLE IF NOT EXISTS totes (
	id TEXT PRIMARY KEY,
	deployment_id TEXT NOT NULL,
	label TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (deployment_id) REFERENCES deployments(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS tote_items (
	tote_id TEXT NOT NULL,
	item_id TEXT NOT NULL,
	position INTEGER NOT NULL DEFAULT 0,
	staged INTEGER NOT NULL DEFAULT 0,
	staged_at DATETIME,
	PRIMARY KEY (tote_id, item_id),
	FOREIGN KEY (tote_id) REFERENCES totes(id) ON DELETE CASCADE
);

-- Teardown progress per zone
CREATE TABLE IF NOT EXISTS teardown_items (
	deployment_id TEXT NOT NULL,
	zone_code TEXT NOT NULL,
	item_id TEXT NOT NULL,
	torn_down_at DATETIME NOT NULL,
	PRIMARY KEY (deployment_id, zone_code, item_id),
	FOREIGN KEY (deployment_id) REFERENCES deployments(id) ON DELETE CASCADE
);
`

// GetSchemaSQL returns the authoritative schema SQL for use by tests.
// Tests should use this instead of hardcoding their own schema to prevent drift.
func GetSchemaSQL() string {
	return SchemaSQL
}
