package sqlite

// migrations contains the SQL migrations for the journal database.
var migrations = []string{
	// Migration 1: invocation log
	`
	CREATE TABLE IF NOT EXISTS invocations (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		cmd TEXT NOT NULL,
		flags JSON,
		version TEXT NOT NULL,
		status TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_invocations_cmd ON invocations(cmd);

	-- Schema version tracking
	CREATE TABLE IF NOT EXISTS schema_version (
		version INTEGER PRIMARY KEY
	);
	INSERT OR IGNORE INTO schema_version (version) VALUES (1);
	`,
}
