// Package configs locates triflow's files and reads its configuration.
//
// Configuration lives in TOML at <config dir>/triflow/config.toml:
//
//	[store]
//	data_dir = "/home/me/.local/share/triflow"   # optional
//	key_file = "key.key"
//	tasks_file = "tasks.json.enc"
//	budgets_file = "budgets.json.enc"
//	tasks_export = "tasks_export.json"
//	budgets_export = "budgets_export.json"
//	audit_log = "audit.jsonl"
//
//	[install]
//	uuid = "..."
//	created_at = "2025-01-01T00:00:00Z"
//
// Relative store paths resolve against data_dir, which defaults to
// $XDG_DATA_HOME/triflow (or ~/.local/share/triflow).
//
// Every store key can be overridden with a TRIFLOW_* environment variable,
// for example TRIFLOW_DATA_DIR, either in the real environment or in a
// triflow.env file next to config.toml. The real environment wins.
//
// The install UUID is generated on first run by Ensure and is recorded in
// every audit log entry.
package configs
