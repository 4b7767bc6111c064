package migrations

import "embed"

// PostgresFS holds the postgres schema files (configs, executions, snapshots).
//
//go:embed postgres/*.sql
var PostgresFS embed.FS

// ClickhouseFS holds the recommendation_log schema.
//
//go:embed clickhouse/*.sql
var ClickhouseFS embed.FS
