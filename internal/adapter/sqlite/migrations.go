package sqlite

type migration struct {
	Version int
	Name    string
	SQL     string
}

var migrations = []migration{
	{
		Version: 1,
		Name:    "create agents",
		SQL: `
			CREATE TABLE agents (
				id                TEXT PRIMARY KEY CHECK (id <> ''),
				name              TEXT NOT NULL,
				description       TEXT NOT NULL DEFAULT '',
				type              TEXT NOT NULL DEFAULT '',
				active            INTEGER NOT NULL DEFAULT 0,
				created_at        TEXT NOT NULL DEFAULT (date('now')),
				interactions      INTEGER NOT NULL DEFAULT 0 CHECK (interactions >= 0),
				is_personal       INTEGER NOT NULL DEFAULT 0,
				model             TEXT NOT NULL DEFAULT '',
				channels          TEXT,
				channel_configs   TEXT,
				avatar            TEXT NOT NULL DEFAULT '',
				purpose           TEXT NOT NULL DEFAULT '',
				prompt            TEXT NOT NULL DEFAULT '',
				industry          TEXT NOT NULL DEFAULT '',
				custom_industry   TEXT NOT NULL DEFAULT '',
				bot_function      TEXT NOT NULL DEFAULT '',
				custom_function   TEXT NOT NULL DEFAULT '',
				voice             TEXT NOT NULL DEFAULT '',
				voice_provider    TEXT NOT NULL DEFAULT '',
				avm_score         REAL NOT NULL DEFAULT 0,
				csat_score        INTEGER NOT NULL DEFAULT 0,
				performance_score INTEGER NOT NULL DEFAULT 0
			);

			CREATE INDEX idx_agents_is_personal ON agents (is_personal);
		`,
	},
}
