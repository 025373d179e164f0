package postgres

var schema = []string{
	`CREATE TABLE IF NOT EXISTS marine_datasets (
  id          TEXT PRIMARY KEY,
  position    INTEGER NOT NULL,
  name        TEXT NOT NULL,
  category    TEXT NOT NULL,
  region      TEXT NOT NULL DEFAULT '',
  description TEXT NOT NULL DEFAULT ''
)`,
	`CREATE TABLE IF NOT EXISTS marine_alerts (
  id              TEXT PRIMARY KEY,
  position        INTEGER NOT NULL,
  severity        TEXT NOT NULL,
  category        TEXT NOT NULL,
  title           TEXT NOT NULL,
  description     TEXT NOT NULL DEFAULT '',
  location        TEXT NOT NULL DEFAULT '',
  timestamp_label TEXT NOT NULL DEFAULT '',
  relevant_roles  TEXT NOT NULL
)`,
	`CREATE TABLE IF NOT EXISTS marine_regions (
  name          TEXT PRIMARY KEY,
  position      INTEGER NOT NULL,
  temperature   DOUBLE PRECISION NOT NULL,
  chlorophyll   DOUBLE PRECISION NOT NULL,
  salinity      DOUBLE PRECISION NOT NULL,
  fish_activity INTEGER NOT NULL,
  x             DOUBLE PRECISION NOT NULL,
  y             DOUBLE PRECISION NOT NULL,
  width         DOUBLE PRECISION NOT NULL,
  height        DOUBLE PRECISION NOT NULL
)`,
}
