package mysql

var schema = []string{
	`CREATE TABLE IF NOT EXISTS marine_datasets (
  id          VARCHAR(128) NOT NULL PRIMARY KEY,
  position    INT NOT NULL,
  name        VARCHAR(255) NOT NULL,
  category    VARCHAR(32) NOT NULL,
  region      VARCHAR(128) NOT NULL DEFAULT '',
  description TEXT NOT NULL
) DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS marine_alerts (
  id              VARCHAR(64) NOT NULL PRIMARY KEY,
  position        INT NOT NULL,
  severity        VARCHAR(16) NOT NULL,
  category        VARCHAR(32) NOT NULL,
  title           VARCHAR(255) NOT NULL,
  description     TEXT NOT NULL,
  location        VARCHAR(255) NOT NULL DEFAULT '',
  timestamp_label VARCHAR(64) NOT NULL DEFAULT '',
  relevant_roles  VARCHAR(255) NOT NULL
) DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS marine_regions (
  name          VARCHAR(128) NOT NULL PRIMARY KEY,
  position      INT NOT NULL,
  temperature   DOUBLE NOT NULL,
  chlorophyll   DOUBLE NOT NULL,
  salinity      DOUBLE NOT NULL,
  fish_activity INT NOT NULL,
  x             DOUBLE NOT NULL,
  y             DOUBLE NOT NULL,
  width         DOUBLE NOT NULL,
  height        DOUBLE NOT NULL
) DEFAULT CHARSET=utf8mb4`,
}
