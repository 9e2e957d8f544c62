// Package config resolves the inputs of a sync run: explicit values win,
// anything left empty is filled from a persisted env style file under the
// user's config directory.
package config

import (
	"os"
	"path"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
)

// Keys in the persisted config file.
const (
	KeyToken      = "NOTION_TOKEN"
	KeyDatabaseID = "NOTION_DB_ID"
	KeyCSVPath    = "ZOTERO_CSV_PATH"
)

// DefaultPath is where the config file lives unless overridden.
var DefaultPath = path.Join(xdg.ConfigHome, "zotsync", "zotsync.env")

// Config carries the resolved inputs for one sync run. The sync engine
// itself only ever sees these as plain strings.
type Config struct {
	Token      string
	DatabaseID string
	CSVPath    string
}

// Load reads the config file at p. A missing file is not an error, it just
// yields an empty config.
func Load(p string) (*Config, error) {
	if _, err := os.Stat(p); os.IsNotExist(err) {
		return &Config{}, nil
	}
	vals, err := godotenv.Read(p)
	if err != nil {
		return nil, err
	}
	return &Config{
		Token:      vals[KeyToken],
		DatabaseID: vals[KeyDatabaseID],
		CSVPath:    vals[KeyCSVPath],
	}, nil
}

// Merge fills empty fields from other.
func (c *Config) Merge(other *Config) {
	if c.Token == "" {
		c.Token = other.Token
	}
	if c.DatabaseID == "" {
		c.DatabaseID = other.DatabaseID
	}
	if c.CSVPath == "" {
		c.CSVPath = other.CSVPath
	}
}

// Save writes the config to p, creating parent directories as needed.
func (c *Config) Save(p string) error {
	if err := os.MkdirAll(path.Dir(p), 0755); err != nil {
		return err
	}
	return godotenv.Write(map[string]string{
		KeyToken:      c.Token,
		KeyDatabaseID: c.DatabaseID,
		KeyCSVPath:    c.CSVPath,
	}, p)
}
