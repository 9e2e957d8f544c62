// zotsync pushes bibliographic records from a Zotero CSV export into a
// Notion database, skipping titles that already exist remotely.
package main

import (
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sethgrid/pester"
	log "github.com/sirupsen/logrus"

	"github.com/miku/zotsync"
	"github.com/miku/zotsync/config"
	"github.com/miku/zotsync/notion"
	"github.com/miku/zotsync/push"
	"github.com/miku/zotsync/zotero"
)

var docs = strings.TrimLeft(`
# zotsync - push a Zotero CSV export into a Notion database

Reads a CSV export (File > Export Library... in Zotero), fetches the titles
already present in the target database, and creates one page per new item.
Existing pages are never updated or deleted; nothing is retried.

## usage

$ zotsync -f My-Library.csv -token secret_... -db 1234abcd...

Token, database id and csv path may also come from a config file (see -c),
with keys NOTION_TOKEN, NOTION_DB_ID and ZOTERO_CSV_PATH:

$ zotsync -f My-Library.csv -token secret_... -db 1234abcd... -save
$ zotsync

Compressed exports (.csv.gz, .csv.zst) are read transparently.

## flags

`, "\n")

var (
	csvPath     = flag.String("f", "", "path to the zotero CSV export (.csv, .csv.gz, .csv.zst)")
	token       = flag.String("token", "", "notion integration token")
	databaseID  = flag.String("db", "", "notion database id")
	configPath  = flag.String("c", config.DefaultPath, "path to the config file")
	saveConfig  = flag.Bool("save", false, "persist token, database id and csv path to the config file")
	timeout     = flag.Duration("T", 30*time.Second, "timeout per request")
	showVersion = flag.Bool("version", false, "show version")
)

func main() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, docs)
		flag.PrintDefaults()
	}
	flag.Parse()
	if *showVersion {
		fmt.Println(zotsync.Version)
		os.Exit(0)
	}
	logger := log.WithField("run_id", uuid.NewString())
	cfg := &config.Config{Token: *token, DatabaseID: *databaseID, CSVPath: *csvPath}
	fileCfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatalf("read config %s: %v", *configPath, err)
	}
	cfg.Merge(fileCfg)
	if *saveConfig {
		if err := cfg.Save(*configPath); err != nil {
			logger.Fatalf("save config %s: %v", *configPath, err)
		}
		logger.Infof("saved configuration to %s", *configPath)
	}
	switch {
	case cfg.Token == "" || cfg.DatabaseID == "":
		logger.Fatal("notion token and database id are required, via flags or config file")
	case cfg.CSVPath == "":
		logger.Fatal("path to a zotero CSV export is required, via -f or config file")
	}
	logf := func(format string, v ...any) {
		logger.Infof(format, v...)
	}
	items, err := zotero.ParseFile(cfg.CSVPath, logf)
	if err != nil {
		logger.Fatal(err)
	}
	if len(items) == 0 {
		logger.Info("no items parsed, nothing to do")
		return
	}
	// HTTP client; a single attempt per call, the sync never retries.
	client := pester.New()
	client.MaxRetries = 1
	client.Timeout = *timeout
	result, err := push.Run(push.Options{
		Items:      items,
		Client:     &notion.Client{Client: client, Token: cfg.Token},
		DatabaseID: cfg.DatabaseID,
		Logf:       logf,
	})
	if err != nil {
		var se *notion.StatusError
		switch {
		case errors.As(err, &se) && se.StatusCode == http.StatusUnauthorized:
			logger.Fatalf("invalid notion credentials: %v", err)
		case errors.As(err, &se) && se.StatusCode == http.StatusNotFound:
			logger.Fatalf("database not found or access denied: %v", err)
		default:
			logger.Fatalf("sync failed: %v", err)
		}
	}
	logger.Infof("sync complete: pushed=%d, skipped=%d", result.Pushed, result.Skipped)
}
