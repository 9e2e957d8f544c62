package config

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.env"))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(&Config{}, cfg); diff != "" {
		t.Errorf("missing file should yield empty config (-want +got):\n%s", diff)
	}
}

func TestSaveLoadRoundtrip(t *testing.T) {
	p := filepath.Join(t.TempDir(), "sub", "zotsync.env")
	want := &Config{
		Token:      "secret_abc",
		DatabaseID: "1234abcd",
		CSVPath:    "/tmp/library.csv",
	}
	if err := want.Save(p); err != nil {
		t.Fatal(err)
	}
	got, err := Load(p)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("roundtrip mismatch (-want +got):\n%s", diff)
	}
}

func TestMerge(t *testing.T) {
	c := &Config{Token: "from-flag"}
	c.Merge(&Config{Token: "from-file", DatabaseID: "db-from-file", CSVPath: "csv-from-file"})
	want := &Config{Token: "from-flag", DatabaseID: "db-from-file", CSVPath: "csv-from-file"}
	if diff := cmp.Diff(want, c); diff != "" {
		t.Errorf("merge mismatch (-want +got):\n%s", diff)
	}
}
