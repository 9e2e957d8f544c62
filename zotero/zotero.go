// Package zotero reads bibliographic items from Zotero CSV exports (File >
// Export Library... > CSV).
package zotero

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
	gzip "github.com/klauspost/pgzip"

	"github.com/miku/zotsync"
)

// Item is one bibliographic record derived from one CSV row.
type Item struct {
	Title   string
	Authors []string
	Date    string
	DOI     string
}

// Columns recognized in the export header, matched case-sensitively.
const (
	colTitle  = "Title"
	colAuthor = "Author"
	colDate   = "Date"
	colDOI    = "DOI"
)

// ParseFile reads a Zotero CSV export and returns one item per row that has
// a title; rows without one are dropped. Row order is preserved and
// duplicate titles within the file are kept. An unreadable or undecodable
// file is a fatal precondition and returns an error.
func ParseFile(path string, logf zotsync.LogFunc) ([]Item, error) {
	if logf == nil {
		logf = zotsync.Discard
	}
	logf("reading zotero data from: %s", path)
	r, err := openFile(path)
	if err != nil {
		return nil, fmt.Errorf("zotero: open %s: %v", path, err)
	}
	defer r.Close()
	items, err := Parse(r)
	if err != nil {
		return nil, fmt.Errorf("zotero: parse %s: %v", path, err)
	}
	logf("parsed %d items from CSV", len(items))
	return items, nil
}

// Parse reads CSV data with a header row and returns the contained items.
func Parse(r io.Reader) ([]Item, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	header, err := cr.Read()
	if err != nil {
		return nil, err
	}
	if len(header) > 0 {
		// Zotero writes a UTF-8 BOM.
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[name] = i
	}
	field := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}
	var items []Item
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		title := field(row, colTitle)
		if title == "" {
			continue
		}
		items = append(items, Item{
			Title:   title,
			Authors: SplitAuthors(field(row, colAuthor)),
			Date:    field(row, colDate),
			DOI:     field(row, colDOI),
		})
	}
	return items, nil
}

// SplitAuthors turns the semicolon separated Zotero author field into
// display names. Entries of the form "Last, First" are reordered to "First
// Last"; entries without a comma pass through verbatim; empty entries are
// dropped.
func SplitAuthors(s string) []string {
	var authors []string
	for _, entry := range strings.Split(s, ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if last, first, ok := strings.Cut(entry, ","); ok {
			authors = append(authors, strings.TrimSpace(first)+" "+strings.TrimSpace(last))
		} else {
			authors = append(authors, entry)
		}
	}
	return authors
}

// openFile opens a file and returns a reader, detecting if the file is
// compressed.
func openFile(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	switch {
	case strings.HasSuffix(path, ".gz"):
		zr, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, err
		}
		return &readCloser{zr, f}, nil
	case strings.HasSuffix(path, ".zst"):
		zr, err := zstd.NewReader(f)
		if err != nil {
			f.Close()
			return nil, err
		}
		return &readCloser{zr.IOReadCloser(), f}, nil
	default:
		return f, nil
	}
}

// readCloser closes the decompressor, then the underlying file.
type readCloser struct {
	io.ReadCloser
	f *os.File
}

func (rc *readCloser) Close() error {
	err := rc.ReadCloser.Close()
	if cerr := rc.f.Close(); err == nil {
		err = cerr
	}
	return err
}
