// Package push implements the one-way sync of parsed Zotero items into a
// Notion database: build the remote title index and schema map once, then
// create a page per item that is not already present.
package push

import (
	"strings"

	"github.com/miku/zotsync"
	"github.com/miku/zotsync/dateutil"
	"github.com/miku/zotsync/notion"
	"github.com/miku/zotsync/zotero"
)

// doiResolver prefixes bare DOI values.
const doiResolver = "https://doi.org/"

// Options bundles everything one sync run needs.
type Options struct {
	Items      []zotero.Item
	Client     *notion.Client
	DatabaseID string
	Logf       zotsync.LogFunc
}

// Run pushes items whose title is not yet present remotely, in input order.
// A failure to build the title index or the schema map aborts the run; a
// single item's failed submission is logged and the run continues. Items
// are never retried. The title index is a snapshot taken before the loop
// and never updated during it, so duplicate titles within the input are all
// submitted.
func Run(opts Options) (*zotsync.Result, error) {
	logf := opts.Logf
	if logf == nil {
		logf = zotsync.Discard
	}
	existing, err := opts.Client.ExistingTitles(opts.DatabaseID, logf)
	if err != nil {
		return nil, err
	}
	types, err := opts.Client.PropertyTypes(opts.DatabaseID)
	if err != nil {
		return nil, err
	}
	doiType := types["DOI"]
	if doiType == "" {
		doiType = "rich_text"
	}
	logf("DOI property type: %s", doiType)
	var result zotsync.Result
	for _, item := range opts.Items {
		if existing[item.Title] {
			logf("skipping existing item: %s", item.Title)
			result.Skipped++
			continue
		}
		props := Properties(item, doiType)
		if err := opts.Client.CreatePage(opts.DatabaseID, props); err != nil {
			logf("failed to push %q: %v", item.Title, err)
			continue
		}
		logf("pushed: %s", item.Title)
		result.Pushed++
	}
	logf("finished: pushed=%d, skipped=%d", result.Pushed, result.Skipped)
	return &result, nil
}

// Properties builds the page creation payload for one item. The DOI value
// is expanded to a full resolver URL unless it already is an absolute URL,
// and shaped per the declared DOI property type; the date is set only when
// it normalizes.
func Properties(item zotero.Item, doiType string) map[string]any {
	authors := "Unknown"
	if len(item.Authors) > 0 {
		authors = strings.Join(item.Authors, ", ")
	}
	props := map[string]any{
		"Title":   notion.TitleProp(item.Title),
		"Authors": notion.RichTextProp(authors),
	}
	if date, ok := dateutil.Normalize(item.Date); ok {
		props["Date"] = notion.DateProp(date)
	}
	if doi := strings.TrimSpace(item.DOI); doi != "" {
		link := doi
		if !strings.HasPrefix(doi, "http") {
			link = doiResolver + doi
		}
		if doiType == "url" {
			props["DOI"] = notion.URLProp(link)
		} else {
			props["DOI"] = notion.RichTextProp(link)
		}
	}
	return props
}
