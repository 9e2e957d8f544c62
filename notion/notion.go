// Package notion is a minimal client for the parts of the Notion API this
// tool needs: paging a database, reading its schema, creating pages.
package notion

import (
	"bytes"
	"fmt"
	"io"
	"net/http"

	"github.com/segmentio/encoding/json"

	"github.com/miku/zotsync"
)

// Version is the pinned Notion API protocol version, sent with every
// request.
const Version = "2022-06-28"

// DefaultBaseURL is the hosted API endpoint.
const DefaultBaseURL = "https://api.notion.com"

// Doer abstracts https://pkg.go.dev/net/http#Client.Do.
type Doer interface {
	Do(*http.Request) (*http.Response, error)
}

// Client talks to the Notion API with a bearer token. The zero value of
// BaseURL means the hosted endpoint; Client defaults to
// http.DefaultClient.
type Client struct {
	Client  Doer
	Token   string
	BaseURL string
}

// StatusError is returned for HTTP error responses and carries any error
// detail the API sent back, so callers can distinguish auth failures (401)
// from missing databases (404) and the rest.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("notion: HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("notion: HTTP %d: %s", e.StatusCode, e.Body)
}

// pageSize is the number of records requested per query page.
const pageSize = 100

// titleCandidates are the property names checked for a record's title,
// first match wins.
var titleCandidates = []string{"Title", "Name", "title"}

type queryRequest struct {
	PageSize    int    `json:"page_size"`
	StartCursor string `json:"start_cursor,omitempty"`
}

type queryResponse struct {
	Results []struct {
		Properties map[string]struct {
			Title []TextSegment `json:"title"`
		} `json:"properties"`
	} `json:"results"`
	HasMore    bool   `json:"has_more"`
	NextCursor string `json:"next_cursor"`
}

// ExistingTitles pages through the database and collects the set of titles
// already present, for duplicate suppression. Any failed page fetch aborts
// the build; a partial index is never returned.
func (c *Client) ExistingTitles(databaseID string, logf zotsync.LogFunc) (map[string]bool, error) {
	if logf == nil {
		logf = zotsync.Discard
	}
	titles := make(map[string]bool)
	var cursor string
	for {
		resp, err := c.do("POST", "/v1/databases/"+databaseID+"/query", queryRequest{
			PageSize:    pageSize,
			StartCursor: cursor,
		})
		if err != nil {
			return nil, fmt.Errorf("notion: query database %s: %w", databaseID, err)
		}
		var qr queryResponse
		err = json.NewDecoder(resp.Body).Decode(&qr)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("notion: decode query response: %v", err)
		}
		for _, result := range qr.Results {
			for _, key := range titleCandidates {
				prop, ok := result.Properties[key]
				if !ok || len(prop.Title) == 0 {
					continue
				}
				titles[prop.Title[0].Text.Content] = true
				break
			}
		}
		if !qr.HasMore {
			break
		}
		cursor = qr.NextCursor
	}
	logf("found %d existing titles in notion", len(titles))
	return titles, nil
}

type databaseResponse struct {
	Properties map[string]struct {
		Type string `json:"type"`
	} `json:"properties"`
}

// PropertyTypes fetches the database schema and maps each property name to
// its declared type string, like "title", "url" or "rich_text".
func (c *Client) PropertyTypes(databaseID string) (map[string]string, error) {
	resp, err := c.do("GET", "/v1/databases/"+databaseID, nil)
	if err != nil {
		return nil, fmt.Errorf("notion: fetch schema for %s: %w", databaseID, err)
	}
	defer resp.Body.Close()
	var dr databaseResponse
	if err := json.NewDecoder(resp.Body).Decode(&dr); err != nil {
		return nil, fmt.Errorf("notion: decode schema: %v", err)
	}
	types := make(map[string]string, len(dr.Properties))
	for name, prop := range dr.Properties {
		types[name] = prop.Type
	}
	return types, nil
}

type createPageRequest struct {
	Parent struct {
		DatabaseID string `json:"database_id"`
	} `json:"parent"`
	Properties map[string]any `json:"properties"`
}

// CreatePage creates one record in the database with the given property
// map. Values must already be shaped per their declared property type, see
// TitleProp and friends.
func (c *Client) CreatePage(databaseID string, properties map[string]any) error {
	var cpr createPageRequest
	cpr.Parent.DatabaseID = databaseID
	cpr.Properties = properties
	resp, err := c.do("POST", "/v1/pages", cpr)
	if err != nil {
		return err
	}
	io.Copy(io.Discard, resp.Body)
	return resp.Body.Close()
}

// do issues one request with auth and version headers and turns HTTP error
// responses into a StatusError.
func (c *Client) do(method, path string, payload any) (*http.Response, error) {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(b)
	}
	base := c.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	req, err := http.NewRequest(method, base+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.Token)
	req.Header.Set("Notion-Version", Version)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	client := c.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		defer resp.Body.Close()
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(bytes.TrimSpace(b))}
	}
	return resp, nil
}
