package appwrite

import (
	"context"
	"encoding/json"
	"net/url"
)

// DocumentList holds raw documents; decoding into domain types is the
// caller's job.
type DocumentList struct {
	Total     int               `json:"total"`
	Documents []json.RawMessage `json:"documents"`
}

func documentsPath(databaseID, collectionID string) string {
	return "/databases/" + url.PathEscape(databaseID) + "/collections/" + url.PathEscape(collectionID) + "/documents"
}

func (c *Client) ListDocuments(ctx context.Context, databaseID, collectionID string, queries []Query) (*DocumentList, error) {
	var q url.Values
	if len(queries) > 0 {
		q = url.Values{}
		for _, query := range queries {
			q.Add("queries[]", query.String())
		}
	}

	var l DocumentList
	if err := c.do(ctx, "GET", documentsPath(databaseID, collectionID), q, nil, &l); err != nil {
		return nil, err
	}
	return &l, nil
}

func (c *Client) GetDocument(ctx context.Context, databaseID, collectionID, documentID string) (json.RawMessage, error) {
	var doc json.RawMessage
	if err := c.do(ctx, "GET", documentsPath(databaseID, collectionID)+"/"+url.PathEscape(documentID), nil, nil, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}
