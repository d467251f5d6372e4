package services

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/dmitrijs2005/restate/internal/client/appwrite"
	"github.com/dmitrijs2005/restate/internal/client/fetch"
	"github.com/dmitrijs2005/restate/internal/client/models"
	"github.com/dmitrijs2005/restate/internal/logging"
)

// latestLimit is how many listings the "latest" strip shows.
const latestLimit = 5

// DatabaseClient is the part of the backend client the property service
// needs. *appwrite.Client satisfies it.
type DatabaseClient interface {
	ListDocuments(ctx context.Context, databaseID, collectionID string, queries []appwrite.Query) (*appwrite.DocumentList, error)
	GetDocument(ctx context.Context, databaseID, collectionID, documentID string) (json.RawMessage, error)
}

// Collections names the remote database and collections.
type Collections struct {
	DatabaseID string
	Properties string
	Agents     string
}

// PropertyService reads listings. Like AuthService it never returns an
// error: failures are logged and yield an empty slice or nil.
type PropertyService interface {
	List(ctx context.Context, q models.PropertyQuery) []*models.Property
	Latest(ctx context.Context) []*models.Property
	Get(ctx context.Context, id string) *models.Property
	Agent(ctx context.Context, id string) *models.Agent
}

type propertyService struct {
	client DatabaseClient
	cols   Collections
	logger logging.Logger
}

func NewPropertyService(client DatabaseClient, cols Collections, logger logging.Logger) PropertyService {
	return &propertyService{client: client, cols: cols, logger: logger}
}

func (s *propertyService) List(ctx context.Context, q models.PropertyQuery) []*models.Property {
	props, err := s.list(ctx, BuildPropertyQueries(q.Filter, q.Query, q.Limit))
	if err != nil {
		s.logger.Error(ctx, "error fetching properties", "filter", q.Filter, "query", q.Query, "error", err)
		return []*models.Property{}
	}
	return props
}

// Latest returns the oldest five listings first, matching the home screen
// of the mobile app.
func (s *propertyService) Latest(ctx context.Context) []*models.Property {
	props, err := s.list(ctx, []appwrite.Query{appwrite.OrderAsc("$createdAt"), appwrite.Limit(latestLimit)})
	if err != nil {
		s.logger.Error(ctx, "error fetching latest properties", "error", err)
		return []*models.Property{}
	}
	return props
}

func (s *propertyService) list(ctx context.Context, queries []appwrite.Query) ([]*models.Property, error) {
	res, err := s.client.ListDocuments(ctx, s.cols.DatabaseID, s.cols.Properties, queries)
	if err != nil {
		return nil, err
	}

	props := make([]*models.Property, 0, len(res.Documents))
	for _, doc := range res.Documents {
		var p models.Property
		if err := json.Unmarshal(doc, &p); err != nil {
			s.logger.Warn(ctx, "skipping undecodable property", "error", err)
			continue
		}
		props = append(props, &p)
	}
	return props, nil
}

func (s *propertyService) Get(ctx context.Context, id string) *models.Property {
	if id == "" {
		s.logger.Warn(ctx, "property id is empty")
		return nil
	}

	doc, err := s.client.GetDocument(ctx, s.cols.DatabaseID, s.cols.Properties, id)
	if err != nil {
		s.logger.Error(ctx, "error fetching property", "id", id, "error", err)
		return nil
	}

	var p models.Property
	if err := json.Unmarshal(doc, &p); err != nil {
		s.logger.Error(ctx, "error decoding property", "id", id, "error", err)
		return nil
	}
	return &p
}

func (s *propertyService) Agent(ctx context.Context, id string) *models.Agent {
	if id == "" || s.cols.Agents == "" {
		s.logger.Warn(ctx, "agent lookup skipped", "id", id, "collection", s.cols.Agents)
		return nil
	}

	doc, err := s.client.GetDocument(ctx, s.cols.DatabaseID, s.cols.Agents, id)
	if err != nil {
		s.logger.Error(ctx, "error fetching agent", "id", id, "error", err)
		return nil
	}

	var a models.Agent
	if err := json.Unmarshal(doc, &a); err != nil {
		s.logger.Error(ctx, "error decoding agent", "id", id, "error", err)
		return nil
	}
	return &a
}

// PropertiesFetcher adapts List to a fetch.Func reading the "filter",
// "query" and "limit" params.
func PropertiesFetcher(svc PropertyService) fetch.Func[[]*models.Property] {
	return func(ctx context.Context, p fetch.Params) ([]*models.Property, error) {
		return svc.List(ctx, PropertyQueryFromParams(p)), nil
	}
}

// PropertyQueryFromParams reads a PropertyQuery out of hook params. limit
// may be an int, a float64 (decoded JSON) or a numeric string.
func PropertyQueryFromParams(p fetch.Params) models.PropertyQuery {
	var q models.PropertyQuery
	q.Filter, _ = p["filter"].(string)
	q.Query, _ = p["query"].(string)

	switch v := p["limit"].(type) {
	case int:
		q.Limit = v
	case float64:
		q.Limit = int(v)
	case string:
		q.Limit, _ = strconv.Atoi(v)
	}
	return q
}
