package services

import (
	"github.com/dmitrijs2005/restate/internal/client/appwrite"
	"github.com/dmitrijs2005/restate/internal/client/models"
)

// BuildPropertyQueries translates a listing request into backend queries.
// The order is fixed: newest first, then the type filter, then the text
// search, then the row cap.
func BuildPropertyQueries(filter, search string, limit int) []appwrite.Query {
	queries := []appwrite.Query{appwrite.OrderDesc("$createdAt")}

	if filter != "" && filter != models.FilterAll {
		queries = append(queries, appwrite.Equal("type", filter))
	}
	if search != "" {
		queries = append(queries, appwrite.Or(
			appwrite.Search("name", search),
			appwrite.Search("address", search),
			appwrite.Search("type", search),
		))
	}
	if limit > 0 {
		queries = append(queries, appwrite.Limit(limit))
	}
	return queries
}
