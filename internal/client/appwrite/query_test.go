package appwrite

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuery_String(t *testing.T) {
	tests := []struct {
		name string
		q    Query
		want string
	}{
		{"orderDesc", OrderDesc("$createdAt"), `{"method":"orderDesc","attribute":"$createdAt"}`},
		{"orderAsc", OrderAsc("$createdAt"), `{"method":"orderAsc","attribute":"$createdAt"}`},
		{"equal", Equal("type", "House"), `{"method":"equal","attribute":"type","values":["House"]}`},
		{"limit", Limit(10), `{"method":"limit","values":[10]}`},
		{"or", Or(Search("name", "sea"), Search("address", "sea")),
			`{"method":"or","values":[{"method":"search","attribute":"name","values":["sea"]},{"method":"search","attribute":"address","values":["sea"]}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.JSONEq(t, tt.want, tt.q.String())
		})
	}
}
