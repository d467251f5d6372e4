package models

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"
)

// FilterAll is the property-type filter value meaning "no type filter".
const FilterAll = "All"

// PropertyQuery is the request shape for property listings. Zero values
// mean "absent".
type PropertyQuery struct {
	Filter string
	Query  string
	Limit  int
}

// Property is a read-only listing owned by the remote store. Attributes
// other than the typed ones are kept verbatim in Fields.
type Property struct {
	ID        string
	Name      string
	Address   string
	Type      string
	CreatedAt time.Time
	Fields    map[string]json.RawMessage
}

// UnmarshalJSON decodes an Appwrite document.
func (p *Property) UnmarshalJSON(data []byte) error {
	raw := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var created string
	for key, dst := range map[string]*string{
		"$id":        &p.ID,
		"name":       &p.Name,
		"address":    &p.Address,
		"type":       &p.Type,
		"$createdAt": &created,
	} {
		if err := takeString(raw, key, dst); err != nil {
			return err
		}
	}

	if created != "" {
		t, err := time.Parse(time.RFC3339Nano, created)
		if err != nil {
			return fmt.Errorf("property %s: $createdAt: %w", p.ID, err)
		}
		p.CreatedAt = t
	}

	p.Fields = raw
	return nil
}

// Field decodes the remote attribute key into v. It reports false when the
// attribute is missing or has another type.
func (p *Property) Field(key string, v any) bool {
	b, ok := p.Fields[key]
	if !ok {
		return false
	}
	return json.Unmarshal(b, v) == nil
}

// FieldNames lists the extra attributes in sorted order, skipping Appwrite
// system attributes.
func (p *Property) FieldNames() []string {
	names := make([]string, 0, len(p.Fields))
	for k := range p.Fields {
		if strings.HasPrefix(k, "$") {
			continue
		}
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func (p *Property) String() string {
	return fmt.Sprintf("%s  %-10s %s, %s", p.ID, p.Type, p.Name, p.Address)
}

// Agent is a listing agent document from the agents collection.
type Agent struct {
	ID     string `json:"$id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar"`
}

// takeString moves raw[key] into dst when present and non-null.
func takeString(raw map[string]json.RawMessage, key string, dst *string) error {
	b, ok := raw[key]
	if !ok {
		return nil
	}
	delete(raw, key)
	if string(b) == "null" {
		return nil
	}
	if err := json.Unmarshal(b, dst); err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	return nil
}
