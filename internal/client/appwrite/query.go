package appwrite

import "encoding/json"

// Query is a single predicate in Appwrite's JSON query syntax, e.g.
//
//	{"method":"equal","attribute":"type","values":["House"]}
//
// Logical queries (or/and) carry nested queries in Values.
type Query struct {
	Method    string `json:"method"`
	Attribute string `json:"attribute,omitempty"`
	Values    []any  `json:"values,omitempty"`
}

// String renders q the way it is sent in a queries[] parameter.
func (q Query) String() string {
	b, err := json.Marshal(q)
	if err != nil {
		return ""
	}
	return string(b)
}

func Equal(attribute string, values ...any) Query {
	return Query{Method: "equal", Attribute: attribute, Values: values}
}

func Search(attribute, text string) Query {
	return Query{Method: "search", Attribute: attribute, Values: []any{text}}
}

func OrderDesc(attribute string) Query {
	return Query{Method: "orderDesc", Attribute: attribute}
}

func OrderAsc(attribute string) Query {
	return Query{Method: "orderAsc", Attribute: attribute}
}

func Limit(n int) Query {
	return Query{Method: "limit", Values: []any{n}}
}

// Or joins queries into a single disjunction.
func Or(queries ...Query) Query {
	values := make([]any, 0, len(queries))
	for _, q := range queries {
		values = append(values, q)
	}
	return Query{Method: "or", Values: values}
}
