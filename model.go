package currencyapi

import "time"

// Response is the decoded body of every currencyapi.com call: a data
// object plus an optional meta object. The payload is kept as a generic
// mapping on purpose, the API occasionally returns inconsistent field
// types below the top level and a strict schema would reject otherwise
// usable responses.
type Response struct {
	Data map[string]interface{} `json:"data"`
	Meta map[string]interface{} `json:"meta,omitempty"`
}

// Rate is one exchange rate flattened out of a Response. The numeric
// rate is named Value so it stays addressable when Rate is embedded in
// RateWithID (a field named Rate would be shadowed by the embedded
// struct itself).
type Rate struct {
	From      string
	To        string
	Provider  Provider
	Value     float64
	CreatedAt time.Time
}

// RateWithID is a Rate as persisted by a storage backend. The ID type
// depends on the backend (UUID string in MySQL, ObjectID in MongoDB).
type RateWithID struct {
	Rate
	ID interface{}
}
