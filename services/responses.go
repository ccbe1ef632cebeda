// Package services contains thin request builders over the upstream API
// client, one per booking-API entity. The services own no business logic:
// seat locking, pricing and commission calculation are enforced by the
// remote API, the console only renders what comes back. Field names mirror
// the API's snake_case wire format.
package services

import (
	"net/url"
	"strconv"
)

// Paginated is the API's standard page envelope.
type Paginated[T any] struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// Result is the API's standard operation acknowledgement.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func pageQuery(page int) url.Values {
	if page < 1 {
		page = 1
	}
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	return q
}
