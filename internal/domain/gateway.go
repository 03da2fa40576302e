package domain

import (
	"context"
	"net/url"

	"github.com/goccy/go-json"
)

// Response is the unwrapped body of a successful gateway call.
type Response struct {
	Data json.RawMessage
	// TotalPages and Total come from the paging headers of list endpoints
	// and are zero elsewhere.
	TotalPages int
	Total      int
}

// Gateway issues REST calls against one site. Failures are *TransportError.
type Gateway interface {
	Get(ctx context.Context, siteID int64, path string, query url.Values) (*Response, error)
	Post(ctx context.Context, siteID int64, path string, body interface{}) (*Response, error)
	Put(ctx context.Context, siteID int64, path string, body interface{}) (*Response, error)
	Delete(ctx context.Context, siteID int64, path string) (*Response, error)
}
