package usecase

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"

	"storeconsole-backend/internal/domain"
	"storeconsole-backend/internal/state"
)

// Store is what the usecases need from *state.Store.
type Store interface {
	state.Dispatcher
	Snapshot() (*state.State, uint64)
}

// detach keeps a gateway call alive after the HTTP caller goes away so the
// outcome is still dispatched. The gateway bounds it with its own timeout.
func detach(ctx context.Context) context.Context {
	return context.WithoutCancel(ctx)
}

func decode[T any](resp *domain.Response) (T, error) {
	var out T
	if resp == nil || len(resp.Data) == 0 {
		return out, &domain.TransportError{Code: domain.ErrCodeInvalidResult, Message: "empty response"}
	}
	if err := json.Unmarshal(resp.Data, &out); err != nil {
		return out, &domain.TransportError{
			Code:    domain.ErrCodeInvalidResult,
			Message: fmt.Sprintf("decode response: %v", err),
		}
	}
	return out, nil
}

func checkSite(siteID int64) error {
	if siteID <= 0 {
		return fmt.Errorf("site %d: %w", siteID, domain.ErrInvalidSite)
	}
	return nil
}
