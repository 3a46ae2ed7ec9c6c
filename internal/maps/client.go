// README: Owned Maps client, created once on first use and shared after.
package maps

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"googlemaps.github.io/maps"
)

var ErrNoAPIKey = errors.New("maps api key not configured")

// Loader creates the Maps client on first use. Concurrent callers wait for the
// same initialization and observe the same client or error.
type Loader struct {
	load func() (*maps.Client, error)
}

func NewLoader(apiKey string) *Loader {
	return &Loader{load: sync.OnceValues(func() (*maps.Client, error) {
		if apiKey == "" {
			return nil, ErrNoAPIKey
		}
		client, err := maps.NewClient(maps.WithAPIKey(apiKey))
		if err != nil {
			return nil, fmt.Errorf("failed to create maps client: %w", err)
		}
		return client, nil
	})}
}

// Client returns the shared client, or the initialization error.
func (l *Loader) Client(ctx context.Context) (*maps.Client, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return l.load()
}
