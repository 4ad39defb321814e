package overwatch

import "context"

// StatsClient defines the interface for interacting with the third-party stats API.
// This allows for mock implementations to be used in tests.
type StatsClient interface {
	FetchStats(ctx context.Context, platform, region, accountHandle string) (StatsDocument, error)
}
