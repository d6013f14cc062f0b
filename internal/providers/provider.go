package providers

import (
	"context"

	"github.com/preston-bernstein/football-tracker/internal/domain/matches"
)

// MatchProvider defines how upstream fixtures are fetched and normalized.
// Implementations return ErrNotFound when the upstream has no record for the id.
type MatchProvider interface {
	FetchMatch(ctx context.Context, id int) (matches.Match, error)
	FetchSeasonFixtures(ctx context.Context, seasonID int) ([]matches.Match, error)
}

// SeasonResolver looks up the current remote season of a league.
// Optional; providers that cannot resolve seasons do not implement it.
type SeasonResolver interface {
	CurrentSeasonID(ctx context.Context, leagueID int) (int, error)
}
