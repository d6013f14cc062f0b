package league

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/preston-bernstein/football-tracker/internal/domain/matches"
	"github.com/preston-bernstein/football-tracker/internal/domain/seasons"
	"github.com/preston-bernstein/football-tracker/internal/logging"
	"github.com/preston-bernstein/football-tracker/internal/providers"
	"github.com/preston-bernstein/football-tracker/internal/store"
	"github.com/preston-bernstein/football-tracker/internal/timeutil"
)

// ErrInvalidMatchID rejects non-positive match ids before any remote call.
var ErrInvalidMatchID = errors.New("invalid match id")

// SeasonStore defines how seasons are persisted.
type SeasonStore interface {
	Load() ([]seasons.Season, error)
	Current() (seasons.Season, error)
	Append(season seasons.Season) (seasons.Season, error)
}

// CalendarStore defines how per-season calendars are persisted.
type CalendarStore interface {
	Path(seasonID int) string
	Load(seasonID int) (matches.Calendar, error)
	Get(seasonID, matchID int) (matches.Match, error)
	Upsert(seasonID int, m matches.Match) error
	Replace(seasonID int, ms []matches.Match) (matches.Calendar, error)
}

// Info describes the competition new seasons belong to.
type Info struct {
	Country   string
	CountryID int
	Name      string
	LeagueID  int
}

// Service coordinates the remote provider with the season and calendar stores.
type Service struct {
	provider  providers.MatchProvider
	seasons   SeasonStore
	calendars CalendarStore
	info      Info
	loc       *time.Location
	logger    *slog.Logger
}

// NewService constructs a Service. A nil location means UTC.
func NewService(provider providers.MatchProvider, seasonStore SeasonStore, calendarStore CalendarStore, info Info, loc *time.Location, logger *slog.Logger) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		provider:  provider,
		seasons:   seasonStore,
		calendars: calendarStore,
		info:      info,
		loc:       loc,
		logger:    logger,
	}
}

// Location is the league-local timezone used for day boundaries.
func (s *Service) Location() *time.Location {
	return s.loc
}

// CreateSeason downloads a season's fixtures, stores its calendar and appends a new
// season record derived from it. A non-positive remoteSeasonID asks the provider for
// the league's current season.
func (s *Service) CreateSeason(ctx context.Context, remoteSeasonID int) (seasons.Season, error) {
	if remoteSeasonID <= 0 {
		resolver, ok := s.provider.(providers.SeasonResolver)
		if !ok {
			return seasons.Season{}, fmt.Errorf("season id required: %w", providers.ErrProviderUnavailable)
		}
		id, err := resolver.CurrentSeasonID(ctx, s.info.LeagueID)
		if err != nil {
			return seasons.Season{}, fmt.Errorf("resolve current season: %w", err)
		}
		remoteSeasonID = id
	}

	cal, err := s.downloadCalendar(ctx, remoteSeasonID)
	if err != nil {
		return seasons.Season{}, err
	}

	start, finish := seasons.Span(cal.Data)
	season := seasons.Season{
		Country:        s.info.Country,
		CountryID:      s.info.CountryID,
		League:         s.info.Name,
		LeagueID:       s.info.LeagueID,
		RemoteSeasonID: remoteSeasonID,
		Calendar:       s.calendars.Path(remoteSeasonID),
		MaxRounds:      matches.MaxRound(cal.Data),
		CurrentRound:   1,
		StartDate:      start,
		FinishDate:     finish,
		RoundDates:     seasons.RoundDates(cal.Data, s.day),
	}
	stored, err := s.seasons.Append(season)
	if err != nil {
		return seasons.Season{}, fmt.Errorf("store season %d: %w", remoteSeasonID, err)
	}
	logging.Info(s.logger, "season created",
		slog.Int(logging.FieldSeasonID, remoteSeasonID),
		slog.Int("max_rounds", stored.MaxRounds),
		slog.Int(logging.FieldCount, len(cal.Data)),
	)
	return stored, nil
}

// SyncCalendar re-downloads the current season's fixtures and replaces its calendar.
func (s *Service) SyncCalendar(ctx context.Context) (matches.Calendar, error) {
	season, err := s.seasons.Current()
	if err != nil {
		return matches.Calendar{}, err
	}
	return s.downloadCalendar(ctx, season.RemoteSeasonID)
}

func (s *Service) downloadCalendar(ctx context.Context, remoteSeasonID int) (matches.Calendar, error) {
	ms, err := s.provider.FetchSeasonFixtures(ctx, remoteSeasonID)
	if err != nil {
		logging.Error(s.logger, "season fixtures download failed", err, slog.Int(logging.FieldSeasonID, remoteSeasonID))
		return matches.Calendar{}, fmt.Errorf("fetch season %d: %w", remoteSeasonID, err)
	}
	matches.SortChronological(ms)
	return s.calendars.Replace(remoteSeasonID, ms)
}

// FetchMatch downloads a match without storing it.
func (s *Service) FetchMatch(ctx context.Context, id int) (matches.Match, error) {
	if id <= 0 {
		logging.Warn(s.logger, "match id must be positive", slog.Int(logging.FieldMatchID, id))
		return matches.Match{}, fmt.Errorf("match %d: %w", id, ErrInvalidMatchID)
	}
	m, err := s.provider.FetchMatch(ctx, id)
	if err != nil {
		if errors.Is(err, providers.ErrNotFound) {
			logging.Warn(s.logger, "match not found upstream", slog.Int(logging.FieldMatchID, id))
		} else {
			logging.Error(s.logger, "match download failed", err, slog.Int(logging.FieldMatchID, id))
		}
		return matches.Match{}, err
	}
	logging.Debug(s.logger, "match downloaded", slog.Int(logging.FieldMatchID, id))
	return m, nil
}

// RefreshMatch downloads a match and upserts it into the current season's calendar.
func (s *Service) RefreshMatch(ctx context.Context, id int) (matches.Match, error) {
	m, err := s.FetchMatch(ctx, id)
	if err != nil {
		return matches.Match{}, err
	}
	season, err := s.seasons.Current()
	if err != nil {
		return matches.Match{}, err
	}
	if err := s.calendars.Upsert(season.RemoteSeasonID, m); err != nil {
		return matches.Match{}, err
	}
	return m, nil
}

// CurrentSeason returns the most recently created season.
func (s *Service) CurrentSeason() (seasons.Season, error) {
	return s.seasons.Current()
}

// Seasons returns every stored season.
func (s *Service) Seasons() ([]seasons.Season, error) {
	return s.seasons.Load()
}

// Calendar returns the current season's calendar. A calendar that was never written is empty.
func (s *Service) Calendar() (matches.Calendar, error) {
	season, err := s.seasons.Current()
	if err != nil {
		return matches.Calendar{}, err
	}
	cal, err := s.calendars.Load(season.RemoteSeasonID)
	if errors.Is(err, store.ErrMissing) {
		logging.Warn(s.logger, "calendar missing", slog.Int(logging.FieldSeasonID, season.RemoteSeasonID))
		return matches.Calendar{SeasonID: season.RemoteSeasonID}, nil
	}
	return cal, err
}

// Match returns a stored match of the current season.
func (s *Service) Match(id int) (matches.Match, error) {
	if id <= 0 {
		return matches.Match{}, fmt.Errorf("match %d: %w", id, ErrInvalidMatchID)
	}
	season, err := s.seasons.Current()
	if err != nil {
		return matches.Match{}, err
	}
	return s.calendars.Get(season.RemoteSeasonID, id)
}

// MatchesOn returns the stored matches dated on day's league-local calendar day.
func (s *Service) MatchesOn(day time.Time) ([]matches.Match, error) {
	cal, err := s.Calendar()
	if err != nil {
		return nil, err
	}
	return matches.MatchesOn(cal.Data, day, s.loc), nil
}

// Round returns the stored matches of a round.
func (s *Service) Round(n int) ([]matches.Match, error) {
	cal, err := s.Calendar()
	if err != nil {
		return nil, err
	}
	return matches.InRound(cal.Data, n), nil
}

// NextMatchDate returns the earliest stored kickoff after the given instant.
func (s *Service) NextMatchDate(after time.Time) (time.Time, bool, error) {
	cal, err := s.Calendar()
	if err != nil {
		return time.Time{}, false, err
	}
	next, ok := matches.NextMatchDate(cal.Data, after)
	return next, ok, nil
}

// SeasonFinished reports whether every stored match is finished or canceled. A written
// but empty calendar is finished. A missing calendar document keeps the season open so
// a later calendar sync can restore it.
func (s *Service) SeasonFinished() (bool, error) {
	season, err := s.seasons.Current()
	if err != nil {
		return false, err
	}
	cal, err := s.calendars.Load(season.RemoteSeasonID)
	if errors.Is(err, store.ErrMissing) {
		logging.Warn(s.logger, "calendar missing, season kept open", slog.Int(logging.FieldSeasonID, season.RemoteSeasonID))
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return matches.AllTerminal(cal.Data), nil
}

// PreviousMatches returns the team's matches in the n rounds before round.
// A non-positive round means the season's current round.
func (s *Service) PreviousMatches(teamID, n, round int) ([]matches.Match, error) {
	if round <= 0 {
		season, err := s.seasons.Current()
		if err != nil {
			return nil, err
		}
		round = season.CurrentRound
	}
	cal, err := s.Calendar()
	if err != nil {
		return nil, err
	}
	return matches.PreviousMatches(cal.Data, teamID, n, round), nil
}

// Scorers returns the goal list of a stored match.
func (s *Service) Scorers(id int) ([]matches.Scorer, error) {
	m, err := s.Match(id)
	if err != nil {
		return nil, err
	}
	return matches.Scorers(m), nil
}

func (s *Service) day(t time.Time) time.Time {
	return timeutil.StartOfDay(t, s.loc)
}
