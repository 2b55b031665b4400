package backlog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	"github.com/lepinkainen/backlog/internal/hltb"
	"github.com/lepinkainen/backlog/internal/igdb"
	"github.com/lepinkainen/backlog/internal/metrics"
	"github.com/lepinkainen/backlog/internal/steamgriddb"
	"github.com/lepinkainen/backlog/internal/tracing"
)

// Source names used in logs and metrics.
const (
	SourceIGDB        = "igdb"
	SourceHLTB        = "hltb"
	SourceSteamGridDB = "steamgriddb"
)

// ErrGameDetails is returned when the catalog record for a selection cannot be loaded.
var ErrGameDetails = errors.New("could not fetch game details")

// Catalog is the primary metadata source.
type Catalog interface {
	GetByID(ctx context.Context, id int64) (*igdb.Game, error)
	CoverURL(imageID string, size igdb.CoverSize) string
}

// CompletionTimes looks up hours-to-beat estimates by title.
type CompletionTimes interface {
	SearchGame(ctx context.Context, name string) *hltb.Estimate
}

// Artwork looks up cover art by title.
type Artwork interface {
	BestGridForTitle(ctx context.Context, title string) *steamgriddb.Image
}

// Enricher merges the three sources into one Game. Only the catalog is required; a nil
// CompletionTimes or Artwork source is skipped.
type Enricher struct {
	catalog   Catalog
	times     CompletionTimes
	artwork   Artwork
	coverSize igdb.CoverSize
	now       func() time.Time
}

// Option configures an Enricher.
type Option func(*Enricher)

// WithCoverSize sets the catalog cover size used when no artwork grid is found.
func WithCoverSize(size igdb.CoverSize) Option {
	return func(e *Enricher) {
		if size != "" {
			e.coverSize = size
		}
	}
}

// WithClock overrides the clock used for AddedAt.
func WithClock(now func() time.Time) Option {
	return func(e *Enricher) {
		if now != nil {
			e.now = now
		}
	}
}

// NewEnricher creates an Enricher.
func NewEnricher(catalog Catalog, times CompletionTimes, artwork Artwork, opts ...Option) *Enricher {
	e := &Enricher{
		catalog:   catalog,
		times:     times,
		artwork:   artwork,
		coverSize: igdb.DefaultSize,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Enrich fetches the catalog record for sel and fills in completion time and artwork. Only a
// catalog failure is returned as an error; it wraps ErrGameDetails.
func (e *Enricher) Enrich(ctx context.Context, sel Selection) (*Game, error) {
	start := time.Now()
	defer metrics.RecordEnrichDuration(start)

	ctx, span := tracing.StartSpan(ctx, "backlog.Enrich")
	defer span.End()
	span.SetAttributes(attribute.Int64("igdb.id", sel.GameID))

	details, err := e.fetchDetails(ctx, sel.GameID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.String("game.title", details.Name))

	var (
		estimate *hltb.Estimate
		grid     *steamgriddb.Image
		g        errgroup.Group
	)
	g.Go(func() error {
		estimate = e.lookupTimes(ctx, details.Name)
		return nil
	})
	g.Go(func() error {
		grid = e.lookupArtwork(ctx, details.Name)
		return nil
	})
	_ = g.Wait()

	game := e.merge(sel.withDefaults(), details, estimate, grid)
	slog.Debug("Enriched game",
		"title", game.Title,
		"has_hours", game.HoursToBeat != nil,
		"has_cover", game.CoverURL != nil,
		"has_efficiency", game.HasEfficiency())
	return game, nil
}

func (e *Enricher) fetchDetails(ctx context.Context, id int64) (*igdb.Game, error) {
	details, err := e.catalog.GetByID(ctx, id)
	if err != nil {
		metrics.RecordLookup(SourceIGDB, metrics.OutcomeError)
		return nil, fmt.Errorf("%w: %w", ErrGameDetails, err)
	}
	if details == nil {
		metrics.RecordLookup(SourceIGDB, metrics.OutcomeNotFound)
		return nil, fmt.Errorf("%w: no game with id %d", ErrGameDetails, id)
	}
	metrics.RecordLookup(SourceIGDB, metrics.OutcomeFound)
	return details, nil
}

func (e *Enricher) lookupTimes(ctx context.Context, title string) *hltb.Estimate {
	if e.times == nil {
		metrics.RecordLookup(SourceHLTB, metrics.OutcomeSkipped)
		return nil
	}

	ctx, span := tracing.StartSpan(ctx, "hltb.SearchGame")
	defer span.End()

	estimate := e.times.SearchGame(ctx, title)
	span.SetAttributes(attribute.Bool("found", estimate != nil))
	if estimate == nil {
		metrics.RecordLookup(SourceHLTB, metrics.OutcomeNotFound)
		return nil
	}
	metrics.RecordLookup(SourceHLTB, metrics.OutcomeFound)
	return estimate
}

func (e *Enricher) lookupArtwork(ctx context.Context, title string) *steamgriddb.Image {
	if e.artwork == nil {
		metrics.RecordLookup(SourceSteamGridDB, metrics.OutcomeSkipped)
		return nil
	}

	ctx, span := tracing.StartSpan(ctx, "steamgriddb.BestGridForTitle")
	defer span.End()

	grid := e.artwork.BestGridForTitle(ctx, title)
	span.SetAttributes(attribute.Bool("found", grid != nil))
	if grid == nil || grid.URL == "" {
		metrics.RecordLookup(SourceSteamGridDB, metrics.OutcomeNotFound)
		return nil
	}
	metrics.RecordLookup(SourceSteamGridDB, metrics.OutcomeFound)
	return grid
}

func (e *Enricher) merge(sel Selection, details *igdb.Game, estimate *hltb.Estimate, grid *steamgriddb.Image) *Game {
	id := details.ID
	game := &Game{
		Title:       details.Name,
		Slug:        details.Slug,
		Platform:    sel.Platform,
		Priority:    sel.Priority,
		Status:      sel.Status,
		Rating:      RoundRating(details.AggregatedRating),
		Description: description(details),
		Genres:      details.GenreNames(),
		IGDBID:      &id,
		AddedAt:     e.now(),
	}

	if estimate != nil {
		hours := estimate.MainStory
		completionist := estimate.Completionist
		hltbID := estimate.ID
		game.HoursToBeat = &hours
		game.Completionist = &completionist
		game.HLTBID = &hltbID
	}
	game.Efficiency = Efficiency(game.Rating, game.HoursToBeat)

	switch {
	case grid != nil:
		game.CoverURL = stringPtr(grid.URL)
	case details.CoverImageID() != "":
		game.CoverURL = stringPtr(e.catalog.CoverURL(details.CoverImageID(), e.coverSize))
	}

	if year := details.ReleaseYear(); details.FirstReleaseDate != nil {
		game.ReleaseYear = &year
	}

	return game
}

func description(details *igdb.Game) *string {
	for _, text := range []*string{details.Summary, details.Storyline} {
		if text != nil && strings.TrimSpace(*text) != "" {
			return stringPtr(strings.TrimSpace(*text))
		}
	}
	return nil
}

func stringPtr(s string) *string {
	return &s
}
