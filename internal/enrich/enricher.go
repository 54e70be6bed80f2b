package enrich

import (
	"context"
	"fmt"
	"log"
	"math"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/jengzang/placewalk-go/internal/artifact"
	"github.com/jengzang/placewalk-go/internal/models"
	"github.com/jengzang/placewalk-go/internal/places"
	"github.com/jengzang/placewalk-go/internal/stats"
)

// Options configures one enrichment run
type Options struct {
	CostPerRequest    float64
	MaxTotalCost      float64
	RequestsPerSecond float64
	CheckpointEvery   int
	RunID             string
}

// Enricher resolves candidate places against the lookup service under the
// cost ceiling, checkpointing progress so an interrupted run can resume
// without duplicate spend.
type Enricher struct {
	lookup  places.Lookup
	store   *artifact.Store
	ledger  *Ledger
	limiter *rate.Limiter
	opts    Options
}

// New creates an enricher. store holds the checkpoint/output artifact.
func New(lookup places.Lookup, store *artifact.Store, opts Options) *Enricher {
	if opts.CheckpointEvery <= 0 {
		opts.CheckpointEvery = 100
	}

	limit := rate.Inf
	if opts.RequestsPerSecond > 0 {
		limit = rate.Limit(opts.RequestsPerSecond)
	}

	return &Enricher{
		lookup:  lookup,
		store:   store,
		ledger:  NewLedger(opts.CostPerRequest, opts.MaxTotalCost),
		limiter: rate.NewLimiter(limit, 1),
		opts:    opts,
	}
}

// Ledger exposes the run's accounting state
func (e *Enricher) Ledger() *Ledger {
	return e.ledger
}

// Run enriches every candidate not already covered by a checkpoint, stopping
// early when the budget runs out. Budget exhaustion is a normal completion
// condition surfaced through metadata, not an error.
func (e *Enricher) Run(ctx context.Context, records []models.PlaceRecord) (*models.EnrichmentArtifact, error) {
	enriched := e.resume(records)

	log.Printf("[Enricher] Starting: %d candidates, %d restored, max %d requests (ceiling $%.2f)",
		len(records), len(enriched), e.ledger.MaxRequests(), e.opts.MaxTotalCost)

	complete := true
	sinceCheckpoint := 0

	for _, rec := range records {
		if e.ledger.IsEnriched(rec.PlaceID) {
			continue
		}

		if !e.ledger.Reserve() {
			log.Printf("[Enricher] Cost ceiling reached ($%.2f), stopping", e.opts.MaxTotalCost)
			complete = false
			break
		}

		// Fixed-interval pacing before every external call
		if err := e.limiter.Wait(ctx); err != nil {
			e.ledger.Release()
			e.checkpoint(enriched, len(records), false)
			return nil, fmt.Errorf("enrichment interrupted: %w", err)
		}

		details, err := e.lookup.Details(ctx, rec.PlaceID)
		if err != nil {
			// Skip this place; the slot goes back to the budget
			log.Printf("[Enricher] Lookup failed for %s: %v", rec.PlaceID, err)
			e.ledger.Release()
			if ctx.Err() != nil {
				e.checkpoint(enriched, len(records), false)
				return nil, fmt.Errorf("enrichment interrupted: %w", ctx.Err())
			}
			continue
		}

		e.ledger.MarkEnriched(rec.PlaceID)
		enriched = append(enriched, models.EnrichedPlace{
			Record:    rec,
			Details:   *details,
			FetchTime: time.Now().Format(time.RFC3339),
		})

		if e.ledger.RequestCount()%100 == 0 {
			log.Printf("[Enricher] Requests made: %d, current cost: $%.2f",
				e.ledger.RequestCount(), e.ledger.Cost())
		}

		sinceCheckpoint++
		if sinceCheckpoint >= e.opts.CheckpointEvery {
			if err := e.checkpoint(enriched, len(records), false); err != nil {
				return nil, err
			}
			sinceCheckpoint = 0
			log.Printf("[Enricher] Progress saved: %d places processed", len(enriched))
		}
	}

	art := e.buildArtifact(enriched, len(records), complete)
	if err := e.store.WriteJSON(artifact.EnrichedPlacesFile, art); err != nil {
		return nil, err
	}

	if err := e.store.WriteJSON(artifact.PlaceStatisticsFile, Statistics(enriched)); err != nil {
		return nil, err
	}

	log.Printf("[Enricher] Done: %d places enriched, total cost $%.2f, complete=%v",
		len(enriched), e.ledger.Cost(), complete)
	return art, nil
}

// resume loads a prior checkpoint if present. Checkpoint entries whose
// placeId no longer appears upstream are stale and get dropped.
func (e *Enricher) resume(records []models.PlaceRecord) []models.EnrichedPlace {
	if !e.store.Exists(artifact.EnrichedPlacesFile) {
		return nil
	}

	var prev models.EnrichmentArtifact
	if err := e.store.ReadJSON(artifact.EnrichedPlacesFile, &prev); err != nil {
		log.Printf("[Enricher] Ignoring unreadable checkpoint: %v", err)
		return nil
	}

	current := make(map[string]bool, len(records))
	for _, r := range records {
		current[r.PlaceID] = true
	}

	var kept []models.EnrichedPlace
	var ids []string
	stale := 0
	for _, p := range prev.Places {
		if !current[p.Record.PlaceID] {
			stale++
			continue
		}
		kept = append(kept, p)
		ids = append(ids, p.Record.PlaceID)
	}
	if stale > 0 {
		log.Printf("[Enricher] Dropped %d stale checkpoint entries", stale)
	}

	e.ledger.Restore(len(kept), ids)
	return kept
}

func (e *Enricher) checkpoint(enriched []models.EnrichedPlace, total int, complete bool) error {
	return e.store.WriteJSON(artifact.EnrichedPlacesFile, e.buildArtifact(enriched, total, complete))
}

func (e *Enricher) buildArtifact(enriched []models.EnrichedPlace, total int, complete bool) *models.EnrichmentArtifact {
	if enriched == nil {
		enriched = []models.EnrichedPlace{}
	}
	return &models.EnrichmentArtifact{
		Metadata: models.EnrichmentMetadata{
			RunID:              e.opts.RunID,
			TotalProcessed:     len(enriched),
			TotalCost:          e.ledger.Cost(),
			LastUpdate:         time.Now().Format(time.RFC3339),
			TotalAvailable:     total,
			ProcessingComplete: complete,
		},
		Places: enriched,
	}
}

// Statistics summarizes category, rating and price-level distributions across
// the enriched set.
func Statistics(enriched []models.EnrichedPlace) *models.PlaceStatistics {
	types := stats.NewCounter()
	var ratings []float64
	distribution := map[string]int{"1": 0, "2": 0, "3": 0, "4": 0, "5": 0}
	priceLevels := make(map[string]int)

	for _, p := range enriched {
		types.AddAll(p.Details.Types)
		if p.Details.Rating != nil {
			r := *p.Details.Rating
			ratings = append(ratings, r)
			bucket := int(math.Round(r))
			if bucket >= 1 && bucket <= 5 {
				distribution[strconv.Itoa(bucket)]++
			}
		}
		if p.Details.PriceLevel != nil {
			priceLevels[strconv.Itoa(*p.Details.PriceLevel)]++
		}
	}

	ps := &models.PlaceStatistics{
		CommonTypes: []models.TypeCount{},
		RatingStats: models.RatingStats{
			Average:      stats.Mean(ratings),
			Count:        len(ratings),
			Distribution: distribution,
		},
		PriceLevelDistribution: priceLevels,
	}
	for _, e := range types.MostCommon(20) {
		ps.CommonTypes = append(ps.CommonTypes, models.TypeCount{Type: e.Key, Count: e.Count})
	}
	return ps
}
