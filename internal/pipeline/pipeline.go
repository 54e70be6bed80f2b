package pipeline

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/jengzang/placewalk-go/internal/artifact"
	"github.com/jengzang/placewalk-go/internal/cluster"
	"github.com/jengzang/placewalk-go/internal/config"
	"github.com/jengzang/placewalk-go/internal/enrich"
	"github.com/jengzang/placewalk-go/internal/models"
	"github.com/jengzang/placewalk-go/internal/places"
	"github.com/jengzang/placewalk-go/internal/projection"
	"github.com/jengzang/placewalk-go/internal/timeline"
)

// Pipeline 按顺序执行各阶段：提取 → 详情查询 → 视图投影 → 空间聚类
// Each stage reads its predecessor's artifact off disk, so stages can also
// run individually across process restarts.
type Pipeline struct {
	cfg    *config.Config
	store  *artifact.Store
	lookup places.Lookup
	runID  string
}

// New creates a pipeline over the configured data directory
func New(cfg *config.Config, lookup places.Lookup) *Pipeline {
	return &Pipeline{
		cfg:    cfg,
		store:  artifact.NewStore(cfg.DataDir),
		lookup: lookup,
		runID:  uuid.NewString(),
	}
}

// Store exposes the underlying artifact store
func (p *Pipeline) Store() *artifact.Store {
	return p.store
}

// Extract parses the timeline export and writes the extraction artifact
func (p *Pipeline) Extract() (*models.ExtractionArtifact, error) {
	f, err := os.Open(p.cfg.Extract.Input)
	if err != nil {
		return nil, fmt.Errorf("failed to open export: %w", err)
	}
	defer f.Close()

	ext, err := timeline.Parse(f)
	if err != nil {
		return nil, err
	}
	if ext.BadLocations > 0 {
		log.Printf("[Extract] %d locations could not be parsed and were dropped", ext.BadLocations)
	}

	visits := ext.Visits
	if visits == nil {
		visits = []models.Visit{}
	}
	activities := ext.Activities
	if activities == nil {
		activities = []models.Activity{}
	}

	art := &models.ExtractionArtifact{
		Metadata: models.ExtractionMetadata{
			RunID:               p.runID,
			TotalSegments:       ext.TotalSegments,
			TotalVisits:         len(visits),
			TotalActivities:     len(activities),
			ExtractionTimestamp: time.Now().Format(time.RFC3339),
		},
		Visits:     visits,
		Activities: activities,
	}

	if err := p.store.WriteJSON(artifact.ExtractedTimelineFile, art); err != nil {
		return nil, err
	}

	log.Printf("[Extract] %d segments: %d visits, %d activities",
		art.Metadata.TotalSegments, art.Metadata.TotalVisits, art.Metadata.TotalActivities)
	return art, nil
}

// Enrich resolves deduplicated place candidates under the cost ceiling
func (p *Pipeline) Enrich(ctx context.Context) (*models.EnrichmentArtifact, error) {
	var ext models.ExtractionArtifact
	if err := p.store.ReadJSON(artifact.ExtractedTimelineFile, &ext); err != nil {
		return nil, err
	}

	records := timeline.Candidates(ext.Visits)
	log.Printf("[Enrich] %d unique place candidates from %d visits", len(records), len(ext.Visits))

	e := enrich.New(p.lookup, p.store, enrich.Options{
		CostPerRequest:    p.cfg.Enrich.CostPerRequest,
		MaxTotalCost:      p.cfg.Enrich.MaxTotalCost,
		RequestsPerSecond: p.cfg.Enrich.RequestsPerSecond,
		CheckpointEvery:   p.cfg.Enrich.CheckpointEvery,
		RunID:             p.runID,
	})
	return e.Run(ctx, records)
}

// Project writes the minimal and temporal views of the enriched set
func (p *Pipeline) Project() error {
	var enriched models.EnrichmentArtifact
	if err := p.store.ReadJSON(artifact.EnrichedPlacesFile, &enriched); err != nil {
		return err
	}

	now := time.Now().Format(time.RFC3339)

	minimal := projection.MinimalArtifact{
		Metadata: projection.Metadata{
			RunID:       p.runID,
			Profile:     projection.ProfileMinimal,
			TotalPlaces: len(enriched.Places),
			ProjectedAt: now,
		},
		Places: projection.Minimal(enriched.Places),
	}
	if err := p.store.WriteJSON(artifact.MinimalPlacesFile, minimal); err != nil {
		return err
	}

	temporal := projection.TemporalArtifact{
		Metadata: projection.Metadata{
			RunID:       p.runID,
			Profile:     projection.ProfileTemporal,
			TotalPlaces: len(enriched.Places),
			ProjectedAt: now,
		},
		Places: projection.Temporal(enriched.Places),
	}
	if err := p.store.WriteJSON(artifact.TemporalPlacesFile, temporal); err != nil {
		return err
	}

	log.Printf("[Project] %d places projected (minimal, temporal)", len(enriched.Places))
	return nil
}

// Cluster runs density clustering over the enriched coordinates and writes
// the cluster report
func (p *Pipeline) Cluster() (*models.ClusterReport, error) {
	var enriched models.EnrichmentArtifact
	if err := p.store.ReadJSON(artifact.EnrichedPlacesFile, &enriched); err != nil {
		return nil, err
	}

	res := cluster.Analyze(enriched.Places, cluster.Options{
		RadiusKm:  p.cfg.Cluster.RadiusKilometers,
		MinPoints: p.cfg.Cluster.MinPoints,
	})

	if err := p.store.WriteJSON(artifact.ClusterStatisticsFile, res.Report); err != nil {
		return nil, err
	}
	return res.Report, nil
}

// Run executes every stage in order
func (p *Pipeline) Run(ctx context.Context) error {
	if _, err := p.Extract(); err != nil {
		return fmt.Errorf("extract stage failed: %w", err)
	}
	if _, err := p.Enrich(ctx); err != nil {
		return fmt.Errorf("enrich stage failed: %w", err)
	}
	if err := p.Project(); err != nil {
		return fmt.Errorf("project stage failed: %w", err)
	}
	if _, err := p.Cluster(); err != nil {
		return fmt.Errorf("cluster stage failed: %w", err)
	}

	log.Printf("[Pipeline] Run %s complete, artifacts in %s", p.runID, p.cfg.DataDir)
	return nil
}
