package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/metalscrape/backend/internal/domain"
	"github.com/metalscrape/backend/internal/platform/logger"
	"golang.org/x/sync/errgroup"
)

// IngestTarget is one vendor listing page to collect
type IngestTarget struct {
	Key domain.BundleKey
	URL string
}

// IngestionConfig holds configuration for the ingestion service
type IngestionConfig struct {
	Workers int
	Limit   int // max variations priced per category; 0 means all
}

// IngestionService scrapes category listings, prices every length and stores the bundle
type IngestionService struct {
	vendor  domain.VendorClient
	pricing *PricingService
	store   domain.CatalogStore
	workers int
	limit   int
	log     *logger.Logger
}

type priceJob struct {
	product *domain.ProductInfo
	length  string
}

// NewIngestionService creates a new ingestion service with dependencies
func NewIngestionService(
	vendor domain.VendorClient,
	pricing *PricingService,
	store domain.CatalogStore,
	config IngestionConfig,
	log *logger.Logger,
) *IngestionService {
	workers := config.Workers
	if workers < 1 {
		workers = 1
	}
	return &IngestionService{
		vendor:  vendor,
		pricing: pricing,
		store:   store,
		workers: workers,
		limit:   config.Limit,
		log:     log.With("component", "IngestionService"),
	}
}

// IngestCategory collects and stores one category.
// Variations are ordered by product, then by length.
func (s *IngestionService) IngestCategory(ctx context.Context, target IngestTarget) (*domain.ProductBundle, error) {
	products, err := s.vendor.ScrapeProducts(ctx, target.URL)
	if err != nil {
		return nil, fmt.Errorf("scrape %s/%s: %w", target.Key.Material, target.Key.Shape, err)
	}

	jobs := priceJobs(products)
	if s.limit > 0 && len(jobs) > s.limit {
		jobs = jobs[:s.limit]
	}

	variations := make([]domain.ProductVariation, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, job := range jobs {
		g.Go(func() error {
			variation, err := s.pricing.Quote(gctx, job.product, job.length)
			if err != nil {
				return fmt.Errorf("price %s at %s ft: %w", job.product.ProductID, job.length, err)
			}
			variations[i] = *variation
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	bundle := &domain.ProductBundle{Products: products, Variations: variations}
	if err := s.store.Save(ctx, target.Key, bundle); err != nil {
		return nil, fmt.Errorf("save %s/%s: %w", target.Key.Material, target.Key.Shape, err)
	}
	return bundle, nil
}

// IngestAll collects every target in order. A failed category is logged and
// skipped; the failures are returned together once all targets were attempted.
func (s *IngestionService) IngestAll(ctx context.Context, targets []IngestTarget) error {
	var errs []error
	for i, target := range targets {
		if err := ctx.Err(); err != nil {
			return errors.Join(append(errs, err)...)
		}

		bundle, err := s.IngestCategory(ctx, target)
		if err != nil {
			s.log.Error("Failed to ingest category",
				"material", target.Key.Material, "shape", target.Key.Shape, "error", err)
			errs = append(errs, err)
			continue
		}

		s.log.Info(fmt.Sprintf("Saved %d out of %d", i+1, len(targets)),
			"material", target.Key.Material,
			"shape", target.Key.Shape,
			"products", len(bundle.Products),
			"variations", len(bundle.Variations))
	}
	return errors.Join(errs...)
}

// priceJobs lists every (product, length) pair, lengths in ascending numeric order
func priceJobs(products []domain.ProductInfo) []priceJob {
	var jobs []priceJob
	for i := range products {
		product := &products[i]
		for _, length := range sortedLengths(product.LengthSKUIDs) {
			jobs = append(jobs, priceJob{product: product, length: length})
		}
	}
	return jobs
}

func sortedLengths(lengthSKUIDs map[string]string) []string {
	lengths := make([]string, 0, len(lengthSKUIDs))
	for length := range lengthSKUIDs {
		lengths = append(lengths, length)
	}
	sort.Slice(lengths, func(i, j int) bool {
		a, errA := strconv.Atoi(lengths[i])
		b, errB := strconv.Atoi(lengths[j])
		switch {
		case errA == nil && errB == nil:
			return a < b
		case errA == nil:
			return true
		case errB == nil:
			return false
		default:
			return lengths[i] < lengths[j]
		}
	})
	return lengths
}
