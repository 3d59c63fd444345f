package seeder

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/codetrail/codetrail-backend/internal/app/seeder/contentfile"
	"github.com/codetrail/codetrail-backend/internal/domain"
)

// bootstrapCategories is the canonical catalog taxonomy. Content
// directories must use one of these slugs as their top-level segment.
var bootstrapCategories = []domain.Category{
	{Slug: "frontend", Name: "Frontend", Description: "Browser-side development: UI frameworks, routing, state.", Icon: "layout", OrderIndex: 1},
	{Slug: "backend", Name: "Backend", Description: "Server-side development: APIs, services, concurrency.", Icon: "server", OrderIndex: 2},
	{Slug: "databases", Name: "Databases", Description: "Data modeling, SQL, and storage engines.", Icon: "database", OrderIndex: 3},
	{Slug: "devops", Name: "DevOps", Description: "Delivery pipelines, containers, and operations.", Icon: "settings", OrderIndex: 4},
}

// Summary reports what one run did. The seeder binary prints it to stdout.
type Summary struct {
	Categories    int
	Topics        int
	Lessons       int
	Examples      int
	Questions     int
	SkippedDirs   int
	RemovedTopics int
	DryRun        bool
	Duration      time.Duration
	Warnings      []string
}

// Pipeline runs the walk, parse, normalize, upsert sequence. All database
// writes of one run happen in a single transaction, so a failing module
// leaves the catalog exactly as it was.
type Pipeline struct {
	log  *slog.Logger
	tx   TxRunner
	repo CatalogSeedRepo
	cfg  Config
}

// NewPipeline creates a Pipeline.
func NewPipeline(log *slog.Logger, tx TxRunner, repo CatalogSeedRepo, cfg Config) *Pipeline {
	return &Pipeline{log: log, tx: tx, repo: repo, cfg: cfg}
}

// Run executes one seeding pass over the content root.
func (p *Pipeline) Run(ctx context.Context) (*Summary, error) {
	start := time.Now()

	if err := p.cfg.Validate(); err != nil {
		return nil, err
	}

	walked, err := WalkContentRoot(p.cfg.ContentRoot)
	if err != nil {
		return nil, err
	}
	p.log.Info("content tree walked",
		slog.Int("modules", len(walked.Modules)),
		slog.Int("skipped", len(walked.Skipped)),
	)

	summary := &Summary{
		SkippedDirs: len(walked.Skipped),
		DryRun:      p.cfg.DryRun,
	}
	for _, dir := range walked.Skipped {
		p.warn(summary, fmt.Sprintf("%s: no %s, directory skipped", dir, contentfile.ContentFileName))
	}

	modules, err := p.loadModules(walked.Modules, summary)
	if err != nil {
		return nil, err
	}

	for _, nm := range modules {
		summary.Topics++
		for _, l := range nm.Topic.Lessons {
			summary.Lessons++
			summary.Examples += len(l.Examples)
			summary.Questions += len(l.Questions)
		}
	}
	summary.Categories = len(bootstrapCategories)

	if p.cfg.DryRun {
		p.log.Info("dry run, skipping writes", slog.Int("topics", summary.Topics))
		summary.Duration = time.Since(start)
		return summary, nil
	}

	err = p.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := p.repo.UpsertCategories(ctx, bootstrapCategories); err != nil {
			return fmt.Errorf("upsert categories: %w", err)
		}

		keep := make([]string, 0, len(modules))
		for _, nm := range modules {
			topicID, err := p.repo.UpsertTopic(ctx, nm.CategorySlug, nm.Topic)
			if err != nil {
				return fmt.Errorf("upsert topic %s: %w", nm.Topic.Slug, err)
			}
			counts, err := p.repo.ReplaceLessons(ctx, topicID, nm.Topic.Lessons)
			if err != nil {
				return fmt.Errorf("replace lessons of %s: %w", nm.Topic.Slug, err)
			}
			if counts.Lessons != len(nm.Topic.Lessons) {
				return fmt.Errorf("topic %s: wrote %d of %d lessons", nm.Topic.Slug, counts.Lessons, len(nm.Topic.Lessons))
			}
			keep = append(keep, nm.Topic.Slug)

			p.log.Debug("topic seeded",
				slog.String("topic", nm.Topic.Slug),
				slog.Int("lessons", counts.Lessons),
				slog.Int("examples", counts.Examples),
				slog.Int("questions", counts.Questions),
			)
		}

		if p.cfg.FullClear {
			removed, err := p.repo.DeleteTopicsNotIn(ctx, keep)
			if err != nil {
				return fmt.Errorf("delete stale topics: %w", err)
			}
			summary.RemovedTopics = removed
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	summary.Duration = time.Since(start)
	p.log.Info("seed completed",
		slog.Int("topics", summary.Topics),
		slog.Int("lessons", summary.Lessons),
		slog.Int("removed_topics", summary.RemovedTopics),
		slog.Duration("duration", summary.Duration),
	)
	return summary, nil
}

// warn logs a non-fatal finding the moment it is found and records it on
// the summary. Logging first keeps the finding visible even when a later
// module fails the whole run.
func (p *Pipeline) warn(summary *Summary, msg string) {
	p.log.Warn(msg)
	summary.Warnings = append(summary.Warnings, msg)
}

// loadModules parses and normalizes every discovered module, failing fast
// before any write can happen. Topic slugs must be unique across the whole
// tree; the database upsert keys on them and would otherwise silently merge
// two directories into one topic.
func (p *Pipeline) loadModules(refs []ModuleRef, summary *Summary) ([]*NormalizedModule, error) {
	known := make(map[string]struct{}, len(bootstrapCategories))
	for _, c := range bootstrapCategories {
		known[c.Slug] = struct{}{}
	}

	seenSlug := make(map[string]string, len(refs))
	modules := make([]*NormalizedModule, 0, len(refs))

	for _, ref := range refs {
		if _, ok := known[ref.CategorySlug]; !ok {
			p.warn(summary, fmt.Sprintf("%s: unknown category %q, directory skipped", ref.Dir, ref.CategorySlug))
			summary.SkippedDirs++
			continue
		}

		parsed, err := contentfile.ParseDir(ref.Dir)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ref.Dir, err)
		}
		nm, err := Normalize(ref, parsed)
		if err != nil {
			return nil, err
		}

		if other, dup := seenSlug[nm.Topic.Slug]; dup {
			return nil, domain.NewValidationError(ref.Dir, "topic.slug",
				fmt.Sprintf("slug %q already used by %s", nm.Topic.Slug, other))
		}
		seenSlug[nm.Topic.Slug] = ref.Dir

		for _, w := range nm.Warnings {
			p.warn(summary, w)
		}
		modules = append(modules, nm)
	}
	return modules, nil
}
