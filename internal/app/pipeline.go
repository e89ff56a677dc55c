package app

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/bft-labs/adhosts/internal/domain"
	"github.com/bft-labs/adhosts/internal/ports"
	"github.com/bft-labs/adhosts/pkg/log"
)

// progressEvery is how many unique raw lines are converted between progress
// messages.
const progressEvery = 1000

// Pipeline fetches every source concurrently, then merges, deduplicates and
// converts the collected lines on the calling goroutine.
type Pipeline struct {
	fetcher     ports.Fetcher
	converter   ports.RuleConverter
	logger      log.Logger
	concurrency int
}

// NewPipeline creates a Pipeline. A concurrency of zero or less runs one
// fetch task per source with no bound.
func NewPipeline(fetcher ports.Fetcher, converter ports.RuleConverter, logger log.Logger, concurrency int) *Pipeline {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &Pipeline{
		fetcher:     fetcher,
		converter:   converter,
		logger:      logger,
		concurrency: concurrency,
	}
}

// fetchSlot is owned by exactly one fetch goroutine until the join.
type fetchSlot struct {
	rules []domain.RawRule
	stat  domain.SourceStat
}

// Aggregate runs one full fetch-merge-convert pass over sources.
//
// Fetch failures are recorded per source and never abort the run. When the
// run yields no converted entries the populated result is returned together
// with domain.ErrNoData.
func (p *Pipeline) Aggregate(ctx context.Context, sources []string) (domain.RunResult, error) {
	slots := p.fetchAll(ctx, sources)

	result := domain.RunResult{Sources: make([]domain.SourceStat, len(slots))}
	for i, s := range slots {
		result.Sources[i] = s.stat
	}

	raw := mergeUnique(slots)
	result.UniqueRaw = len(raw)

	seen := make(map[string]struct{}, len(raw))
	rejected := make(map[domain.RejectReason]int)
	for n, r := range raw {
		if n > 0 && n%progressEvery == 0 {
			p.logger.Debug("conversion progress",
				log.Int("processed", n),
				log.Int("total", len(raw)),
			)
		}

		verdict := p.converter.Convert(r.text)
		entry, ok := verdict.Entry()
		if !ok {
			rejected[verdict.Reason()]++
			continue
		}
		if _, dup := seen[entry.Domain]; dup {
			continue
		}
		seen[entry.Domain] = struct{}{}
		result.Entries = append(result.Entries, entry)
		result.Sources[r.slot].Converted++
	}
	result.UniqueConverted = len(result.Entries)

	for reason, count := range rejected {
		p.logger.Debug("rejected lines",
			log.String("reason", reason.String()),
			log.Int("count", count),
		)
	}

	p.logger.Info("aggregation complete",
		log.Int("sources", len(sources)),
		log.Int("failed", result.Failed()),
		log.Int("unique_raw", result.UniqueRaw),
		log.Int("unique_converted", result.UniqueConverted),
	)

	if result.Empty() {
		return result, domain.ErrNoData
	}
	return result, nil
}

// fetchAll launches one task per source and waits for all of them.
func (p *Pipeline) fetchAll(ctx context.Context, sources []string) []fetchSlot {
	slots := make([]fetchSlot, len(sources))

	var g errgroup.Group
	if p.concurrency > 0 {
		g.SetLimit(p.concurrency)
	}
	for i, src := range sources {
		i, src := i, src
		g.Go(func() error {
			slots[i] = p.fetchOne(ctx, src)
			return nil
		})
	}
	_ = g.Wait()

	return slots
}

func (p *Pipeline) fetchOne(ctx context.Context, source string) fetchSlot {
	logger := p.logger.With(log.String("source", source))
	start := time.Now()

	rules, err := p.fetcher.Fetch(ctx, source)
	took := time.Since(start)
	if err != nil {
		logger.Warn("fetch failed",
			log.Err(err),
			log.Duration("duration", took),
		)
		return fetchSlot{stat: domain.SourceStat{Source: source, Err: err, Duration: took}}
	}

	logger.Info("fetched source",
		log.Int("lines", len(rules)),
		log.Duration("duration", took),
	)
	return fetchSlot{
		rules: rules,
		stat:  domain.SourceStat{Source: source, Fetched: len(rules), Duration: took},
	}
}

// uniqueLine is a deduplicated raw line and the slot that first supplied it.
type uniqueLine struct {
	text string
	slot int
}

// mergeUnique flattens slots in source order then line order, keeping the
// first occurrence of every exact line.
func mergeUnique(slots []fetchSlot) []uniqueLine {
	total := 0
	for _, s := range slots {
		total += len(s.rules)
	}

	seen := make(map[string]struct{}, total)
	out := make([]uniqueLine, 0, total)
	for i, s := range slots {
		for _, r := range s.rules {
			if _, dup := seen[r.Text]; dup {
				continue
			}
			seen[r.Text] = struct{}{}
			out = append(out, uniqueLine{text: r.Text, slot: i})
		}
	}
	return out
}
