package research

import (
	"context"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DefaultMaxSources is the number of sources a research pass keeps when the
// caller does not ask for a specific count.
const DefaultMaxSources = 5

// maxFetchConcurrency limits concurrent page extractions in one pass.
const maxFetchConcurrency = 5

// Researcher gathers and ranks sources for a topic: one search, concurrent
// extraction of every hit, relevance scoring, and a deterministic ranking.
type Researcher struct {
	search    SearchProvider
	extractor *Extractor
	log       *zap.Logger
}

// NewResearcher creates a Researcher. A nil logger is replaced with a no-op
// logger.
func NewResearcher(search SearchProvider, extractor *Extractor, log *zap.Logger) *Researcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Researcher{search: search, extractor: extractor, log: log}
}

// Research returns up to maxSources sources for the topic, ranked by
// relevance score descending. A failed search, like a pass where every page
// yields no content, degrades to an empty slice — never an error.
func (r *Researcher) Research(ctx context.Context, topic string, maxSources int) []Source {
	if maxSources <= 0 {
		maxSources = DefaultMaxSources
	}

	hits, err := r.search.Search(ctx, topic, maxSources)
	if err != nil {
		r.log.Warn("research: search failed, continuing without sources",
			zap.String("topic", topic), zap.Error(err))
		return nil
	}
	if len(hits) == 0 {
		r.log.Info("research: no search hits", zap.String("topic", topic))
		return nil
	}

	// Fan out extraction over all hits. A hit whose page cannot be fetched
	// or parsed simply contributes no content; it must not abort the rest.
	contents := make([]string, len(hits))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxFetchConcurrency)
	for i, hit := range hits {
		g.Go(func() error {
			contents[i] = r.extractor.Extract(gctx, hit.URL)
			return nil
		})
	}
	g.Wait() //nolint:errcheck // tasks never return errors

	sources := make([]Source, 0, len(hits))
	for i, hit := range hits {
		if contents[i] == "" {
			continue
		}
		sources = append(sources, Source{
			URL:            hit.URL,
			Title:          hit.Title,
			Content:        contents[i],
			RelevanceScore: Relevance(hit.Title, topic),
		})
	}

	// Completion order varies; the sort makes the final ordering
	// reproducible.
	sort.SliceStable(sources, func(i, j int) bool {
		if sources[i].RelevanceScore != sources[j].RelevanceScore {
			return sources[i].RelevanceScore > sources[j].RelevanceScore
		}
		return sources[i].URL < sources[j].URL
	})

	if len(sources) > maxSources {
		sources = sources[:maxSources]
	}

	r.log.Info("research complete",
		zap.String("topic", topic),
		zap.Int("hits", len(hits)),
		zap.Int("sources", len(sources)))

	return sources
}
