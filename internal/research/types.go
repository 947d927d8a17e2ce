package research

import "context"

// Source is one ranked research source produced by a research pass.
// Immutable once created.
type Source struct {
	// URL is the page the content was extracted from.
	URL string `json:"url"`

	// Title is the search hit title the relevance score was computed from.
	Title string `json:"title"`

	// Content is the cleaned page text, truncated to MaxContentLength.
	Content string `json:"content"`

	// RelevanceScore is the Jaccard overlap between Title and the topic,
	// in [0,1]. Sources are ordered by this, descending.
	RelevanceScore float64 `json:"relevanceScore"`
}

// SearchHit is a raw search result before extraction and scoring.
type SearchHit struct {
	URL   string
	Title string
}

// SearchProvider issues a text search for a topic. Implementations may fail
// with network or rate-limit errors; the Researcher degrades those to an
// empty result set.
type SearchProvider interface {
	Search(ctx context.Context, query string, maxResults int) ([]SearchHit, error)
}
