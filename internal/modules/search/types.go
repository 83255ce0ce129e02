package search

import "context"

// Request describes one ranked retrieval call.
type Request struct {
	// Query is the user's free-text query.
	Query string
	// Language selects the query analyzer. Unsupported or empty values fall
	// back to the default analyzer, never an error.
	Language string
	// CorpusNames restricts the search; empty means all corpora.
	CorpusNames []string
	Limit       int
	Offset      int
}

// Hit is one scored search result.
type Hit struct {
	Score      float64 `json:"score"`
	ID         string  `json:"id"`
	Title      *string `json:"title"`
	Snippet    string  `json:"snippet"`
	CorpusName string  `json:"corpus_name"`
}

// Result is a ranked, windowed hit list. TotalMatches counts every matching
// document regardless of Limit/Offset.
type Result struct {
	Hits         []Hit `json:"items"`
	TotalMatches int64 `json:"total_count"`
	Offset       int   `json:"offset"`
}

// Engine is the ranked-retrieval capability the handler depends on.
type Engine interface {
	Search(ctx context.Context, req Request) (*Result, error)
}
