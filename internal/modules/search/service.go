package search

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/irbrowse/core/internal/pkg/apperr"
	"github.com/irbrowse/core/internal/pkg/pagination"
)

const matchExpr = "MATCH(documents.title, documents.text) AGAINST (? IN NATURAL LANGUAGE MODE)"

// Service ranks documents with the MySQL FULLTEXT index. Relevance order is
// made deterministic by breaking score ties on (corpus, document id).
type Service struct {
	db         *gorm.DB
	snippetLen int
}

func NewService(db *gorm.DB, snippetLen int) *Service {
	return &Service{db: db, snippetLen: snippetLen}
}

type hitRow struct {
	ID         string
	Title      *string
	Text       string
	CorpusName string
	Score      float64
}

func (s *Service) Search(ctx context.Context, req Request) (*Result, error) {
	tokens := Analyze(req.Query, req.Language)
	if len(tokens) == 0 {
		return nil, apperr.E(apperr.KindInvalidQuery, "query contains no searchable terms")
	}
	match := strings.Join(tokens, " ")

	if req.Limit < 1 {
		req.Limit = pagination.DefaultSize
	}
	if req.Limit > pagination.MaxSize {
		req.Limit = pagination.MaxSize
	}
	if req.Offset < 0 {
		req.Offset = 0
	}

	countSQL, countArgs, pageSQL, pageArgs := buildSearchSQL(match, req.CorpusNames, req.Limit, req.Offset)

	var total int64
	if err := s.db.WithContext(ctx).Raw(countSQL, countArgs...).Scan(&total).Error; err != nil {
		return nil, apperr.Wrap(apperr.KindSearchUnavailable, "search engine unavailable", err)
	}

	hits := []Hit{}
	if int64(req.Offset) < total {
		var rows []hitRow
		if err := s.db.WithContext(ctx).Raw(pageSQL, pageArgs...).Scan(&rows).Error; err != nil {
			return nil, apperr.Wrap(apperr.KindSearchUnavailable, "search engine unavailable", err)
		}
		for _, row := range rows {
			hits = append(hits, Hit{
				Score:      row.Score,
				ID:         row.ID,
				Title:      row.Title,
				Snippet:    buildSnippet(row.Text, tokens, s.snippetLen),
				CorpusName: row.CorpusName,
			})
		}
	}

	return &Result{Hits: hits, TotalMatches: total, Offset: req.Offset}, nil
}

// buildSearchSQL assembles the count and page queries for one retrieval call.
// The page query orders by score descending with a stable (corpus, id)
// tie-break so identical requests return identical windows.
func buildSearchSQL(match string, corpora []string, limit, offset int) (countSQL string, countArgs []interface{}, pageSQL string, pageArgs []interface{}) {
	where := "WHERE " + matchExpr
	countArgs = []interface{}{match}
	pageArgs = []interface{}{match, match}
	if len(corpora) > 0 {
		where += " AND corpora.name IN ?"
		countArgs = append(countArgs, corpora)
		pageArgs = append(pageArgs, corpora)
	}

	base := "FROM documents JOIN corpora ON corpora.id = documents.corpus_id " + where

	countSQL = "SELECT COUNT(*) " + base
	pageSQL = "SELECT documents.id AS id, documents.title AS title, documents.text AS text, " +
		"corpora.name AS corpus_name, " + matchExpr + " AS score " +
		base +
		" ORDER BY score DESC, corpora.name ASC, documents.id ASC LIMIT ? OFFSET ?"
	pageArgs = append(pageArgs, limit, offset)
	return countSQL, countArgs, pageSQL, pageArgs
}
