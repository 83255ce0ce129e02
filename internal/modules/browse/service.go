package browse

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/irbrowse/core/internal/models"
	"github.com/irbrowse/core/internal/pkg/apperr"
	"github.com/irbrowse/core/internal/pkg/pagination"
)

// numRelevantExpr counts the documents judged relevant for a query under its
// dataset's threshold.
const numRelevantExpr = "(SELECT COUNT(*) FROM qrels WHERE qrels.query_id = queries.id" +
	" AND qrels.dataset_id = queries.dataset_id" +
	" AND qrels.relevance >= datasets.min_relevance) AS num_relevant_documents"

// Service reads the ingested corpus hierarchy. All operations are read-only;
// ingestion happens out of band.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

func (s *Service) corpusID(ctx context.Context, name string) (uint, error) {
	var corpus models.CorpusModel
	err := s.db.WithContext(ctx).Where("name = ?", name).First(&corpus).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, apperr.E(apperr.KindNotFound, "unknown corpus "+name)
	}
	if err != nil {
		return 0, err
	}
	return corpus.ID, nil
}

func (s *Service) datasetID(ctx context.Context, corpusID uint, name string) (uint, error) {
	var dataset models.DatasetModel
	err := s.db.WithContext(ctx).Where("corpus_id = ? AND name = ?", corpusID, name).First(&dataset).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, apperr.E(apperr.KindNotFound, "unknown dataset "+name)
	}
	if err != nil {
		return 0, err
	}
	return dataset.ID, nil
}

// ListCorpora returns all corpora with dataset and document counts.
func (s *Service) ListCorpora(ctx context.Context) ([]Corpus, error) {
	corpora := []Corpus{}
	err := s.db.WithContext(ctx).
		Table("corpora").
		Select("corpora.name AS name, corpora.language AS language," +
			" (SELECT COUNT(*) FROM datasets WHERE datasets.corpus_id = corpora.id) AS num_datasets," +
			" (SELECT COUNT(*) FROM documents WHERE documents.corpus_id = corpora.id) AS num_documents").
		Order("corpora.name ASC").
		Scan(&corpora).Error
	if err != nil {
		return nil, err
	}
	return corpora, nil
}

// ListDatasets returns all datasets of a corpus with query counts.
func (s *Service) ListDatasets(ctx context.Context, corpusName string) ([]Dataset, error) {
	cid, err := s.corpusID(ctx, corpusName)
	if err != nil {
		return nil, err
	}

	datasets := []Dataset{}
	err = s.db.WithContext(ctx).
		Table("datasets").
		Select("datasets.name AS name, ? AS corpus_name, datasets.min_relevance AS min_relevance,"+
			" (SELECT COUNT(*) FROM queries WHERE queries.dataset_id = datasets.id) AS num_queries", corpusName).
		Where("datasets.corpus_id = ?", cid).
		Order("datasets.name ASC").
		Scan(&datasets).Error
	if err != nil {
		return nil, err
	}
	return datasets, nil
}

// PageDocuments windows the documents of a corpus. The match filter applies
// to the document title.
func (s *Service) PageDocuments(ctx context.Context, corpusName string, p pagination.Params) (pagination.Paginated[Document], error) {
	cid, err := s.corpusID(ctx, corpusName)
	if err != nil {
		return pagination.Paginated[Document]{}, err
	}

	src := pagination.GormSource[Document]{
		Query: func() *gorm.DB {
			return s.db.WithContext(ctx).
				Table("documents").
				Select("documents.id AS id, ? AS corpus_name, documents.title AS title, documents.text AS text", corpusName).
				Where("documents.corpus_id = ?", cid)
		},
		MatchColumn: "documents.title",
		TieBreak:    "documents.id",
	}
	sort := pagination.SortSpec{
		Default: "documents.id",
		Fields: map[string]string{
			"id":    "documents.id",
			"title": "documents.title",
		},
	}
	return pagination.Page[Document](src, sort, p)
}

// PageQueries windows the queries of a corpus, optionally restricted to one
// dataset. The match filter applies to the query text.
func (s *Service) PageQueries(ctx context.Context, corpusName, datasetName string, p pagination.Params) (pagination.Paginated[Query], error) {
	cid, err := s.corpusID(ctx, corpusName)
	if err != nil {
		return pagination.Paginated[Query]{}, err
	}
	if datasetName != "" {
		if _, err := s.datasetID(ctx, cid, datasetName); err != nil {
			return pagination.Paginated[Query]{}, err
		}
	}

	src := pagination.GormSource[Query]{
		Query: func() *gorm.DB {
			tx := s.db.WithContext(ctx).
				Table("queries").
				Select("queries.id AS id, ? AS corpus_name, datasets.name AS dataset_name,"+
					" queries.text AS text, queries.description AS description, "+numRelevantExpr, corpusName).
				Joins("JOIN datasets ON datasets.id = queries.dataset_id").
				Where("datasets.corpus_id = ?", cid)
			if datasetName != "" {
				tx = tx.Where("datasets.name = ?", datasetName)
			}
			return tx
		},
		MatchColumn: "queries.text",
		TieBreak:    "queries.id",
	}
	sort := pagination.SortSpec{
		Default: "queries.id",
		Fields: map[string]string{
			"id":   "queries.id",
			"text": "queries.text",
		},
	}
	return pagination.Page[Query](src, sort, p)
}

// PageRelevantQueries windows the queries judged relevant for a document,
// across all datasets of the corpus.
func (s *Service) PageRelevantQueries(ctx context.Context, corpusName, documentID string, p pagination.Params) (pagination.Paginated[RelevantQuery], error) {
	cid, err := s.corpusID(ctx, corpusName)
	if err != nil {
		return pagination.Paginated[RelevantQuery]{}, err
	}
	if err := s.ensureDocument(ctx, cid, documentID); err != nil {
		return pagination.Paginated[RelevantQuery]{}, err
	}

	src := pagination.GormSource[RelevantQuery]{
		Query: func() *gorm.DB {
			return s.db.WithContext(ctx).
				Table("qrels").
				Select("queries.id AS id, ? AS corpus_name, datasets.name AS dataset_name,"+
					" queries.text AS text, queries.description AS description,"+
					" qrels.document_id AS document_id, qrels.relevance AS relevance", corpusName).
				Joins("JOIN datasets ON datasets.id = qrels.dataset_id").
				Joins("JOIN queries ON queries.id = qrels.query_id AND queries.dataset_id = qrels.dataset_id").
				Where("qrels.corpus_id = ? AND qrels.document_id = ?", cid, documentID).
				Where("qrels.relevance >= datasets.min_relevance")
		},
		MatchColumn: "queries.text",
		TieBreak:    "queries.id",
	}
	sort := pagination.SortSpec{
		Default: "qrels.relevance",
		Fields: map[string]string{
			"id":        "queries.id",
			"relevance": "qrels.relevance",
		},
	}
	return pagination.Page[RelevantQuery](src, sort, p)
}

// PageRelevantDocuments windows the documents judged relevant for a query.
func (s *Service) PageRelevantDocuments(ctx context.Context, corpusName, datasetName, queryID string, p pagination.Params) (pagination.Paginated[DocumentWithRelevance], error) {
	cid, err := s.corpusID(ctx, corpusName)
	if err != nil {
		return pagination.Paginated[DocumentWithRelevance]{}, err
	}
	did, err := s.datasetID(ctx, cid, datasetName)
	if err != nil {
		return pagination.Paginated[DocumentWithRelevance]{}, err
	}

	src := pagination.GormSource[DocumentWithRelevance]{
		Query: func() *gorm.DB {
			return s.db.WithContext(ctx).
				Table("qrels").
				Select("documents.id AS id, ? AS corpus_name, documents.title AS title, documents.text AS text,"+
					" qrels.query_id AS query_id, qrels.relevance AS relevance", corpusName).
				Joins("JOIN datasets ON datasets.id = qrels.dataset_id").
				Joins("JOIN documents ON documents.id = qrels.document_id AND documents.corpus_id = qrels.corpus_id").
				Where("qrels.dataset_id = ? AND qrels.query_id = ?", did, queryID).
				Where("qrels.relevance >= datasets.min_relevance")
		},
		MatchColumn: "documents.title",
		TieBreak:    "documents.id",
	}
	sort := pagination.SortSpec{
		Default: "qrels.relevance",
		Fields: map[string]string{
			"id":        "documents.id",
			"relevance": "qrels.relevance",
		},
	}
	return pagination.Page[DocumentWithRelevance](src, sort, p)
}

// GetDocument returns a single document by corpus and id.
func (s *Service) GetDocument(ctx context.Context, corpusName, documentID string) (*Document, error) {
	cid, err := s.corpusID(ctx, corpusName)
	if err != nil {
		return nil, err
	}

	var doc models.DocumentModel
	err = s.db.WithContext(ctx).
		Where("corpus_id = ? AND id = ?", cid, documentID).
		First(&doc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.E(apperr.KindNotFound, "unknown document "+documentID)
	}
	if err != nil {
		return nil, err
	}
	return &Document{ID: doc.ID, CorpusName: corpusName, Title: doc.Title, Text: doc.Text}, nil
}

// GetQuery returns a single query by corpus, dataset and id.
func (s *Service) GetQuery(ctx context.Context, corpusName, datasetName, queryID string) (*Query, error) {
	cid, err := s.corpusID(ctx, corpusName)
	if err != nil {
		return nil, err
	}
	did, err := s.datasetID(ctx, cid, datasetName)
	if err != nil {
		return nil, err
	}

	var rows []Query
	err = s.db.WithContext(ctx).
		Table("queries").
		Select("queries.id AS id, ? AS corpus_name, datasets.name AS dataset_name,"+
			" queries.text AS text, queries.description AS description, "+numRelevantExpr, corpusName).
		Joins("JOIN datasets ON datasets.id = queries.dataset_id").
		Where("queries.dataset_id = ? AND queries.id = ?", did, queryID).
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, apperr.E(apperr.KindNotFound, "unknown query "+queryID)
	}
	return &rows[0], nil
}

// DocumentText returns only the text of a document. Used by the summary cache
// so generation does not drag full DTOs around.
func (s *Service) DocumentText(ctx context.Context, corpusName, documentID string) (string, error) {
	doc, err := s.GetDocument(ctx, corpusName, documentID)
	if err != nil {
		return "", err
	}
	return doc.Text, nil
}

func (s *Service) ensureDocument(ctx context.Context, corpusID uint, documentID string) error {
	var n int64
	err := s.db.WithContext(ctx).
		Model(&models.DocumentModel{}).
		Where("corpus_id = ? AND id = ?", corpusID, documentID).
		Count(&n).Error
	if err != nil {
		return err
	}
	if n == 0 {
		return apperr.E(apperr.KindNotFound, "unknown document "+documentID)
	}
	return nil
}
