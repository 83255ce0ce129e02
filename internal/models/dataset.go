package models

// DatasetModel groups benchmark queries and relevance judgments for a corpus.
// MinRelevance is the judgment threshold below which a document does not
// count as relevant for this dataset.
type DatasetModel struct {
	ID           uint   `json:"-"             gorm:"primaryKey"`
	Name         string `json:"name"          gorm:"uniqueIndex:idx_datasets_corpus_name;size:191;not null"`
	CorpusID     uint   `json:"-"             gorm:"uniqueIndex:idx_datasets_corpus_name;index;not null"`
	MinRelevance int    `json:"min_relevance" gorm:"not null"`
}

func (DatasetModel) TableName() string { return "datasets" }
