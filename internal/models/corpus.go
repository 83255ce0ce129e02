package models

// CorpusModel is a named collection of documents in one language. Corpora are
// ingested out of band and read-only for this service.
type CorpusModel struct {
	ID       uint   `json:"-"        gorm:"primaryKey"`
	Name     string `json:"name"     gorm:"uniqueIndex;size:191;not null"`
	Language string `json:"language" gorm:"size:64;not null"`
}

func (CorpusModel) TableName() string { return "corpora" }
