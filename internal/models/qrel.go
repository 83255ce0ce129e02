package models

// QRelModel is a human relevance judgment linking a query to a document
// within a dataset.
type QRelModel struct {
	QueryID    string `json:"query_id"    gorm:"primaryKey;size:191"`
	DatasetID  uint   `json:"-"           gorm:"primaryKey;autoIncrement:false"`
	DocumentID string `json:"document_id" gorm:"primaryKey;size:191"`
	CorpusID   uint   `json:"-"           gorm:"index;not null"`
	Relevance  int    `json:"relevance"   gorm:"not null"`
}

func (QRelModel) TableName() string { return "qrels" }
