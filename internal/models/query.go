package models

// QueryModel is a benchmark query. IDs come from the source dataset and are
// only unique within it.
type QueryModel struct {
	ID          string  `json:"id"          gorm:"primaryKey;size:191"`
	DatasetID   uint    `json:"-"           gorm:"primaryKey;autoIncrement:false"`
	Text        string  `json:"text"        gorm:"type:text;not null"`
	Description *string `json:"description" gorm:"type:text"`
}

func (QueryModel) TableName() string { return "queries" }
