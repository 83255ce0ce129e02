package models

// DocumentModel is one corpus document. IDs come from the source corpus and
// are only unique within it. Title and text carry a FULLTEXT index, created
// in database.Connect because AutoMigrate cannot express it.
type DocumentModel struct {
	ID       string  `json:"id"    gorm:"primaryKey;size:191"`
	CorpusID uint    `json:"-"     gorm:"primaryKey;autoIncrement:false"`
	Title    *string `json:"title" gorm:"size:1024"`
	Text     string  `json:"text"  gorm:"type:longtext;not null"`
}

func (DocumentModel) TableName() string { return "documents" }
