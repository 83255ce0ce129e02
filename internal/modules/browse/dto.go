package browse

// Corpus is one corpus plus aggregate counts for the overview listing.
type Corpus struct {
	Name         string `json:"name"`
	Language     string `json:"language"`
	NumDatasets  int64  `json:"num_datasets"`
	NumDocuments int64  `json:"num_documents"`
}

// Dataset is one dataset plus its query count.
type Dataset struct {
	Name         string `json:"name"`
	CorpusName   string `json:"corpus_name"`
	MinRelevance int    `json:"min_relevance"`
	NumQueries   int64  `json:"num_queries"`
}

// Document is a single corpus document.
type Document struct {
	ID         string  `json:"id"`
	CorpusName string  `json:"corpus_name"`
	Title      *string `json:"title"`
	Text       string  `json:"text"`
}

// DocumentWithRelevance is a document judged against a specific query.
type DocumentWithRelevance struct {
	ID         string  `json:"id"`
	CorpusName string  `json:"corpus_name"`
	Title      *string `json:"title"`
	Text       string  `json:"text"`
	QueryID    string  `json:"query_id"`
	Relevance  int     `json:"relevance"`
}

// Query is a benchmark query plus the number of documents judged relevant
// under its dataset's threshold.
type Query struct {
	ID                   string  `json:"id"`
	CorpusName           string  `json:"corpus_name"`
	DatasetName          string  `json:"dataset_name"`
	Text                 string  `json:"text"`
	Description          *string `json:"description"`
	NumRelevantDocuments int64   `json:"num_relevant_documents"`
}

// RelevantQuery is a query judged relevant for a specific document.
type RelevantQuery struct {
	ID          string  `json:"id"`
	CorpusName  string  `json:"corpus_name"`
	DatasetName string  `json:"dataset_name"`
	Text        string  `json:"text"`
	Description *string `json:"description"`
	DocumentID  string  `json:"document_id"`
	Relevance   int     `json:"relevance"`
}
