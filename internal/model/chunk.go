package model

// Chunk type tags for the retrieval corpus.
const (
	ChunkTypeLegal      = "legal"
	ChunkTypeEmployee   = "employee"
	ChunkTypeRegulation = "regulation"
)

// ChunkMetadata describes where a corpus chunk came from.
type ChunkMetadata struct {
	Source        string `json:"source"`
	Type          string `json:"type"`
	ArticleNumber string `json:"articleNumber,omitempty"`
	Title         string `json:"title,omitempty"`
	Context       string `json:"context,omitempty"`
}

// Chunk is one retrieval unit of the corpus. The corpus is rebuilt wholesale
// on initialization; chunks are never mutated per query. Score is a transient
// per-query annotation on copies returned from search.
type Chunk struct {
	ID       string        `json:"id"`
	Content  string        `json:"content"`
	Metadata ChunkMetadata `json:"metadata"`
	Score    float64       `json:"score,omitempty"`
}
