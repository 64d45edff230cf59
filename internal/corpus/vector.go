package corpus

import (
	"math"
	"sort"
	"strings"

	"hr-assistant/internal/model"
)

const (
	vectorDim = 1536
	// bucketCap limits how much repeated words can inflate one bucket.
	bucketCap = 3.0
)

// keywordWeights boosts domain terms when building the pseudo-embedding.
// Unlisted words get weight 1.0.
var keywordWeights = map[string]float64{
	"근로기준법": 3.0, "법률": 2.5, "법령": 2.5, "조문": 2.0, "조항": 2.0,
	"임금": 2.0, "근무시간": 2.0, "휴가": 2.0, "연차": 2.0, "휴일": 2.0,

	"인사규정": 3.0, "사내규정": 2.5, "부속규정": 2.5, "회사규정": 2.5,
	"출장비": 2.0, "재택근무": 2.0, "교육훈련": 2.0, "복리후생": 2.0,

	"직원": 1.5, "사원": 1.5, "대리": 1.5, "과장": 1.5, "차장": 1.5,
	"부장": 1.5, "이사": 1.5, "개발팀": 1.5, "기획팀": 1.5, "인사팀": 1.5,

	"규정": 1.0, "지침": 1.0, "가이드라인": 1.0, "정책": 1.0,
}

// pseudoEmbed maps text to a deterministic 1536-dimensional vector by
// hashing each word into a bucket and adding its keyword weight. This is a
// stand-in scoring function, not an embedding model; only relative cosine
// ordering between texts sharing vocabulary is meaningful.
func pseudoEmbed(text string) []float64 {
	vector := make([]float64, vectorDim)
	for _, word := range strings.Fields(strings.ToLower(text)) {
		weight, ok := keywordWeights[word]
		if !ok {
			weight = 1.0
		}
		idx := hashBucket(word)
		vector[idx] = math.Min(vector[idx]+weight, bucketCap)
	}
	return vector
}

// hashBucket uses the classic (h<<5)-h+c rolling hash over runes.
func hashBucket(word string) int {
	var hash int32
	for _, r := range word {
		hash = (hash<<5 - hash) + int32(r)
	}
	if hash < 0 {
		hash = -hash
	}
	return int(hash) % vectorDim
}

func cosineSimilarity(a, b []float64) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// VectorSearch ranks chunks by cosine similarity between the query's
// pseudo-embedding and each chunk's, returning the top-k above the score
// threshold with scores set on the returned copies.
func (c *Corpus) VectorSearch(query string, topK int) []model.Chunk {
	if topK <= 0 {
		topK = 5
	}
	queryVec := pseudoEmbed(query)

	c.mu.RLock()
	defer c.mu.RUnlock()

	var results []model.Chunk
	for i, ch := range c.chunks {
		score := cosineSimilarity(queryVec, c.vectors[i])
		if score > scoreThreshold {
			scored := ch
			scored.Score = score
			results = append(results, scored)
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > topK {
		results = results[:topK]
	}
	return results
}
