package corpus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPseudoEmbedDeterministic(t *testing.T) {
	a := pseudoEmbed("근로기준법 연차 유급휴가")
	b := pseudoEmbed("근로기준법 연차 유급휴가")

	require.Len(t, a, vectorDim)
	assert.Equal(t, a, b)
}

func TestPseudoEmbedKeywordWeight(t *testing.T) {
	weighted := pseudoEmbed("근로기준법")
	plain := pseudoEmbed("아무말")

	assert.Equal(t, 3.0, weighted[hashBucket("근로기준법")])
	assert.Equal(t, 1.0, plain[hashBucket("아무말")])
}

func TestPseudoEmbedBucketCap(t *testing.T) {
	v := pseudoEmbed("근로기준법 근로기준법 근로기준법")
	assert.Equal(t, bucketCap, v[hashBucket("근로기준법")])
}

func TestHashBucketRange(t *testing.T) {
	for _, w := range []string{"연차", "employee", "a", "근로기준법"} {
		idx := hashBucket(w)
		assert.GreaterOrEqual(t, idx, 0)
		assert.Less(t, idx, vectorDim)
	}
}

func TestCosineSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, cosineSimilarity([]float64{1, 2}, []float64{2, 4}), 1e-9)
	assert.Zero(t, cosineSimilarity([]float64{1, 0}, []float64{0, 1}))
	assert.Zero(t, cosineSimilarity([]float64{1}, []float64{1, 2}), "length mismatch")
	assert.Zero(t, cosineSimilarity([]float64{0, 0}, []float64{1, 2}), "zero norm")
}

func TestVectorSearchFindsSharedVocabulary(t *testing.T) {
	c := New("", "", nil, nil)

	results := c.VectorSearch("연차 유급휴가 근로기준법", 5)
	require.NotEmpty(t, results)
	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].Score, results[i].Score)
	}

	// Repeated runs are identical.
	again := c.VectorSearch("연차 유급휴가 근로기준법", 5)
	assert.Equal(t, results, again)
}
