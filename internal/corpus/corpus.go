package corpus

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"hr-assistant/internal/model"
	"hr-assistant/internal/pkg/pdfextract"
)

const (
	chunkSize     = 1000
	chunkOverlap  = 200
	employeeGroup = 10
	// scoreThreshold filters near-noise matches out of both search modes.
	scoreThreshold = 0.1
)

// legalArticle is one statute clause of the built-in corpus.
type legalArticle struct {
	source  string
	article string
	content string
}

// regulation is one company bylaw of the built-in corpus.
type regulation struct {
	title         string
	content       string
	effectiveDate string
}

var legalArticles = []legalArticle{
	{"근로기준법", "제1조", "근로기준법 제1조(목적) - 이 법은 근로조건의 기준을 정함으로써 근로자의 기본적 생활을 보장, 향상시키며 균형 있는 국민경제의 발전에 도움이 되도록 하는 것을 목적으로 한다."},
	{"근로기준법", "제2조", "근로기준법 제2조(정의) - 이 법에서 \"근로자\"란 직업의 종류와 관계없이 임금을 목적으로 사업이나 사업장에 근로를 제공하는 자를 말한다."},
	{"근로기준법", "제3조", "근로기준법 제3조(적용 범위) - 이 법은 상시 5명 이상의 근로자를 사용하는 모든 사업 또는 사업장에 적용한다."},
	{"근로기준법", "제60조", "사용자는 1년간 8할 이상 출근한 근로자에게 15일의 유급휴가를 주어야 한다."},
	{"근로기준법", "제61조", "사용자는 근로자가 1년간 8할 미만 출근한 경우에는 1개월 개근한 수에 비례하여 유급휴가를 주어야 한다."},
	{"근로기준법", "제62조", "사용자는 근로자가 1년간 8할 이상 출근한 경우에는 1년간 80퍼센트 이상 출근한 근로자에게는 1년간 80퍼센트 미만 출근한 근로자보다 3일을 더한 유급휴가를 주어야 한다."},
	{"근로기준법 시행령", "제25조", "연차 유급휴가는 근로자가 1년간 8할 이상 출근한 경우에 발생한다."},
	{"근로기준법 시행령", "제26조", "연차 유급휴가의 사용은 근로자가 청구한 시기에 주어야 하며, 사업 운영에 막대한 지장이 있는 경우 그 시기를 변경할 수 있다."},
}

var regulations = []regulation{
	{
		title:         "출장비 지급 규정",
		content:       "출장비는 실비 기준으로 지급하며, 교통비, 숙박비, 식비를 포함한다. 국내 출장의 경우 일일 5만원, 해외 출장의 경우 일일 10만원을 기본으로 지급한다.",
		effectiveDate: "2024-01-01",
	},
	{
		title:         "재택근무 규정",
		content:       "재택근무는 주 2일까지 허용되며, 사전 승인을 받아야 한다. 재택근무 시에도 정상 근무시간을 준수해야 하며, 업무 연락이 가능한 상태를 유지해야 한다.",
		effectiveDate: "2024-01-01",
	},
	{
		title:         "교육훈련비 지원 규정",
		content:       "직무 관련 교육훈련비는 연간 100만원까지 지원한다. 지원 대상은 사전 승인을 받은 교육과정이며, 수료 후 증빙서류를 제출해야 한다.",
		effectiveDate: "2024-01-01",
	},
}

// cacheFile is the persisted shape of a built corpus.
type cacheFile struct {
	Chunks      []model.Chunk `json:"chunks"`
	TotalChunks int           `json:"totalChunks"`
	ProcessedAt string        `json:"processedAt"`
}

// Corpus holds the retrieval chunks and their pseudo-embeddings. Chunks are
// rebuilt wholesale on (re-)initialization and never mutated per query.
type Corpus struct {
	mu      sync.RWMutex
	chunks  []model.Chunk
	vectors [][]float64

	cachePath string
	pdfDir    string
	logger    *zap.Logger
}

// New builds a corpus from the built-in documents, employee groups and any
// PDFs under pdfDir. A readable cache file at cachePath short-circuits the
// initial build; otherwise the built chunks are cached there, best effort.
func New(cachePath, pdfDir string, employees []model.Employee, logger *zap.Logger) *Corpus {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Corpus{cachePath: cachePath, pdfDir: pdfDir, logger: logger}
	if chunks, ok := c.loadCache(); ok {
		c.install(chunks)
		c.logger.Info("loaded chunk cache", zap.Int("chunks", len(chunks)))
	} else {
		c.Rebuild(employees)
	}
	return c
}

// Rebuild segments all sources from scratch and replaces the chunk set. The
// cache is rewritten, never consulted, so an explicit rebuild always picks up
// changed employees and regulations.
func (c *Corpus) Rebuild(employees []model.Employee) {
	chunks := buildChunks(employees, c.pdfDir, c.logger)
	c.install(chunks)
	c.saveCache(chunks)
}

func (c *Corpus) install(chunks []model.Chunk) {
	vectors := make([][]float64, len(chunks))
	for i := range chunks {
		vectors[i] = pseudoEmbed(chunks[i].Content)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.chunks = chunks
	c.vectors = vectors
}

func (c *Corpus) loadCache() ([]model.Chunk, bool) {
	if c.cachePath == "" {
		return nil, false
	}
	raw, err := os.ReadFile(c.cachePath)
	if err != nil {
		return nil, false
	}
	var cached cacheFile
	if err := json.Unmarshal(raw, &cached); err != nil || len(cached.Chunks) == 0 {
		return nil, false
	}
	return cached.Chunks, true
}

func (c *Corpus) saveCache(chunks []model.Chunk) {
	if c.cachePath == "" {
		return
	}
	data, err := json.MarshalIndent(cacheFile{
		Chunks:      chunks,
		TotalChunks: len(chunks),
		ProcessedAt: time.Now().Format(time.RFC3339),
	}, "", "  ")
	if err != nil {
		return
	}
	if err := os.MkdirAll(filepath.Dir(c.cachePath), 0o755); err != nil {
		c.logger.Warn("create chunk cache dir failed", zap.Error(err))
		return
	}
	if err := os.WriteFile(c.cachePath, data, 0o644); err != nil {
		c.logger.Warn("write chunk cache failed", zap.Error(err))
	}
}

func buildChunks(employees []model.Employee, pdfDir string, logger *zap.Logger) []model.Chunk {
	var chunks []model.Chunk

	for _, a := range legalArticles {
		chunks = append(chunks, splitIntoChunks(a.content, model.ChunkMetadata{
			Source:        a.source,
			Type:          model.ChunkTypeLegal,
			ArticleNumber: a.article,
			Title:         a.source + " " + a.article,
		})...)
	}

	for _, r := range regulations {
		chunks = append(chunks, splitIntoChunks(r.content, model.ChunkMetadata{
			Source:  "부속규정",
			Type:    model.ChunkTypeRegulation,
			Title:   r.title,
			Context: "시행일: " + r.effectiveDate,
		})...)
	}

	chunks = append(chunks, chunkEmployees(employees)...)

	if pdfDir != "" {
		pdfChunks, err := chunkPDFDir(pdfDir)
		if err != nil {
			logger.Warn("pdf regulation ingest failed", zap.String("dir", pdfDir), zap.Error(err))
		} else {
			chunks = append(chunks, pdfChunks...)
		}
	}

	return chunks
}

// chunkEmployees groups employees ten at a time into summary chunks.
func chunkEmployees(employees []model.Employee) []model.Chunk {
	var chunks []model.Chunk
	for i := 0; i < len(employees); i += employeeGroup {
		end := i + employeeGroup
		if end > len(employees) {
			end = len(employees)
		}
		group := employees[i:end]

		lines := make([]string, len(group))
		for j, emp := range group {
			lines[j] = fmt.Sprintf("%s (%s, %s) - %s", emp.Name, emp.Position, emp.Department, emp.Email)
		}

		idx := i / employeeGroup
		chunks = append(chunks, model.Chunk{
			ID:      fmt.Sprintf("직원정보_employee_group_%d", idx),
			Content: strings.Join(lines, "\n"),
			Metadata: model.ChunkMetadata{
				Source:  "직원정보",
				Type:    model.ChunkTypeEmployee,
				Title:   fmt.Sprintf("직원 정보 그룹 %d", idx+1),
				Context: fmt.Sprintf("%d명의 직원 정보", len(group)),
			},
		})
	}
	return chunks
}

// chunkPDFDir extracts text from every .pdf file in dir and segments it as
// regulation chunks named after the file.
func chunkPDFDir(dir string) ([]model.Chunk, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read pdf dir failed: %w", err)
	}

	var chunks []model.Chunk
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
			continue
		}
		f, err := os.Open(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("open pdf failed: %w", err)
		}
		text, err := pdfextract.ExtractText(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("extract pdf %s failed: %w", entry.Name(), err)
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		title := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		chunks = append(chunks, splitIntoChunks(text, model.ChunkMetadata{
			Source: "부속규정",
			Type:   model.ChunkTypeRegulation,
			Title:  title,
		})...)
	}
	return chunks, nil
}

// splitIntoChunks segments text into overlapping chunks on sentence
// boundaries. Short texts become a single chunk.
func splitIntoChunks(text string, meta model.ChunkMetadata) []model.Chunk {
	sentences := splitSentences(text)

	// The title carries the article number or document name, so ids stay
	// distinct across documents sharing a source.
	idBase := meta.Title
	if idBase == "" {
		idBase = meta.Source
	}
	idBase = strings.ReplaceAll(idBase, " ", "_")

	var chunks []model.Chunk
	chunkID := 0
	appendChunk := func(content string) {
		content = strings.TrimSpace(content)
		if content == "" {
			return
		}
		chunks = append(chunks, model.Chunk{
			ID:       fmt.Sprintf("%s_chunk_%d", idBase, chunkID),
			Content:  content,
			Metadata: meta,
		})
		chunkID++
	}

	var current strings.Builder
	for _, sentence := range sentences {
		if current.Len()+len(sentence) > chunkSize && current.Len() > 0 {
			body := current.String()
			appendChunk(body)
			current.Reset()
			current.WriteString(overlapTail(body, chunkOverlap))
		}
		current.WriteString(sentence)
		current.WriteString(" ")
	}
	appendChunk(current.String())
	return chunks
}

func splitSentences(text string) []string {
	raw := strings.FieldsFunc(text, func(r rune) bool {
		switch r {
		case '.', '!', '?', '。', '！', '？':
			return true
		}
		return false
	})
	var out []string
	for _, s := range raw {
		s = strings.TrimSpace(s)
		if len([]rune(s)) > 10 {
			out = append(out, s+".")
		}
	}
	if len(out) == 0 {
		out = append(out, strings.TrimSpace(text))
	}
	return out
}

func overlapTail(body string, overlap int) string {
	runes := []rune(body)
	if len(runes) <= overlap {
		return body + " "
	}
	return string(runes[len(runes)-overlap:]) + " "
}

// All returns a copy of every chunk.
func (c *Corpus) All() []model.Chunk {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]model.Chunk, len(c.chunks))
	copy(out, c.chunks)
	return out
}

// Count returns the number of chunks.
func (c *Corpus) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.chunks)
}

// Sources returns the distinct chunk sources in first-seen order.
func (c *Corpus) Sources() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	seen := make(map[string]struct{})
	var out []string
	for _, ch := range c.chunks {
		if _, ok := seen[ch.Metadata.Source]; ok {
			continue
		}
		seen[ch.Metadata.Source] = struct{}{}
		out = append(out, ch.Metadata.Source)
	}
	return out
}

// Search scores chunks by the share of query words (length > 1) contained
// in the chunk text, keeps scores above the threshold, sorts descending and
// truncates to limit. Scores are set on the returned copies only.
func (c *Corpus) Search(query string, limit int) []model.Chunk {
	if limit <= 0 {
		limit = 5
	}
	queryLower := strings.ToLower(query)

	c.mu.RLock()
	defer c.mu.RUnlock()

	var results []model.Chunk
	for _, ch := range c.chunks {
		score := keywordSimilarity(queryLower, strings.ToLower(ch.Content))
		if score > scoreThreshold {
			scored := ch
			scored.Score = score
			results = append(results, scored)
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > limit {
		results = results[:limit]
	}
	return results
}

// keywordSimilarity is the matched-word ratio over the query's words.
func keywordSimilarity(query, content string) float64 {
	var words []string
	for _, w := range strings.Fields(query) {
		if len([]rune(w)) > 1 {
			words = append(words, w)
		}
	}
	if len(words) == 0 {
		return 0
	}
	matched := 0
	for _, w := range words {
		if strings.Contains(content, w) {
			matched++
		}
	}
	return float64(matched) / float64(len(words))
}
