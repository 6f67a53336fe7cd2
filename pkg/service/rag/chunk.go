package rag

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// Chunk is a contiguous slice of the source text. Offset and length are in runes.
type Chunk struct {
	Text   string
	Offset int
}

// Len returns the chunk length in runes.
func (c Chunk) Len() int {
	return len([]rune(c.Text))
}

// boundaries are tried in order; the first kind found inside a window wins.
var boundaries = [][]rune{
	[]rune("\n\n"),
	[]rune("\n"),
	[]rune(". "),
	[]rune("! "),
	[]rune("? "),
	[]rune(" "),
}

// Split cuts text into windows of at most chunkSize runes. Each window after
// the first starts overlap runes before the end of the previous one, so a
// hard cut advances by chunkSize-overlap. A window ends on the best natural
// boundary past start+overlap, or at chunkSize when there is none. Once a
// window reaches the end of text, tail windows follow at the hard-cut stride
// only while there are fewer than ceil(n/(chunkSize-overlap)) chunks. Text
// no longer than chunkSize is returned as a single chunk.
func Split(text string, chunkSize, overlap int) ([]Chunk, error) {
	if chunkSize <= 0 || overlap < 0 || overlap >= chunkSize {
		return nil, goerr.Wrap(ErrInvalidConfig, "chunk size must be positive and greater than overlap",
			goerr.V("chunk_size", chunkSize),
			goerr.V("overlap", overlap))
	}

	runes := []rune(text)
	n := len(runes)
	if n == 0 {
		return nil, nil
	}
	if n <= chunkSize {
		return []Chunk{{Text: text, Offset: 0}}, nil
	}

	stride := chunkSize - overlap
	minChunks := (n + stride - 1) / stride
	var chunks []Chunk
	for start := 0; start < n; {
		end := min(start+chunkSize, n)
		cut := end
		if end < n {
			cut = findCut(runes, start, end, overlap)
		}
		chunks = append(chunks, Chunk{Text: string(runes[start:cut]), Offset: start})

		switch {
		case cut < n:
			start = cut - overlap
		case len(chunks) < minChunks:
			// tail windows keep the stride grid until every stride step has a chunk
			start += stride
		default:
			start = n
		}
	}
	return chunks, nil
}

// findCut returns the end of the window [start,end). The cut must lie past
// start+overlap so the next window begins after this one.
func findCut(runes []rune, start, end, overlap int) int {
	floor := start + overlap
	for _, sep := range boundaries {
		for p := end - len(sep); p >= start; p-- {
			cut := p + len(sep)
			if cut <= floor {
				break
			}
			if hasPrefix(runes[p:], sep) {
				return cut
			}
		}
	}
	return end
}

func hasPrefix(runes, prefix []rune) bool {
	if len(runes) < len(prefix) {
		return false
	}
	for i := range prefix {
		if runes[i] != prefix[i] {
			return false
		}
	}
	return true
}

// Texts returns the chunk texts in document order.
func Texts(chunks []Chunk) []string {
	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}
	return texts
}

// Reconstruct rebuilds the source text from chunks by dropping the overlapping prefix of each chunk.
func Reconstruct(chunks []Chunk) string {
	var sb strings.Builder
	covered := 0
	for _, c := range chunks {
		runes := []rune(c.Text)
		if skip := covered - c.Offset; skip < len(runes) {
			sb.WriteString(string(runes[max(skip, 0):]))
			covered = c.Offset + len(runes)
		}
	}
	return sb.String()
}
