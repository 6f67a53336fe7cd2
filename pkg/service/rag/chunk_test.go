package rag_test

import (
	"strings"
	"testing"

	"github.com/NandhaKishorM/electron-app-heart/pkg/service/rag"
	"github.com/m-mizutani/gt"
)

func TestSplit(t *testing.T) {
	t.Run("rejects overlap not smaller than chunk size", func(t *testing.T) {
		_, err := rag.Split("some text", 50, 50)
		gt.Error(t, err).Is(rag.ErrInvalidConfig)

		_, err = rag.Split("some text", 0, 0)
		gt.Error(t, err).Is(rag.ErrInvalidConfig)

		_, err = rag.Split("some text", 10, -1)
		gt.Error(t, err).Is(rag.ErrInvalidConfig)
	})

	t.Run("short text is a single chunk", func(t *testing.T) {
		chunks, err := rag.Split("Hemoglobin 13.2 g/dL", 500, 50)
		gt.NoError(t, err).Required()
		gt.Array(t, chunks).Length(1)
		gt.Value(t, chunks[0].Text).Equal("Hemoglobin 13.2 g/dL")
	})

	t.Run("empty text has no chunks", func(t *testing.T) {
		chunks, err := rag.Split("", 500, 50)
		gt.NoError(t, err)
		gt.Array(t, chunks).Length(0)
	})

	t.Run("hard cuts advance by chunk size minus overlap", func(t *testing.T) {
		text := strings.Repeat("x", 1000)
		chunks, err := rag.Split(text, 500, 50)
		gt.NoError(t, err).Required()
		gt.Array(t, chunks).Length(3)
		gt.Value(t, chunks[0].Offset).Equal(0)
		gt.Value(t, chunks[1].Offset).Equal(450)
		gt.Value(t, chunks[2].Offset).Equal(900)
	})

	t.Run("hard cut tail keeps the stride grid", func(t *testing.T) {
		chunks, err := rag.Split(strings.Repeat("x", 950), 500, 50)
		gt.NoError(t, err).Required()
		gt.Array(t, chunks).Length(3)
		gt.Value(t, chunks[1].Offset).Equal(450)
		gt.Value(t, chunks[2].Offset).Equal(900)
		gt.Value(t, chunks[2].Len()).Equal(50)
	})

	t.Run("no duplicate tail after a boundary cut", func(t *testing.T) {
		text := strings.Repeat("a", 459) + " " + strings.Repeat("b", 440)
		chunks, err := rag.Split(text, 500, 50)
		gt.NoError(t, err).Required()
		gt.Array(t, chunks).Length(2)
		gt.Value(t, chunks[0].Text).Equal(strings.Repeat("a", 459) + " ")
		gt.Value(t, chunks[1].Offset).Equal(410)
		gt.Value(t, chunks[1].Offset + chunks[1].Len()).Equal(900)
		gt.Value(t, rag.Reconstruct(chunks)).Equal(text)
	})

	t.Run("prefers paragraph boundaries", func(t *testing.T) {
		para1 := strings.Repeat("a", 300)
		para2 := strings.Repeat("b", 300)
		chunks, err := rag.Split(para1+"\n\n"+para2, 500, 50)
		gt.NoError(t, err).Required()
		gt.Value(t, chunks[0].Text).Equal(para1 + "\n\n")
	})

	t.Run("prefers word boundaries over hard cuts", func(t *testing.T) {
		text := strings.Repeat("word ", 200)
		chunks, err := rag.Split(text, 102, 10)
		gt.NoError(t, err).Required()
		for _, c := range chunks[:len(chunks)-1] {
			gt.B(t, strings.HasSuffix(c.Text, " ")).True()
		}
	})

	t.Run("counts by rune", func(t *testing.T) {
		text := strings.Repeat("é", 120)
		chunks, err := rag.Split(text, 50, 10)
		gt.NoError(t, err).Required()
		for _, c := range chunks {
			gt.B(t, c.Len() <= 50).True()
		}
	})
}

func TestSplit_Properties(t *testing.T) {
	sources := []string{
		strings.Repeat("x", 950),
		strings.Repeat("Potassium 5.9 mmol/L is high. ", 90),
		strings.Repeat("TSH 0.1\nFree T4 2.9\n\n", 70),
		strings.Repeat("troponin ", 301),
	}
	configs := []struct{ size, overlap int }{
		{500, 50},
		{200, 20},
		{100, 99},
		{64, 0},
	}

	for _, src := range sources {
		for _, cfg := range configs {
			chunks, err := rag.Split(src, cfg.size, cfg.overlap)
			gt.NoError(t, err).Required()

			n := len([]rune(src))
			stride := cfg.size - cfg.overlap
			minChunks := (n + stride - 1) / stride
			gt.B(t, len(chunks) >= minChunks).True()

			for i, c := range chunks {
				gt.B(t, c.Len() <= cfg.size).True()
				if i > 0 {
					gt.B(t, c.Offset > chunks[i-1].Offset).True()
				}
			}
			gt.Value(t, rag.Reconstruct(chunks)).Equal(src)
		}
	}
}
