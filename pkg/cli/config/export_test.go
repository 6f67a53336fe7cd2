package config

import (
	"github.com/NandhaKishorM/electron-app-heart/pkg/service/llama"
	"github.com/NandhaKishorM/electron-app-heart/pkg/service/worker"
)

// NewGeminiForTest creates a Gemini config for testing purposes
func NewGeminiForTest(projectID, location string) *Gemini {
	return &Gemini{
		projectID: projectID,
		location:  location,
	}
}

// NewLoggerForTest creates a Logger config for testing purposes
func NewLoggerForTest(level, format, output string) *Logger {
	return &Logger{level: level, format: format, output: output}
}

// NewRepositoryForTest creates a Repository config for testing purposes
func NewRepositoryForTest(backend, settingsFile string) *Repository {
	return &Repository{backend: backend, settingsFile: settingsFile}
}

// NewEmbeddingForTest creates an Embedding config for testing purposes
func NewEmbeddingForTest(provider, modelName string, dimension, cacheSize int) *Embedding {
	return &Embedding{provider: provider, modelName: modelName, dimension: dimension, cacheSize: cacheSize}
}

// NewVisionForTest creates a Vision config for testing purposes
func NewVisionForTest(modelPath, heatmapDir string) *Vision {
	return &Vision{modelPath: modelPath, heatmapDir: heatmapDir}
}

// NewWorkerForTest creates a Worker config for testing purposes
func NewWorkerForTest(topK, maxChars, chunkSize, chunkOverlap int) *Worker {
	return &Worker{
		readyInterval: worker.DefaultReadyInterval,
		readyTimeout:  worker.DefaultReadyTimeout,
		topK:          topK,
		maxChars:      maxChars,
		chunkSize:     chunkSize,
		chunkOverlap:  chunkOverlap,
	}
}

// NewLlamaForTest creates a Llama config for testing purposes
func NewLlamaForTest(baseURL, mode string) *Llama {
	return &Llama{baseURL: baseURL, mode: mode, timeout: llama.DefaultTimeout}
}

var ParseLogLevel = parseLogLevel
