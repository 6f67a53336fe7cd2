package config

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/m-mizutani/gollem/llm/gemini"
	"github.com/urfave/cli/v3"

	"github.com/NandhaKishorM/electron-app-heart/pkg/domain/model"
)

// DefaultGeminiLocation is the Vertex AI region used when none is set
const DefaultGeminiLocation = "us-central1"

// Gemini holds the Vertex AI project behind the gemini embedding provider
type Gemini struct {
	projectID string
	location  string
}

// Flags returns CLI flags for the Vertex AI project
func (g *Gemini) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "gemini-project",
			Usage:       "Google Cloud project ID for Vertex AI embeddings",
			Category:    "Retrieval",
			Sources:     cli.EnvVars("ECGASSIST_GEMINI_PROJECT"),
			Destination: &g.projectID,
		},
		&cli.StringFlag{
			Name:        "gemini-location",
			Usage:       "Google Cloud location for Vertex AI embeddings",
			Value:       DefaultGeminiLocation,
			Category:    "Retrieval",
			Sources:     cli.EnvVars("ECGASSIST_GEMINI_LOCATION"),
			Destination: &g.location,
		},
	}
}

// LogAttrs returns log attributes for the Vertex AI project
func (g *Gemini) LogAttrs() []slog.Attr {
	return []slog.Attr{
		slog.Bool("enabled", g.Enabled()),
		slog.String("project_id", g.projectID),
		slog.String("location", g.location),
	}
}

// Enabled reports whether a project is set
func (g *Gemini) Enabled() bool {
	return g != nil && g.projectID != ""
}

// Configure connects to Vertex AI. It is only called by the gemini
// embedding provider, so a missing project is a configuration error.
func (g *Gemini) Configure(ctx context.Context) (gollem.LLMClient, error) {
	if !g.Enabled() {
		return nil, goerr.Wrap(model.ErrConfig, "gemini-project is required", goerr.V(FlagKey, "gemini-project"))
	}

	location := g.location
	if location == "" {
		location = DefaultGeminiLocation
	}

	client, err := gemini.New(ctx, g.projectID, location)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to connect to Vertex AI",
			goerr.V("project_id", g.projectID),
			goerr.V("location", location))
	}
	return client, nil
}
