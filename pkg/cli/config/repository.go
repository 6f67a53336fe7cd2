package config

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/NandhaKishorM/electron-app-heart/pkg/domain/interfaces"
	"github.com/NandhaKishorM/electron-app-heart/pkg/repository/firestore"
	"github.com/NandhaKishorM/electron-app-heart/pkg/repository/memory"
	"github.com/NandhaKishorM/electron-app-heart/pkg/utils/logging"
	"github.com/NandhaKishorM/electron-app-heart/pkg/utils/safe"
)

// Repository backends
const (
	BackendMemory    = "memory"
	BackendFirestore = "firestore"
)

// Repository holds CLI flags for the settings store
type Repository struct {
	backend      string
	projectID    string
	databaseID   string
	prefix       string
	settingsFile string
}

// Flags returns CLI flags for repository configuration
func (r *Repository) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "repository-backend",
			Usage:       "Settings store backend (memory or firestore)",
			Value:       BackendMemory,
			Category:    "Repository",
			Sources:     cli.EnvVars("ECGASSIST_REPOSITORY_BACKEND"),
			Destination: &r.backend,
		},
		&cli.StringFlag{
			Name:        "firestore-project-id",
			Usage:       "Firestore Project ID (required when using firestore backend)",
			Category:    "Repository",
			Sources:     cli.EnvVars("ECGASSIST_FIRESTORE_PROJECT_ID"),
			Destination: &r.projectID,
		},
		&cli.StringFlag{
			Name:        "firestore-database-id",
			Usage:       "Firestore Database ID",
			Category:    "Repository",
			Sources:     cli.EnvVars("ECGASSIST_FIRESTORE_DATABASE_ID"),
			Destination: &r.databaseID,
		},
		&cli.StringFlag{
			Name:        "firestore-collection-prefix",
			Usage:       "Prefix of Firestore collection names",
			Category:    "Repository",
			Sources:     cli.EnvVars("ECGASSIST_FIRESTORE_COLLECTION_PREFIX"),
			Destination: &r.prefix,
		},
		&cli.StringFlag{
			Name:        "settings-file",
			Aliases:     []string{"c"},
			Usage:       "TOML file with initial settings",
			Category:    "Repository",
			Sources:     cli.EnvVars("ECGASSIST_SETTINGS_FILE"),
			Destination: &r.settingsFile,
		},
	}
}

// LogAttrs returns log attributes for the repository configuration
func (r *Repository) LogAttrs() []slog.Attr {
	return []slog.Attr{
		slog.String("backend", r.backend),
		slog.String("project_id", r.projectID),
		slog.String("database_id", r.databaseID),
		slog.String("settings_file", r.settingsFile),
	}
}

// Configure initializes the configured backend and applies the settings
// file when one is given. The caller is responsible for calling Close() on
// the returned repository.
func (r *Repository) Configure(ctx context.Context) (interfaces.Repository, error) {
	var repo interfaces.Repository
	switch r.backend {
	case "", BackendMemory:
		logging.Default().Info("Using in-memory settings store")
		repo = memory.New()

	case BackendFirestore:
		if r.projectID == "" {
			return nil, goerr.Wrap(ErrInvalidConfig, "firestore-project-id is required when using firestore backend",
				goerr.V(FlagKey, "firestore-project-id"))
		}
		var opts []firestore.Option
		if r.prefix != "" {
			opts = append(opts, firestore.WithCollectionPrefix(r.prefix))
		}
		fs, err := firestore.New(ctx, r.projectID, r.databaseID, opts...)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to initialize firestore repository")
		}
		logging.Default().Info("Using Firestore settings store",
			"project_id", r.projectID,
			"database_id", r.databaseID,
		)
		repo = fs

	default:
		return nil, goerr.Wrap(ErrInvalidConfig, "invalid repository backend", goerr.V("backend", r.backend))
	}

	if r.settingsFile == "" {
		return repo, nil
	}

	seed, err := LoadSettingsFile(r.settingsFile)
	if err != nil {
		safe.Close(ctx, repo)
		return nil, err
	}
	if err := seed.Apply(ctx, repo.Setting()); err != nil {
		safe.Close(ctx, repo)
		return nil, err
	}
	logging.Default().Info("Settings file applied", "path", r.settingsFile, "count", len(seed.Settings))

	return repo, nil
}
