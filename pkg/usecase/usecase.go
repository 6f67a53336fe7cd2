package usecase

import (
	"github.com/NandhaKishorM/electron-app-heart/pkg/domain/interfaces"
)

type UseCases struct {
	repo          interfaces.Repository
	healthChecker interfaces.HealthChecker
	Case          *CaseUseCase
	Settings      *SettingsUseCase
	Health        *HealthUseCase
}

type Option func(*UseCases)

// WithHealthChecker sets the backend probe. A generator that implements
// interfaces.HealthChecker is used when no checker is set.
func WithHealthChecker(checker interfaces.HealthChecker) Option {
	return func(uc *UseCases) {
		uc.healthChecker = checker
	}
}

func New(
	repo interfaces.Repository,
	generator interfaces.Generator,
	vision interfaces.VisionWorker,
	retrieval interfaces.RetrievalWorker,
	extractor interfaces.DocumentExtractor,
	opts ...Option,
) *UseCases {
	uc := &UseCases{
		repo: repo,
	}

	for _, opt := range opts {
		opt(uc)
	}
	if uc.healthChecker == nil {
		if hc, ok := generator.(interfaces.HealthChecker); ok {
			uc.healthChecker = hc
		}
	}

	uc.Settings = NewSettingsUseCase(repo.Setting())
	uc.Case = NewCaseUseCase(generator, vision, retrieval, extractor, uc.Settings)

	workers := map[string]readiness{}
	if w, ok := vision.(readiness); ok {
		workers["vision"] = w
	}
	if w, ok := retrieval.(readiness); ok {
		workers["retrieval"] = w
	}
	uc.Health = &HealthUseCase{checker: uc.healthChecker, workers: workers}

	return uc
}
