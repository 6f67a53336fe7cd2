package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/NandhaKishorM/electron-app-heart/pkg/domain/model"
)

type settingRepository struct {
	mu       sync.RWMutex
	settings map[string]*model.Setting
}

func newSettingRepository() *settingRepository {
	return &settingRepository{
		settings: make(map[string]*model.Setting),
	}
}

func copySetting(s *model.Setting) *model.Setting {
	copied := *s
	return &copied
}

func (r *settingRepository) Get(ctx context.Context, key string) (*model.Setting, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, exists := r.settings[key]
	if !exists {
		return nil, nil
	}
	return copySetting(s), nil
}

func (r *settingRepository) Put(ctx context.Context, setting *model.Setting) error {
	if setting == nil || setting.Key == "" {
		return goerr.New("setting key is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored := copySetting(setting)
	stored.UpdatedAt = time.Now().UTC()
	r.settings[stored.Key] = stored
	setting.UpdatedAt = stored.UpdatedAt
	return nil
}

func (r *settingRepository) List(ctx context.Context) ([]*model.Setting, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	settings := make([]*model.Setting, 0, len(r.settings))
	for _, s := range r.settings {
		settings = append(settings, copySetting(s))
	}
	sort.Slice(settings, func(i, j int) bool {
		return settings[i].Key < settings[j].Key
	})
	return settings, nil
}
