package interfaces

import (
	"context"

	"github.com/NandhaKishorM/electron-app-heart/pkg/domain/model"
)

// Repository defines the interface for data persistence
type Repository interface {
	Setting() SettingRepository
	Close() error
}

// SettingRepository is the key/value configuration store.
type SettingRepository interface {
	// Get returns nil without error when key is not stored.
	Get(ctx context.Context, key string) (*model.Setting, error)
	Put(ctx context.Context, setting *model.Setting) error
	List(ctx context.Context) ([]*model.Setting, error)
}
