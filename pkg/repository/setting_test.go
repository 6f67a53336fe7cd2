package repository_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/NandhaKishorM/electron-app-heart/pkg/domain/interfaces"
	"github.com/NandhaKishorM/electron-app-heart/pkg/domain/model"
	"github.com/NandhaKishorM/electron-app-heart/pkg/repository/firestore"
	"github.com/NandhaKishorM/electron-app-heart/pkg/repository/memory"
)

func runSettingRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Get returns nil for missing key", func(t *testing.T) {
		repo := newRepo(t)
		got, err := repo.Setting().Get(context.Background(), model.SettingTemperature)
		gt.NoError(t, err).Required()
		gt.Value(t, got).Nil()
	})

	t.Run("Put then Get", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		setting := &model.Setting{Key: model.SettingMaxTokens, Value: "2048"}
		gt.NoError(t, repo.Setting().Put(ctx, setting)).Required()
		gt.Bool(t, setting.UpdatedAt.IsZero()).False()

		got, err := repo.Setting().Get(ctx, model.SettingMaxTokens)
		gt.NoError(t, err).Required()
		gt.Value(t, got).NotNil()
		gt.Value(t, got.Value).Equal("2048")
		gt.Bool(t, got.UpdatedAt.IsZero()).False()
	})

	t.Run("Put overwrites", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		gt.NoError(t, repo.Setting().Put(ctx, &model.Setting{Key: model.SettingTemperature, Value: "0.1"})).Required()
		gt.NoError(t, repo.Setting().Put(ctx, &model.Setting{Key: model.SettingTemperature, Value: "0.7"})).Required()

		got, err := repo.Setting().Get(ctx, model.SettingTemperature)
		gt.NoError(t, err).Required()
		gt.Value(t, got.Value).Equal("0.7")
	})

	t.Run("Put rejects empty key", func(t *testing.T) {
		repo := newRepo(t)
		gt.Error(t, repo.Setting().Put(context.Background(), &model.Setting{Value: "x"}))
	})

	t.Run("List is ordered by key", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		for _, key := range []string{model.SettingRepeatPenalty, model.SettingGPULayers, model.SettingMaxTokens} {
			gt.NoError(t, repo.Setting().Put(ctx, &model.Setting{Key: key, Value: "1"})).Required()
		}

		settings, err := repo.Setting().List(ctx)
		gt.NoError(t, err).Required()
		gt.Array(t, settings).Length(3)
		gt.Value(t, settings[0].Key).Equal(model.SettingGPULayers)
		gt.Value(t, settings[1].Key).Equal(model.SettingRepeatPenalty)
		gt.Value(t, settings[2].Key).Equal(model.SettingMaxTokens)
	})

	t.Run("returned settings are copies", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		gt.NoError(t, repo.Setting().Put(ctx, &model.Setting{Key: model.SettingGPULayers, Value: "10"})).Required()
		got, err := repo.Setting().Get(ctx, model.SettingGPULayers)
		gt.NoError(t, err).Required()
		got.Value = "99"

		again, err := repo.Setting().Get(ctx, model.SettingGPULayers)
		gt.NoError(t, err).Required()
		gt.Value(t, again.Value).Equal("10")
	})
}

func newFirestoreSettingRepository(t *testing.T) interfaces.Repository {
	t.Helper()

	projectID := os.Getenv("TEST_FIRESTORE_PROJECT_ID")
	if projectID == "" {
		t.Skip("TEST_FIRESTORE_PROJECT_ID not set")
	}

	databaseID := os.Getenv("TEST_FIRESTORE_DATABASE_ID")
	if databaseID == "" {
		t.Skip("TEST_FIRESTORE_DATABASE_ID not set")
	}

	ctx := context.Background()
	prefix := fmt.Sprintf("test_%d", time.Now().UnixNano())
	repo, err := firestore.New(ctx, projectID, databaseID, firestore.WithCollectionPrefix(prefix))
	gt.NoError(t, err).Required()
	t.Cleanup(func() {
		gt.NoError(t, repo.Close())
	})
	return repo
}

func TestMemorySettingRepository(t *testing.T) {
	runSettingRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		return memory.New()
	})
}

func TestFirestoreSettingRepository(t *testing.T) {
	runSettingRepositoryTest(t, newFirestoreSettingRepository)
}
