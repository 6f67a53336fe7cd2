package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/NandhaKishorM/electron-app-heart/pkg/domain/model"
)

type settingDocument struct {
	Key       string    `firestore:"key"`
	Value     string    `firestore:"value"`
	UpdatedAt time.Time `firestore:"updated_at"`
}

type settingRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newSettingRepository(client *firestore.Client) *settingRepository {
	return &settingRepository{
		client:           client,
		collectionPrefix: "",
	}
}

func (r *settingRepository) settingsCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_settings"
	}
	return "settings"
}

func settingToModel(doc *settingDocument) *model.Setting {
	return &model.Setting{
		Key:       doc.Key,
		Value:     doc.Value,
		UpdatedAt: doc.UpdatedAt,
	}
}

func (r *settingRepository) Get(ctx context.Context, key string) (*model.Setting, error) {
	doc, err := r.client.Collection(r.settingsCollection()).Doc(key).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, goerr.Wrap(err, "failed to get setting", goerr.V("key", key))
	}

	var settingDoc settingDocument
	if err := doc.DataTo(&settingDoc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal setting", goerr.V("key", key))
	}
	return settingToModel(&settingDoc), nil
}

func (r *settingRepository) Put(ctx context.Context, setting *model.Setting) error {
	if setting == nil || setting.Key == "" {
		return goerr.New("setting key is required")
	}

	setting.UpdatedAt = time.Now().UTC()
	doc := &settingDocument{
		Key:       setting.Key,
		Value:     setting.Value,
		UpdatedAt: setting.UpdatedAt,
	}
	if _, err := r.client.Collection(r.settingsCollection()).Doc(setting.Key).Set(ctx, doc); err != nil {
		return goerr.Wrap(err, "failed to put setting", goerr.V("key", setting.Key))
	}
	return nil
}

func (r *settingRepository) List(ctx context.Context) ([]*model.Setting, error) {
	iter := r.client.Collection(r.settingsCollection()).OrderBy("key", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	var settings []*model.Setting
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate settings")
		}

		var settingDoc settingDocument
		if err := doc.DataTo(&settingDoc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal setting", goerr.V("id", doc.Ref.ID))
		}
		settings = append(settings, settingToModel(&settingDoc))
	}

	return settings, nil
}
