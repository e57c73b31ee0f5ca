package mods

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/beInDev/vaultmp/core/storage/mocks"
)

func objects(infos ...minio.ObjectInfo) <-chan minio.ObjectInfo {
	ch := make(chan minio.ObjectInfo, len(infos))
	for _, info := range infos {
		ch <- info
	}
	close(ch)
	return ch
}

func TestRefreshListsPrefix(t *testing.T) {
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "vault").Return(true, nil)
	client.On("ListObjects", mock.Anything, "vault", minio.ListObjectsOptions{Prefix: "mods/", Recursive: true}).
		Return(objects(
			minio.ObjectInfo{Key: "mods/zeta.esp", ETag: `"bbb"`, Size: 20},
			minio.ObjectInfo{Key: "mods/", ETag: `"dir"`},
			minio.ObjectInfo{Key: "mods/alpha.esm", ETag: `"aaa"`, Size: 10},
		))

	svc := NewService(client, "vault", "/mods/", zap.NewNop())
	assert.Empty(t, svc.Mods())

	mods, err := svc.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []Mod{
		{Name: "alpha.esm", ETag: "aaa", Size: 10},
		{Name: "zeta.esp", ETag: "bbb", Size: 20},
	}, mods)
	assert.Equal(t, mods, svc.Mods())
	client.AssertExpectations(t)
}

func TestRefreshFailureKeepsPreviousList(t *testing.T) {
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "vault").Return(true, nil).Once()
	client.On("ListObjects", mock.Anything, "vault", mock.Anything).
		Return(objects(minio.ObjectInfo{Key: "mods/a.esp", ETag: "a"})).Once()
	client.On("BucketExists", mock.Anything, "vault").Return(false, errors.New("offline")).Once()

	svc := NewService(client, "vault", "mods", zap.NewNop())
	_, err := svc.Refresh(context.Background())
	require.NoError(t, err)

	_, err = svc.Refresh(context.Background())
	assert.Error(t, err)
	assert.Equal(t, []Mod{{Name: "a.esp", ETag: "a"}}, svc.Mods())
}

func TestRefreshListError(t *testing.T) {
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "vault").Return(true, nil)
	client.On("ListObjects", mock.Anything, "vault", mock.Anything).
		Return(objects(minio.ObjectInfo{Err: errors.New("denied")}))

	svc := NewService(client, "vault", "mods", zap.NewNop())
	_, err := svc.Refresh(context.Background())
	assert.ErrorContains(t, err, "denied")
}

func TestRefreshMissingBucket(t *testing.T) {
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "vault").Return(false, nil)

	svc := NewService(client, "vault", "mods", zap.NewNop())
	_, err := svc.Refresh(context.Background())
	assert.ErrorContains(t, err, "does not exist")
}

func TestHandlers(t *testing.T) {
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "vault").Return(true, nil)
	client.On("ListObjects", mock.Anything, "vault", mock.Anything).
		Return(objects(minio.ObjectInfo{Key: "mods/a.esp", ETag: "a"}))

	feature := NewFeature(client, "vault", "mods", zap.NewNop())
	assert.Equal(t, "mods", feature.Name())
	assert.True(t, feature.IsEnabled())

	app := fiber.New()
	require.NoError(t, feature.Load(app))

	resp, err := app.Test(httptest.NewRequest("POST", "/mods/refresh", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/mods", nil))
	require.NoError(t, err)
	var body struct {
		Mods []Mod `json:"mods"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, []Mod{{Name: "a.esp", ETag: "a"}}, body.Mods)
}

func TestFeatureWithoutStorageIsDisabled(t *testing.T) {
	feature := NewFeature(nil, "vault", "mods", zap.NewNop())
	assert.False(t, feature.IsEnabled())
	_, err := feature.Service().Refresh(context.Background())
	assert.Error(t, err)
}

func TestPublishCreatesBucket(t *testing.T) {
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "vault").Return(false, nil).Once()
	client.On("MakeBucket", mock.Anything, "vault", minio.MakeBucketOptions{}).Return(nil)
	client.On("PutObject", mock.Anything, "vault", "mods/new.esp", mock.Anything, int64(3), mock.Anything).
		Return(minio.UploadInfo{ETag: `"n1"`, Size: 3}, nil)
	client.On("BucketExists", mock.Anything, "vault").Return(true, nil)
	client.On("ListObjects", mock.Anything, "vault", mock.Anything).
		Return(objects(minio.ObjectInfo{Key: "mods/new.esp", ETag: "n1", Size: 3}))

	svc := NewService(client, "vault", "mods", zap.NewNop())
	mod, err := svc.Publish(context.Background(), "new.esp", strings.NewReader("esp"), 3)
	require.NoError(t, err)
	assert.Equal(t, Mod{Name: "new.esp", ETag: "n1", Size: 3}, mod)
	assert.Equal(t, []Mod{mod}, svc.Mods())
	client.AssertExpectations(t)
}

func TestInvalidNames(t *testing.T) {
	svc := NewService(new(mocks.Client), "vault", "mods", zap.NewNop())
	for _, name := range []string{"", "../secret", "a/../../b", "dir/", "/abs"} {
		_, err := svc.Open(context.Background(), name)
		assert.ErrorIs(t, err, ErrInvalidName, name)
	}
}

func TestRemoveRefreshes(t *testing.T) {
	client := new(mocks.Client)
	client.On("RemoveObject", mock.Anything, "vault", "mods/old.esp", minio.RemoveObjectOptions{}).Return(nil)
	client.On("BucketExists", mock.Anything, "vault").Return(true, nil)
	client.On("ListObjects", mock.Anything, "vault", mock.Anything).Return(objects())

	svc := NewService(client, "vault", "mods", zap.NewNop())
	require.NoError(t, svc.Remove(context.Background(), "old.esp"))
	assert.Empty(t, svc.Mods())
	client.AssertExpectations(t)
}

func TestHandleDownloadAndUpload(t *testing.T) {
	client := new(mocks.Client)
	client.On("GetObject", mock.Anything, "vault", "mods/a.esp", minio.GetObjectOptions{}).
		Return(io.NopCloser(strings.NewReader("plugin")), nil)
	client.On("BucketExists", mock.Anything, "vault").Return(true, nil)
	client.On("PutObject", mock.Anything, "vault", "mods/b.esp", mock.Anything, int64(4), mock.Anything).
		Return(minio.UploadInfo{ETag: "b", Size: 4}, nil)
	client.On("ListObjects", mock.Anything, "vault", mock.Anything).
		Return(objects(minio.ObjectInfo{Key: "mods/b.esp", ETag: "b", Size: 4}))

	app := fiber.New()
	require.NoError(t, NewFeature(client, "vault", "mods", zap.NewNop()).Load(app))

	resp, err := app.Test(httptest.NewRequest("GET", "/mods/a.esp", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "plugin", string(raw))

	resp, err = app.Test(httptest.NewRequest("PUT", "/mods/b.esp", strings.NewReader("data")))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("DELETE", "/mods/..%2Fx", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
