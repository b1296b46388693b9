package media

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"strings"
	"testing"
	"time"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeBlobStore struct {
	objects  map[string][]byte
	types    map[string]string
	public   bool
	presigns int
}

func newFakeBlobStore(public bool) *fakeBlobStore {
	return &fakeBlobStore{objects: map[string][]byte{}, types: map[string]string{}, public: public}
}

func (f *fakeBlobStore) Upload(_ context.Context, key, contentType string, data []byte) (string, error) {
	f.objects[key] = data
	f.types[key] = contentType
	if f.public {
		return "https://bucket.s3.test/" + key, nil
	}
	return "", nil
}

func (f *fakeBlobStore) PresignURL(_ context.Context, key string, _ time.Duration) (string, error) {
	f.presigns++
	return "https://bucket.s3.test/" + key + "?signed=1", nil
}

type fakeCache struct {
	values map[string]string
}

func (f *fakeCache) Get(_ context.Context, key string) (string, error) {
	return f.values[key], nil
}

func (f *fakeCache) Set(_ context.Context, key, val string, _ time.Duration) error {
	f.values[key] = val
	return nil
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 640, 480))
	for x := 0; x < 640; x++ {
		img.Set(x, 0, color.RGBA{R: 255, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, imaging.Encode(&buf, img, imaging.PNG))
	return buf.Bytes()
}

func TestUploadProfilePicture(t *testing.T) {
	store := newFakeBlobStore(true)
	svc := NewService(store, nil, 10*time.Minute, zap.NewNop().Sugar())

	url, err := svc.UploadProfilePicture(context.Background(), "alice-example-com_profile_picture.png", pngBytes(t))
	require.NoError(t, err)
	assert.Equal(t, "https://bucket.s3.test/images/alice-example-com_profile_picture.png", url)
	assert.Contains(t, store.objects, "images/alice-example-com_profile_picture.png")
}

func TestUploadMessagePhotoWritesThumbnail(t *testing.T) {
	store := newFakeBlobStore(true)
	svc := NewService(store, nil, 10*time.Minute, zap.NewNop().Sugar())

	url, err := svc.UploadMessagePhoto(context.Background(), "photo_message_x.png", pngBytes(t))
	require.NoError(t, err)
	assert.Contains(t, url, "message_images/photo_message_x.png")
	assert.Contains(t, store.objects, "message_images/photo_message_x.png_thumb.jpg")
	assert.Equal(t, "image/jpeg", store.types["message_images/photo_message_x.png_thumb.jpg"])
}

func TestUploadMessagePhotoSkipsThumbnailOnBadImage(t *testing.T) {
	store := newFakeBlobStore(true)
	svc := NewService(store, nil, 10*time.Minute, zap.NewNop().Sugar())

	_, err := svc.UploadMessagePhoto(context.Background(), "photo_message_x.png", []byte("not an image"))
	require.NoError(t, err)
	assert.NotContains(t, store.objects, "message_images/photo_message_x.png_thumb.jpg")
}

func TestUploadMessageVideoDefaultsContentType(t *testing.T) {
	store := newFakeBlobStore(true)
	svc := NewService(store, nil, 10*time.Minute, zap.NewNop().Sugar())

	_, err := svc.UploadMessageVideo(context.Background(), "video_message_x.mov", "", []byte{0, 1, 2})
	require.NoError(t, err)
	assert.Equal(t, "video/quicktime", store.types["message_videos/video_message_x.mov"])
}

func TestUploadPrivateBucketResolvesPresignedURL(t *testing.T) {
	store := newFakeBlobStore(false)
	svc := NewService(store, nil, 10*time.Minute, zap.NewNop().Sugar())

	url, err := svc.UploadAnnouncementPhoto(context.Background(), "announcement_photo_x.png", pngBytes(t))
	require.NoError(t, err)
	assert.Contains(t, url, "?signed=1")
}

func TestDownloadURLUsesCache(t *testing.T) {
	store := newFakeBlobStore(false)
	c := &fakeCache{values: map[string]string{}}
	svc := NewService(store, c, 10*time.Minute, zap.NewNop().Sugar())
	ctx := context.Background()

	first, err := svc.DownloadURL(ctx, "images/a.png")
	require.NoError(t, err)
	second, err := svc.DownloadURL(ctx, "images/a.png")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, store.presigns)
}

func TestFileNameHelpers(t *testing.T) {
	assert.True(t, strings.HasPrefix(NewMessagePhotoFileName(), "photo_message_"))
	assert.True(t, strings.HasSuffix(NewMessagePhotoFileName(), ".png"))
	assert.True(t, strings.HasPrefix(NewMessageVideoFileName(), "video_message_"))
	assert.True(t, strings.HasSuffix(NewMessageVideoFileName(), ".mov"))
	assert.True(t, strings.HasPrefix(NewAnnouncementPhotoFileName(), "announcement_photo_"))
	assert.NotEqual(t, NewMessagePhotoFileName(), NewMessagePhotoFileName())
}
