package media

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BlobStore uploads binary blobs and resolves download URLs.
type BlobStore interface {
	Upload(ctx context.Context, key, contentType string, data []byte) (string, error)
	PresignURL(ctx context.Context, key string, ttl time.Duration) (string, error)
}

// Cache holds resolved download URLs for the presign TTL.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, val string, ttl time.Duration) error
}

// Service is the media upload client. It is independent of the conversation
// synchronization logic; message sends reference uploads by URL only.
type Service struct {
	store      BlobStore
	cache      Cache // optional
	presignTTL time.Duration
	log        *zap.SugaredLogger
}

func NewService(store BlobStore, cache Cache, presignTTL time.Duration, log *zap.SugaredLogger) *Service {
	return &Service{store: store, cache: cache, presignTTL: presignTTL, log: log}
}

func NewMessagePhotoFileName() string { return "photo_message_" + uuid.NewString() + ".png" }
func NewMessageVideoFileName() string { return "video_message_" + uuid.NewString() + ".mov" }
func NewAnnouncementPhotoFileName() string {
	return "announcement_photo_" + uuid.NewString() + ".png"
}

// UploadProfilePicture stores a user avatar under images/ and returns its
// download URL.
func (s *Service) UploadProfilePicture(ctx context.Context, fileName string, data []byte) (string, error) {
	return s.upload(ctx, "images/"+fileName, "image/png", data)
}

// UploadMessagePhoto stores an image sent in a conversation under
// message_images/ plus a best-effort JPEG thumbnail next to it.
func (s *Service) UploadMessagePhoto(ctx context.Context, fileName string, data []byte) (string, error) {
	key := "message_images/" + fileName
	url, err := s.upload(ctx, key, "image/png", data)
	if err != nil {
		return "", err
	}
	if thumb, err := thumbnail(data); err == nil {
		if _, err := s.store.Upload(ctx, key+"_thumb.jpg", "image/jpeg", thumb); err != nil {
			s.log.Warnw("upload thumbnail", "key", key, "err", err)
		}
	}
	return url, nil
}

// UploadMessageVideo stores a video sent in a conversation under
// message_videos/.
func (s *Service) UploadMessageVideo(ctx context.Context, fileName, contentType string, data []byte) (string, error) {
	if contentType == "" {
		contentType = "video/quicktime"
	}
	return s.upload(ctx, "message_videos/"+fileName, contentType, data)
}

// UploadAnnouncementPhoto stores an announcement image under
// announcement_images/.
func (s *Service) UploadAnnouncementPhoto(ctx context.Context, fileName string, data []byte) (string, error) {
	return s.upload(ctx, "announcement_images/"+fileName, "image/png", data)
}

func (s *Service) upload(ctx context.Context, key, contentType string, data []byte) (string, error) {
	url, err := s.store.Upload(ctx, key, contentType, data)
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}
	if url == "" {
		url, err = s.store.PresignURL(ctx, key, s.presignTTL)
		if err != nil {
			return "", fmt.Errorf("resolve url for %s: %w", key, err)
		}
	}
	return url, nil
}

// DownloadURL resolves a download URL for a stored object path, consulting
// the cache first.
func (s *Service) DownloadURL(ctx context.Context, path string) (string, error) {
	if s.cache != nil {
		if url, err := s.cache.Get(ctx, "media_url:"+path); err == nil && url != "" {
			return url, nil
		}
	}
	url, err := s.store.PresignURL(ctx, path, s.presignTTL)
	if err != nil {
		return "", fmt.Errorf("resolve url for %s: %w", path, err)
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, "media_url:"+path, url, s.presignTTL); err != nil {
			s.log.Warnw("cache download url", "path", path, "err", err)
		}
	}
	return url, nil
}

func thumbnail(data []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	thumb := imaging.Resize(img, 320, 0, imaging.Lanczos)
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumb, imaging.JPEG); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
