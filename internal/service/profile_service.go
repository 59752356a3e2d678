package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"regexp"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"portfolio-backend/internal/cache"
	apperrors "portfolio-backend/internal/errors"
	"portfolio-backend/internal/repository"
	"portfolio-backend/internal/storage"
)

const imagePathCacheTTL = 5 * time.Minute

// allowedImageTypes is the declared content types accepted for uploads.
var allowedImageTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/jpg":  {},
	"image/png":  {},
	"image/webp": {},
	"image/gif":  {},
}

// unsafeKeyChars matches everything stripped from uploaded file names before
// they become part of a storage key.
var unsafeKeyChars = regexp.MustCompile(`[^\w.\-]+`)

// Upload is an inbound file payload. Size is the declared size; it is checked
// before Content is read so an oversized payload is never buffered.
type Upload struct {
	FileName    string
	ContentType string
	Size        int64
	Content     io.Reader
}

// UploadResult carries the stored key and a resolvable URL for it.
type UploadResult struct {
	ImagePath string
	ImageURL  string
}

// ProfileService handles profile picture upload and retrieval.
type ProfileService interface {
	UploadProfilePicture(ctx context.Context, userID uuid.UUID, upload *Upload) (*UploadResult, error)
	GetProfilePictureURL(ctx context.Context, userID uuid.UUID) (string, error)
}

type profileService struct {
	userRepo repository.UserRepository
	store    storage.ObjectStore
	cache    *cache.Client
	maxBytes int64
}

// NewProfileService creates a new profile service. maxBytes bounds accepted
// upload sizes.
func NewProfileService(userRepo repository.UserRepository, store storage.ObjectStore, cache *cache.Client, maxBytes int64) ProfileService {
	return &profileService{
		userRepo: userRepo,
		store:    store,
		cache:    cache,
		maxBytes: maxBytes,
	}
}

func (s *profileService) cacheKey(userID uuid.UUID) string {
	return fmt.Sprintf("profile_image:%s", userID.String())
}

// UploadProfilePicture validates the payload, writes it to the object store
// under a fresh key and records that key on the user. A failed image path
// update leaves the written object as an accepted orphan; there is no
// compensating delete and no transaction across the two stores.
func (s *profileService) UploadProfilePicture(ctx context.Context, userID uuid.UUID, upload *Upload) (*UploadResult, error) {
	if upload == nil || upload.Content == nil {
		return nil, apperrors.ErrNoFile
	}
	if _, ok := allowedImageTypes[upload.ContentType]; !ok {
		return nil, apperrors.ErrUnsupportedFileType
	}
	if s.maxBytes > 0 && upload.Size > s.maxBytes {
		return nil, apperrors.ErrFileTooLarge
	}

	key := fmt.Sprintf("%s/%d_%s", userID, time.Now().UnixMilli(), sanitizeFileName(upload.FileName))

	if err := s.store.Put(ctx, key, upload.Content, upload.Size, upload.ContentType); err != nil {
		log.Printf("object store write failed for %s: %v", key, err)
		return nil, apperrors.ErrObjectStoreWrite
	}

	if err := s.userRepo.UpdateImagePath(ctx, userID, key); err != nil {
		// Object %s is now orphaned in the store.
		log.Printf("image path update failed for user %s (orphaned object %s): %v", userID, key, err)
		return nil, apperrors.ErrImagePathSave
	}

	_ = s.cache.Delete(ctx, s.cacheKey(userID))

	url, err := s.store.ResolveURL(ctx, key)
	if err != nil {
		log.Printf("url resolution failed for %s: %v", key, err)
		return nil, apperrors.ErrURLResolve
	}

	return &UploadResult{ImagePath: key, ImageURL: url}, nil
}

// GetProfilePictureURL resolves the user's stored image key to a URL. The key
// lookup is cached; the URL itself never is, so in signed mode every call
// yields a fresh URL.
func (s *profileService) GetProfilePictureURL(ctx context.Context, userID uuid.UUID) (string, error) {
	key := ""
	if data, _ := s.cache.Get(ctx, s.cacheKey(userID)); data != nil {
		key = string(data)
	}

	if key == "" {
		user, err := s.userRepo.FindByID(ctx, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return "", apperrors.ErrProfilePicNotFound
			}
			return "", fmt.Errorf("find user: %w", err)
		}
		if user.ImagePath == nil || *user.ImagePath == "" {
			return "", apperrors.ErrProfilePicNotFound
		}
		key = *user.ImagePath
		_ = s.cache.Set(ctx, s.cacheKey(userID), []byte(key), imagePathCacheTTL)
	}

	url, err := s.store.ResolveURL(ctx, key)
	if err != nil {
		log.Printf("url resolution failed for %s: %v", key, err)
		return "", apperrors.ErrURLResolve
	}
	return url, nil
}

// sanitizeFileName collapses every run of characters outside [A-Za-z0-9._-]
// into a single underscore, preventing path traversal and key collisions via
// crafted names.
func sanitizeFileName(name string) string {
	safe := unsafeKeyChars.ReplaceAllString(name, "_")
	if safe == "" {
		return "upload"
	}
	return safe
}
