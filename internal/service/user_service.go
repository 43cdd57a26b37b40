package service

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"gatepass/internal/cache"
	"gatepass/internal/errors"
	"gatepass/internal/model"
	"gatepass/internal/repository"
)

const (
	userCacheTTL = 5 * time.Minute
	// MaxPhotoSize is the upload limit for profile photos.
	MaxPhotoSize = 10 << 20 // 10MB
)

// photoExtensions maps the allowed sniffed content types to file extensions.
var photoExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// UserService handles user profile operations.
type UserService interface {
	UpdateProfilePhoto(ctx context.Context, userID uint, file *multipart.FileHeader) (*model.User, error)
}

type userService struct {
	userRepo  repository.UserRepository
	cache     cache.Store
	uploadDir string
}

// NewUserService creates a new user service storing photos under uploadDir.
func NewUserService(userRepo repository.UserRepository, cache cache.Store, uploadDir string) UserService {
	return &userService{
		userRepo:  userRepo,
		cache:     cache,
		uploadDir: uploadDir,
	}
}

func userCacheKey(id uint) string {
	return fmt.Sprintf("user:%d", id)
}

// UpdateProfilePhoto validates, stores, and records an uploaded photo. The
// content type is sniffed from the file bytes, not trusted from the request.
func (s *userService) UpdateProfilePhoto(ctx context.Context, userID uint, file *multipart.FileHeader) (*model.User, error) {
	if file.Size > MaxPhotoSize {
		return nil, errors.ErrInvalidPhoto
	}

	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	head := make([]byte, 512)
	n, err := io.ReadFull(src, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	head = head[:n]

	ext, ok := photoExtensions[http.DetectContentType(head)]
	if !ok {
		return nil, errors.ErrInvalidPhoto
	}

	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}

	name := uuid.New().String() + ext
	dst, err := os.Create(filepath.Join(s.uploadDir, name))
	if err != nil {
		return nil, fmt.Errorf("create photo file: %w", err)
	}
	defer dst.Close()

	if _, err := dst.Write(head); err != nil {
		return nil, fmt.Errorf("write photo: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		return nil, fmt.Errorf("write photo: %w", err)
	}

	photoPath := "/uploads/" + name
	if err := s.userRepo.UpdateProfilePhoto(ctx, userID, photoPath); err != nil {
		return nil, fmt.Errorf("update profile photo: %w", err)
	}

	// Drop the stale cached profile.
	_ = s.cache.Delete(ctx, userCacheKey(userID))

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	return user, nil
}
