package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"regexp"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "portfolio-backend/internal/errors"
	"portfolio-backend/internal/model"
)

const testMaxUploadBytes = 5 * 1024 * 1024

// MockObjectStore is a mock implementation of storage.ObjectStore.
type MockObjectStore struct {
	mock.Mock
}

func (m *MockObjectStore) Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error {
	args := m.Called(ctx, key, body, size, contentType)
	return args.Error(0)
}

func (m *MockObjectStore) ResolveURL(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func TestProfileService_UploadProfilePicture_Validation(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name          string
		upload        *Upload
		expectedError error
	}{
		{
			name:          "no file",
			upload:        nil,
			expectedError: apperrors.ErrNoFile,
		},
		{
			name: "nil content",
			upload: &Upload{
				FileName:    "pic.png",
				ContentType: "image/png",
				Size:        100,
			},
			expectedError: apperrors.ErrNoFile,
		},
		{
			name: "unsupported type",
			upload: &Upload{
				FileName:    "resume.pdf",
				ContentType: "application/pdf",
				Size:        100,
				Content:     bytes.NewReader([]byte("pdf")),
			},
			expectedError: apperrors.ErrUnsupportedFileType,
		},
		{
			// Type is checked before size, so an oversized non-image still
			// reports the type problem first.
			name: "unsupported type wins over size",
			upload: &Upload{
				FileName:    "movie.mp4",
				ContentType: "video/mp4",
				Size:        testMaxUploadBytes + 1,
				Content:     bytes.NewReader([]byte("mp4")),
			},
			expectedError: apperrors.ErrUnsupportedFileType,
		},
		{
			name: "file too large",
			upload: &Upload{
				FileName:    "huge.png",
				ContentType: "image/png",
				Size:        testMaxUploadBytes + 1,
				Content:     bytes.NewReader([]byte("png")),
			},
			expectedError: apperrors.ErrFileTooLarge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			mockStore := new(MockObjectStore)

			svc := NewProfileService(mockRepo, mockStore, nil, testMaxUploadBytes)

			result, err := svc.UploadProfilePicture(context.Background(), userID, tt.upload)
			assert.Error(t, err)
			assert.Equal(t, tt.expectedError, err)
			assert.Nil(t, result)

			// A rejected payload never reaches the object store.
			mockStore.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			mockRepo.AssertNotCalled(t, "UpdateImagePath", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestProfileService_UploadProfilePicture_Success(t *testing.T) {
	userID := uuid.New()
	payload := []byte("fake png bytes")
	keyPattern := regexp.MustCompile(`^` + regexp.QuoteMeta(userID.String()) + `/\d+_pic_1\.png$`)

	mockRepo := new(MockUserRepository)
	mockStore := new(MockObjectStore)

	isExpectedKey := func(key string) bool {
		return keyPattern.MatchString(key) && !strings.Contains(key, " ")
	}

	mockStore.On("Put", mock.Anything, mock.MatchedBy(isExpectedKey), mock.Anything, int64(len(payload)), "image/png").Return(nil)
	mockRepo.On("UpdateImagePath", mock.Anything, userID, mock.MatchedBy(isExpectedKey)).Return(nil)
	mockStore.On("ResolveURL", mock.Anything, mock.MatchedBy(isExpectedKey)).Return("https://cdn.example.com/signed", nil)

	svc := NewProfileService(mockRepo, mockStore, nil, testMaxUploadBytes)

	result, err := svc.UploadProfilePicture(context.Background(), userID, &Upload{
		FileName:    "pic 1.png",
		ContentType: "image/png",
		Size:        int64(len(payload)),
		Content:     bytes.NewReader(payload),
	})

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, "https://cdn.example.com/signed", result.ImageURL)
	assert.True(t, keyPattern.MatchString(result.ImagePath), "key %q should match %v", result.ImagePath, keyPattern)
	assert.NotContains(t, result.ImagePath, " ")

	mockRepo.AssertExpectations(t)
	mockStore.AssertExpectations(t)
}

// Two sequential uploads get distinct keys and the image path ends up
// pointing at the second one. Nothing ever deletes the first object.
func TestProfileService_SequentialUploads_LastWins(t *testing.T) {
	userID := uuid.New()

	mockRepo := new(MockUserRepository)
	mockStore := new(MockObjectStore)

	var putKeys, savedKeys []string
	mockStore.On("Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { putKeys = append(putKeys, args.String(1)) }).Return(nil)
	mockRepo.On("UpdateImagePath", mock.Anything, userID, mock.Anything).
		Run(func(args mock.Arguments) { savedKeys = append(savedKeys, args.String(2)) }).Return(nil)
	mockStore.On("ResolveURL", mock.Anything, mock.Anything).Return("https://cdn.example.com/signed", nil)

	svc := NewProfileService(mockRepo, mockStore, nil, testMaxUploadBytes)

	for _, name := range []string{"first.png", "second.png"} {
		result, err := svc.UploadProfilePicture(context.Background(), userID, &Upload{
			FileName:    name,
			ContentType: "image/png",
			Size:        4,
			Content:     bytes.NewReader([]byte("data")),
		})
		assert.NoError(t, err)
		assert.NotNil(t, result)
	}

	assert.Len(t, putKeys, 2)
	assert.NotEqual(t, putKeys[0], putKeys[1])
	assert.Equal(t, putKeys, savedKeys)
	assert.Contains(t, savedKeys[1], "second.png")
}

func TestProfileService_UploadProfilePicture_StoreFailure(t *testing.T) {
	userID := uuid.New()

	mockRepo := new(MockUserRepository)
	mockStore := new(MockObjectStore)
	mockStore.On("Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("s3 unavailable"))

	svc := NewProfileService(mockRepo, mockStore, nil, testMaxUploadBytes)

	result, err := svc.UploadProfilePicture(context.Background(), userID, &Upload{
		FileName:    "pic.png",
		ContentType: "image/png",
		Size:        10,
		Content:     bytes.NewReader([]byte("0123456789")),
	})

	assert.Equal(t, apperrors.ErrObjectStoreWrite, err)
	assert.Nil(t, result)
	// A failed write must not commit any image path.
	mockRepo.AssertNotCalled(t, "UpdateImagePath", mock.Anything, mock.Anything, mock.Anything)
}

func TestProfileService_UploadProfilePicture_ImagePathSaveFailure(t *testing.T) {
	userID := uuid.New()

	mockRepo := new(MockUserRepository)
	mockStore := new(MockObjectStore)
	mockStore.On("Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	mockRepo.On("UpdateImagePath", mock.Anything, userID, mock.Anything).Return(errors.New("db down"))

	svc := NewProfileService(mockRepo, mockStore, nil, testMaxUploadBytes)

	result, err := svc.UploadProfilePicture(context.Background(), userID, &Upload{
		FileName:    "pic.png",
		ContentType: "image/png",
		Size:        10,
		Content:     bytes.NewReader([]byte("0123456789")),
	})

	// The object is written but unreferenced: an accepted orphan.
	assert.Equal(t, apperrors.ErrImagePathSave, err)
	assert.Nil(t, result)
	mockStore.AssertCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	mockStore.AssertNotCalled(t, "ResolveURL", mock.Anything, mock.Anything)
}

func TestProfileService_GetProfilePictureURL(t *testing.T) {
	userID := uuid.New()
	imagePath := userID.String() + "/1700000000000_pic.png"

	tests := []struct {
		name          string
		setupMocks    func(*MockUserRepository, *MockObjectStore)
		expectedURL   string
		expectedError error
	}{
		{
			name: "user has a picture",
			setupMocks: func(mRepo *MockUserRepository, mStore *MockObjectStore) {
				mRepo.On("FindByID", mock.Anything, userID).Return(&model.User{
					ID:        userID,
					ImagePath: &imagePath,
				}, nil)
				mStore.On("ResolveURL", mock.Anything, imagePath).Return("https://cdn.example.com/signed", nil)
			},
			expectedURL: "https://cdn.example.com/signed",
		},
		{
			name: "user has no picture",
			setupMocks: func(mRepo *MockUserRepository, mStore *MockObjectStore) {
				mRepo.On("FindByID", mock.Anything, userID).Return(&model.User{ID: userID}, nil)
			},
			expectedError: apperrors.ErrProfilePicNotFound,
		},
		{
			name: "user does not exist",
			setupMocks: func(mRepo *MockUserRepository, mStore *MockObjectStore) {
				mRepo.On("FindByID", mock.Anything, userID).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrProfilePicNotFound,
		},
		{
			name: "url resolution fails",
			setupMocks: func(mRepo *MockUserRepository, mStore *MockObjectStore) {
				mRepo.On("FindByID", mock.Anything, userID).Return(&model.User{
					ID:        userID,
					ImagePath: &imagePath,
				}, nil)
				mStore.On("ResolveURL", mock.Anything, imagePath).Return("", errors.New("presign failed"))
			},
			expectedError: apperrors.ErrURLResolve,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			mockStore := new(MockObjectStore)
			tt.setupMocks(mockRepo, mockStore)

			svc := NewProfileService(mockRepo, mockStore, nil, testMaxUploadBytes)

			url, err := svc.GetProfilePictureURL(context.Background(), userID)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
				assert.Empty(t, url)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedURL, url)
			}

			mockRepo.AssertExpectations(t)
			mockStore.AssertExpectations(t)
		})
	}
}

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"pic 1.png", "pic_1.png"},
		{"../../etc/passwd", ".._.._etc_passwd"},
		{"héllo wörld.jpg", "h_llo_w_rld.jpg"},
		{"normal-name_1.webp", "normal-name_1.webp"},
		{"", "upload"},
		{"///", "_"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, sanitizeFileName(tt.in))
		})
	}
}
