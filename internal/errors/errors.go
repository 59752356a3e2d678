package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrUserAlreadyExists is returned when signing up with a taken email.
	ErrUserAlreadyExists = errors.New("User already exists")
	// ErrInvalidCredentials is returned for unknown email or wrong password alike.
	ErrInvalidCredentials = errors.New("Invalid email or password")
	// ErrNoFile is returned when an upload request carries no file part.
	ErrNoFile = errors.New("No file received. Did you select a file?")
	// ErrUnsupportedFileType is returned for non-image uploads.
	ErrUnsupportedFileType = errors.New("Only images (jpeg, jpg, png, webp, gif) are allowed")
	// ErrFileTooLarge is returned when the declared upload size exceeds the limit.
	ErrFileTooLarge = errors.New("File exceeds the maximum allowed size")
	// ErrProfilePicNotFound is returned when a user has no stored picture.
	ErrProfilePicNotFound = errors.New("Profile picture not found")
	// ErrObjectStoreWrite is returned when the object store rejects the upload.
	ErrObjectStoreWrite = errors.New("Error uploading image to storage")
	// ErrImagePathSave is returned when the image reference cannot be persisted.
	// The uploaded object is left as an orphan; there is no compensating delete.
	ErrImagePathSave = errors.New("Error saving image path")
	// ErrURLResolve is returned when a client-usable URL cannot be produced.
	ErrURLResolve = errors.New("Error resolving image URL")
	// ErrMailDelivery is returned when the mail transport rejects the message.
	ErrMailDelivery = errors.New("Failed to send message")
)

// ErrorResponse represents a standardized error response body.
type ErrorResponse struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Message: e.Message,
		Code:    e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Unknown errors collapse
// to a generic 500; their detail is only ever logged server side.
func MapErrorToHTTP(err error) *HTTPError {
	switch err {
	case ErrUserAlreadyExists:
		return NewHTTPError(http.StatusConflict, err.Error(), "USER_ALREADY_EXISTS")
	case ErrInvalidCredentials:
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case ErrNoFile:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "NO_FILE")
	case ErrUnsupportedFileType:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "UNSUPPORTED_FILE_TYPE")
	case ErrFileTooLarge:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "FILE_TOO_LARGE")
	case ErrProfilePicNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "PROFILE_PIC_NOT_FOUND")
	case ErrObjectStoreWrite:
		return NewHTTPError(http.StatusInternalServerError, err.Error(), "STORAGE_WRITE_FAILED")
	case ErrImagePathSave:
		return NewHTTPError(http.StatusInternalServerError, err.Error(), "IMAGE_PATH_SAVE_FAILED")
	case ErrURLResolve:
		return NewHTTPError(http.StatusInternalServerError, err.Error(), "URL_RESOLVE_FAILED")
	case ErrMailDelivery:
		return NewHTTPError(http.StatusInternalServerError, err.Error(), "MAIL_DELIVERY_FAILED")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
