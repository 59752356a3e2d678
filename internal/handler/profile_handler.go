package handler

import (
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"portfolio-backend/internal/auth"
	apperrors "portfolio-backend/internal/errors"
	"portfolio-backend/internal/service"
)

// ProfileHandler handles profile picture endpoints.
type ProfileHandler struct {
	profileService service.ProfileService
}

// NewProfileHandler creates a new profile handler.
func NewProfileHandler(profileService service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// Upload godoc
// @Summary Upload a profile picture
// @Tags profile
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Image file (jpeg, png, webp, gif), max 5 MiB"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /upload [post]
func (h *ProfileHandler) Upload(c echo.Context) error {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
			Message: "Invalid or expired token",
			Code:    "TOKEN_INVALID",
		})
	}
	claims, ok := token.Claims.(*auth.Claims)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
			Message: "Invalid or expired token",
			Code:    "TOKEN_INVALID",
		})
	}
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
			Message: "Invalid or expired token",
			Code:    "TOKEN_INVALID",
		})
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(apperrors.ErrNoFile)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	src, err := fileHeader.Open()
	if err != nil {
		c.Logger().Errorf("open uploaded file: %v", err)
		httpErr := apperrors.MapErrorToHTTP(apperrors.ErrNoFile)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	defer src.Close()

	result, err := h.profileService.UploadProfilePicture(c.Request().Context(), userID, &service.Upload{
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Size:        fileHeader.Size,
		Content:     src,
	})
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		if httpErr.Code == "INTERNAL_ERROR" {
			c.Logger().Errorf("upload failed: %v", err)
			httpErr.Message = "Server error during upload"
		}
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message":   "Image uploaded successfully",
		"imageUrl":  result.ImageURL,
		"imagePath": result.ImagePath,
	})
}

// GetProfilePic godoc
// @Summary Get a user's profile picture URL
// @Tags profile
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /profile-pic/{userId} [get]
func (h *ProfileHandler) GetProfilePic(c echo.Context) error {
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(apperrors.ErrProfilePicNotFound)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	url, err := h.profileService.GetProfilePictureURL(c.Request().Context(), userID)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		if httpErr.Code == "INTERNAL_ERROR" {
			c.Logger().Errorf("profile pic lookup failed: %v", err)
			httpErr.Message = "Server error fetching image"
		}
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]string{"imageUrl": url})
}
