package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// avatarTransformation crops to the face, rounds the result and lets
// Cloudinary pick the delivery format.
const avatarTransformation = "c_crop,g_face,h_400,w_400/r_max/f_auto"

// AvatarResult carries both variants of an uploaded profile picture.
type AvatarResult struct {
	Original string
	Round    string
}

// ImageStorage defines the contract for the external image hosting and
// transformation provider (Cloudinary implementation).
type ImageStorage interface {
	// UploadAvatar fetches the image behind sourceURL into the user's
	// folder and derives the face-cropped, rounded variant.
	UploadAvatar(ctx context.Context, userID string, sourceURL string) (*AvatarResult, error)
	// UploadIllustration stores generated image bytes under the user's
	// folder with the given name and returns the delivery URL.
	UploadIllustration(ctx context.Context, userID string, name string, image io.Reader) (string, error)
	// DeleteImage deletes an image from storage using its URL.
	DeleteImage(ctx context.Context, fileURL string) error
}

type cloudinaryStorage struct {
	cld    *cloudinary.Cloudinary
	folder string
}

// NewCloudinaryStorage creates the Cloudinary-backed ImageStorage.
// It expects CLOUDINARY_URL (or the individual CLOUDINARY_* variables)
// to be configured in the environment (see Cloudinary Go SDK docs).
func NewCloudinaryStorage(folder string) (ImageStorage, error) {
	// cloudinary.New() reads CLOUDINARY_URL from the environment.
	cld, err := cloudinary.New()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary client: %w", err)
	}

	// Ensure HTTPS URLs by default.
	cld.Config.URL.Secure = true

	return &cloudinaryStorage{cld: cld, folder: folder}, nil
}

func (s *cloudinaryStorage) UploadAvatar(ctx context.Context, userID string, sourceURL string) (*AvatarResult, error) {
	if s == nil || s.cld == nil {
		return nil, fmt.Errorf("cloudinary storage is not initialized")
	}

	params := uploader.UploadParams{
		PublicID:  "pfp",
		Folder:    fmt.Sprintf("%s/%s", s.folder, userID),
		Overwrite: api.Bool(true),
		Eager:     avatarTransformation,
	}

	resp, err := s.cld.Upload.Upload(ctx, sourceURL, params)
	if err != nil {
		return nil, fmt.Errorf("failed to upload avatar to cloudinary: %w", err)
	}
	if resp.SecureURL == "" {
		return nil, fmt.Errorf("cloudinary upload succeeded but secure URL is empty")
	}
	if len(resp.Eager) == 0 || resp.Eager[0].SecureURL == "" {
		return nil, fmt.Errorf("cloudinary did not return the transformed avatar")
	}

	return &AvatarResult{
		Original: resp.SecureURL,
		Round:    resp.Eager[0].SecureURL,
	}, nil
}

func (s *cloudinaryStorage) UploadIllustration(ctx context.Context, userID string, name string, image io.Reader) (string, error) {
	if s == nil || s.cld == nil {
		return "", fmt.Errorf("cloudinary storage is not initialized")
	}

	params := uploader.UploadParams{
		PublicID:       name,
		Folder:         fmt.Sprintf("%s/%s", s.folder, userID),
		UniqueFilename: api.Bool(false),
	}

	resp, err := s.cld.Upload.Upload(ctx, image, params)
	if err != nil {
		return "", fmt.Errorf("failed to upload illustration to cloudinary: %w", err)
	}
	if resp.SecureURL == "" {
		return "", fmt.Errorf("cloudinary upload succeeded but secure URL is empty")
	}

	return resp.SecureURL, nil
}

// DeleteImage deletes an image from Cloudinary.
func (s *cloudinaryStorage) DeleteImage(ctx context.Context, fileURL string) error {
	if s == nil || s.cld == nil {
		return fmt.Errorf("cloudinary storage is not initialized")
	}

	publicID := s.extractPublicID(fileURL)
	if publicID == "" {
		return fmt.Errorf("could not extract public ID from URL: %s", fileURL)
	}

	// Invalidate: true helps to clear CDN cache
	params := uploader.DestroyParams{
		PublicID:   publicID,
		Invalidate: api.Bool(true),
	}

	resp, err := s.cld.Upload.Destroy(ctx, params)
	if err != nil {
		return fmt.Errorf("failed to delete image from cloudinary: %w", err)
	}

	if resp.Result != "ok" && resp.Result != "not found" {
		return fmt.Errorf("cloudinary destroy api returned result: %s", resp.Result)
	}

	return nil
}

// extractPublicID attempts to extract the public ID from a Cloudinary URL.
// Example: https://res.cloudinary.com/demo/image/upload/v123456789/folder/sample.jpg -> folder/sample
func (s *cloudinaryStorage) extractPublicID(fileURL string) string {
	u, err := url.Parse(fileURL)
	if err != nil {
		return ""
	}

	// Path is roughly /<cloud_name>/image/upload/v<version>/<folder>/<file>.<ext>
	parts := strings.Split(u.Path, "/")
	uploadIndex := -1
	for i, p := range parts {
		if p == "upload" {
			uploadIndex = i
			break
		}
	}

	if uploadIndex == -1 || uploadIndex+1 >= len(parts) {
		return ""
	}

	relevantParts := parts[uploadIndex+1:]

	// Cloudinary versions start with 'v' followed by numbers.
	if len(relevantParts) > 0 && strings.HasPrefix(relevantParts[0], "v") {
		relevantParts = relevantParts[1:]
	}

	if len(relevantParts) == 0 {
		return ""
	}

	publicIDWithExt := strings.Join(relevantParts, "/")
	ext := filepath.Ext(publicIDWithExt)
	return strings.TrimSuffix(publicIDWithExt, ext)
}
