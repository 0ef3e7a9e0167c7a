// Package mediastore wraps the object-storage collaborator behind a small
// interface so the media service can be tested without network calls.
package mediastore

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

type UploadParams struct {
	Folder         string
	ResourceType   string // "image" or "video"
	Transformation string // quality/format hints only, no cropping
}

type UploadResult struct {
	PublicID     string
	URL          string
	SecureURL    string
	Format       string
	ResourceType string
	Bytes        int64
	Width        int
	Height       int
}

type Client interface {
	Upload(ctx context.Context, file io.Reader, params UploadParams) (*UploadResult, error)
	Destroy(ctx context.Context, publicID, resourceType string) error
}

type cloudinaryClient struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinaryClient(cloudName, apiKey, apiSecret string) (Client, error) {
	if cloudName == "" || apiKey == "" || apiSecret == "" {
		return nil, errors.New("cloudinary credentials are not configured")
	}

	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary: %w", err)
	}

	return &cloudinaryClient{cld: cld}, nil
}

func (c *cloudinaryClient) Upload(ctx context.Context, file io.Reader, params UploadParams) (*UploadResult, error) {
	resp, err := c.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:         params.Folder,
		ResourceType:   params.ResourceType,
		Transformation: params.Transformation,
	})
	if err != nil {
		return nil, fmt.Errorf("cloudinary upload failed: %w", err)
	}

	return &UploadResult{
		PublicID:     resp.PublicID,
		URL:          resp.URL,
		SecureURL:    resp.SecureURL,
		Format:       resp.Format,
		ResourceType: resp.ResourceType,
		Bytes:        int64(resp.Bytes),
		Width:        resp.Width,
		Height:       resp.Height,
	}, nil
}

// Destroy removes the remote asset. The store's answer is authoritative for the
// asset lifecycle; callers must not delete catalog rows when this fails.
func (c *cloudinaryClient) Destroy(ctx context.Context, publicID, resourceType string) error {
	resp, err := c.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     publicID,
		ResourceType: resourceType,
	})
	if err != nil {
		return fmt.Errorf("cloudinary destroy failed: %w", err)
	}
	if resp.Result != "ok" && resp.Result != "not found" {
		return fmt.Errorf("cloudinary destroy returned %q", resp.Result)
	}
	return nil
}
