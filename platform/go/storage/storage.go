package storage

import (
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/zenGate-Global/tenantgate/platform/go/tenant"
)

// ObjectLocation describes where a blob should live.
type ObjectLocation struct {
	Bucket   string
	FullPath string
}

// ResolveObjectLocation combines a tenant base prefix and a logical key into a bucket/path pair.
//   - bucket comes from deployment configuration.
//   - basePrefix is tenant.BuildBasePrefix output (e.g. "tenants/acme-12345678/").
//   - logicalKey is a tenant-relative key such as "logos/<uuid>.png".
func ResolveObjectLocation(basePrefix, bucket, logicalKey string) (ObjectLocation, error) {
	bucket = strings.TrimSpace(bucket)
	if bucket == "" {
		return ObjectLocation{}, fmt.Errorf("bucket is required")
	}
	key := strings.TrimSpace(logicalKey)
	key = strings.TrimPrefix(key, "/")
	if key == "" {
		return ObjectLocation{}, fmt.Errorf("logical key is required")
	}
	if strings.Contains(key, "..") {
		return ObjectLocation{}, fmt.Errorf("logical key must not contain '..'")
	}

	prefix := strings.TrimSpace(basePrefix)
	if prefix == "" {
		return ObjectLocation{}, fmt.Errorf("tenant base prefix is missing")
	}
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}

	return ObjectLocation{Bucket: bucket, FullPath: prefix + key}, nil
}

var imageExtensions = map[string]string{
	"image/png":     ".png",
	"image/jpeg":    ".jpg",
	"image/webp":    ".webp",
	"image/svg+xml": ".svg",
}

// LogoKey returns a fresh tenant-relative key for a logo of the given content type.
func LogoKey(contentType string) (string, error) {
	return ImageKey("logos", contentType)
}

// ImageKey returns a fresh key under folder for an image of the given content type.
func ImageKey(folder, contentType string) (string, error) {
	ext, ok := imageExtensions[strings.ToLower(strings.TrimSpace(contentType))]
	if !ok {
		return "", fmt.Errorf("unsupported image content type %q", contentType)
	}
	folder = strings.Trim(strings.TrimSpace(folder), "/")
	if folder == "" || strings.Contains(folder, "..") {
		return "", fmt.Errorf("image folder %q is invalid", folder)
	}
	return path.Join(folder, uuid.NewString()+ext), nil
}

// OwnedBy reports whether fullPath lives under the tenant's prefix.
func OwnedBy(fullPath, slug string, tenantID uuid.UUID) bool {
	prefix := tenant.BuildBasePrefix(slug, tenantID)
	return strings.HasPrefix(fullPath, prefix) && !strings.Contains(fullPath, "..") && len(fullPath) > len(prefix)
}
