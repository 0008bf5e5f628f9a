package s3

import (
	"fmt"
	"net/url"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/anmolkhurana490/Himalayan-Nest-Real-Estate-sub000/internal/listing/domain"
)

const (
	// uploadSegment precedes the asset key in every public URL.
	uploadSegment = "upload"
	tokenLength   = 12
)

var versionSegment = regexp.MustCompile(`^v\d+$`)

// NewAssetKey returns {folder}/{prefix}_{unixMillis}_{token}.
func NewAssetKey(folder, prefix string, now time.Time) string {
	if prefix == "" {
		prefix = "asset"
	}
	name := fmt.Sprintf("%s_%d_%s", prefix, now.UnixMilli(), randomToken())
	folder = strings.Trim(folder, "/")
	if folder == "" {
		return name
	}
	return folder + "/" + name
}

// randomToken is a lowercase alphanumeric string taken from a random UUID.
func randomToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:tokenLength]
}

// objectName maps an asset key to its name inside the bucket.
func objectName(key string) string {
	return uploadSegment + "/" + key
}

// KeyFromURL extracts the asset key from a public URL: everything after the
// "upload" segment, skipping an optional version segment, without the
// extension of the last segment.
func KeyFromURL(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrKeyExtraction, err)
	}
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")

	idx := -1
	for i, s := range segments {
		if s == uploadSegment {
			idx = i
			break
		}
	}
	if idx < 0 {
		return "", fmt.Errorf("%w: no %q segment in %s", domain.ErrKeyExtraction, uploadSegment, rawURL)
	}

	rest := segments[idx+1:]
	if len(rest) > 0 && versionSegment.MatchString(rest[0]) {
		rest = rest[1:]
	}
	if len(rest) == 0 || rest[len(rest)-1] == "" {
		return "", fmt.Errorf("%w: nothing after %q in %s", domain.ErrKeyExtraction, uploadSegment, rawURL)
	}

	last := rest[len(rest)-1]
	rest[len(rest)-1] = strings.TrimSuffix(last, path.Ext(last))
	return strings.Join(rest, "/"), nil
}
