package catalog

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Upload directories, relative to the media root
const (
	ActorImageDir = "actors"
	PosterDir     = "movie"
	MovieShotDir  = "movie_shots"
)

// ImageRef is a reference to a stored image, relative to the media root.
// Only the reference is kept in the catalog; the bytes live elsewhere.
type ImageRef string

// UploadPath builds a fresh reference for a file uploaded into dir. The
// name is reduced to its base and prefixed with a random UUID so that two
// uploads of "poster.jpg" never collide.
func UploadPath(dir, filename string) ImageRef {
	name := sanitizeFilename(filename)
	if name == "" {
		name = "image"
	}
	return ImageRef(path.Join(dir, uuid.NewString()+"_"+name))
}

// IsZero reports whether no image is set
func (r ImageRef) IsZero() bool { return r == "" }

func (r ImageRef) String() string { return string(r) }

// Dir returns the upload directory part of the reference
func (r ImageRef) Dir() string {
	if r == "" {
		return ""
	}
	return path.Dir(string(r))
}

// URL resolves the reference against the public media URL prefix
func (r ImageRef) URL(mediaURL string) string {
	if r == "" {
		return ""
	}
	return strings.TrimSuffix(mediaURL, "/") + "/" + strings.TrimPrefix(string(r), "/")
}

// Path resolves the reference to a location under the local media root
func (r ImageRef) Path(mediaRoot string) string {
	if r == "" {
		return ""
	}
	return filepath.Join(mediaRoot, filepath.FromSlash(path.Clean("/"+string(r))))
}

func sanitizeFilename(filename string) string {
	base := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	if base == "." || base == "/" {
		return ""
	}

	var b strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteByte('_')
		}
	}
	return strings.Trim(b.String(), ".")
}
