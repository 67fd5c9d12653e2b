package catalog

import (
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

var uploadPattern = regexp.MustCompile(`^actors/[0-9a-f-]{36}_my_photo.jpg$`)

func TestUploadPath(t *testing.T) {
	ref := UploadPath(ActorImageDir, "../../etc/my photo.jpg")
	assert.Regexp(t, uploadPattern, ref.String())
	assert.Equal(t, "actors", ref.Dir())

	assert.NotEqual(t, UploadPath(PosterDir, "poster.png"), UploadPath(PosterDir, "poster.png"))
}

func TestUploadPathSanitizes(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"poster.png", "poster.png"},
		{`C:\Users\me\poster.png`, "poster.png"},
		{"постер.jpg", "jpg"},
		{"...", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, sanitizeFilename(tt.in))
		})
	}

	assert.Regexp(t, `^movie/[0-9a-f-]{36}_image$`, UploadPath(PosterDir, "").String())
}

func TestImageRefURL(t *testing.T) {
	ref := ImageRef("movie/abc_poster.png")

	assert.Equal(t, "/media/movie/abc_poster.png", ref.URL("/media/"))
	assert.Equal(t, "https://cdn.example.com/media/movie/abc_poster.png", ref.URL("https://cdn.example.com/media"))
	assert.Equal(t, "", ImageRef("").URL("/media/"))
	assert.True(t, ImageRef("").IsZero())
}

func TestImageRefPath(t *testing.T) {
	root := filepath.Join("srv", "media")

	assert.Equal(t, filepath.Join(root, "movie", "abc.png"), ImageRef("movie/abc.png").Path(root))
	assert.Equal(t, filepath.Join(root, "etc", "passwd"), ImageRef("../../etc/passwd").Path(root))
	assert.Equal(t, "", ImageRef("").Path(root))
}
