package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStringRepresentations(t *testing.T) {
	movie := Movie{Title: "Inception"}

	tests := []struct {
		name string
		v    interface{ String() string }
		want string
	}{
		{"category", Category{Name: "Films"}, "Films"},
		{"actor", Actor{Name: "Tom Hardy"}, "Tom Hardy"},
		{"genre", Genre{Name: "Drama"}, "Drama"},
		{"movie", movie, "Inception"},
		{"movie shot", MovieShot{Title: "Hallway fight"}, "Hallway fight"},
		{"rating star", RatingStar{Value: 7}, "7"},
		{"zero star", RatingStar{}, "0"},
		{"rating", Rating{Star: RatingStar{Value: 7}, Movie: movie}, "7 - Inception"},
		{"review", Review{Name: "Ann", Movie: movie}, "Ann - Inception"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.v.String())
		})
	}
}

func TestAbsoluteURL(t *testing.T) {
	assert.Equal(t, "/movie/inception/", Movie{URL: "inception"}.AbsoluteURL())
	assert.Equal(t, "/actor/Tom%20Hardy/", Actor{Name: "Tom Hardy"}.AbsoluteURL())
	assert.Equal(t, "/actor/AC%2FDC/", Actor{Name: "AC/DC"}.AbsoluteURL())
}

func TestIsReply(t *testing.T) {
	parent := uint(1)
	assert.False(t, Review{}.IsReply())
	assert.True(t, Review{ParentID: &parent}.IsReply())
}

func TestModelsOrder(t *testing.T) {
	models := Models()
	assert.Len(t, models, 8)
	assert.IsType(t, &Category{}, models[0])
	assert.IsType(t, &Review{}, models[len(models)-1])
}
