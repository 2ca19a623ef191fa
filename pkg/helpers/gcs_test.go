package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublicURL(t *testing.T) {
	assert.Equal(t, "https://storage.googleapis.com/camps/photos/photo_1.jpg", PublicURL("camps", "photos/photo_1.jpg"))
	assert.Equal(t, "https://storage.googleapis.com/camps/photos/a%20b.png", PublicURL("camps", "photos/a b.png"))
}
