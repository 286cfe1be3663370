package imaging

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDelivery(t *testing.T, folder string) *CloudinaryDelivery {
	t.Helper()
	d, err := NewCloudinaryDeliveryFromParams("demo", "key", "secret", folder, nil)
	require.NoError(t, err)
	return d
}

func TestPassthrough(t *testing.T) {
	assert.Equal(t, "/hero/hero-image.jpeg", Passthrough{}.URL("/hero/hero-image.jpeg", Hints{Quality: 95}))
}

func TestTransformation(t *testing.T) {
	tests := []struct {
		hints Hints
		want  string
	}{
		{Hints{Quality: 95, Width: 640}, "q_95,w_640"},
		{Hints{Quality: 95}, "q_95"},
		{Hints{Width: 1920}, "w_1920"},
		{Hints{}, ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Transformation(tt.hints))
	}
}

func TestCloudinaryDelivery_URL(t *testing.T) {
	d := newTestDelivery(t, "")

	url := d.URL("/products/pique-polo/pique-polo-1.jpg", Hints{Quality: 95, Width: 640})

	assert.True(t, strings.HasPrefix(url, "https://"), url)
	assert.Contains(t, url, "res.cloudinary.com/demo/image/upload/")
	assert.Contains(t, url, "q_95,w_640")
	assert.True(t, strings.HasSuffix(url, "products/pique-polo/pique-polo-1.jpg"), url)
	assert.NotContains(t, url, "?", "no analytics query on delivery URLs")
}

func TestCloudinaryDelivery_Folder(t *testing.T) {
	d := newTestDelivery(t, "/storefront/")

	assert.Equal(t, "storefront/hero/hero-image.jpeg", d.PublicID("/hero/hero-image.jpeg"))
	assert.Contains(t, d.URL("/hero/hero-image.jpeg", Hints{}), "storefront/hero/hero-image.jpeg")
}

func TestCloudinaryDelivery_AbsoluteAndEmptyPassThrough(t *testing.T) {
	d := newTestDelivery(t, "")

	assert.Equal(t, "https://cdn.example.com/a.jpg", d.URL("https://cdn.example.com/a.jpg", Hints{Quality: 95}))
	assert.Equal(t, "", d.URL("", Hints{Quality: 95}))
}
