package promocard

import (
	"bytes"
	"context"
	"database/sql"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/promojour/promojour/storage/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPromotion() db.Promotion {
	return db.Promotion{
		ID:          "promo-1",
		Title:       "Two for one",
		Description: sql.NullString{String: "This weekend only.", Valid: true},
		PriceCents:  sql.NullInt64{Int64: 1999, Valid: true},
	}
}

func TestRenderPNGWithoutImage(t *testing.T) {
	g := NewGenerator()

	data, err := g.RenderPNG(context.Background(), testPromotion(), "https://shop.example.com/promo-1")
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, cardSize, img.Bounds().Dx())
	assert.Equal(t, cardSize, img.Bounds().Dy())
}

func TestRenderPNGFetchesPromotionImage(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 10, 10))
	for x := 0; x < 10; x++ {
		for y := 0; y < 10; y++ {
			src.Set(x, y, color.RGBA{R: 255, A: 255})
		}
	}
	var encoded bytes.Buffer
	require.NoError(t, png.Encode(&encoded, src))

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(encoded.Bytes())
	}))
	defer server.Close()

	promo := testPromotion()
	promo.ImageUrl = sql.NullString{String: server.URL + "/promo.png", Valid: true}

	g := NewGenerator()
	data, err := g.RenderPNG(context.Background(), promo, "https://shop.example.com/promo-1")
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)

	// The red source image was scaled into the top area of the card.
	r, _, _, _ := img.At(cardSize/2, imageArea/2).RGBA()
	assert.Greater(t, r, uint32(0x8000))
}

func TestRenderPNGFailsOnUnreachableImage(t *testing.T) {
	promo := testPromotion()
	promo.ImageUrl = sql.NullString{String: "http://127.0.0.1:0/nope.png", Valid: true}

	g := NewGenerator()
	_, err := g.RenderPNG(context.Background(), promo, "")
	assert.Error(t, err)
}

func TestRenderFlyerPDF(t *testing.T) {
	g := NewGenerator()
	store := db.Store{Name: "Main Street"}

	data, err := g.RenderFlyerPDF(testPromotion(), store, "https://shop.example.com/promo-1")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
	assert.Greater(t, len(data), 1000)
}
