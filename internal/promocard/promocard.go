package promocard

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"os"
	"time"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/jung-kurt/gofpdf"
	qrcode "github.com/skip2/go-qrcode"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"

	"github.com/promojour/promojour/storage/db"
)

const (
	cardSize  = 1080
	imageArea = 640
	qrSize    = 180
)

// Generator renders shareable promo cards (PNG) and printable in-store
// flyers (PDF) for promotions.
type Generator struct {
	httpClient *http.Client
	titleFace  font.Face
	bodyFace   font.Face
}

func NewGenerator() *Generator {
	g := &Generator{
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}

	// An optional TTF gives the card proper typography; without it gg falls
	// back to its built-in face.
	if fontPath := os.Getenv("PROMO_CARD_FONT"); fontPath != "" {
		if data, err := os.ReadFile(fontPath); err == nil {
			if parsed, err := truetype.Parse(data); err == nil {
				g.titleFace = truetype.NewFace(parsed, &truetype.Options{Size: 64})
				g.bodyFace = truetype.NewFace(parsed, &truetype.Options{Size: 36})
			}
		}
	}
	return g
}

// RenderPNG draws a square promo card: the promotion image on top, title and
// price below, and a QR code to the landing page in the corner.
func (g *Generator) RenderPNG(ctx context.Context, promo db.Promotion, landingURL string) ([]byte, error) {
	dc := gg.NewContext(cardSize, cardSize)

	dc.SetHexColor("#1F2937")
	dc.Clear()

	if promo.ImageUrl.Valid && promo.ImageUrl.String != "" {
		img, err := g.fetchImage(ctx, promo.ImageUrl.String)
		if err != nil {
			return nil, fmt.Errorf("fetch promotion image: %w", err)
		}
		dc.DrawImage(scaleToWidth(img, cardSize, imageArea), 0, 0)
	}

	dc.SetHexColor("#FFFFFF")
	if g.titleFace != nil {
		dc.SetFontFace(g.titleFace)
	}
	dc.DrawStringWrapped(promo.Title, 60, imageArea+60, 0, 0, cardSize-120, 1.3, gg.AlignLeft)

	if g.bodyFace != nil {
		dc.SetFontFace(g.bodyFace)
	}
	if promo.PriceCents.Valid {
		dc.SetHexColor("#FBBF24")
		dc.DrawString(fmt.Sprintf("Now $%d.%02d", promo.PriceCents.Int64/100, promo.PriceCents.Int64%100), 60, cardSize-80)
	}

	if landingURL != "" {
		qr, err := qrcode.New(landingURL, qrcode.Medium)
		if err != nil {
			return nil, fmt.Errorf("generate qr code: %w", err)
		}
		dc.DrawImage(qr.Image(qrSize), cardSize-qrSize-40, cardSize-qrSize-40)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode card: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderFlyerPDF builds a letter-format flyer for printing at the store.
func (g *Generator) RenderFlyerPDF(promo db.Promotion, store db.Store, landingURL string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "Letter", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 32)
	pdf.MultiCell(0, 14, promo.Title, "", "C", false)
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "", 14)
	pdf.MultiCell(0, 7, store.Name, "", "C", false)
	pdf.Ln(8)

	if promo.Description.Valid && promo.Description.String != "" {
		pdf.SetFont("Helvetica", "", 16)
		pdf.MultiCell(0, 8, promo.Description.String, "", "C", false)
		pdf.Ln(8)
	}

	if promo.PriceCents.Valid {
		pdf.SetFont("Helvetica", "B", 40)
		pdf.SetTextColor(220, 38, 38)
		pdf.MultiCell(0, 18, fmt.Sprintf("$%d.%02d", promo.PriceCents.Int64/100, promo.PriceCents.Int64%100), "", "C", false)
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(10)
	}

	if landingURL != "" {
		png, err := qrcode.Encode(landingURL, qrcode.Medium, 256)
		if err != nil {
			return nil, fmt.Errorf("generate qr code: %w", err)
		}
		opts := gofpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader("flyer-qr", opts, bytes.NewReader(png))
		pageWidth, _ := pdf.GetPageSize()
		pdf.ImageOptions("flyer-qr", (pageWidth-50)/2, pdf.GetY(), 50, 50, false, opts, 0, "")

		pdf.SetY(pdf.GetY() + 55)
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 5, "Scan for details", "", "C", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render flyer: %w", err)
	}
	return buf.Bytes(), nil
}

func (g *Generator) fetchImage(ctx context.Context, imageURL string) (image.Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	img, _, err := image.Decode(resp.Body)
	return img, err
}

func scaleToWidth(img image.Image, width, height int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Over, nil)
	return dst
}
