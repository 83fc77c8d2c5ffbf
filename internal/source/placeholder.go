package source

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/png-tools-mcp/internal/imaging"
)

// Placeholder kinds.
const (
	// KindShapes is a 400x300 board of coloured blocks with text labels,
	// chosen so the weighted and average luminance schemes visibly differ.
	KindShapes = "shapes"

	// KindTest is a 640x480 test card: red frame, blue diagonals, green
	// ellipse and a caption.
	KindTest = "test"
)

// Kinds lists the valid placeholder kinds.
var Kinds = []string{KindShapes, KindTest}

var (
	white  = mustHex("#FFFFFF")
	black  = mustHex("#000000")
	red    = mustHex("#FF0000")
	green  = mustHex("#008000")
	blue   = mustHex("#0000FF")
	yellow = mustHex("#FFFF00")
	gray   = mustHex("#808080")
)

func mustHex(s string) color.NRGBA {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}

// PlaceholderProvider draws a synthetic image. Zero Width or Height selects
// the kind's natural size.
type PlaceholderProvider struct {
	Kind   string
	Width  int
	Height int
}

// Name returns "placeholder".
func (p PlaceholderProvider) Name() string { return "placeholder" }

// Provide draws the image. It only fails on invalid settings.
func (p PlaceholderProvider) Provide(ctx context.Context) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Placeholder(p.Kind, p.Width, p.Height)
}

// Placeholder draws an image of the given kind ("" means shapes).
func Placeholder(kind string, width, height int) (*image.NRGBA, error) {
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("invalid placeholder size %dx%d", width, height)
	}

	var render func(w, h int) *image.NRGBA
	switch strings.ToLower(kind) {
	case "", KindShapes:
		render, width, height = drawShapes, orDefault(width, 400), orDefault(height, 300)
	case KindTest:
		render, width, height = drawTestCard, orDefault(width, 640), orDefault(height, 480)
	default:
		return nil, fmt.Errorf("unknown placeholder kind %q (valid: %s)", kind, strings.Join(Kinds, ", "))
	}
	if err := imaging.CheckSize(width, height); err != nil {
		return nil, fmt.Errorf("placeholder: %w", err)
	}
	return render(width, height), nil
}

func orDefault(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}

func blank(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	fillRect(img, img.Bounds(), white)
	return img
}

// drawShapes lays the board out on a 400x300 grid and scales it to w x h.
func drawShapes(w, h int) *image.NRGBA {
	img := blank(w, h)
	sx := func(x int) int { return x * w / 400 }
	sy := func(y int) int { return y * h / 300 }
	at := func(x0, y0, x1, y1 int) image.Rectangle { return box(sx(x0), sy(y0), sx(x1), sy(y1)) }

	fillRect(img, at(50, 50, 150, 150), red)
	fillEllipse(img, at(180, 50, 280, 150), green)
	fillRect(img, at(50, 180, 350, 220), blue)
	fillRect(img, at(50, 240, 350, 280), yellow)
	fillRect(img, at(300, 50, 380, 130), white)
	fillRect(img, at(320, 180, 380, 240), gray)

	drawText(img, sx(60), sy(65), "Red", white)
	drawText(img, sx(195), sy(65), "Green", black)
	drawText(img, sx(60), sy(195), "Blue", white)
	drawText(img, sx(60), sy(250), "Yellow", black)
	return img
}

func drawTestCard(w, h int) *image.NRGBA {
	img := blank(w, h)

	strokeRect(img, box(50, 50, w-50, h-50), 5, red)
	line(img, 0, 0, w, h, 3, blue)
	line(img, 0, h, w, 0, 3, blue)
	strokeEllipse(img, box(w/4, h/4, 3*w/4, 3*h/4), 4, green)

	const caption = "TEST IMAGE"
	x := max(w/2-textWidth(caption)/2, 0)
	y := max(h/2-20, 0)
	drawText(img, x, y, caption, black)
	return img
}
