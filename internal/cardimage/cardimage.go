// Package cardimage renders a generated event as a styled card image.
// Cards are drawn at 3x pixel density on a transparent background,
// themed by the user's color settings, with the description's bold
// markup honored. Fonts are embedded Go fonts, so rendering never
// depends on a network fetch.
package cardimage

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/dungeonarchitect/companion/internal/catalog"
	"github.com/dungeonarchitect/companion/internal/i18n"
	"github.com/dungeonarchitect/companion/internal/markup"
)

// ErrRender indicates the card could not be drawn or encoded.
var ErrRender = errors.New("failed to render card")

// Scale is the pixel density multiplier of exported cards.
const Scale = 3

// Card geometry in base (1x) pixels.
const (
	baseWidth  = 300
	baseHeight = 420
	baseMargin = 22
)

// defaultTheme backs any theme color that does not parse. The theme
// values are free-form strings and are not validated on save.
var defaultTheme = map[string]color.RGBA{
	"background": {R: 0x24, G: 0x1e, B: 0x35, A: 0xff},
	"accent":     {R: 0xe0, G: 0xa4, B: 0x58, A: 0xff},
	"text":       {R: 0xf2, G: 0xe9, B: 0xe4, A: 0xff},
	"border":     {R: 0x9a, G: 0x8c, B: 0x98, A: 0xff},
}

// Renderer draws event cards with a fixed theme and locale.
type Renderer struct {
	background color.RGBA
	accent     color.RGBA
	text       color.RGBA
	border     color.RGBA

	tr *i18n.Translator

	title   font.Face
	body    font.Face
	bodyB   font.Face
	caption font.Face
}

// NewRenderer creates a renderer themed by the given settings.
func NewRenderer(settings catalog.Settings) (*Renderer, error) {
	face := func(ttf []byte, size float64) (font.Face, error) {
		f, err := opentype.Parse(ttf)
		if err != nil {
			return nil, err
		}
		return opentype.NewFace(f, &opentype.FaceOptions{
			Size:    size * Scale,
			DPI:     72,
			Hinting: font.HintingFull,
		})
	}

	var err error
	r := &Renderer{
		background: themeColor(settings.Theme.Background, "background"),
		accent:     themeColor(settings.Theme.Accent, "accent"),
		text:       themeColor(settings.Theme.Text, "text"),
		border:     themeColor(settings.Theme.Border, "border"),
		tr:         i18n.New(settings.Language),
	}

	if r.title, err = face(gobold.TTF, 20); err != nil {
		return nil, fmt.Errorf("%w: title face: %v", ErrRender, err)
	}
	if r.body, err = face(goregular.TTF, 13); err != nil {
		return nil, fmt.Errorf("%w: body face: %v", ErrRender, err)
	}
	if r.bodyB, err = face(gobold.TTF, 13); err != nil {
		return nil, fmt.Errorf("%w: bold body face: %v", ErrRender, err)
	}
	if r.caption, err = face(gobold.TTF, 11); err != nil {
		return nil, fmt.Errorf("%w: caption face: %v", ErrRender, err)
	}
	return r, nil
}

// Filename returns the export file name for an event:
// event-<systemName-or-"card">-<eventID>.png.
func Filename(ev catalog.Event, systemName string) string {
	slug := slugify(systemName)
	if slug == "" {
		slug = "card"
	}
	return fmt.Sprintf("event-%s-%s.png", slug, ev.ID)
}

// RenderToFile draws the card and writes it as a PNG into dir,
// returning the file path. A partially written file is removed on
// failure.
func (r *Renderer) RenderToFile(ev catalog.Event, systemName, dir string) (string, error) {
	dc, err := r.Render(ev, systemName)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("%w: create output directory: %v", ErrRender, err)
	}

	path := filepath.Join(dir, Filename(ev, systemName))
	if err := dc.SavePNG(path); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("%w: encode png: %v", ErrRender, err)
	}
	return path, nil
}

// Render draws the card into a fresh context. The area outside the
// card's rounded rectangle stays fully transparent.
func (r *Renderer) Render(ev catalog.Event, systemName string) (*gg.Context, error) {
	width := baseWidth * Scale
	height := baseHeight * Scale
	margin := float64(baseMargin * Scale)

	dc := gg.NewContext(width, height)

	// Card body.
	w := float64(width)
	h := float64(height)
	radius := 14.0 * Scale
	dc.DrawRoundedRectangle(2*Scale, 2*Scale, w-4*Scale, h-4*Scale, radius)
	dc.SetColor(r.background)
	dc.FillPreserve()
	dc.SetColor(r.border)
	dc.SetLineWidth(2 * Scale)
	dc.Stroke()

	// Type banner.
	dc.SetFontFace(r.title)
	dc.SetColor(r.accent)
	typeLabel := r.tr.NormalizeType(ev.Type)
	if typeLabel == "" {
		typeLabel = r.tr.T("card.type")
	}
	dc.DrawStringAnchored(typeLabel, w/2, margin+14*Scale, 0.5, 0.5)

	// Accent rule under the banner.
	ruleY := margin + 30*Scale
	dc.SetLineWidth(1.5 * Scale)
	dc.DrawLine(margin, ruleY, w-margin, ruleY)
	dc.Stroke()

	// Description with bold markup.
	dc.SetColor(r.text)
	bottom := r.drawMarkup(dc, ev.Description, margin, ruleY+24*Scale, w-2*margin)

	// Footer: reward and difficulty when present.
	footerY := h - margin - 34*Scale
	if bottom > footerY {
		footerY = bottom + 10*Scale
	}
	if ev.Reward != "" {
		r.drawCaption(dc, r.tr.T("card.reward"), ev.Reward, margin, footerY, w-2*margin)
		footerY += 16 * Scale
	}
	if ev.Difficulty != "" {
		r.drawCaption(dc, r.tr.T("card.difficulty"), ev.Difficulty, margin, footerY, w-2*margin)
		footerY += 16 * Scale
	}

	// System attribution.
	if systemName != "" {
		dc.SetFontFace(r.caption)
		dc.SetColor(r.border)
		dc.DrawStringAnchored(systemName, w/2, h-margin+6*Scale, 0.5, 0.5)
	}

	return dc, nil
}

// drawMarkup word-wraps the description, switching between the regular
// and bold faces per markup segment. Returns the y coordinate below
// the last line.
func (r *Renderer) drawMarkup(dc *gg.Context, text string, x, y, maxWidth float64) float64 {
	type word struct {
		text string
		bold bool
	}
	var words []word
	for _, seg := range markup.Parse(text) {
		for _, token := range strings.Fields(seg.Text) {
			words = append(words, word{text: token, bold: seg.Bold})
		}
	}

	lineHeight := 19.0 * Scale
	dc.SetFontFace(r.body)
	spaceWidth, _ := dc.MeasureString(" ")

	cursorX := x
	cursorY := y
	for _, wd := range words {
		if wd.bold {
			dc.SetFontFace(r.bodyB)
		} else {
			dc.SetFontFace(r.body)
		}
		wordWidth, _ := dc.MeasureString(wd.text)
		if cursorX > x && cursorX+wordWidth > x+maxWidth {
			cursorX = x
			cursorY += lineHeight
		}
		dc.DrawString(wd.text, cursorX, cursorY)
		cursorX += wordWidth + spaceWidth
	}
	return cursorY + lineHeight
}

// drawCaption draws an accent label followed by plain text, truncated
// to one line.
func (r *Renderer) drawCaption(dc *gg.Context, label, value string, x, y, maxWidth float64) {
	dc.SetFontFace(r.caption)
	dc.SetColor(r.accent)
	prefix := label + ": "
	prefixWidth, _ := dc.MeasureString(prefix)
	dc.DrawString(prefix, x, y)

	dc.SetFontFace(r.body)
	dc.SetColor(r.text)
	dc.DrawString(truncateToWidth(dc, value, maxWidth-prefixWidth), x+prefixWidth, y)
}

// truncateToWidth drops trailing runes until the text fits the given
// width. Cutting by runes keeps multi-byte text (the shipped labels are
// Portuguese) valid when truncated.
func truncateToWidth(dc *gg.Context, value string, maxWidth float64) string {
	runes := []rune(value)
	for len(runes) > 0 {
		width, _ := dc.MeasureString(string(runes))
		if width <= maxWidth {
			break
		}
		runes = runes[:len(runes)-1]
	}
	return strings.TrimRight(string(runes), " ")
}

// themeColor parses a #rgb or #rrggbb color string, falling back to
// the default for the named slot.
func themeColor(value, slot string) color.RGBA {
	c, ok := parseHexColor(value)
	if !ok {
		return defaultTheme[slot]
	}
	return c
}

func parseHexColor(s string) (color.RGBA, bool) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		return color.RGBA{}, false
	}
	hex := s[1:]

	parse := func(str string) (uint8, bool) {
		var v uint8
		for _, r := range str {
			var d uint8
			switch {
			case r >= '0' && r <= '9':
				d = uint8(r - '0')
			case r >= 'a' && r <= 'f':
				d = uint8(r-'a') + 10
			case r >= 'A' && r <= 'F':
				d = uint8(r-'A') + 10
			default:
				return 0, false
			}
			v = v<<4 | d
		}
		return v, true
	}

	switch len(hex) {
	case 3:
		r, ok1 := parse(hex[0:1])
		g, ok2 := parse(hex[1:2])
		b, ok3 := parse(hex[2:3])
		if !ok1 || !ok2 || !ok3 {
			return color.RGBA{}, false
		}
		return color.RGBA{R: r * 17, G: g * 17, B: b * 17, A: 0xff}, true
	case 6:
		r, ok1 := parse(hex[0:2])
		g, ok2 := parse(hex[2:4])
		b, ok3 := parse(hex[4:6])
		if !ok1 || !ok2 || !ok3 {
			return color.RGBA{}, false
		}
		return color.RGBA{R: r, G: g, B: b, A: 0xff}, true
	default:
		return color.RGBA{}, false
	}
}

// slugify lowercases and dashes a system name for use in file names.
func slugify(name string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
