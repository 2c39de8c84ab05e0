package geometry

import (
	"fmt"
	"math"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// FontMeasurer measures text with a real font. Sizes are in points at
// 72 DPI, so widths come out in logical page units.
type FontMeasurer struct {
	font *opentype.Font

	mu    sync.Mutex
	faces map[int]font.Face
}

// NewFontMeasurer returns a measurer backed by the Go Regular font
func NewFontMeasurer() (*FontMeasurer, error) {
	return NewFontMeasurerFromTTF(goregular.TTF)
}

// NewFontMeasurerFromTTF returns a measurer backed by a TrueType/OpenType font
func NewFontMeasurerFromTTF(ttf []byte) (*FontMeasurer, error) {
	f, err := opentype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	return &FontMeasurer{font: f, faces: map[int]font.Face{}}, nil
}

// MeasureText returns the advance width of text at fontSize points
func (m *FontMeasurer) MeasureText(text string, fontSize float64) (float64, bool) {
	if m == nil || m.font == nil || !positive(fontSize) {
		return 0, false
	}
	face, err := m.face(fontSize)
	if err != nil {
		return 0, false
	}

	m.mu.Lock()
	adv := font.MeasureString(face, text)
	m.mu.Unlock()

	return float64(adv) / 64, true
}

// face returns a cached face for fontSize, keyed in 1/64 point steps
func (m *FontMeasurer) face(fontSize float64) (font.Face, error) {
	key := int(math.Round(fontSize * 64))

	m.mu.Lock()
	defer m.mu.Unlock()

	if face, ok := m.faces[key]; ok {
		return face, nil
	}
	face, err := opentype.NewFace(m.font, &opentype.FaceOptions{
		Size:    float64(key) / 64,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, err
	}
	m.faces[key] = face
	return face, nil
}

// Close releases the cached faces
func (m *FontMeasurer) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for key, face := range m.faces {
		_ = face.Close()
		delete(m.faces, key)
	}
	return nil
}
