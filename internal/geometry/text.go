package geometry

import "strings"

const (
	// lineHeightFactor is the line height as a multiple of font size
	lineHeightFactor = 1.2
	// fallbackCharWidth approximates the advance of one character as a
	// multiple of font size when no measurer is available
	fallbackCharWidth = 0.6
)

// Measurer measures the advance width of single-line text at a font size.
// It reports false when it cannot measure.
type Measurer interface {
	MeasureText(text string, fontSize float64) (float64, bool)
}

// TextSize is the estimated extent of a single line of text
type TextSize struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// TextBlock is the estimated extent of wrapped text
type TextBlock struct {
	Width  float64  `json:"width"`
	Height float64  `json:"height"`
	Lines  []string `json:"lines"`
}

// TextBounds estimates the size of text on one line. When m is nil or
// cannot measure, the width falls back to runes * fontSize * 0.6.
func TextBounds(m Measurer, text string, fontSize float64) TextSize {
	return TextSize{
		Width:  measure(m, text, fontSize),
		Height: fontSize * lineHeightFactor,
	}
}

// MultilineTextBounds greedily wraps the words of text into lines no wider
// than maxWidth and returns their extent. A word wider than maxWidth gets a
// line of its own. A non-positive maxWidth disables wrapping.
func MultilineTextBounds(m Measurer, text string, fontSize, maxWidth float64) TextBlock {
	words := strings.Fields(text)
	if len(words) == 0 {
		return TextBlock{}
	}

	var lines []string
	current := ""
	for _, word := range words {
		if current == "" {
			current = word
			continue
		}
		candidate := current + " " + word
		if maxWidth <= 0 || measure(m, candidate, fontSize) <= maxWidth {
			current = candidate
			continue
		}
		lines = append(lines, current)
		current = word
	}
	lines = append(lines, current)

	width := 0.0
	for _, line := range lines {
		if w := measure(m, line, fontSize); w > width {
			width = w
		}
	}

	return TextBlock{
		Width:  width,
		Height: float64(len(lines)) * fontSize * lineHeightFactor,
		Lines:  lines,
	}
}

func measure(m Measurer, text string, fontSize float64) float64 {
	if m != nil {
		if w, ok := m.MeasureText(text, fontSize); ok {
			return w
		}
	}
	return float64(len([]rune(text))) * fontSize * fallbackCharWidth
}
