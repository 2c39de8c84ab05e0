package rendering

import "strings"

var latexReplacer = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	`{`, `\{`,
	`}`, `\}`,
	`$`, `\$`,
	`&`, `\&`,
	`%`, `\%`,
	`#`, `\#`,
	`^`, `\textasciicircum{}`,
	`_`, `\_`,
	`~`, `\textasciitilde{}`,
)

// EscapeLaTeX escapes special LaTeX characters in text
// Special characters: \ { } $ & % # ^ _ ~
func EscapeLaTeX(text string) string {
	if text == "" {
		return ""
	}
	return latexReplacer.Replace(text)
}

// EscapeParagraph escapes text and turns blank-line separated blocks into
// LaTeX paragraphs; single newlines become forced line breaks.
func EscapeParagraph(text string) string {
	text = strings.ReplaceAll(strings.TrimSpace(text), "\r\n", "\n")
	if text == "" {
		return ""
	}

	blocks := strings.Split(text, "\n\n")
	out := make([]string, 0, len(blocks))
	for _, b := range blocks {
		b = strings.TrimSpace(b)
		if b == "" {
			continue
		}
		lines := strings.Split(b, "\n")
		for i, l := range lines {
			lines[i] = EscapeLaTeX(strings.TrimSpace(l))
		}
		out = append(out, strings.Join(lines, `\\`+"\n"))
	}
	return strings.Join(out, "\n\n")
}

// escapeURL escapes only what breaks \url arguments
func escapeURL(u string) string {
	return strings.NewReplacer(`%`, `\%`, `#`, `\#`, `{`, ``, `}`, ``).Replace(u)
}

func escapeAll(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = EscapeLaTeX(v)
	}
	return out
}
