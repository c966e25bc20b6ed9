package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"os"
	"strings"
)

// Terminal styling. Errors reach the developer through two surfaces: the
// CLI renders Format to a terminal, the dev server sends FormatJSON.
const (
	ansiReset = "\033[0m"
	ansiBold  = "\033[1m"
	ansiRed   = "\033[31m"
	ansiCyan  = "\033[36m"
	ansiDim   = "\033[90m"
)

var colorEnabled = true

// DisableColors turns off ANSI styling, for tests and non-TTY output.
func DisableColors() { colorEnabled = false }

// EnableColors turns ANSI styling back on.
func EnableColors() { colorEnabled = true }

func paint(code, s string) string {
	if !colorEnabled {
		return s
	}
	return code + s + ansiReset
}

// Format renders the error for the terminal: a header line, the
// wayfind.json excerpt when the error carries a location, the detail
// paragraph, a hint and a documentation link.
func (e *WayfindError) Format() string {
	var b strings.Builder

	header := "ERROR"
	if e.Code != "" {
		header += " " + e.Code
	}
	fmt.Fprintf(&b, "\n%s %s\n", paint(ansiRed+ansiBold, header+":"), e.Message)

	if e.Location != nil {
		fmt.Fprintf(&b, "\n  %s\n", paint(ansiCyan, e.Location.String()))
		e.writeExcerpt(&b)
	}

	if e.Detail != "" {
		b.WriteString("\n")
		for _, line := range wrapText(e.Detail, 70) {
			fmt.Fprintf(&b, "  %s\n", line)
		}
	}

	if e.Suggestion != "" {
		fmt.Fprintf(&b, "\n  %s %s\n", paint(ansiCyan, "Hint:"), e.Suggestion)
	}

	if e.DocURL != "" {
		fmt.Fprintf(&b, "\n  %s %s\n", paint(ansiDim, "Learn more:"), e.DocURL)
	}

	return b.String()
}

// writeExcerpt prints the context lines around the failing line, marking
// the line itself and the column within it.
func (e *WayfindError) writeExcerpt(b *strings.Builder) {
	if len(e.Context) == 0 {
		return
	}

	b.WriteString("\n")
	first := e.Location.Line - len(e.Context)/2
	for i, text := range e.Context {
		n := first + i
		marker := "  "
		if n == e.Location.Line {
			marker = paint(ansiRed, "> ")
		}
		fmt.Fprintf(b, "  %s%4d %s %s\n", marker, n, paint(ansiDim, "|"), text)

		if n == e.Location.Line && e.Location.Column > 0 {
			fmt.Fprintf(b, "  %s %s %s%s\n", strings.Repeat(" ", 6), paint(ansiDim, "|"),
				strings.Repeat(" ", e.Location.Column-1), paint(ansiRed, "^"))
		}
	}
}

// FormatCompact renders "file:line: CODE: message" for log-style output.
func (e *WayfindError) FormatCompact() string {
	parts := make([]string, 0, 3)
	if e.Location != nil {
		parts = append(parts, e.Location.String())
	}
	if e.Code != "" {
		parts = append(parts, e.Code)
	}
	parts = append(parts, e.Message)
	return strings.Join(parts, ": ")
}

// errorJSON is the wire shape the dev server returns for errors.
type errorJSON struct {
	Code       string    `json:"code,omitempty"`
	Category   Category  `json:"category"`
	Message    string    `json:"message"`
	Detail     string    `json:"detail,omitempty"`
	Location   *Location `json:"location,omitempty"`
	Suggestion string    `json:"suggestion,omitempty"`
	DocURL     string    `json:"docUrl,omitempty"`
}

// FormatJSON returns the error as a JSON object.
func (e *WayfindError) FormatJSON() string {
	data, err := json.Marshal(errorJSON{
		Code:       e.Code,
		Category:   e.Category,
		Message:    e.Message,
		Detail:     e.Detail,
		Location:   e.Location,
		Suggestion: e.Suggestion,
		DocURL:     e.DocURL,
	})
	if err != nil {
		return `{"message":"error encoding failed"}`
	}
	return string(data)
}

// wrapText greedily wraps text into lines of at most width characters.
// A single word longer than width stays on its own line.
func wrapText(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		if len(line)+1+len(w) > width {
			lines = append(lines, line)
			line = w
			continue
		}
		line += " " + w
	}
	return append(lines, line)
}

// PrintError writes a formatted error to stderr.
func PrintError(err error) {
	var we *WayfindError
	if stderrors.As(err, &we) {
		fmt.Fprint(os.Stderr, we.Format())
		return
	}
	fmt.Fprintf(os.Stderr, "\n%s %s\n\n", paint(ansiRed+ansiBold, "ERROR:"), err.Error())
}
