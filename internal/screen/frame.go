// Package screen composes frames from the query model and the supervisor's
// output buffer (§4.5) and maps decoded keystrokes to query edits and loop
// outcomes. Painting a frame and the event loop itself live in
// internal/app.
package screen

import (
	"bytes"

	"github.com/tip-cli/tip/internal/escwidth"
)

const chevron = "> "

// separatorRune is the box-drawing dash used for the horizontal separator
// between the prompt and the data region (§4.5).
const separatorRune = '─'

// Frame is a composed, ready-to-paint screen: the raw bytes to write plus
// where the cursor belongs afterward (§4.5 frame protocol).
type Frame struct {
	Bytes      []byte
	CursorLine int
	CursorCol  int
}

// Compose builds a frame top to bottom from the Prompt component (one
// line) and the Data component (every remaining line), per §4.5.
func Compose(cols, rows int, query []rune, cursor int, output []byte) Frame {
	if cols < 1 {
		cols = 1
	}

	if rows < 1 {
		rows = 1
	}

	var buf bytes.Buffer

	promptLine, cursorCol := renderPrompt(query, cursor, cols)
	buf.WriteString(promptLine)

	renderData(&buf, cols, rows-1, output)

	return Frame{Bytes: buf.Bytes(), CursorLine: 1, CursorCol: cursorCol}
}

// renderPrompt renders the chevron plus a window of query sized to
// cols-len(chevron) such that the cursor is always visible (§4.5 Prompt
// component), returning the line and the 1-based column the cursor belongs
// at within it.
func renderPrompt(query []rune, cursor, cols int) (line string, cursorCol int) {
	windowSize := cols - len(chevron)
	if windowSize < 0 {
		windowSize = 0
	}

	var start, end int

	if cursor < windowSize {
		start = 0
		end = min(len(query), windowSize)
	} else {
		start = cursor - windowSize
		end = cursor
	}

	window := query[start:end]
	windowCursorPos := cursor - start

	return chevron + string(window), windowCursorPos + len(chevron) + 1
}

// renderData writes the separator and as many output lines as fit within
// remainingLines rows, truncating the last line that doesn't fully fit
// (§4.5 Data component).
func renderData(buf *bytes.Buffer, cols, remainingLines int, output []byte) {
	buf.WriteString("\r\n")

	if remainingLines <= 0 {
		return
	}

	for i := 0; i < cols; i++ {
		buf.WriteRune(separatorRune)
	}

	remainingLines--

	for _, rawLine := range bytes.Split(output, []byte("\n")) {
		if remainingLines <= 0 {
			return
		}

		line := bytes.ReplaceAll(rawLine, []byte("\r"), nil)

		visible := escwidth.VisibleLen(line)

		rows := (visible + cols - 1) / cols
		if rows < 1 {
			rows = 1
		}

		buf.WriteString("\r\n")

		if rows <= remainingLines {
			buf.Write(line)
			remainingLines -= rows

			continue
		}

		buf.Write(escwidth.Truncate(line, remainingLines*cols))
		remainingLines = 0
	}
}
