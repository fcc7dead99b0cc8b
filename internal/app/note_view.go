package app

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	xansi "github.com/charmbracelet/x/ansi"

	"quirknotes/internal/app/sanitizer"
	"quirknotes/internal/types"
)

const (
	maxNoteBodyLines = 8
	minNoteCardWidth = 12
)

type noteIntentKind int

const (
	noteIntentNone noteIntentKind = iota
	noteIntentEdit
	noteIntentPatch
	noteIntentDelete
	noteIntentCopy
)

// noteIntent is a user action on one note, passed up unchanged for the model
// to act on.
type noteIntent struct {
	kind noteIntentKind
	note *types.Note
}

// NoteView renders a single note card. It holds no state of its own.
type NoteView struct {
	note     *types.Note
	selected bool
	width    int
	markdown bool
}

func NewNoteView(note *types.Note, width int, selected, markdown bool) NoteView {
	return NoteView{note: note, selected: selected, width: width, markdown: markdown}
}

func (v NoteView) HandleKey(msg tea.KeyMsg, keys keyMap) (noteIntent, bool) {
	if v.note == nil {
		return noteIntent{}, false
	}
	var kind noteIntentKind
	switch {
	case key.Matches(msg, keys.Edit):
		kind = noteIntentEdit
	case key.Matches(msg, keys.Patch):
		kind = noteIntentPatch
	case key.Matches(msg, keys.Delete):
		kind = noteIntentDelete
	case key.Matches(msg, keys.Copy):
		kind = noteIntentCopy
	default:
		return noteIntent{}, false
	}
	return noteIntent{kind: kind, note: v.note}, true
}

func (v NoteView) View() string {
	if v.note == nil {
		return ""
	}
	cardWidth := max(minNoteCardWidth, v.width)
	// Border and horizontal padding take two cells each side.
	innerWidth := max(1, cardWidth-4)

	titleStyle := noteTitleStyle
	cardStyle := noteCardStyle
	if v.selected {
		titleStyle = noteTitleSelectedStyle
		cardStyle = noteCardSelectedStyle
	}
	title := sanitizer.Title(v.note.Title)
	if title == "" {
		title = "(untitled)"
	}
	lines := []string{titleStyle.Render(truncatePlain(title, innerWidth))}
	lines = append(lines, v.bodyLines(innerWidth)...)
	return cardStyle.Width(cardWidth - 2).Render(strings.Join(lines, "\n"))
}

func (v NoteView) bodyLines(width int) []string {
	content := strings.TrimRight(sanitizer.Content(v.note.Content), " \n")
	if content == "" {
		return nil
	}
	var body string
	if v.markdown {
		body = renderMarkdown(content, width)
	} else {
		body = noteBodyStyle.Render(xansi.Wordwrap(content, width, ""))
	}
	lines := strings.Split(body, "\n")
	truncated := len(lines) > maxNoteBodyLines
	if truncated {
		lines = lines[:maxNoteBodyLines]
	}
	for i, line := range lines {
		lines[i] = truncateToWidth(line, width)
	}
	if truncated {
		lines = append(lines, helpStyle.Render("…"))
	}
	return lines
}
