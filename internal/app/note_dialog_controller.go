package app

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"quirknotes/internal/types"
)

const (
	dialogFieldTitle = iota
	dialogFieldContent
)

const (
	dialogContentHeight = 8
	dialogMinWidth      = 30
	dialogMaxWidth      = 80
)

type noteDialogHost interface {
	createNoteCmd(seq int, fields types.NoteFields) tea.Cmd
	updateNoteCmd(seq int, id string, fields types.NoteFields) tea.Cmd
	closeNoteDialog(status string)
}

// NoteDialogController is the modal form used for both posting and editing a
// note. A nil target means create.
//
// The widgets rewrite text on SetValue (tabs, CRLF, control runes), so an
// edit compares each field against what the widget showed when the dialog
// opened and sends the target's original value for untouched fields.
type NoteDialogController struct {
	title   textinput.Model
	content textarea.Model
	focus   int
	target  *types.Note
	shown   types.NoteFields
	status  string
	saving  bool
	seq     int
	pending int
	width   int
}

func NewNoteDialogController(width int) *NoteDialogController {
	title := textinput.New()
	title.Placeholder = "Title"
	title.Prompt = ""
	title.CharLimit = 0

	content := textarea.New()
	content.Placeholder = "Write your note (markdown welcome)"
	content.ShowLineNumbers = false
	content.CharLimit = 0
	content.SetHeight(dialogContentHeight)

	c := &NoteDialogController{title: title, content: content}
	c.Resize(width)
	return c
}

func (c *NoteDialogController) Resize(width int) {
	c.width = clamp(width, dialogMinWidth, dialogMaxWidth)
	// Border and padding take four cells.
	inner := c.width - 4
	c.title.Width = inner - 1
	c.content.SetWidth(inner)
}

// Open prepares the form for target, or for a new note when target is nil.
// Any status from a previous submit is cleared.
func (c *NoteDialogController) Open(target *types.Note) tea.Cmd {
	c.target = types.CloneNote(target)
	c.status = ""
	c.saving = false
	c.pending = 0
	c.title.SetValue("")
	c.content.SetValue("")
	if c.target != nil {
		c.title.SetValue(c.target.Title)
		c.content.SetValue(c.target.Content)
	}
	c.shown = c.Fields()
	return c.setFocus(dialogFieldTitle)
}

func (c *NoteDialogController) Close() {
	c.target = nil
	c.saving = false
	c.pending = 0
	c.title.Blur()
	c.content.Blur()
}

func (c *NoteDialogController) Status() string {
	return c.status
}

// AwaitingSave reports whether seq is the submit this dialog is still
// waiting on. Responses for any other seq belong to a dialog that was closed.
func (c *NoteDialogController) AwaitingSave(seq int) bool {
	return c.saving && c.pending != 0 && c.pending == seq
}

func (c *NoteDialogController) Fields() types.NoteFields {
	return types.NoteFields{Title: c.title.Value(), Content: c.content.Value()}
}

func (c *NoteDialogController) SetFields(fields types.NoteFields) {
	c.title.SetValue(fields.Title)
	c.content.SetValue(fields.Content)
}

// SaveFailed keeps the dialog open and reports the backend error.
func (c *NoteDialogController) SaveFailed(err error) {
	c.saving = false
	c.pending = 0
	c.status = "error: " + errorText(err)
}

func (c *NoteDialogController) Update(msg tea.Msg, host noteDialogHost) (bool, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c.updateFocused(msg)
	}
	switch keyMsg.String() {
	case "esc":
		host.closeNoteDialog("")
		return true, nil
	case "tab", "shift+tab":
		if c.focus == dialogFieldTitle {
			return true, c.setFocus(dialogFieldContent)
		}
		return true, c.setFocus(dialogFieldTitle)
	case "ctrl+s":
		return true, c.submit(host)
	case "enter":
		if c.focus == dialogFieldTitle {
			return true, c.setFocus(dialogFieldContent)
		}
	}
	if c.saving {
		return true, nil
	}
	return c.updateFocused(msg)
}

func (c *NoteDialogController) submit(host noteDialogHost) tea.Cmd {
	if c.saving {
		return nil
	}
	fields := c.submitFields()
	if strings.TrimSpace(fields.Title) == "" {
		c.status = "title is required"
		return nil
	}
	c.seq++
	c.pending = c.seq
	c.saving = true
	c.status = "saving..."
	if c.target == nil {
		return host.createNoteCmd(c.pending, fields)
	}
	return host.updateNoteCmd(c.pending, c.target.ID, fields)
}

func (c *NoteDialogController) submitFields() types.NoteFields {
	current := c.Fields()
	fields := current.Normalized()
	if c.target == nil {
		return fields
	}
	if current.Title == c.shown.Title {
		fields.Title = c.target.Title
	}
	if current.Content == c.shown.Content {
		fields.Content = c.target.Content
	}
	return fields
}

func (c *NoteDialogController) setFocus(field int) tea.Cmd {
	c.focus = field
	if field == dialogFieldContent {
		c.title.Blur()
		return c.content.Focus()
	}
	c.content.Blur()
	return c.title.Focus()
}

func (c *NoteDialogController) updateFocused(msg tea.Msg) (bool, tea.Cmd) {
	var cmd tea.Cmd
	if c.focus == dialogFieldContent {
		c.content, cmd = c.content.Update(msg)
	} else {
		c.title, cmd = c.title.Update(msg)
	}
	return true, cmd
}

func (c *NoteDialogController) View() string {
	heading := "Post Note"
	if c.target != nil {
		heading = "Edit Note"
	}
	titleLabel := dialogLabelStyle
	contentLabel := dialogLabelStyle
	if c.focus == dialogFieldTitle {
		titleLabel = dialogLabelActiveStyle
	} else {
		contentLabel = dialogLabelActiveStyle
	}
	lines := []string{
		headerStyle.Render(heading),
		"",
		titleLabel.Render("Title"),
		c.title.View(),
		"",
		contentLabel.Render("Content"),
		c.content.View(),
		"",
		helpStyle.Render("tab switch field  ctrl+s save  esc cancel"),
	}
	if c.status != "" {
		style := statusStyle
		if strings.HasPrefix(c.status, "error:") || c.status == "title is required" {
			style = errorTextStyle
		}
		lines = append(lines, style.Render(truncateToWidth(c.status, c.width-4)))
	}
	return dialogBorderStyle.Width(c.width - 2).Render(strings.Join(lines, "\n"))
}
