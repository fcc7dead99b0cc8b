package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"quirknotes/internal/logging"
	"quirknotes/internal/types"
)

const (
	appTitle          = "QuirkNotes"
	appSubtitle       = "The best note-taking app ever"
	loadFailedMessage = "Something has gone horribly wrong! We can't get the notes!"

	defaultRequestTimeout = 10 * time.Second
	minViewportWidth      = 20
	minContentHeight      = 4
	statusLinePadding     = 1
	// Title, subtitle, blank line above the list and the status line.
	chromeHeight = 4
)

type Options struct {
	RequestTimeout        time.Duration
	RenderMarkdown        bool
	ConfirmDeleteAll      bool
	RollbackFailedDeletes bool
	Logger                logging.Logger
}

func DefaultOptions() Options {
	return Options{
		RequestTimeout:        defaultRequestTimeout,
		RenderMarkdown:        true,
		ConfirmDeleteAll:      true,
		RollbackFailedDeletes: true,
	}
}

type Model struct {
	api         NotesAPI
	opts        Options
	logger      logging.Logger
	state       *NotesState
	dialog      *NoteDialogController
	confirm     *ConfirmController
	filterInput textinput.Model
	filtering   bool
	viewport    viewport.Model
	loader      spinner.Model
	keys        keyMap
	status      string
	toastText   string
	toastLevel  toastLevel
	toastUntil  time.Time
	width       int
	height      int
	now         func() time.Time
}

func NewModel(api NotesAPI, opts Options) Model {
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = defaultRequestTimeout
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Nop()
	}
	loader := spinner.New()
	loader.Spinner = spinner.Line
	loader.Style = lipgloss.NewStyle()

	filter := textinput.New()
	filter.Prompt = "/ "
	filter.Placeholder = "filter notes"

	return Model{
		api:         api,
		opts:        opts,
		logger:      logger.With(logging.F("component", "ui")),
		state:       NewNotesState(),
		dialog:      NewNoteDialogController(minViewportWidth),
		confirm:     NewConfirmController(),
		filterInput: filter,
		viewport:    viewport.New(minViewportWidth, minContentHeight),
		loader:      loader,
		keys:        defaultKeyMap(),
		now:         time.Now,
	}
}

func Run(api NotesAPI, opts Options) error {
	model := NewModel(api, opts)
	p := tea.NewProgram(&model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.loader.Tick, fetchNotesCmd(m.api, m.opts.RequestTimeout))
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	case spinner.TickMsg:
		if !m.state.Loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.loader, cmd = m.loader.Update(msg)
		return m, cmd
	case notesLoadedMsg:
		return m, m.applyNotesLoaded(msg)
	case noteCreatedMsg:
		m.applyNoteCreated(msg)
		return m, nil
	case noteUpdatedMsg:
		m.applyNoteUpdated(msg)
		return m, nil
	case noteDeletedMsg:
		m.applyNoteDeleted(msg)
		return m, nil
	case notesClearedMsg:
		m.applyNotesCleared(msg)
		return m, nil
	case clipboardResultMsg:
		if msg.err != nil {
			m.logger.Warn("copy_failed", logging.Err(msg.err))
			m.showErrorToast("copy failed: " + msg.err.Error())
			return m, nil
		}
		m.showInfoToast("copied note (" + msg.method.String() + ")")
		return m, nil
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}

	if m.state.DialogOpen() {
		_, cmd := m.dialog.Update(msg, m)
		return m, cmd
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "ctrl+c" {
		return tea.Quit
	}
	if m.state.DialogOpen() {
		_, cmd := m.dialog.Update(msg, m)
		m.renderNotes()
		return cmd
	}
	if m.confirm.IsOpen() {
		_, choice := m.confirm.HandleKey(msg)
		switch choice {
		case confirmChoiceConfirm:
			m.confirm.Close()
			return m.deleteAllNow()
		case confirmChoiceCancel:
			m.confirm.Close()
			m.status = "delete all canceled"
		}
		return nil
	}
	if m.filtering {
		return m.handleFilterKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.state.MoveSelection(-1)
		m.renderNotes()
		return nil
	case key.Matches(msg, m.keys.Down):
		m.state.MoveSelection(1)
		m.renderNotes()
		return nil
	case key.Matches(msg, m.keys.Post):
		return m.postNote()
	case key.Matches(msg, m.keys.DeleteAll):
		return m.requestDeleteAll()
	case key.Matches(msg, m.keys.Refresh):
		return m.refresh()
	case key.Matches(msg, m.keys.Filter):
		if !m.state.Loaded() {
			return nil
		}
		m.filtering = true
		m.filterInput.SetValue(m.state.Filter())
		return m.filterInput.Focus()
	case msg.String() == "esc" && m.state.Filter() != "":
		m.state.SetFilter("")
		m.renderNotes()
		return nil
	}

	if intent, ok := m.selectedNoteView().HandleKey(msg, m.keys); ok {
		return m.dispatchIntent(intent)
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return cmd
}

func (m *Model) handleFilterKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.filtering = false
		m.filterInput.Blur()
		m.filterInput.SetValue("")
		m.state.SetFilter("")
		m.renderNotes()
		return nil
	case "enter":
		m.filtering = false
		m.filterInput.Blur()
		return nil
	}
	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	m.state.SetFilter(m.filterInput.Value())
	m.renderNotes()
	return cmd
}

func (m *Model) dispatchIntent(intent noteIntent) tea.Cmd {
	switch intent.kind {
	case noteIntentEdit, noteIntentPatch:
		return m.editNote(intent.note)
	case noteIntentDelete:
		return m.deleteNote(intent.note)
	case noteIntentCopy:
		return copyToClipboardCmd(intent.note.Content)
	}
	return nil
}

// postNote needs a loaded collection: after a failed first load the screen
// keeps showing the load error until a refresh succeeds.
func (m *Model) postNote() tea.Cmd {
	if !m.state.Loaded() || !m.state.OpenCreate() {
		return nil
	}
	return m.dialog.Open(nil)
}

func (m *Model) editNote(note *types.Note) tea.Cmd {
	if !m.state.OpenEdit(note) {
		return nil
	}
	return m.dialog.Open(note)
}

// deleteNote removes the note locally before the backend call goes out.
func (m *Model) deleteNote(note *types.Note) tea.Cmd {
	if note == nil {
		return nil
	}
	epoch := m.state.Epoch()
	index, removed, ok := m.state.RemoveOptimistic(note.ID)
	if !ok {
		return nil
	}
	m.renderNotes()
	return deleteNoteCmd(m.api, m.opts.RequestTimeout, removed, index, epoch)
}

func (m *Model) requestDeleteAll() tea.Cmd {
	if m.state.Len() == 0 {
		return nil
	}
	if !m.opts.ConfirmDeleteAll {
		return m.deleteAllNow()
	}
	m.confirm.Open("Delete All Notes", fmt.Sprintf("Delete all %d notes? This cannot be undone.", m.state.Len()), "Delete all", "Cancel")
	return nil
}

func (m *Model) deleteAllNow() tea.Cmd {
	m.status = "deleting all notes..."
	return deleteAllNotesCmd(m.api, m.opts.RequestTimeout)
}

func (m *Model) refresh() tea.Cmd {
	if m.state.Loading() {
		return nil
	}
	m.state.BeginLoad()
	m.status = "refreshing..."
	return tea.Batch(m.loader.Tick, fetchNotesCmd(m.api, m.opts.RequestTimeout))
}

func (m *Model) applyNotesLoaded(msg notesLoadedMsg) tea.Cmd {
	if msg.err != nil {
		wasLoaded := m.state.Loaded()
		m.state.LoadFailed()
		m.logger.Error("load_notes_failed", logging.Err(msg.err))
		m.status = ""
		if wasLoaded {
			m.showErrorToast("refresh failed: " + errorText(msg.err))
		}
		m.renderNotes()
		return nil
	}
	m.state.ApplyLoaded(msg.notes)
	m.logger.Info("notes_loaded", logging.F("count", m.state.Len()))
	m.status = fmt.Sprintf("%d notes", m.state.Len())
	m.renderNotes()
	return nil
}

// applyNoteCreated applies a create result. A result whose dialog was closed
// before it arrived still updates the collection, but reports through the
// status line or a toast instead of whatever dialog is open now.
func (m *Model) applyNoteCreated(msg noteCreatedMsg) {
	owned := m.state.DialogMode() == dialogCreate && m.dialog.AwaitingSave(msg.seq)
	if msg.err != nil {
		m.logger.Warn("create_note_failed", logging.F("failure", failureKindLabel(msg.err)), logging.Err(msg.err))
		if owned {
			m.dialog.SaveFailed(msg.err)
			return
		}
		m.showErrorToast("post failed: " + errorText(msg.err))
		return
	}
	m.state.ApplyCreated(msg.note)
	m.logger.Info("note_created", logging.F("id", msg.note.ID))
	if owned {
		m.closeNoteDialog("note added")
		return
	}
	m.status = "note added"
	m.renderNotes()
}

func (m *Model) applyNoteUpdated(msg noteUpdatedMsg) {
	owned := m.state.DialogMode() == dialogEdit && m.dialog.AwaitingSave(msg.seq)
	if msg.err != nil {
		m.logger.Warn("update_note_failed", logging.F("id", msg.id), logging.F("failure", failureKindLabel(msg.err)), logging.Err(msg.err))
		if owned {
			m.dialog.SaveFailed(msg.err)
			return
		}
		m.showErrorToast("edit failed: " + errorText(msg.err))
		return
	}
	m.state.ApplyPatched(msg.id, msg.fields)
	m.logger.Info("note_updated", logging.F("id", msg.id))
	if owned {
		m.closeNoteDialog("note updated")
		return
	}
	m.status = "note updated"
	m.renderNotes()
}

func (m *Model) applyNoteDeleted(msg noteDeletedMsg) {
	if msg.err == nil || noteAlreadyGone(msg.err) {
		m.logger.Info("note_deleted", logging.F("id", msg.note.ID))
		m.status = "note deleted"
		return
	}
	m.logger.Warn("delete_note_failed",
		logging.F("id", msg.note.ID),
		logging.F("failure", failureKindLabel(msg.err)),
		logging.Err(msg.err),
	)
	if !m.opts.RollbackFailedDeletes {
		return
	}
	m.state.Restore(msg.epoch, msg.index, msg.note)
	m.showErrorToast("delete failed: " + errorText(msg.err))
	m.renderNotes()
}

func (m *Model) applyNotesCleared(msg notesClearedMsg) {
	if msg.err != nil {
		m.logger.Warn("delete_all_failed", logging.Err(msg.err))
		m.status = ""
		m.showErrorToast("delete all failed: " + errorText(msg.err))
		return
	}
	m.state.ClearAll()
	m.logger.Info("notes_cleared")
	m.status = "all notes deleted"
	m.renderNotes()
}

func (m *Model) createNoteCmd(seq int, fields types.NoteFields) tea.Cmd {
	return createNoteCmd(m.api, m.opts.RequestTimeout, seq, fields)
}

func (m *Model) updateNoteCmd(seq int, id string, fields types.NoteFields) tea.Cmd {
	return updateNoteCmd(m.api, m.opts.RequestTimeout, seq, id, fields)
}

func (m *Model) closeNoteDialog(status string) {
	m.state.CloseDialog()
	m.dialog.Close()
	if status != "" {
		m.status = status
	}
	m.renderNotes()
}

func (m *Model) selectedNoteView() NoteView {
	return NewNoteView(m.state.Selected(), m.viewport.Width, true, m.opts.RenderMarkdown)
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = max(minViewportWidth, width)
	m.viewport.Height = max(minContentHeight, height-chromeHeight)
	m.filterInput.Width = max(1, width-4)
	m.dialog.Resize(width)
	m.renderNotes()
}

// renderNotes rebuilds the list content and scrolls the selected card into
// view.
func (m *Model) renderNotes() {
	if !m.state.Loaded() {
		m.viewport.SetContent("")
		return
	}
	visible := m.state.Visible()
	if len(visible) == 0 {
		empty := "No notes yet. Press n to post one."
		if m.state.Filter() != "" {
			empty = "No notes match " + fmt.Sprintf("%q", m.state.Filter()) + "."
		}
		m.viewport.SetContent(helpStyle.Render(empty))
		m.viewport.GotoTop()
		return
	}
	selected := m.state.SelectedIndex()
	cards := make([]string, 0, len(visible))
	selectedTop, selectedBottom := 0, 0
	line := 0
	for i, note := range visible {
		card := NewNoteView(note, m.viewport.Width, i == selected, m.opts.RenderMarkdown).View()
		height := lipgloss.Height(card)
		if i == selected {
			selectedTop, selectedBottom = line, line+height
		}
		line += height
		cards = append(cards, card)
	}
	m.viewport.SetContent(strings.Join(cards, "\n"))
	if selectedTop < m.viewport.YOffset {
		m.viewport.SetYOffset(selectedTop)
	} else if selectedBottom > m.viewport.YOffset+m.viewport.Height {
		m.viewport.SetYOffset(selectedBottom - m.viewport.Height)
	}
}

func (m *Model) View() string {
	lines := []string{
		headerStyle.Render(appTitle) + "  " + subtitleStyle.Render(appSubtitle),
		"",
	}
	lines = append(lines, m.bodyView())
	if m.filtering {
		lines = append(lines, m.filterInput.View())
	} else if filter := m.state.Filter(); filter != "" {
		lines = append(lines, helpStyle.Render("filter: "+filter+" (esc to clear)"))
	}
	if toast := m.toastLine(m.width); toast != "" {
		lines = append(lines, toast)
	}
	help := helpStyle.Render(m.keys.helpLine(m.state.Loaded(), m.state.Selected() != nil, m.state.Len() > 0))
	lines = append(lines, renderStatusLine(m.width, help, statusStyle.Render(m.status)))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m *Model) bodyView() string {
	switch {
	case m.state.DialogOpen():
		return indentBlock(m.dialog.View(), max(0, (m.width-m.dialog.width)/2))
	case m.confirm.IsOpen():
		return m.confirm.View(m.width, m.viewport.Height)
	case m.state.Loading() && !m.state.Loaded():
		return m.loader.View() + " Loading..."
	case !m.state.Loaded():
		return errorTextStyle.Render(loadFailedMessage)
	}
	return m.viewport.View()
}
