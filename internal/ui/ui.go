package ui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/adx/internal/auth"
	"github.com/desertthunder/adx/internal/models"
	"github.com/desertthunder/adx/internal/tasks"
	"github.com/desertthunder/adx/internal/validation"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	FormView ViewState = iota
	ConfirmView
	SubmitView
	ResultView
)

// Form field positions, in display order.
const (
	fieldCampaignName = iota
	fieldObjective
	fieldAdText
	fieldCTA
	fieldMusicOption
	fieldMusicSource
	fieldCount
)

// Model represents the TUI application state.
type Model struct {
	ctx         context.Context
	view        ViewState
	engine      *tasks.SubmissionEngine
	coordinator *tasks.MusicCoordinator
	session     *auth.Manager
	width       int
	height      int

	nameInput  textinput.Model
	textInput  textinput.Model
	musicInput textinput.Model

	focus       int
	objectiveID int
	ctaID       int
	musicOpt    int

	verdict models.MusicVerdict
	outcome models.ValidationOutcome
	draft   models.AdDraft
	receipt *models.AdReceipt
	appErr  *models.AppError
	help    help.Model
	keys    keyMap
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, engine *tasks.SubmissionEngine, coordinator *tasks.MusicCoordinator, session *auth.Manager) *Model {
	name := textinput.New()
	name.Placeholder = "Campaign name"
	name.CharLimit = 100
	name.Focus()

	text := textinput.New()
	text.Placeholder = "Ad text"
	text.CharLimit = 100

	music := textinput.New()
	music.Placeholder = "Music ID"

	return &Model{
		ctx:         ctx,
		view:        FormView,
		engine:      engine,
		coordinator: coordinator,
		session:     session,
		nameInput:   name,
		textInput:   text,
		musicInput:  music,
		verdict:     models.MusicVerdict{State: models.VerdictIdle},
		help:        help.New(),
		keys:        newKeyMap(),
	}
}

// Init starts the text input cursor and the verdict pump.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.waitForVerdict())
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case FormView:
			return m.handleFormKeys(msg)
		case ConfirmView:
			return m.handleConfirmKeys(msg)
		case ResultView:
			return m.handleResultKeys(msg)
		}
		return m, nil

	case verdictMsg:
		m.verdict = models.MusicVerdict(msg)
		return m, m.waitForVerdict()

	case submitDoneMsg:
		m.receipt = msg.receipt
		m.appErr = msg.appErr
		m.view = ResultView
		return m, nil
	}

	return m, nil
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	switch m.view {
	case FormView:
		return m.renderForm()
	case ConfirmView:
		return m.renderConfirm()
	case SubmitView:
		return m.renderSubmit()
	case ResultView:
		return m.renderResult()
	default:
		return ""
	}
}

func (m *Model) handleFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		m.coordinator.Cancel()
		return m, tea.Quit

	case key.Matches(msg, m.keys.next):
		m.moveFocus(1)
		return m, nil

	case key.Matches(msg, m.keys.prev):
		m.moveFocus(-1)
		return m, nil

	case key.Matches(msg, m.keys.cycle) && m.focusedOnOption():
		step := 1
		if msg.String() == "left" {
			step = -1
		}
		m.cycleOption(step)
		return m, nil

	case key.Matches(msg, m.keys.enter):
		return m.completeForm()
	}

	return m, m.updateInputs(msg)
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.no), key.Matches(msg, m.keys.back):
		m.view = FormView
		return m, nil
	case key.Matches(msg, m.keys.yes):
		m.view = SubmitView
		return m, m.startSubmit()
	}
	return m, nil
}

func (m *Model) handleResultKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "r":
		m.resetForm()
		return m, nil
	}
	return m, nil
}

// moveFocus shifts form focus, skipping the music source row when the
// selected option has no source to enter.
func (m *Model) moveFocus(step int) {
	for {
		m.focus = (m.focus + step + fieldCount) % fieldCount
		if m.focus != fieldMusicSource || m.musicOption() != models.MusicNone {
			break
		}
	}

	m.nameInput.Blur()
	m.textInput.Blur()
	m.musicInput.Blur()

	switch m.focus {
	case fieldCampaignName:
		m.nameInput.Focus()
	case fieldAdText:
		m.textInput.Focus()
	case fieldMusicSource:
		m.musicInput.Focus()
	}
}

func (m *Model) cycleOption(step int) {
	wrap := func(i, n int) int { return (i + step + n) % n }

	switch m.focus {
	case fieldObjective:
		m.objectiveID = wrap(m.objectiveID, len(models.Objectives))
	case fieldCTA:
		m.ctaID = wrap(m.ctaID, len(models.CallToActions))
	case fieldMusicOption:
		m.musicOpt = wrap(m.musicOpt, len(models.MusicOptions))
		m.musicInput.SetValue("")
		m.coordinator.Reset()
		m.verdict = m.coordinator.Current()
		if m.musicOption() == models.MusicCustom {
			m.musicInput.Placeholder = "Path to audio file"
		} else {
			m.musicInput.Placeholder = "Music ID"
		}
	}
}

// updateInputs forwards keystrokes to the focused text input. Edits to the
// music ID kick off a debounced remote validation.
func (m *Model) updateInputs(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd

	switch m.focus {
	case fieldCampaignName:
		m.nameInput, cmd = m.nameInput.Update(msg)
	case fieldAdText:
		m.textInput, cmd = m.textInput.Update(msg)
	case fieldMusicSource:
		before := m.musicInput.Value()
		m.musicInput, cmd = m.musicInput.Update(msg)

		if m.musicOption() == models.MusicExisting && m.musicInput.Value() != before {
			m.coordinator.Request(m.ctx, m.musicInput.Value())
			m.verdict = m.coordinator.Current()
		}
	}

	return cmd
}

// completeForm assembles the draft, resolving custom music files, and moves
// to confirmation when the draft passes local validation.
func (m *Model) completeForm() (tea.Model, tea.Cmd) {
	draft := models.AdDraft{
		CampaignName: m.nameInput.Value(),
		Objective:    models.Objectives[m.objectiveID],
		AdText:       m.textInput.Value(),
		CTA:          models.CallToActions[m.ctaID],
		MusicOption:  m.musicOption(),
	}

	switch draft.MusicOption {
	case models.MusicExisting:
		draft.MusicID = strings.TrimSpace(m.musicInput.Value())

	case models.MusicCustom:
		ref, err := fileRef(m.musicInput.Value())
		if err != nil {
			m.verdict = models.MusicVerdict{
				State:   models.VerdictInvalid,
				Reason:  models.ReasonInvalidType,
				Message: fmt.Sprintf("Could not read file: %v", err),
			}
			return m, nil
		}

		m.verdict = m.coordinator.ValidateLocalFile(*ref)
		if m.verdict.State != models.VerdictValid {
			return m, nil
		}
		draft.MusicID = m.verdict.MusicID
		draft.CustomMusic = ref
	}

	m.outcome = validation.ValidateDraft(draft)
	if !m.outcome.Valid() {
		return m, nil
	}

	m.draft = draft
	m.view = ConfirmView
	return m, nil
}

func (m *Model) startSubmit() tea.Cmd {
	draft := m.draft
	tok := m.session.State()

	return func() tea.Msg {
		receipt, appErr := m.engine.Submit(m.ctx, draft, tok)
		return submitDoneMsg{receipt: receipt, appErr: appErr}
	}
}

func (m *Model) waitForVerdict() tea.Cmd {
	return func() tea.Msg {
		verdict, ok := <-m.coordinator.Updates()
		if !ok {
			return nil
		}
		return verdictMsg(verdict)
	}
}

func (m *Model) resetForm() {
	m.engine.Reset()
	m.coordinator.Reset()
	m.nameInput.SetValue("")
	m.textInput.SetValue("")
	m.musicInput.SetValue("")
	m.objectiveID = 0
	m.ctaID = 0
	m.musicOpt = 0
	m.focus = fieldCampaignName
	m.nameInput.Focus()
	m.verdict = m.coordinator.Current()
	m.outcome = nil
	m.receipt = nil
	m.appErr = nil
	m.view = FormView
}

func (m *Model) focusedOnOption() bool {
	return m.focus == fieldObjective || m.focus == fieldCTA || m.focus == fieldMusicOption
}

func (m *Model) musicOption() models.MusicOption {
	return models.MusicOptions[m.musicOpt]
}

func (m *Model) renderForm() string {
	title := styles.title.Render("Create TikTok Ad")

	var b strings.Builder
	b.WriteString(title)
	b.WriteString("\n\n")

	b.WriteString(m.renderRow(fieldCampaignName, "Campaign name", m.nameInput.View()))
	b.WriteString(m.renderRow(fieldObjective, "Objective", string(models.Objectives[m.objectiveID])))
	b.WriteString(m.renderRow(fieldAdText, "Ad text", m.textInput.View()))
	b.WriteString(m.renderRow(fieldCTA, "Call to action", string(models.CallToActions[m.ctaID])))
	b.WriteString(m.renderRow(fieldMusicOption, "Music", string(m.musicOption())))

	if m.musicOption() != models.MusicNone {
		b.WriteString(m.renderRow(fieldMusicSource, "Source", m.musicInput.View()))
		b.WriteString(m.renderVerdict())
	}

	if !m.outcome.Valid() {
		b.WriteString("\n")
		for _, v := range m.outcome {
			b.WriteString(styles.err.Render(fmt.Sprintf("✗ %s", v.Message)))
			b.WriteString("\n")
		}
	}

	helpKeys := []key.Binding{m.keys.next, m.keys.cycle, m.keys.enter, m.keys.quit}
	b.WriteString("\n")
	b.WriteString(m.help.ShortHelpView(helpKeys))

	return b.String()
}

func (m *Model) renderRow(field int, label, value string) string {
	marker := "  "
	if m.focus == field {
		marker = styles.title.Render("> ")
	}
	return fmt.Sprintf("%s%-16s %s\n", marker, label, value)
}

func (m *Model) renderVerdict() string {
	switch m.verdict.State {
	case models.VerdictValidating:
		return fmt.Sprintf("  %s\n", styles.warn.Render("Validating music..."))
	case models.VerdictValid:
		return fmt.Sprintf("  %s\n", styles.ok.Render("✓ "+m.verdict.Message))
	case models.VerdictInvalid:
		return fmt.Sprintf("  %s\n", styles.err.Render("✗ "+m.verdict.Message))
	default:
		return ""
	}
}

func (m *Model) renderConfirm() string {
	title := styles.title.Render(fmt.Sprintf("Submit '%s'?", m.draft.CampaignName))
	info := fmt.Sprintf(
		"\nObjective: %s\nCall to action: %s\nMusic: %s\n",
		m.draft.Objective, m.draft.CTA, m.draft.MusicOption,
	)
	if m.draft.MusicID != "" {
		info += fmt.Sprintf("Music ID: %s\n", m.draft.MusicID)
	}

	helpKeys := []key.Binding{m.keys.yes, m.keys.no, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s\n%s", title, info, helpView)
}

func (m *Model) renderSubmit() string {
	title := styles.title.Render("Submitting Ad")
	return fmt.Sprintf("%s\n\nSending '%s' for review...", title, m.draft.CampaignName)
}

func (m *Model) renderResult() string {
	helpKeys := []key.Binding{m.keys.restart, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	if m.appErr != nil {
		body := styles.err.Render(fmt.Sprintf("✗ Submission failed: %s", m.appErr.Message))
		if m.appErr.Actionable && m.appErr.Action != nil {
			body += fmt.Sprintf("\n\n%s", styles.warn.Render("→ "+m.appErr.Action.Label))
		}
		return fmt.Sprintf("%s\n\nPress r to edit and retry, q to quit\n\n%s", body, helpView)
	}

	if m.receipt == nil {
		return styles.err.Render("No result available\n\nPress r to retry, q to quit")
	}

	title := styles.ok.Render("✓ Ad Submitted!")
	info := fmt.Sprintf(
		"\nAd ID: %s\nStatus: %s\nEstimated review: %s\n",
		m.receipt.AdID, m.receipt.Status, m.receipt.EstimatedReviewTime,
	)

	return fmt.Sprintf("%s\n%s\n%s", title, info, helpView)
}

// fileRef builds a file reference for a local audio file, inferring the MIME
// type from the extension.
func fileRef(path string) (*models.FileRef, error) {
	path = strings.TrimSpace(path)

	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	mimeTypes := map[string]string{
		".mp3": "audio/mpeg",
		".wav": "audio/wav",
		".aac": "audio/aac",
		".m4a": "audio/m4a",
	}

	return &models.FileRef{
		Name:     filepath.Base(path),
		MIMEType: mimeTypes[strings.ToLower(filepath.Ext(path))],
		Size:     info.Size(),
	}, nil
}
