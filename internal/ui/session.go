package ui

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"shiftscan/internal/classify"
	"shiftscan/internal/csp"
	"shiftscan/internal/refmodel"
	"shiftscan/internal/report"
)

type sessionState int

const (
	stateMenu sessionState = iota
	stateAssign
	stateCSP
	stateResult
)

type menuEntry struct {
	title string
	hint  string
}

var sessionMenu = []menuEntry{
	{"Amino acid type assignment", "rank residue types for one ¹H/¹³C peak"},
	{"Chemical shift perturbation", "combined shift change between two states"},
	{"Quit", "leave the session"},
}

var (
	sessionTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	cursorStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("5")).Bold(true)
	hintStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	labelStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	focusedLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	errStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	savedStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
)

type formField struct {
	label string
	input textinput.Model
}

type sessionModel struct {
	state  sessionState
	back   sessionState // форма, из которой пришли в stateResult
	cursor int

	fields []formField
	focus  int

	table *refmodel.Table
	saver *report.Saver

	result  string
	savedTo string
	errMsg  string
	width   int
}

// NewSessionModel returns the menu-driven analysis session: assignment and
// perturbation forms over one shared reference table. Perturbation results
// are appended to the saver's file; assignments are display-only.
func NewSessionModel(table *refmodel.Table, saver *report.Saver) tea.Model {
	return &sessionModel{
		table: table,
		saver: saver,
		width: 80,
	}
}

func (m *sessionModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *sessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
		}
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.state {
		case stateMenu:
			return m.updateMenu(msg)
		case stateAssign, stateCSP:
			return m.updateForm(msg)
		case stateResult:
			return m.updateResult(msg)
		}
	}
	return m.updateFields(msg)
}

func (m *sessionModel) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(sessionMenu)-1 {
			m.cursor++
		}
	case "enter":
		switch m.cursor {
		case 0:
			return m, m.openForm(stateAssign)
		case 1:
			return m, m.openForm(stateCSP)
		default:
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m *sessionModel) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.state = stateMenu
		m.errMsg = ""
		return m, nil
	case "tab", "down":
		return m, m.focusField(m.focus + 1)
	case "shift+tab", "up":
		return m, m.focusField(m.focus - 1)
	case "enter":
		if m.focus < len(m.fields)-1 {
			return m, m.focusField(m.focus + 1)
		}
		if m.state == stateAssign {
			m.submitAssign()
		} else {
			m.submitCSP()
		}
		return m, nil
	}
	return m.updateFields(msg)
}

func (m *sessionModel) updateResult(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		// Повторный ввод в той же форме.
		return m, m.openForm(m.back)
	case "esc", "q":
		m.state = stateMenu
		return m, nil
	}
	return m, nil
}

func (m *sessionModel) updateFields(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.state != stateAssign && m.state != stateCSP {
		return m, nil
	}
	cmds := make([]tea.Cmd, len(m.fields))
	for i := range m.fields {
		m.fields[i].input, cmds[i] = m.fields[i].input.Update(msg)
	}
	return m, tea.Batch(cmds...)
}

func (m *sessionModel) openForm(state sessionState) tea.Cmd {
	switch state {
	case stateAssign:
		m.fields = []formField{
			newShiftField("¹H shift (ppm)", "7.04"),
			newShiftField("¹³C shift (ppm)", "131.2"),
		}
	case stateCSP:
		m.fields = []formField{
			newShiftField("¹H shift, free (ppm)", "7.20"),
			newShiftField("¹³C shift, free (ppm)", "131.5"),
			newShiftField("¹H shift, bound (ppm)", "7.25"),
			newShiftField("¹³C shift, bound (ppm)", "131.8"),
			newRegionField(),
		}
	}
	m.state = state
	m.errMsg = ""
	m.focus = 0
	return m.focusField(0)
}

func newShiftField(label, placeholder string) formField {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "> "
	ti.CharLimit = 16
	ti.Width = 20
	return formField{label: label, input: ti}
}

func newRegionField() formField {
	ti := textinput.New()
	ti.Placeholder = "aliphatic | aromatic"
	ti.Prompt = "> "
	ti.CharLimit = 16
	ti.Width = 20
	return formField{label: "Region", input: ti}
}

func (m *sessionModel) focusField(i int) tea.Cmd {
	if len(m.fields) == 0 {
		return nil
	}
	// Циклический переход по полям.
	if i < 0 {
		i = len(m.fields) - 1
	}
	if i >= len(m.fields) {
		i = 0
	}
	m.focus = i
	var cmd tea.Cmd
	for j := range m.fields {
		if j == i {
			cmd = m.fields[j].input.Focus()
			continue
		}
		m.fields[j].input.Blur()
	}
	return cmd
}

func (m *sessionModel) fieldShift(i int) (float64, bool) {
	raw := strings.TrimSpace(m.fields[i].input.Value())
	if raw == "" {
		m.errMsg = fmt.Sprintf("%s: value required", m.fields[i].label)
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		m.errMsg = fmt.Sprintf("%s: not a number: %q", m.fields[i].label, raw)
		return 0, false
	}
	return v, true
}

func (m *sessionModel) submitAssign() {
	h, ok := m.fieldShift(0)
	if !ok {
		return
	}
	c, ok := m.fieldShift(1)
	if !ok {
		return
	}
	p := classify.Point{H: h, C: c}
	if err := classify.ValidatePoint(p); err != nil {
		m.errMsg = err.Error()
		return
	}
	res := classify.Score(m.table, p)

	var buf bytes.Buffer
	if err := report.WriteRanked(&buf, res, report.RankedOptions{}); err != nil {
		m.errMsg = err.Error()
		return
	}
	m.result = buf.String()
	m.savedTo = ""
	m.errMsg = ""
	m.back = stateAssign
	m.state = stateResult
}

func (m *sessionModel) submitCSP() {
	h1, ok := m.fieldShift(0)
	if !ok {
		return
	}
	c1, ok := m.fieldShift(1)
	if !ok {
		return
	}
	h2, ok := m.fieldShift(2)
	if !ok {
		return
	}
	c2, ok := m.fieldShift(3)
	if !ok {
		return
	}
	region, err := csp.ParseRegion(strings.TrimSpace(m.fields[4].input.Value()))
	if err != nil {
		m.errMsg = err.Error()
		return
	}
	weights, err := csp.DefaultWeights(region)
	if err != nil {
		m.errMsg = err.Error()
		return
	}
	dH, dC := csp.Deltas(h1, c1, h2, c2)
	rec := report.CSPRecord{
		H1: h1, C1: c1,
		H2: h2, C2: c2,
		Region:    region,
		Breakdown: csp.Explain(dH, dC, weights),
	}

	var buf bytes.Buffer
	if err := report.WriteCSP(&buf, rec, false); err != nil {
		m.errMsg = err.Error()
		return
	}
	buf.WriteByte('\n')
	if err := report.WriteCSPVerification(&buf, rec); err != nil {
		m.errMsg = err.Error()
		return
	}
	m.result = buf.String()

	m.errMsg = ""
	m.savedTo = ""
	if m.saver != nil {
		if err := m.saver.AppendCSP(rec); err != nil {
			m.errMsg = fmt.Sprintf("save failed: %v", err)
		} else {
			m.savedTo = m.saver.Path
		}
	}
	m.back = stateCSP
	m.state = stateResult
}

func (m *sessionModel) View() string {
	var b strings.Builder
	b.WriteString(sessionTitleStyle.Render("NMR chemical shift analysis"))
	b.WriteString("\n\n")
	switch m.state {
	case stateMenu:
		m.viewMenu(&b)
	case stateAssign, stateCSP:
		m.viewForm(&b)
	case stateResult:
		m.viewResult(&b)
	}
	return b.String()
}

func (m *sessionModel) viewMenu(b *strings.Builder) {
	for i, entry := range sessionMenu {
		cursor := "  "
		title := entry.title
		if i == m.cursor {
			cursor = cursorStyle.Render("> ")
			title = cursorStyle.Render(title)
		}
		fmt.Fprintf(b, "%s%s\n", cursor, title)
		fmt.Fprintf(b, "    %s\n", hintStyle.Render(entry.hint))
	}
	b.WriteString("\n")
	b.WriteString(hintStyle.Render("↑/↓: move • enter: select • q: quit"))
	b.WriteString("\n")
}

func (m *sessionModel) viewForm(b *strings.Builder) {
	heading := "Amino acid type assignment"
	if m.state == stateCSP {
		heading = "Chemical shift perturbation"
	}
	b.WriteString(labelStyle.Render(heading))
	b.WriteString("\n\n")
	for i := range m.fields {
		style := labelStyle
		if i == m.focus {
			style = focusedLabelStyle
		}
		fmt.Fprintf(b, "%s\n%s\n", style.Render(m.fields[i].label), m.fields[i].input.View())
	}
	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errStyle.Render(m.errMsg))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(hintStyle.Render("tab: next field • enter: submit • esc: menu"))
	b.WriteString("\n")
}

func (m *sessionModel) viewResult(b *strings.Builder) {
	b.WriteString(m.result)
	if m.savedTo != "" {
		b.WriteString("\n")
		b.WriteString(savedStyle.Render(fmt.Sprintf("Results saved to %s", m.savedTo)))
		b.WriteString("\n")
	}
	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errStyle.Render(m.errMsg))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(hintStyle.Render("enter: new computation • esc: menu"))
	b.WriteString("\n")
}
