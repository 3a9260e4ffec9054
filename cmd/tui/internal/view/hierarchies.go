package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/rechesh-io/rechesh/internal/hierarchy"
)

type hierarchiesState int

const (
	hierarchiesStateBrowse hierarchiesState = iota
	hierarchiesStateCreate
	hierarchiesStateRename
	hierarchiesStateConfirmDelete
)

type treeRow struct {
	depth int
	node  *hierarchy.Node
}

type HierarchiesModel struct {
	CommonModel
	hierarchyService *hierarchy.Service

	state   hierarchiesState
	rows    []treeRow
	cursor  int
	form    *huh.Form
	loading bool
	err     error
	status  string

	// Form bindings
	formType    hierarchy.Type
	formName    string
	formAttach  bool
	formConfirm bool
}

func NewHierarchiesModel(svc *hierarchy.Service) HierarchiesModel {
	return HierarchiesModel{hierarchyService: svc}
}

func (m HierarchiesModel) Title() string { return "Hierarchy Tree" }

func (m HierarchiesModel) ShortHelp() string {
	if m.state != hierarchiesStateBrowse {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | n: new | e: rename | d: delete | r: refresh"
}

func (m HierarchiesModel) Init() tea.Cmd {
	return m.loadTreeCmd()
}

func (m HierarchiesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadTreeMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.rows = msg.rows
		if m.cursor >= len(m.rows) {
			m.cursor = len(m.rows) - 1
		}
		if m.cursor < 0 {
			m.cursor = 0
		}
		return m, nil

	case hierarchySavedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		} else {
			m.status = ""
		}
		m.state = hierarchiesStateBrowse
		m.form = nil
		return m, m.loadTreeCmd()
	}

	if m.state == hierarchiesStateBrowse {
		return m.updateBrowse(msg)
	}

	return m.updateForm(msg)
}

func (m HierarchiesModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "esc":
		return m, Back
	case "r":
		m.loading = true
		return m, m.loadTreeCmd()
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
	case "n":
		return m.enterCreateMode()
	case "e":
		return m.enterRenameMode()
	case "d":
		return m.enterConfirmDelete()
	}

	return m, nil
}

func (m *HierarchiesModel) selected() *hierarchy.Node {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return nil
	}

	return m.rows[m.cursor].node
}

func (m HierarchiesModel) enterCreateMode() (tea.Model, tea.Cmd) {
	m.formType = hierarchy.TypeTeam
	m.formName = ""
	m.formAttach = m.selected() != nil

	fields := []huh.Field{
		huh.NewSelect[hierarchy.Type]().
			Key("type").
			Title("Type").
			Options(
				huh.NewOption("Unit", hierarchy.TypeUnit),
				huh.NewOption("Center", hierarchy.TypeCenter),
				huh.NewOption("Anaf", hierarchy.TypeAnaf),
				huh.NewOption("Mador", hierarchy.TypeMador),
				huh.NewOption("Team", hierarchy.TypeTeam),
			).
			Value(&m.formType),

		huh.NewInput().
			Key("name").
			Title("Name").
			CharLimit(255).
			Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return fmt.Errorf("name is required")
				}
				return nil
			}).
			Value(&m.formName),
	}

	if sel := m.selected(); sel != nil {
		fields = append(fields,
			huh.NewConfirm().
				Key("attach").
				Title(fmt.Sprintf("Attach under %q?", sel.Name)).
				Affirmative("Yes").
				Negative("No, at root").
				Value(&m.formAttach),
		)
	}

	m.form = huh.NewForm(huh.NewGroup(fields...)).WithWidth(44).WithShowHelp(false)
	m.state = hierarchiesStateCreate
	return m, m.form.Init()
}

func (m HierarchiesModel) enterRenameMode() (tea.Model, tea.Cmd) {
	sel := m.selected()
	if sel == nil {
		return m, nil
	}

	m.formName = sel.Name
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("name").
				Title(fmt.Sprintf("Rename %q", sel.Name)).
				CharLimit(255).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name is required")
					}
					return nil
				}).
				Value(&m.formName),
		),
	).WithWidth(44).WithShowHelp(false)

	m.state = hierarchiesStateRename
	return m, m.form.Init()
}

func (m HierarchiesModel) enterConfirmDelete() (tea.Model, tea.Cmd) {
	sel := m.selected()
	if sel == nil {
		return m, nil
	}

	m.formConfirm = false
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Key("confirm").
				Title(fmt.Sprintf("Delete %q?", sel.Name)).
				Description("Nodes with children or linked purposes cannot be deleted.").
				Affirmative("Delete").
				Negative("Cancel").
				Value(&m.formConfirm),
		),
	).WithWidth(44).WithShowHelp(false)

	m.state = hierarchiesStateConfirmDelete
	return m, m.form.Init()
}

func (m HierarchiesModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = hierarchiesStateBrowse
			m.form = nil
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	switch m.state {
	case hierarchiesStateCreate:
		return m, m.createCmd()
	case hierarchiesStateRename:
		return m, m.renameCmd()
	case hierarchiesStateConfirmDelete:
		if !m.form.GetBool("confirm") {
			m.state = hierarchiesStateBrowse
			m.form = nil
			return m, nil
		}
		return m, m.deleteCmd()
	}

	return m, nil
}

func (m HierarchiesModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading hierarchy tree...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	typeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	var b strings.Builder
	fmt.Fprintf(&b, "%d nodes\n\n", len(m.rows))

	for i, row := range m.rows {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}

		indent := strings.Repeat("  ", row.depth)
		line := fmt.Sprintf("%s%s%s %s", cursor, indent, typeStyle.Render("["+string(row.node.Type)+"]"), row.node.Name)
		if n := len(row.node.Children); n > 0 {
			line += typeStyle.Render(fmt.Sprintf(" (%d)", n))
		}

		if i == m.cursor {
			line = lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Render(line)
		}

		b.WriteString(line + "\n")
	}

	content := b.String()

	if m.form != nil && m.state != hierarchiesStateBrowse {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render(m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

// Messages

type loadTreeMsg struct {
	rows []treeRow
	err  error
}

func (m HierarchiesModel) loadTreeCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		nodes, err := m.hierarchyService.Tree(ctx)
		if err != nil {
			return loadTreeMsg{err: err}
		}

		return loadTreeMsg{rows: flattenTree(nodes, 0, nil)}
	}
}

func flattenTree(nodes []*hierarchy.Node, depth int, out []treeRow) []treeRow {
	for _, n := range nodes {
		out = append(out, treeRow{depth: depth, node: n})
		out = flattenTree(n.Children, depth+1, out)
	}

	return out
}

type hierarchySavedMsg struct {
	err error
}

func (m HierarchiesModel) createCmd() tea.Cmd {
	sel := m.selected()

	hierarchyType, _ := m.form.Get("type").(hierarchy.Type)
	params := hierarchy.CreateParams{
		Type: hierarchyType,
		Name: strings.TrimSpace(m.form.GetString("name")),
	}
	if sel != nil && m.form.GetBool("attach") {
		params.ParentID = new(sel.ID)
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		_, err := m.hierarchyService.Create(ctx, params)
		return hierarchySavedMsg{err: err}
	}
}

func (m HierarchiesModel) renameCmd() tea.Cmd {
	sel := m.selected()
	if sel == nil {
		return nil
	}

	name := strings.TrimSpace(m.form.GetString("name"))

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		_, err := m.hierarchyService.Update(ctx, sel.ID, hierarchy.UpdateParams{Name: &name})
		return hierarchySavedMsg{err: err}
	}
}

func (m HierarchiesModel) deleteCmd() tea.Cmd {
	sel := m.selected()
	if sel == nil {
		return nil
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		return hierarchySavedMsg{err: m.hierarchyService.Delete(ctx, sel.ID)}
	}
}
