package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/rechesh-io/rechesh/internal/hierarchy"
	"github.com/rechesh-io/rechesh/internal/pagination"
	"github.com/rechesh-io/rechesh/internal/purchase"
	"github.com/rechesh-io/rechesh/internal/purpose"
)

type purposesState int

const (
	purposesStateBrowse purposesState = iota
	purposesStateSearch
	purposesStateDetail
	purposesStateEdit
	purposesStateCreate
	purposesStateConfirmDelete
)

type PurposesModel struct {
	CommonModel
	purposeService   *purpose.Service
	hierarchyService *hierarchy.Service

	state       purposesState
	table       table.Model
	items       []*purpose.Purpose
	names       map[int64]string
	history     []*purpose.StatusChange
	form        *huh.Form
	searchInput textinput.Model

	// Filter cycling
	statusFilterIdx int
	flagFilterIdx   int

	query   purpose.Query
	total   int64
	loading bool
	err     error
	status  string

	// Form bindings
	formStatus      purpose.Status
	formDescription string
	formSupplier    string
	formService     string
	formComments    string
	formConfirm     bool
}

func NewPurposesModel(purposeSvc *purpose.Service, hierarchySvc *hierarchy.Service) PurposesModel {
	columns := []table.Column{
		{Title: "ID", Width: 5},
		{Title: "Status", Width: 19},
		{Title: "Supplier", Width: 18},
		{Title: "Hierarchy", Width: 16},
		{Title: "Delivery", Width: 12},
		{Title: "Flag", Width: 4},
		{Title: "Description", Width: 34},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	si := textinput.New()
	si.Placeholder = "search description, content, emf id"
	si.Width = 40
	si.Prompt = "/ "

	return PurposesModel{
		purposeService:   purposeSvc,
		hierarchyService: hierarchySvc,
		table:            t,
		searchInput:      si,
		query:            purpose.DefaultQuery(),
	}
}

func (m PurposesModel) Title() string { return "Browse Purposes" }

func (m PurposesModel) ShortHelp() string {
	switch m.state {
	case purposesStateEdit, purposesStateCreate, purposesStateConfirmDelete:
		return "Navigate form | Esc: cancel"
	case purposesStateDetail:
		return "Esc/Enter: close detail"
	case purposesStateSearch:
		return "Enter: apply | Esc: clear"
	}
	return "Esc: back | Enter: detail | n: new | e: edit | d: delete | x: flag | s/f: filters | /: search | r: refresh"
}

func (m PurposesModel) Init() tea.Cmd {
	return m.loadPurposesCmd()
}

func (m PurposesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadPurposesMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.items = msg.items
		m.names = msg.names
		m.total = msg.total
		m.refreshTable()
		return m, nil

	case historyMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error loading history: %v", msg.err)
			return m, nil
		}
		m.history = msg.changes
		return m, nil

	case purposeSaveMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error saving: %v", msg.err)
		}
		m.state = purposesStateBrowse
		m.form = nil
		m.table.Focus()
		return m, m.loadPurposesCmd()

	case flagToggleMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error toggling flag: %v", msg.err)
			return m, nil
		}
		return m, m.loadPurposesCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case purposesStateBrowse:
		return m.updateBrowse(msg)
	case purposesStateSearch:
		return m.updateSearch(msg)
	case purposesStateDetail:
		return m.updateDetail(msg)
	case purposesStateEdit, purposesStateCreate, purposesStateConfirmDelete:
		return m.updateForm(msg)
	}

	return m, nil
}

func (m PurposesModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadPurposesCmd()
		case "/":
			m.state = purposesStateSearch
			m.table.Blur()
			m.searchInput.Focus()
			return m, textinput.Blink
		case "enter":
			if p := m.selected(); p != nil {
				m.state = purposesStateDetail
				m.history = nil
				return m, m.loadHistoryCmd(p.ID)
			}
			return m, nil
		case "n":
			return m.enterCreateMode()
		case "e":
			return m.enterEditMode()
		case "d":
			return m.enterConfirmDelete()
		case "x":
			return m, m.toggleFlagCmd()
		case "s":
			m.statusFilterIdx = (m.statusFilterIdx + 1) % 5
			m.applyFilter()
			return m, m.loadPurposesCmd()
		case "f":
			m.flagFilterIdx = (m.flagFilterIdx + 1) % 3
			m.applyFilter()
			return m, m.loadPurposesCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m PurposesModel) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyEsc:
			m.searchInput.SetValue("")
			fallthrough
		case tea.KeyEnter:
			m.query.SearchTerms = strings.Fields(m.searchInput.Value())
			m.state = purposesStateBrowse
			m.searchInput.Blur()
			m.table.Focus()
			return m, m.loadPurposesCmd()
		}
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

func (m PurposesModel) updateDetail(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc", "enter":
			m.state = purposesStateBrowse
			return m, nil
		}
	}

	return m, nil
}

func (m *PurposesModel) selected() *purpose.Purpose {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.items) {
		return nil
	}

	return m.items[idx]
}

func (m PurposesModel) enterCreateMode() (tea.Model, tea.Cmd) {
	m.formStatus = purpose.StatusInProgress
	m.formDescription = ""
	m.formSupplier = ""
	m.formService = ""
	m.formComments = ""

	m.form = m.buildPurposeForm()
	m.state = purposesStateCreate
	m.table.Blur()
	return m, m.form.Init()
}

func (m PurposesModel) enterEditMode() (tea.Model, tea.Cmd) {
	p := m.selected()
	if p == nil {
		return m, nil
	}

	m.formStatus = p.Status
	m.formDescription = deref(p.Description)
	m.formSupplier = deref(p.Supplier)
	m.formService = deref(p.ServiceType)
	m.formComments = deref(p.Comments)

	m.form = m.buildPurposeForm()
	m.state = purposesStateEdit
	m.table.Blur()
	return m, m.form.Init()
}

func (m PurposesModel) enterConfirmDelete() (tea.Model, tea.Cmd) {
	p := m.selected()
	if p == nil {
		return m, nil
	}

	m.formConfirm = false
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Key("confirm").
				Title(fmt.Sprintf("Delete purpose #%d?", p.ID)).
				Affirmative("Delete").
				Negative("Cancel").
				Value(&m.formConfirm),
		),
	).WithWidth(40).WithShowHelp(false)

	m.state = purposesStateConfirmDelete
	m.table.Blur()
	return m, m.form.Init()
}

func (m *PurposesModel) buildPurposeForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[purpose.Status]().
				Key("status").
				Title("Status").
				Options(
					huh.NewOption("In Progress", purpose.StatusInProgress),
					huh.NewOption("Completed", purpose.StatusCompleted),
					huh.NewOption("Signed", purpose.StatusSigned),
					huh.NewOption("Partially Supplied", purpose.StatusPartiallySupplied),
				).
				Value(&m.formStatus),

			huh.NewInput().
				Key("description").
				Title("Description").
				CharLimit(2000).
				Value(&m.formDescription),

			huh.NewInput().
				Key("supplier").
				Title("Supplier").
				CharLimit(200).
				Value(&m.formSupplier),

			huh.NewInput().
				Key("service_type").
				Title("Service Type").
				CharLimit(100).
				Value(&m.formService),

			huh.NewText().
				Key("comments").
				Title("Comments").
				CharLimit(1000).
				Value(&m.formComments),
		),
	).WithWidth(48).WithShowHelp(false)
}

func (m PurposesModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = purposesStateBrowse
			m.form = nil
			m.table.Focus()
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
	case purposesStateCreate:
		return m, m.createCmd()
	case purposesStateEdit:
		return m, m.saveCmd()
	case purposesStateConfirmDelete:
		if !m.form.GetBool("confirm") {
			m.state = purposesStateBrowse
			m.form = nil
			m.table.Focus()
			return m, nil
		}
		return m, m.deleteCmd()
	}

	return m, nil
}

func (m PurposesModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading purposes...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	statusLabels := []string{"All", "In Progress", "Completed", "Signed", "Partially Supplied"}
	flagLabels := []string{"All", "Flagged", "Unflagged"}

	header := fmt.Sprintf(
		"Filter: [s] Status: %s | [f] Flag: %s | %d of %d purposes",
		activeStyle(statusLabels[m.statusFilterIdx]),
		activeStyle(flagLabels[m.flagFilterIdx]),
		len(m.items),
		m.total,
	)
	if len(m.query.SearchTerms) > 0 {
		header += " | search: " + activeStyle(strings.Join(m.query.SearchTerms, " "))
	}

	if m.state == purposesStateSearch {
		header = m.searchInput.View()
	}

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	switch m.state {
	case purposesStateDetail:
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, m.detailPanel())
	case purposesStateEdit, purposesStateCreate, purposesStateConfirmDelete:
		if m.form != nil {
			title := "Edit Purpose"
			if m.state == purposesStateCreate {
				title = "New Purpose"
			} else if m.state == purposesStateConfirmDelete {
				title = "Confirm"
			}

			panel := lipgloss.NewStyle().
				Padding(1, 2).
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("63")).
				Width(52).
				Render(fmt.Sprintf("%s\n\n%s", title, m.form.View()))

			content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
		}
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m PurposesModel) detailPanel() string {
	p := m.selected()
	if p == nil {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Purpose #%d  [%s]\n", p.ID, p.Status)

	if p.Description != nil {
		fmt.Fprintf(&b, "%s\n", *p.Description)
	}
	if p.HierarchyID != nil {
		fmt.Fprintf(&b, "Hierarchy: %s\n", m.names[*p.HierarchyID])
	}
	if p.ServiceType != nil {
		fmt.Fprintf(&b, "Service: %s\n", *p.ServiceType)
	}
	if p.ExpectedDelivery != nil {
		fmt.Fprintf(&b, "Delivery: %s\n", FormatDate(*p.ExpectedDelivery))
	}
	if p.Comments != nil {
		fmt.Fprintf(&b, "Comments: %s\n", *p.Comments)
	}

	for _, pc := range p.Purchases {
		fmt.Fprintf(&b, "\nEMF %s\n", pc.EmfID)
		if pc.OrderID != nil {
			fmt.Fprintf(&b, "  Order %s (%s)\n", *pc.OrderID, FormatDatePtr(pc.OrderCreationDate))
		}
		for _, st := range pc.Stages {
			fmt.Fprintf(&b, "  Stage %s: %s %s\n", st.Name, deref(st.Value), FormatDatePtr(st.CompletionDate))
		}
		for _, c := range pc.Costs {
			fmt.Fprintf(&b, "  Cost %s\n", FormatMoney(c.Amount, c.Currency))
		}
	}

	if len(m.history) > 0 {
		b.WriteString("\nHistory\n")
		for _, h := range m.history {
			prev := "-"
			if h.PreviousStatus != nil {
				prev = string(*h.PreviousStatus)
			}

			line := fmt.Sprintf("  %s  %s -> %s", FormatDate(h.ChangedAt), prev, h.NewStatus)
			if h.ChangedBy != nil {
				line += " by " + *h.ChangedBy
			}

			b.WriteString(line + "\n")
		}
	}

	return lipgloss.NewStyle().
		Padding(1, 2).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63")).
		Width(52).
		Render(b.String())
}

func activeStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(s)
}

func (m *PurposesModel) applyFilter() {
	statuses := []purpose.Status{
		purpose.StatusInProgress,
		purpose.StatusCompleted,
		purpose.StatusSigned,
		purpose.StatusPartiallySupplied,
	}

	if m.statusFilterIdx == 0 {
		m.query.Filter.Statuses = nil
	} else {
		m.query.Filter.Statuses = []purpose.Status{statuses[m.statusFilterIdx-1]}
	}

	switch m.flagFilterIdx {
	case 1:
		m.query.Filter.IsFlagged = new(true)
	case 2:
		m.query.Filter.IsFlagged = new(false)
	default:
		m.query.Filter.IsFlagged = nil
	}
}

func (m *PurposesModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.items))
	for _, p := range m.items {
		hierarchyName := ""
		if p.HierarchyID != nil {
			hierarchyName = m.names[*p.HierarchyID]
		}

		flag := ""
		if p.IsFlagged {
			flag = "*"
		}

		rows = append(rows, table.Row{
			fmt.Sprintf("%d", p.ID),
			string(p.Status),
			deref(p.Supplier),
			hierarchyName,
			FormatDatePtr(p.ExpectedDelivery),
			flag,
			deref(p.Description),
		})
	}
	m.table.SetRows(rows)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	return &s
}

// Messages

type loadPurposesMsg struct {
	items []*purpose.Purpose
	names map[int64]string
	total int64
	err   error
}

func (m PurposesModel) loadPurposesCmd() tea.Cmd {
	query := m.query

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		items, total, err := m.purposeService.List(ctx, query, pagination.Params{Page: 1, PageSize: 100})
		if err != nil {
			return loadPurposesMsg{err: err}
		}

		all, err := m.hierarchyService.ListAll(ctx)
		if err != nil {
			return loadPurposesMsg{err: err}
		}

		names := make(map[int64]string, len(all))
		for _, h := range all {
			names[h.ID] = h.Name
		}

		return loadPurposesMsg{items: items, names: names, total: total}
	}
}

type historyMsg struct {
	changes []*purpose.StatusChange
	err     error
}

func (m PurposesModel) loadHistoryCmd(id int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		changes, err := m.purposeService.StatusHistory(ctx, id)
		return historyMsg{changes: changes, err: err}
	}
}

type flagToggleMsg struct {
	err error
}

func (m PurposesModel) toggleFlagCmd() tea.Cmd {
	p := m.selected()
	if p == nil {
		return nil
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		return flagToggleMsg{err: m.purposeService.SetFlag(ctx, p.ID, !p.IsFlagged)}
	}
}

type purposeSaveMsg struct {
	err error
}

func (m PurposesModel) createCmd() tea.Cmd {
	status, _ := m.form.Get("status").(purpose.Status)

	params := purpose.Params{
		Status:      status,
		Description: optional(m.form.GetString("description")),
		Supplier:    optional(m.form.GetString("supplier")),
		ServiceType: optional(m.form.GetString("service_type")),
		Comments:    optional(m.form.GetString("comments")),
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		_, err := m.purposeService.Create(ctx, params)
		return purposeSaveMsg{err: err}
	}
}

func (m PurposesModel) saveCmd() tea.Cmd {
	p := m.selected()
	if p == nil {
		return nil
	}

	params := editParams(p)
	if status, ok := m.form.Get("status").(purpose.Status); ok {
		params.Status = status
	}
	params.Description = optional(m.form.GetString("description"))
	params.Supplier = optional(m.form.GetString("supplier"))
	params.ServiceType = optional(m.form.GetString("service_type"))
	params.Comments = optional(m.form.GetString("comments"))

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		_, err := m.purposeService.Update(ctx, p.ID, params)
		return purposeSaveMsg{err: err}
	}
}

func (m PurposesModel) deleteCmd() tea.Cmd {
	p := m.selected()
	if p == nil {
		return nil
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		return purposeSaveMsg{err: m.purposeService.Delete(ctx, p.ID)}
	}
}

// editParams rebuilds the full update payload from the stored aggregate,
// since updates replace the whole desired state.
func editParams(p *purpose.Purpose) purpose.Params {
	params := purpose.Params{
		HierarchyID:      p.HierarchyID,
		ExpectedDelivery: p.ExpectedDelivery,
		Comments:         p.Comments,
		Status:           p.Status,
		Supplier:         p.Supplier,
		Content:          p.Content,
		Description:      p.Description,
		ServiceType:      p.ServiceType,
		IsFlagged:        p.IsFlagged,
		FileIDs:          p.FileIDs,
	}

	for _, pc := range p.Purchases {
		pcParams := purchase.Params{
			ID:                   new(pc.ID),
			EmfID:                pc.EmfID,
			OrderID:              pc.OrderID,
			OrderCreationDate:    pc.OrderCreationDate,
			DemandID:             pc.DemandID,
			DemandCreationDate:   pc.DemandCreationDate,
			BikushitID:           pc.BikushitID,
			BikushitCreationDate: pc.BikushitCreationDate,
		}

		for _, st := range pc.Stages {
			pcParams.Stages = append(pcParams.Stages, purchase.StageParams{
				ID:             new(st.ID),
				Name:           st.Name,
				Priority:       st.Priority,
				Value:          st.Value,
				CompletionDate: st.CompletionDate,
			})
		}

		for _, c := range pc.Costs {
			pcParams.Costs = append(pcParams.Costs, purchase.CostParams{
				ID:       new(c.ID),
				Currency: c.Currency,
				Amount:   c.Amount,
			})
		}

		params.Purchases = append(params.Purchases, pcParams)
	}

	return params
}
