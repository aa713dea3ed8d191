package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TokenEntry is one owned token row on the dashboard.
type TokenEntry struct {
	ID      string
	Name    string
	Balance string
	Parent  string
}

// TransferEntry is one transfer row on the dashboard.
type TransferEntry struct {
	ID           string
	TokenID      string
	Counterparty string
	Amount       string
	Status       string
	Incoming     bool
}

// UserEntry is one registration row on the admin dashboard.
type UserEntry struct {
	ID     string
	Wallet string
	Role   string
	Status string
}

// DashboardData is one full refresh of the role dashboard.
type DashboardData struct {
	Address   string
	Role      string
	Status    string
	IsAdmin   bool
	Tokens    []TokenEntry
	Transfers []TransferEntry
	Pending   []UserEntry // admin only
}

// dashboardModel is the Bubble Tea model for the live role dashboard.
type dashboardModel struct {
	data       *DashboardData
	lastUpdate time.Time
	interval   time.Duration
	quitting   bool
	fetcher    func() (*DashboardData, error)
	err        string
}

type tickMsg time.Time
type dataFetchedMsg *DashboardData
type fetchErrorMsg string

// NewDashboard creates a Bubble Tea program for the live role dashboard.
// fetcher runs on every tick and returns a complete snapshot to render.
func NewDashboard(interval time.Duration, fetcher func() (*DashboardData, error)) *tea.Program {
	m := dashboardModel{
		interval: interval,
		fetcher:  fetcher,
	}
	return tea.NewProgram(m)
}

func (m dashboardModel) Init() tea.Cmd {
	return tea.Batch(m.fetchCmd(), tick(m.interval))
}

func (m dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "r":
			return m, m.fetchCmd()
		}

	case tickMsg:
		return m, tea.Batch(m.fetchCmd(), tick(m.interval))

	case dataFetchedMsg:
		m.data = (*DashboardData)(msg)
		m.lastUpdate = time.Now()
		m.err = ""

	case fetchErrorMsg:
		m.err = string(msg)
	}

	return m, nil
}

func (m dashboardModel) View() string {
	if m.quitting {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(StyleTitle.Render("⚡ Supply Chain Dashboard") + "\n")
	sb.WriteString(StyleMeta.Render(fmt.Sprintf("Updated: %s · r to refresh · q to quit\n\n", m.lastUpdate.Format("15:04:05"))))

	if m.err != "" {
		sb.WriteString(Err(m.err) + "\n")
	}

	if m.data == nil {
		sb.WriteString(StyleMeta.Render("Loading...") + "\n")
		return sb.String()
	}

	d := m.data
	role := d.Role
	if d.IsAdmin {
		role = "Admin"
	}
	sb.WriteString(fmt.Sprintf("%s %s  %s %s  %s %s\n\n",
		StyleMeta.Render("Account:"), Addr(TruncateAddr(d.Address)),
		StyleMeta.Render("Role:"), Role(role),
		StyleMeta.Render("Status:"), StatusBadge(d.Status)))

	if d.IsAdmin {
		sb.WriteString(StyleHeader.Render("Pending registrations") + "\n")
		if len(d.Pending) == 0 {
			sb.WriteString(StyleMeta.Render("  none") + "\n")
		} else {
			t := NewTable([]Column{
				{Title: "ID", Width: 6},
				{Title: "Wallet", Width: 14},
				{Title: "Role", Width: 10},
				{Title: "Status", Width: 10},
			})
			for _, u := range d.Pending {
				t.AddRow(Row{u.ID, TruncateAddr(u.Wallet), u.Role, u.Status})
			}
			sb.WriteString(t.Render())
		}
		sb.WriteString("\n")
	}

	sb.WriteString(StyleHeader.Render("Tokens") + "\n")
	if len(d.Tokens) == 0 {
		sb.WriteString(StyleMeta.Render("  none") + "\n")
	} else {
		t := NewTable([]Column{
			{Title: "ID", Width: 6},
			{Title: "Name", Width: 24},
			{Title: "Balance", Width: 12},
			{Title: "Parent", Width: 8},
		})
		for _, tok := range d.Tokens {
			t.AddRow(Row{tok.ID, tok.Name, tok.Balance, tok.Parent})
		}
		sb.WriteString(t.Render())
	}
	sb.WriteString("\n")

	sb.WriteString(StyleHeader.Render("Transfers") + "\n")
	if len(d.Transfers) == 0 {
		sb.WriteString(StyleMeta.Render("  none") + "\n")
	} else {
		t := NewTable([]Column{
			{Title: "ID", Width: 6},
			{Title: "Token", Width: 7},
			{Title: "Dir", Width: 4},
			{Title: "Counterparty", Width: 14},
			{Title: "Amount", Width: 12},
			{Title: "Status", Width: 10},
		})
		for _, tr := range d.Transfers {
			dir := StyleWarning.Render("out")
			if tr.Incoming {
				dir = StyleSuccess.Render("in")
			}
			t.AddRow(Row{tr.ID, tr.TokenID, dir, TruncateAddr(tr.Counterparty), tr.Amount, tr.Status})
		}
		sb.WriteString(t.Render())
	}

	return sb.String()
}

func (m dashboardModel) fetchCmd() tea.Cmd {
	return func() tea.Msg {
		data, err := m.fetcher()
		if err != nil {
			return fetchErrorMsg(err.Error())
		}
		return dataFetchedMsg(data)
	}
}

func tick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
