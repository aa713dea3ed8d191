package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/chaintrace/chaintrace/internal/session"
	"github.com/chaintrace/chaintrace/internal/supplychain"
	"github.com/chaintrace/chaintrace/internal/ui"
	"github.com/spf13/cobra"
)

var watchIntervalFlag int

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Live dashboard for the connected account",
	Long: `Full-screen dashboard that refreshes on an interval: your tokens and
balances, transfers awaiting action, and (for the admin) pending
registrations.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := restoredSession()
		if err != nil {
			return err
		}
		if !s.Snapshot().Connected() {
			fmt.Println(ui.Meta("Not connected."))
			fmt.Println(ui.Hint("Start a session with: chaintrace connect"))
			return nil
		}

		interval := cfg.WatchInterval
		if watchIntervalFlag > 0 {
			interval = watchIntervalFlag
		}

		r, err := readerClient()
		if err != nil {
			return err
		}

		// Provider events (account or chain switches) keep flowing into the
		// session while the dashboard runs.
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go s.Watch(ctx)

		p := ui.NewDashboard(time.Duration(interval)*time.Second, func() (*ui.DashboardData, error) {
			return fetchDashboard(s, r)
		})
		_, err = p.Run()
		return err
	},
}

// fetchDashboard assembles one dashboard refresh: re-resolve the session,
// then read the views the role needs.
func fetchDashboard(s *session.Store, r *supplychain.Client) (*ui.DashboardData, error) {
	if err := s.Refresh(); err != nil {
		logVerbose("refresh: %v", err)
	}
	snap := s.Snapshot()
	if !snap.Connected() {
		return nil, fmt.Errorf("session ended")
	}

	d := &ui.DashboardData{
		Address: snap.Address,
		IsAdmin: snap.IsAdmin,
	}
	if snap.User != nil {
		d.Role = snap.User.Role.String()
		d.Status = snap.User.Status.String()
	} else {
		d.Role = "unregistered"
		d.Status = "-"
	}

	tokens, err := r.TokensOf(snap.Address)
	if err != nil {
		return nil, err
	}
	for _, tok := range tokens {
		parent := "-"
		if tok.ParentID != 0 {
			parent = fmt.Sprintf("%d", tok.ParentID)
		}
		d.Tokens = append(d.Tokens, ui.TokenEntry{
			ID:      fmt.Sprintf("%d", tok.ID),
			Name:    tok.Name,
			Balance: tok.Balance,
			Parent:  parent,
		})
	}

	transfers, err := r.TransfersFor(snap.Address)
	if err != nil {
		return nil, err
	}
	for _, tr := range transfers {
		in := tr.Incoming(snap.Address)
		counterparty := tr.To
		if in {
			counterparty = tr.From
		}
		d.Transfers = append(d.Transfers, ui.TransferEntry{
			ID:           fmt.Sprintf("%d", tr.ID),
			TokenID:      fmt.Sprintf("%d", tr.TokenID),
			Counterparty: counterparty,
			Amount:       tr.Amount.String(),
			Status:       tr.Status.String(),
			Incoming:     in,
		})
	}

	if snap.IsAdmin {
		scan, err := r.ScanUsers()
		if err != nil {
			return nil, err
		}
		for _, u := range scan.Pending {
			d.Pending = append(d.Pending, ui.UserEntry{
				ID:     fmt.Sprintf("%d", u.ID),
				Wallet: u.Wallet,
				Role:   u.Role.String(),
				Status: u.Status.String(),
			})
		}
	}

	return d, nil
}

func init() {
	watchCmd.Flags().IntVar(&watchIntervalFlag, "interval", 0, "refresh interval in seconds (default from config)")
}
