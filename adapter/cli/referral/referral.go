// Package referral holds the referral program commands.
package referral

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/halcyonapp/halcyon/adapter/cli"
)

var Cmd = &cobra.Command{
	Use:   "referral",
	Short: "Referral program",
}

var referrerID string

var linkCmd = &cobra.Command{
	Use:   "link",
	Short: "Generate a shareable referral link",
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil {
			return errors.New("application not configured")
		}

		link, err := app.Referrals.GenerateReferralLink(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), link.URL)
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show referral statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil {
			return errors.New("application not configured")
		}

		stats, err := app.Referrals.GetReferralStats(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Invites: %d (completed %d, pending %d)\n",
			stats.TotalInvites, stats.Completed, stats.Pending)
		fmt.Fprintf(cmd.OutOrStdout(), "Rewards: %d\n", stats.TotalRewards)
		for _, record := range stats.History {
			fmt.Fprintf(cmd.OutOrStdout(), "  %s %s invited %s\n",
				record.RefereeEmail, record.Status, record.InvitedAt.Format("2006-01-02"))
		}
		return nil
	},
}

var rewardCmd = &cobra.Command{
	Use:   "reward",
	Short: "Report a completed referral",
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil {
			return errors.New("application not configured")
		}
		if referrerID == "" {
			pending, err := app.Referrals.PendingReferrer(cmd.Context())
			if err != nil {
				return err
			}
			if pending == "" {
				return errors.New("missing --referrer and no pending invite")
			}
			referrerID = pending
		}

		if err := app.Referrals.ProcessReferralReward(cmd.Context(), referrerID); err != nil {
			return err
		}
		if err := app.Referrals.ClearPendingReferrer(cmd.Context()); err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Referral reward reported.")
		return nil
	},
}

func init() {
	rewardCmd.Flags().StringVar(&referrerID, "referrer", "", "referrer id (defaults to the pending invite)")

	Cmd.AddCommand(linkCmd)
	Cmd.AddCommand(statsCmd)
	Cmd.AddCommand(rewardCmd)
}
