// Package subscription holds the subscription lifecycle commands.
package subscription

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/halcyonapp/halcyon/adapter/cli"
	billingDomain "github.com/halcyonapp/halcyon/internal/billing/domain"
)

var Cmd = &cobra.Command{
	Use:   "subscription",
	Short: "Manage the subscription",
}

var (
	planID           string
	paymentMethodRef string
	retryCount       int
)

var plansCmd = &cobra.Command{
	Use:   "plans",
	Short: "List available plans",
	RunE: func(cmd *cobra.Command, args []string) error {
		now := time.Now()
		for _, plan := range []billingDomain.Plan{
			billingDomain.PlanMonthly,
			billingDomain.PlanQuarterly,
			billingDomain.PlanYearly,
		} {
			fmt.Fprintf(cmd.OutOrStdout(), "%-10s renews %s\n", plan, plan.PeriodEnd(now).Format("2006-01-02"))
		}
		return nil
	},
}

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a subscription for the signed-in user",
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil {
			return errors.New("application not configured")
		}

		sub, err := app.Lifecycle.CreateSubscription(cmd.Context(), planID, paymentMethodRef)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Subscription created: %s until %s\n",
			sub.Plan, sub.CurrentPeriodEnd.Format("2006-01-02"))
		return nil
	},
}

var retryCmd = &cobra.Command{
	Use:   "retry",
	Short: "Retry a failed payment",
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil {
			return errors.New("application not configured")
		}

		sub, err := app.Lifecycle.RetryPayment(cmd.Context(), paymentMethodRef, retryCount)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Payment succeeded, subscription %s until %s\n",
			sub.Status, sub.CurrentPeriodEnd.Format("2006-01-02"))
		return nil
	},
}

var cancelCmd = &cobra.Command{
	Use:   "cancel",
	Short: "Cancel the subscription",
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil {
			return errors.New("application not configured")
		}
		return app.Lifecycle.CancelSubscription(cmd.Context())
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show subscription status",
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil {
			return errors.New("application not configured")
		}

		sub := app.Store.CurrentSubscription()
		if sub == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "No subscription found.")
			return nil
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Subscription: %s (%s)\n", sub.Plan, sub.Status)
		fmt.Fprintf(cmd.OutOrStdout(), "Period: %s to %s\n",
			sub.CurrentPeriodStart.Format("2006-01-02"),
			sub.CurrentPeriodEnd.Format("2006-01-02"))
		if sub.BillingCustomerID != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "Billing customer: %s\n", sub.BillingCustomerID)
		}
		return nil
	},
}

func init() {
	createCmd.Flags().StringVar(&planID, "plan", "monthly", "plan: monthly, quarterly, or yearly")
	createCmd.Flags().StringVar(&paymentMethodRef, "payment-method", "", "payment method reference")

	retryCmd.Flags().StringVar(&paymentMethodRef, "payment-method", "", "payment method reference")
	retryCmd.Flags().IntVar(&retryCount, "attempt", 0, "prior failed attempts")

	Cmd.AddCommand(plansCmd)
	Cmd.AddCommand(createCmd)
	Cmd.AddCommand(retryCmd)
	Cmd.AddCommand(cancelCmd)
	Cmd.AddCommand(statusCmd)
}
