// Package link feeds URLs through the deep-link router.
package link

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/halcyonapp/halcyon/adapter/cli"
)

var Cmd = &cobra.Command{
	Use:   "link",
	Short: "Handle deep links",
}

var handleCmd = &cobra.Command{
	Use:   "handle <url>",
	Short: "Parse and dispatch a deep link",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil {
			return errors.New("application not configured")
		}

		app.DeepLinks.SetReady(cmd.Context())
		route, err := app.DeepLinks.Handle(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Route: %s %+v\n", route.Name(), route)
		return nil
	},
}

var initialCmd = &cobra.Command{
	Use:   "initial [url]",
	Short: "Resolve the cold-start route",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil {
			return errors.New("application not configured")
		}

		if len(args) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "Entry screen: %s\n", app.DeepLinks.EntryScreen())
			return nil
		}

		app.DeepLinks.SetReady(cmd.Context())
		route, err := app.DeepLinks.HandleInitial(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Route: %s %+v\n", route.Name(), route)
		return nil
	},
}

func init() {
	Cmd.AddCommand(handleCmd)
	Cmd.AddCommand(initialCmd)
}
