package main

import (
	"github.com/spf13/cobra"
)

type rootFlags struct {
	configPath string
	apiURL     string
	logLevel   string
	logHuman   bool
	verbose    bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "momentum",
		Short:         "Momentum turns daily habits into coins, themes and achievements",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return runDashboard(cmd, flags)
			}
			return cmd.Help()
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "Config file (default ~/.momentum/config.yaml)")
	pf.StringVar(&flags.apiURL, "api-url", "", "Backend base URL")
	pf.StringVar(&flags.logLevel, "log-level", "", "Log level (trace, debug, info, warn, error, disabled)")
	pf.BoolVar(&flags.logHuman, "log-human", false, "Human readable logs")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(newServeCmd(flags))
	cmd.AddCommand(newLoginCmd(flags))
	cmd.AddCommand(newSignupCmd(flags))
	cmd.AddCommand(newLogoutCmd(flags))
	cmd.AddCommand(newHabitsCmd(flags))
	cmd.AddCommand(newShopCmd(flags))
	cmd.AddCommand(newInventoryCmd(flags))
	cmd.AddCommand(newAchievementsCmd(flags))
	cmd.AddCommand(newThemeCmd(flags))
	cmd.AddCommand(newDashboardCmd(flags))
	cmd.AddCommand(newVersionCmd())

	return cmd
}
