package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/RyanBlaney/melos-sonar/logging"
)

// NewRootCmd builds the melossonar command tree.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "melossonar",
		Short: "Symbolic music analysis toolkit",
		Long: `melossonar computes musicological features from symbolic scores:
FANTASTIC M-Type n-gram statistics, step contour, Parncutt root
estimation, onset periodicity and tempo maps from MIDI files.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if viper.GetBool("no_color") {
				logging.SetGlobalLogger(logging.NewDefaultLoggerNoColor())
			}
			if viper.GetBool("verbose") {
				logging.SetLevel(logging.DebugLevel)
			}
		},
	}

	cmd.PersistentFlags().Bool("verbose", false, "enable debug logging")
	cmd.PersistentFlags().Bool("no-color", false, "disable colored log output")

	viper.SetEnvPrefix("melossonar")
	viper.AutomaticEnv()
	_ = viper.BindPFlag("verbose", cmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("no_color", cmd.PersistentFlags().Lookup("no-color"))

	cmd.AddCommand(newAnalyzeCmd())
	cmd.AddCommand(newServeCmd())
	return cmd
}
