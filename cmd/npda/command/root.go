package command

import (
	"fmt"
	"os"
	"time"

	"github.com/DataDog/datadog-agent/pkg/util/fxutil"
	"github.com/spf13/cobra"
	"go.uber.org/fx"

	"github.com/rcpch/national-paediatric-diabetes-audit-sub001/api"
	"github.com/rcpch/national-paediatric-diabetes-audit-sub001/audit"
	"github.com/rcpch/national-paediatric-diabetes-audit-sub001/logger"
)

var logLevel string

// Run executes a given function with dependencies supplied by the service DI graph
// `f` must return an error or nothing
// `opts` can be used to supply additional constructors that are not part of the service
func Run(f interface{}, opts ...fx.Option) error {
	deps := append(opts,
		api.Services(),
		fx.Provide(
			logger.NewCommandLogger,
			logger.Suggar,
		),
		fx.NopLogger,
	)
	return fxutil.OneShot(f, deps...)
}

var rootCmd = &cobra.Command{
	Use:          "npda",
	Short:        "National Paediatric Diabetes Audit KPIs",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Overwrite zap's log level unless the environment already sets one
		if _, ok := os.LookupEnv("NPDA_LOG_LEVEL"); ok && !cmd.Flags().Changed("log-level") {
			return nil
		}
		return os.Setenv("NPDA_LOG_LEVEL", logLevel)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&logLevel, "log-level", "v", "error", "Log Level")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// parseReferenceDate reads a --date flag. An empty value is the current day.
func parseReferenceDate(value string) (time.Time, error) {
	if value == "" {
		return audit.Day(time.Now().UTC()), nil
	}
	return audit.ParseDate(value)
}
