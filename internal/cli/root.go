// Package cli implements the damper command line.
package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// EnvPrefix prefixes environment overrides, e.g. DAMPER_INTERVAL.
const EnvPrefix = "DAMPER"

// Version information set by the main package.
var versionInfo = struct {
	Version   string
	Commit    string
	BuildDate string
}{"dev", "unknown", "unknown"}

// SetVersionInfo is called by main package to set version information.
func SetVersionInfo(version, commit, buildDate string) {
	versionInfo.Version = version
	versionInfo.Commit = commit
	versionInfo.BuildDate = buildDate
}

// app carries per-invocation state shared by subcommands.
type app struct {
	v       *viper.Viper
	log     *zap.Logger
	cfgFile string
	verbose bool
	unhook  func()
}

// NewRootCommand builds the command tree with its own configuration.
func NewRootCommand() *cobra.Command {
	root, _ := newRoot()
	return root
}

func newRoot() (*cobra.Command, *app) {
	a := &app{v: viper.New(), log: zap.NewNop()}

	root := &cobra.Command{
		Use:   "damper",
		Short: "Debounce and throttle policy simulator",
		Long: `damper replays call timelines against debounce and throttle policies
on virtual time and reports when the target would have run.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			a.close()
		},
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (yaml or json)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "verbose output (sets log level to debug)")
	_ = a.v.BindPFlag("verbose", root.PersistentFlags().Lookup("verbose"))

	root.AddCommand(
		newSimulateCommand(a),
		newWatchCommand(a),
		newFlattenCommand(a),
		newVersionCommand(),
	)
	return root, a
}

// Execute runs the root command against os.Args.
func Execute() error {
	return ExecuteContext(context.Background())
}

// ExecuteContext runs the root command against os.Args with ctx. Signal
// listeners and the logger are released even when the command fails.
func ExecuteContext(ctx context.Context) error {
	root, a := newRoot()
	defer a.close()
	return root.ExecuteContext(ctx)
}

// init reads the config file and environment, then builds the logger.
func (a *app) init(cmd *cobra.Command) error {
	a.v.SetEnvPrefix(EnvPrefix)
	a.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	a.v.AutomaticEnv()

	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
		if err := a.v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	log, err := newLogger(cmd.ErrOrStderr(), a.v.GetBool("verbose"))
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.log = log

	if a.cfgFile != "" {
		a.log.Debug("Using config file", zap.String("path", a.v.ConfigFileUsed()))
	}
	if a.v.GetBool("verbose") && a.unhook == nil {
		a.unhook = hookSignals(a.log)
	}
	return nil
}

// close detaches signal listeners and flushes the logger. It is safe to call
// more than once.
func (a *app) close() {
	if a.unhook != nil {
		a.unhook()
		a.unhook = nil
	}
	_ = a.log.Sync() //nolint:errcheck // stderr sync errors are not actionable
}
