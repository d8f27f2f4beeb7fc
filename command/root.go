// Package exifcommand wires the exifmeta operations into a cobra command tree.
package exifcommand

import (
	"github.com/cxcheng/exifmeta"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// ErrFailures is returned in strict mode when any file or field failed.
var ErrFailures = errors.New("some operations failed")

type rootOptions struct {
	configPath string
	exiftool   string
	dryRun     bool
	verbose    bool
	strict     bool

	config *exifmeta.Config
	runner exifmeta.Runner
}

type Option func(*rootOptions)

// WithRunner replaces the exiftool runner built from flags and config.
func WithRunner(r exifmeta.Runner) Option {
	return func(o *rootOptions) {
		o.runner = r
	}
}

func NewRootCommand(opts ...Option) *cobra.Command {
	o := &rootOptions{}
	for _, opt := range opts {
		opt(o)
	}

	cmd := &cobra.Command{
		Use:   "exifmeta",
		Short: "View and edit image metadata through exiftool",
		Long: `exifmeta runs exiftool once per file and field to view, add, remove,
replace or verify embedded image metadata.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return o.init(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if o.config == nil {
				return nil
			}
			return o.config.Close()
		},
	}
	cmd.CompletionOptions.DisableDefaultCmd = true

	flags := cmd.PersistentFlags()
	flags.StringVar(&o.configPath, "config", exifmeta.DefaultConfigPath, "Path of optional config (YAML or TOML)")
	flags.StringVar(&o.exiftool, "exiftool", "", "exiftool binary, overrides config")
	flags.BoolVar(&o.dryRun, "dry-run", false, "Print exiftool invocations without running them")
	flags.BoolVar(&o.verbose, "verbose", false, "Verbose logging, overrides config")
	flags.BoolVar(&o.strict, "strict", false, "Exit non-zero if any file or field failed")

	cmd.AddCommand(
		newViewCommand(o),
		newAddCommand(o),
		newRemoveCommand(o),
		newReplaceCommand(o),
		newVerifyCommand(o),
	)
	return cmd
}

func (o *rootOptions) init(cmd *cobra.Command) error {
	config, err := exifmeta.NewConfig(o.configPath, cmd.Flags().Changed("config"))
	if err != nil {
		return err
	}
	if o.exiftool != "" {
		config.ExiftoolPath = o.exiftool
	}
	config.Verbose = config.Verbose || o.verbose
	config.Strict = config.Strict || o.strict
	config.ConfigureLogging(cmd.ErrOrStderr())
	o.config = config

	if o.runner != nil {
		return nil
	}
	if o.dryRun {
		o.runner = &exifmeta.DryRunner{
			W:        cmd.OutOrStdout(),
			Binary:   config.Binary(),
			InitArgs: config.InitArgs,
		}
		return nil
	}
	o.runner, err = exifmeta.NewExiftool(func(et *exifmeta.Exiftool) error {
		et.Binary = config.Binary()
		et.InitArgs = append(et.InitArgs, config.InitArgs...)
		return nil
	})
	return err
}

func (o *rootOptions) dispatcher(cmd *cobra.Command, opts ...exifmeta.DispatcherOption) *exifmeta.Dispatcher {
	return exifmeta.NewDispatcher(o.runner, cmd.OutOrStdout(), opts...)
}

// finish keeps the exit status at zero for per-file failures unless strict
// mode is on.
func (o *rootOptions) finish(report *exifmeta.Report) error {
	failed := report.Failed()
	if failed == 0 {
		return nil
	}
	log.WithField("errors", failed).Debug("operation finished with errors")
	if o.config != nil && o.config.Strict {
		return errors.Wrapf(ErrFailures, "%d of %d", failed, len(report.Results))
	}
	return nil
}
