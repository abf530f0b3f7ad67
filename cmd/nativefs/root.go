package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/transientvariable/log-go"
)

// options holds the values of the persistent flags and the configuration resolved from them.
type options struct {
	configFile string
	logLevel   string
	config     Config
}

// newRootCmd creates the base command for nativefs.
func newRootCmd() *cobra.Command {
	opts := &options{config: DefaultConfig()}

	cmd := &cobra.Command{
		Use:   "nativefs",
		Short: "Perform native file system operations the way the editor does",
		Long: `nativefs performs the file system operations used by the editor against the
host file system: listing directories, querying metadata, reading, writing and
removing files.

Failures are reported on stderr and the exit status is the numeric error code
(e.g. 3 for ERR_NOT_FOUND). The serve command answers newline-delimited JSON
requests on stdin, which lets an editor process drive the operations.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.setup(cmd)
		},
	}

	opts.addFlags(cmd.PersistentFlags())

	cmd.AddCommand(
		newReadDirCmd(),
		newStatCmd(),
		newReadCmd(),
		newWriteCmd(),
		newUnlinkCmd(),
		newServeCmd(opts),
		newVersionCmd(),
	)
	return cmd
}

func (o *options) addFlags(flags *pflag.FlagSet) {
	flags.StringVar(&o.configFile, "config", "", "path to a YAML configuration file")
	flags.StringVar(&o.logLevel, "log-level", defaultLogLevel, "log level (trace, debug, info, warn, error)")
}

// setup resolves the configuration from the config file and flags, and configures logging. Flags take precedence
// over the config file.
func (o *options) setup(cmd *cobra.Command) error {
	if o.configFile != "" {
		cfg, err := LoadConfig(o.configFile)
		if err != nil {
			return err
		}
		o.config = cfg
	}

	if cmd.Flags().Changed("log-level") {
		o.config.LogLevel = o.logLevel
	}

	if err := o.config.Validate(); err != nil {
		return err
	}

	if err := log.SetDefault(log.New(log.WithLevel(o.config.LogLevel))); err != nil {
		return err
	}
	log.Debug("[nativefs] configuration",
		log.String("config_file", o.configFile),
		log.String("log_level", o.config.LogLevel),
		log.Int("max_workers", o.config.MaxWorkers),
	)
	return nil
}
