package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/transientvariable/log-go"
	"github.com/transientvariable/nativefs-go"
	"github.com/transientvariable/nativefs-go/bridge"
)

func newServeCmd(opts *options) *cobra.Command {
	var maxWorkers int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Answer JSON requests on stdin",
		Long: `Answer newline-delimited JSON requests read from stdin with one JSON response per
line on stdout until stdin is closed. Requests are performed concurrently and
responses carry the id of their request:

  {"id":"1","op":"readFile","args":["/tmp/file_one.txt","utf8"]}
  {"id":"1","err":0,"code":"NO_ERROR","result":"Hello world"}`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("max-workers") {
				opts.config.MaxWorkers = maxWorkers
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cmd, opts.config)
		},
	}
	cmd.Flags().IntVar(&maxWorkers, "max-workers", 0, "maximum number of concurrent operations (0 for default)")
	return cmd
}

func serve(ctx context.Context, cmd *cobra.Command, cfg Config) error {
	fs, err := nativefs.New()
	if err != nil {
		return err
	}

	a, err := nativefs.NewAsync(fs, nativefs.WithMaxWorkers(cfg.MaxWorkers))
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			log.Error("[nativefs] closing", log.Err(err))
		}
	}()

	s, err := bridge.New(a)
	if err != nil {
		return err
	}

	if err := s.Serve(ctx, cmd.InOrStdin(), cmd.OutOrStdout()); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
