package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/transientvariable/nativefs-go"
)

// pathArg accepts exactly one argument, reporting anything else as invalid parameters.
func pathArg(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return &nativefs.Error{
			Code: nativefs.ErrInvalidParams,
			Op:   nativefs.Op(cmd.Name()),
			Err:  fmt.Errorf("expected 1 path argument, got %d", len(args)),
		}
	}
	return nil
}

func fileSystem() (*nativefs.FileSystem, error) {
	return nativefs.New()
}

func newReadDirCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "readdir PATH",
		Short: "List the entries of a directory",
		Long:  "List the names of the entries of a directory, one per line. The . and .. entries are never listed.",
		Args:  pathArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			fs, err := fileSystem()
			if err != nil {
				return err
			}

			names, err := fs.ReadDir(args[0])
			if err != nil {
				return err
			}

			for _, n := range names {
				fmt.Fprintln(cmd.OutOrStdout(), n)
			}
			return nil
		},
	}
}

func newStatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stat PATH",
		Short: "Print the metadata of a path",
		Args:  pathArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			fs, err := fileSystem()
			if err != nil {
				return err
			}

			s, err := fs.Stat(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), s.String())
			return nil
		},
	}
}

func newReadCmd() *cobra.Command {
	var encoding string

	cmd := &cobra.Command{
		Use:   "read PATH",
		Short: "Print the content of a file",
		Args:  pathArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			fs, err := fileSystem()
			if err != nil {
				return err
			}

			content, err := fs.ReadFile(args[0], encoding)
			if err != nil {
				return err
			}

			_, err = io.WriteString(cmd.OutOrStdout(), content)
			return err
		},
	}
	cmd.Flags().StringVar(&encoding, "encoding", nativefs.DefaultEncoding, "text encoding of the file")
	return cmd
}

func newWriteCmd() *cobra.Command {
	var encoding string

	cmd := &cobra.Command{
		Use:   "write PATH",
		Short: "Replace the content of a file with stdin",
		Long: `Replace the entire content of a file with the content read from stdin. The file is
created if it does not exist.

Example:
  echo "Hello world" | nativefs write /tmp/file_one.txt`,
		Args: pathArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			fs, err := fileSystem()
			if err != nil {
				return err
			}

			var b strings.Builder
			if _, err := io.Copy(&b, cmd.InOrStdin()); err != nil {
				return fmt.Errorf("write: reading stdin: %w", err)
			}
			return fs.WriteFile(args[0], b.String(), encoding)
		},
	}
	cmd.Flags().StringVar(&encoding, "encoding", nativefs.DefaultEncoding, "text encoding of the file")
	return cmd
}

func newUnlinkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unlink PATH",
		Short: "Remove a file",
		Long:  "Remove a file. Directories are never removed.",
		Args:  pathArg,
		RunE: func(_ *cobra.Command, args []string) error {
			fs, err := fileSystem()
			if err != nil {
				return err
			}
			return fs.Unlink(args[0])
		},
	}
}
