// Command logsummary reads an access log and prints the number of unique
// client addresses, the three most visited endpoints, and the three most
// active addresses.
//
// Usage:
//
//	logsummary [--json] [--jq QUERY] <log-filename>
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/bitfield/accesslog"
	"github.com/spf13/cobra"
)

func main() {
	os.Exit(run())
}

func run() int {
	cmd := newRootCommand(os.Stdout, os.Stderr)
	cmd.SetArgs(os.Args[1:])
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	var (
		jsonLines bool
		query     string
	)
	cmd := &cobra.Command{
		Use:   "logsummary [--json] [--jq QUERY] <log-filename>",
		Short: "Summarise the clients and endpoints in an access log",
		Long: `logsummary reads a web server access log in Common or Combined Log Format
and reports the number of unique client IP addresses, the top 3 most visited
URLs, and the top 3 most active IP addresses.

Lines which can't be parsed are reported on standard error and skipped.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.ExactArgs(1)(cmd, args); err != nil {
				return fmt.Errorf("invalid command line arguments: %w", err)
			}
			return nil
		},
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			parse := accesslog.ParseLine
			if jsonLines || cmd.Flags().Changed("jq") {
				var err error
				parse, err = accesslog.JQParser(query)
				if err != nil {
					return err
				}
			}
			return summarise(args[0], parse, stdout, stderr)
		},
	}
	cmd.SetErr(stderr)
	cmd.Flags().BoolVar(&jsonLines, "json", false, "read one JSON object per line instead of Combined Log Format")
	cmd.Flags().StringVar(&query, "jq", accesslog.DefaultJQQuery, "jq query producing [address, endpoint] from each JSON line (implies --json)")
	return cmd
}

func summarise(filename string, parse accesslog.LineParser, stdout, stderr io.Writer) error {
	p := accesslog.File(filename).WithParser(parse).WithStdout(stdout).WithStderr(stderr)
	defer p.Close()
	if p.Error() != nil {
		return errors.New("could not open logfile: " + filename)
	}
	_, err := p.Report()
	return err
}
