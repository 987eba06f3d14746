package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/rileyhilliard/ncli/internal/errors"
	"github.com/rileyhilliard/ncli/internal/snapshot"
	"github.com/spf13/cobra"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Convert the snapshot to YAML",
	Long: `Write the host and service records of the snapshot as YAML, in the shape
'ncli --format yaml' reads back. Handy for trimming a live status.dat down
to a test fixture.

Records are written as-is, malformed ones included.

Examples:
  ncli export -f /var/nagios/status.dat -o fixture.yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExport(cmd, exportOutput)
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "write to this file instead of stdout")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, output string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}
	snap, err := loadSnapshot(cmd, cfg)
	if err != nil {
		return err
	}

	var w io.Writer = cmd.OutOrStdout()
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return errors.WrapWithCode(err, errors.ErrRender,
				"Couldn't create "+output,
				"Check the directory exists and is writable.")
		}
		defer f.Close()
		w = f
	}

	hosts, services, err := snapshot.WriteYAML(w, snap.Records)
	if err != nil {
		return renderError(err)
	}

	if output != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %d hosts and %d services to %s\n", hosts, services, output)
	}
	return nil
}
