package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bldgen/bldgen/pkg/action/generate"
	"github.com/bldgen/bldgen/pkg/action/snapshot"
)

func init() {
	rootCmd.AddCommand(newSnapshotCommand())
	rootCmd.AddCommand(newDiffCommand())
}

func newSnapshotCommand() *cobra.Command {
	var (
		dir          string
		manifestPath string
		version      string
	)

	snapCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "generate builders and record the run",
		Long:  "Run generation and record the written files in the manifest under a version label.",
		RunE: func(c *cobra.Command, args []string) error {
			res, err := snapshot.Generate(generate.Options{
				Dir:         dir,
				ProcessWide: processWideOptions(),
				Templates:   templateOptions(),
			}, manifestPath, version)
			if err != nil {
				return err
			}
			if len(res.Errors) > 0 {
				return fmt.Errorf("%d annotated type(s) failed; see log for details", len(res.Errors))
			}
			return nil
		},
	}
	snapCmd.Flags().StringVarP(&dir, "input-directory", "i", ".", "directory to scan")
	snapCmd.Flags().StringVarP(&manifestPath, "manifest", "m", "bldgen-manifest.yaml", "manifest file path")
	snapCmd.Flags().StringVarP(&version, "snapshot-version", "v", "dev", "version label for this run")
	return snapCmd
}

func newDiffCommand() *cobra.Command {
	var manifestPath string

	diffCmd := &cobra.Command{
		Use:   "diff",
		Short: "diff the two latest recorded runs",
		RunE: func(c *cobra.Command, args []string) error {
			out, err := snapshot.DiffCurrentWithPrevious(manifestPath)
			if err != nil {
				return err
			}
			if out == "" {
				c.Println("no differences")
				return nil
			}
			c.Println(out)
			return nil
		},
	}
	diffCmd.Flags().StringVarP(&manifestPath, "manifest", "m", "bldgen-manifest.yaml", "manifest file path")
	return diffCmd
}
