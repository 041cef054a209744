package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bldgen/bldgen/pkg/action/generate"
)

func init() {
	rootCmd.AddCommand(newGenCommand())
}

func newGenCommand() *cobra.Command {
	var dir string

	genCmd := &cobra.Command{
		Use:   "gen",
		Short: "generate builders",
		Long:  "Scan a directory tree for annotated types and write one builder file per type.",
		RunE: func(c *cobra.Command, args []string) error {
			res, err := generate.Run(generate.Options{
				Dir:         dir,
				ProcessWide: processWideOptions(),
				Templates:   templateOptions(),
			})
			if err != nil {
				return err
			}
			if len(res.Errors) > 0 {
				return fmt.Errorf("%d annotated type(s) failed; see log for details", len(res.Errors))
			}
			return nil
		},
	}
	genCmd.Flags().StringVarP(&dir, "input-directory", "i", ".", "directory to scan")
	return genCmd
}
