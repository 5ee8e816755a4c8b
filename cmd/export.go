package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/thomascamminady/filefocus/pkg/service"
)

func NewExportCmd(svc **service.Service) *cobra.Command {
	var outFile string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all groups as YAML",
		Long:  "Write every group, including the pinned marker, as a YAML document to stdout or a file.",
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc

			out := os.Stdout
			if outFile != "" {
				f, err := os.Create(outFile)
				if err != nil {
					return fmt.Errorf("create %s: %w", outFile, err)
				}
				defer f.Close()
				out = f
			}
			return s.ExportYAML(out)
		},
	}

	cmd.Flags().StringVarP(&outFile, "output", "o", "", "Write to a file instead of stdout")

	return cmd
}

func NewImportCmd(svc **service.Service) *cobra.Command {
	return &cobra.Command{
		Use:   "import [file]",
		Short: "Import groups from a YAML export",
		Long: `Merge groups from a previously exported YAML document.

Groups with a known id replace the stored group; groups without an id
are created fresh.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open %s: %w", args[0], err)
			}
			defer f.Close()

			n, err := s.ImportYAML(f)
			if err != nil {
				return err
			}
			fmt.Printf("Imported %d group(s)\n", n)
			return nil
		},
	}
}
