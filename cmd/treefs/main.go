// Command treefs materializes a file tree described by a YAML document.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmgilman/go/treefs"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "treefs",
		Short:         "Materialize declared file trees from YAML documents",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newCreateCmd())
	return root
}

func newCreateCmd() *cobra.Command {
	var (
		file    string
		rootDir string
		keep    bool
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create the tree described by a YAML document",
		Long: `Create reads a YAML tree document and materializes it on disk.

By default the created tree is kept so it can be used after the command
exits; the document's drop setting is ignored. Pass --keep=false to delete
the tree again before exiting, which amounts to a validation run.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("read document: %w", err)
			}

			builder, err := treefs.ParseYAML(data)
			if err != nil {
				return err
			}
			if rootDir != "" {
				builder.RootFolder(rootDir)
			}
			builder.AutoDelete(!keep)

			tree, err := builder.Create()
			if err != nil {
				return err
			}
			defer func() { _ = tree.Close() }()

			fmt.Fprintln(cmd.OutOrStdout(), tree.Root())
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "path to the YAML tree document (required)")
	cmd.Flags().StringVar(&rootDir, "root", "", "override the document's root directory")
	cmd.Flags().BoolVar(&keep, "keep", true, "keep the created tree on exit")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "treefs:", err)
		os.Exit(1)
	}
}
