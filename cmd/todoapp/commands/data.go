package commands

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// NewDataCommand creates the data command group
func NewDataCommand(st *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "data",
		Short: "Export, import or clear the task collection",
	}

	cmd.AddCommand(newDataExportCommand(st))
	cmd.AddCommand(newDataImportCommand(st))
	cmd.AddCommand(newDataClearCommand(st))
	cmd.AddCommand(&cobra.Command{
		Use:   "dir",
		Short: "Print the data directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			return printResponse(cmd, st.App().Gateway.GetDataDirPath(cmd.Context()))
		},
	})

	return cmd
}

func newDataExportCommand(st *state) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all tasks as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp := st.App().Gateway.ExportData(cmd.Context())
			if output == "" || !resp.Success {
				return printResponse(cmd, resp)
			}
			if err := os.WriteFile(output, []byte(resp.Value()), 0o644); err != nil {
				return fmt.Errorf("failed to write export: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "exported to %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the export to this file instead of stdout")
	return cmd
}

func newDataImportCommand(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file|->",
		Short: "Replace all tasks with the tasks in a JSON export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				data []byte
				err  error
			)
			if args[0] == "-" {
				data, err = io.ReadAll(cmd.InOrStdin())
			} else {
				data, err = os.ReadFile(args[0])
			}
			if err != nil {
				return fmt.Errorf("failed to read import: %w", err)
			}
			return printResponse(cmd, st.App().Gateway.ImportData(cmd.Context(), string(data)))
		},
	}
}

func newDataClearCommand(st *state) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every task",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("refusing to clear all tasks without --yes")
			}
			return printResponse(cmd, st.App().Gateway.ClearAllData(cmd.Context()))
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "confirm deleting every task")
	return cmd
}
