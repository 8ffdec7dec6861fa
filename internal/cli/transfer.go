package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/KovalVladuslav/addressbook/internal/audit"
	"github.com/KovalVladuslav/addressbook/internal/utils"
)

func exportCmd(flags *globalFlags) *cobra.Command {
	var (
		format string
		out    string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write all contacts to a JSON or CSV file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := utils.ParseFormat(format)
			if err != nil {
				return err
			}
			if out == "" {
				out = utils.GenerateBackupFilename(f, time.Now())
			}

			a, err := openApp(flags)
			if err != nil {
				return err
			}
			defer func() { _ = a.close() }()

			contacts := a.handler.Book().Records()
			exporter := utils.NewContactExporter(utils.ImportExportOptions{Format: f, FilePath: out})
			if err := exporter.ExportContacts(contacts); err != nil {
				a.log.Error("export.failed", "path", out, "error", err)
				return fmt.Errorf("export failed: %w", err)
			}

			a.log.Info("export.completed", "path", out, "format", f.String(), "contacts", len(contacts))
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d contacts to %s\n", len(contacts), out)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "json", "output format: json|csv")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default abook_contacts_<timestamp>.<format>)")
	return cmd
}

func importCmd(flags *globalFlags) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Merge contacts from a JSON or CSV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := utils.ParseFormat(format)
			if err != nil {
				return err
			}
			path := args[0]

			a, err := openApp(flags)
			if err != nil {
				return err
			}
			defer func() { _ = a.close() }()

			importer := utils.NewContactImporter(utils.ImportExportOptions{Format: f, FilePath: path})
			result, rows, err := importer.ImportContacts()
			if err != nil {
				return fmt.Errorf("import failed: %w", err)
			}

			created, updated, err := utils.MergeContacts(a.handler.Book(), rows)
			if err != nil {
				return fmt.Errorf("import failed: %w", err)
			}
			if len(created)+len(updated) > 0 {
				if err := a.save(); err != nil {
					return err
				}
			}

			for _, name := range append(created, updated...) {
				if err := a.auditor.LogContactAction(audit.AuditActionImport, name, map[string]string{"source": path}); err != nil {
					a.log.Warn("audit.write_failed", "action", audit.AuditActionImport, "contact", name, "error", err)
				}
			}

			a.log.Info("import.completed",
				"path", path,
				"total", result.TotalContacts,
				"created", len(created),
				"updated", len(updated),
				"skipped", result.SkippedContacts)

			w := cmd.OutOrStdout()
			for _, warning := range result.Warnings {
				fmt.Fprintf(w, "warning: %s\n", warning)
			}
			for _, e := range result.Errors {
				fmt.Fprintf(w, "skipped line %d: %s: %s\n", e.LineNumber, e.Field, e.Message)
			}
			fmt.Fprintf(w, "Imported %d contacts (%d new, %d updated, %d skipped)\n",
				result.ImportedContacts, len(created), len(updated), result.SkippedContacts)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "json", "input format: json|csv")
	return cmd
}
