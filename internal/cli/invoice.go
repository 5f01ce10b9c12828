package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/andy/boutiquebill/internal/domain"
	"github.com/andy/boutiquebill/internal/draft"
	"github.com/andy/boutiquebill/internal/export"
	"github.com/andy/boutiquebill/internal/handoff"
	"github.com/andy/boutiquebill/internal/wizard"
)

var invoiceCmd = &cobra.Command{
	Use:   "invoice",
	Short: "Work with invoice drafts",
	Long: `Process invoices described in YAML draft files.

Examples:
  boutiquebill invoice template > order.yaml
  boutiquebill invoice preview -f order.yaml
  boutiquebill invoice export -f order.yaml
  boutiquebill invoice send -f order.yaml`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := initApp(cmd.Context()); err != nil {
			return err
		}
		_, err := requireLogin(cmd)
		return err
	},
}

var invoiceTemplateCmd = &cobra.Command{
	Use:   "template",
	Short: "Print a new draft with shop details and a fresh invoice number",
	RunE: func(cmd *cobra.Command, args []string) error {
		inv := appInstance.InvoiceService.NewInvoice(time.Now())
		data, err := draft.FromInvoice(inv).Marshal()
		if err != nil {
			return fmt.Errorf("failed to encode draft: %w", err)
		}

		out, _ := cmd.Flags().GetString("output")
		if out == "" {
			_, err = cmd.OutOrStdout().Write(data)
			return err
		}
		if err := os.WriteFile(out, data, 0644); err != nil {
			return fmt.Errorf("failed to write draft: %w", err)
		}
		fmt.Printf("Draft written to %s\n", out)
		return nil
	},
}

var invoicePreviewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Print the invoice as text",
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := loadDraftWizard(cmd)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), export.RenderText(w.Invoice(), w.Totals(), appInstance.Config.Invoice.CurrencySymbol))
		return nil
	},
}

var invoiceMessageCmd = &cobra.Command{
	Use:   "message",
	Short: "Print the customer message",
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := loadDraftWizard(cmd)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), w.Message())

		if copyMsg, _ := cmd.Flags().GetBool("copy"); copyMsg {
			if err := handoff.CopyToClipboard(w.Message()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.ErrOrStderr(), "Message copied to clipboard")
		}
		return nil
	},
}

var invoiceSendCmd = &cobra.Command{
	Use:   "send",
	Short: "Open the customer message in WhatsApp",
	Long: `Build the WhatsApp link for the customer's phone with the order summary
prefilled and open it in the browser. With --print the link is only printed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := loadDraftWizard(cmd)
		if err != nil {
			return err
		}
		inv := w.Invoice()
		baseURL := appInstance.Config.Invoice.MessagingBaseURL

		if printOnly, _ := cmd.Flags().GetBool("print"); printOnly {
			link, err := handoff.MessagingLink(baseURL, inv.CustomerPhone, w.Message())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), link)
			return nil
		}

		link, err := handoff.Send(appInstance.Opener, baseURL, inv.CustomerPhone, w.Message())
		if err != nil {
			if link == "" {
				return err
			}
			// Opening failed, but the link itself is fine
			appInstance.Logger.Warn("could not open messaging link", zap.Error(err))
			fmt.Fprintf(cmd.ErrOrStderr(), "Could not open a browser (%v). Open this link instead:\n", err)
			fmt.Fprintln(cmd.OutOrStdout(), link)
			return nil
		}

		appInstance.Logger.Info("message handed off", zap.String("invoice", inv.InvoiceNumber))
		fmt.Fprintf(cmd.OutOrStdout(), "Opened WhatsApp for %s\n", inv.CustomerName)
		return nil
	},
}

var invoiceExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the invoice as PDF",
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := loadDraftWizard(cmd)
		if err != nil {
			return err
		}

		opts := appInstance.ExportOptions()
		if dir, _ := cmd.Flags().GetString("output-dir"); dir != "" {
			opts.OutputDir = dir
		}

		path, err := export.ExportPDF(w, opts)
		if err != nil {
			return fmt.Errorf("failed to export invoice: %w", err)
		}

		appInstance.Logger.Info("invoice exported", zap.String("invoice", w.Invoice().InvoiceNumber), zap.String("path", path))
		fmt.Fprintf(cmd.OutOrStdout(), "Invoice exported to %s\n", path)
		return nil
	},
}

// loadDraftWizard builds a wizard from the --file draft and moves it to the
// preview step, reporting every invalid field.
func loadDraftWizard(cmd *cobra.Command) (*wizard.Wizard, error) {
	path, _ := cmd.Flags().GetString("file")

	var (
		d   *draft.Draft
		err error
	)
	if path == "-" {
		d, err = readDraft(cmd.InOrStdin())
	} else {
		d, err = draft.Load(path)
	}
	if err != nil {
		return nil, err
	}

	w := appInstance.NewWizard(time.Now())
	if err := d.Apply(w.Invoice()); err != nil {
		return nil, fmt.Errorf("invalid draft: %w", err)
	}
	w.Recompute()

	if err := w.JumpToPreview(); err != nil {
		var verrs domain.ValidationErrors
		if errors.As(err, &verrs) {
			return nil, fmt.Errorf("draft has invalid fields:\n%s", formatValidationErrors(verrs))
		}
		return nil, err
	}
	return w, nil
}

func readDraft(r io.Reader) (*draft.Draft, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read draft: %w", err)
	}
	return draft.Parse(data)
}

func formatValidationErrors(verrs domain.ValidationErrors) string {
	lines := make([]string, len(verrs))
	for i, e := range verrs {
		lines[i] = fmt.Sprintf("  %-28s %s", e.Path, e.Message)
	}
	return strings.Join(lines, "\n")
}

func init() {
	for _, c := range []*cobra.Command{invoicePreviewCmd, invoiceMessageCmd, invoiceSendCmd, invoiceExportCmd} {
		c.Flags().StringP("file", "f", "", "draft file (YAML), - for stdin")
		_ = c.MarkFlagRequired("file")
	}
	invoiceTemplateCmd.Flags().StringP("output", "o", "", "write the draft to a file instead of stdout")
	invoiceMessageCmd.Flags().Bool("copy", false, "also copy the message to the clipboard")
	invoiceSendCmd.Flags().Bool("print", false, "print the link instead of opening it")
	invoiceExportCmd.Flags().StringP("output-dir", "o", "", "directory for the PDF (default from config)")

	invoiceCmd.AddCommand(invoiceTemplateCmd)
	invoiceCmd.AddCommand(invoicePreviewCmd)
	invoiceCmd.AddCommand(invoiceMessageCmd)
	invoiceCmd.AddCommand(invoiceSendCmd)
	invoiceCmd.AddCommand(invoiceExportCmd)
}
