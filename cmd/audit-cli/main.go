package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/Aashish23092/invoice-audit/config"
	"github.com/Aashish23092/invoice-audit/dto"
	"github.com/Aashish23092/invoice-audit/service"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

type options struct {
	configFile string
	format     string
	output     string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "audit-cli",
		Short:         "Extract invoices and reconcile them against a ledger",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
	rootCmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "config file (yaml, json or toml)")
	rootCmd.PersistentFlags().StringVarP(&opts.format, "format", "f", "json", "report format: json, csv or xlsx")
	rootCmd.PersistentFlags().StringVarP(&opts.output, "output", "o", "", "write the report to this file instead of stdout")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging")

	extractCmd := &cobra.Command{
		Use:   "extract <invoice>...",
		Short: "Extract vendor, date and amount from invoices (bookkeeping mode)",
		Long: "Extract vendor, date and amount from PDF, image or .txt invoices.\n" +
			".txt files are treated as text that was already extracted.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, func(auditService *service.AuditService, format service.ReportFormat, w io.Writer) error {
				files, err := readFiles(args)
				if err != nil {
					return err
				}
				resp, err := auditService.Bookkeep(cmd.Context(), files)
				if err != nil {
					return err
				}
				return service.WriteExtractReport(w, format, resp)
			})
		},
	}

	var ledgerPath string
	reconcileCmd := &cobra.Command{
		Use:   "reconcile --ledger <ledger.csv|ledger.xlsx> <invoice>...",
		Short: "Verify a ledger against invoices (audit mode)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, func(auditService *service.AuditService, format service.ReportFormat, w io.Writer) error {
				var ledger *dto.UploadedFile
				if ledgerPath != "" {
					files, err := readFiles([]string{ledgerPath})
					if err != nil {
						return err
					}
					ledger = &files[0]
				}
				files, err := readFiles(args)
				if err != nil {
					return err
				}
				resp, err := auditService.Audit(cmd.Context(), files, ledger)
				if err != nil {
					return err
				}
				return service.WriteAuditReport(w, format, resp)
			})
		},
	}
	reconcileCmd.Flags().StringVarP(&ledgerPath, "ledger", "l", "", "ledger to verify (.csv or .xlsx)")

	rootCmd.AddCommand(extractCmd, reconcileCmd)
	return rootCmd
}

func run(cmd *cobra.Command, opts *options, fn func(*service.AuditService, service.ReportFormat, io.Writer) error) error {
	logger := log.NewWithOptions(cmd.ErrOrStderr(), log.Options{Prefix: "audit-cli"})
	if opts.verbose {
		logger.SetLevel(log.DebugLevel)
	} else {
		logger.SetLevel(log.WarnLevel)
	}

	format, err := service.ParseReportFormat(opts.format)
	if err != nil {
		return err
	}
	cfg, err := config.Load(opts.configFile)
	if err != nil {
		return err
	}

	auditService, cleanup := service.Build(cfg, nil, logger)
	defer cleanup()

	out := cmd.OutOrStdout()
	if opts.output != "" {
		f, err := os.Create(opts.output)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", opts.output, err)
		}
		defer f.Close()
		out = f
	}
	return fn(auditService, format, out)
}

func readFiles(paths []string) ([]dto.UploadedFile, error) {
	files := make([]dto.UploadedFile, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		files = append(files, dto.UploadedFile{Filename: filepath.Base(path), Data: data})
	}
	return files, nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
