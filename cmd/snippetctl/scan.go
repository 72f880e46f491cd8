package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/NeuralTrust/SnippetGate/pkg/domain/security"
	"github.com/NeuralTrust/SnippetGate/pkg/infra/scanner"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

type scanOptions struct {
	language      string
	title         string
	description   string
	jsonOutput    bool
	rulesFile     string
	whitelistMode string
}

func newScanCmd() *cobra.Command {
	opts := &scanOptions{}
	cmd := &cobra.Command{
		Use:   "scan <file|->",
		Short: "Run the security check over a file or stdin",
		Long: "Runs the profanity and malicious-code checks over a snippet.\n" +
			"Exits 1 when the snippet is not secure and 2 when its code is high risk.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd, opts, args[0])
		},
	}
	cmd.Flags().StringVarP(&opts.language, "language", "l", "", "snippet language (default: from the file extension)")
	cmd.Flags().StringVar(&opts.title, "title", "", "snippet title")
	cmd.Flags().StringVar(&opts.description, "description", "", "snippet description")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "print the result as JSON")
	cmd.Flags().StringVar(&opts.rulesFile, "rules", "", "YAML file with extra rules")
	cmd.Flags().StringVar(&opts.whitelistMode, "whitelist-mode", scanner.TextualWhitelist, "textual or structural")
	return cmd
}

func runScan(cmd *cobra.Command, opts *scanOptions, path string) error {
	code, err := readSource(cmd.InOrStdin(), path)
	if err != nil {
		return err
	}

	scannerOpts := []scanner.Option{scanner.WithWhitelistMode(opts.whitelistMode)}
	if opts.rulesFile != "" {
		extra, err := scanner.LoadRulesFile(opts.rulesFile)
		if err != nil {
			return err
		}
		scannerOpts = append(scannerOpts, extra...)
	}

	language := opts.language
	if language == "" && path != "-" {
		language = strings.TrimPrefix(filepath.Ext(path), ".")
	}

	result := scanner.New(scannerOpts...).PerformSecurityCheck(security.ScanRequest{
		Title:       opts.title,
		Description: opts.description,
		Code:        code,
		Language:    language,
	})

	out := cmd.OutOrStdout()
	if opts.jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return fmt.Errorf("encoding result: %w", err)
		}
	} else {
		fmt.Fprint(out, newPrinter(isTerminal(out)).render(result))
	}
	return verdict(result)
}

func readSource(stdin io.Reader, path string) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}

func verdict(result security.CheckResult) error {
	switch {
	case result.MalwareDetails.RiskLevel == security.RiskHigh:
		return &exitError{code: exitHighRisk}
	case !result.IsSecure:
		return &exitError{code: exitNotSecure}
	default:
		return nil
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
