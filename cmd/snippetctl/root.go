package main

import (
	"fmt"

	"github.com/NeuralTrust/SnippetGate/pkg/version"
	"github.com/spf13/cobra"
)

// Exit codes of the scan command.
const (
	exitNotSecure = 1
	exitHighRisk  = 2
)

// exitError carries a verdict exit code without printing an error message.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "snippetctl",
		Short:         "Check code snippets the way SnippetGate does",
		Version:       version.GetInfo().String(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newScanCmd(), newTokenCmd())
	return root
}
