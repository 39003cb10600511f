// Command bpetok is the CLI dispatcher for the tokenizer library: train a
// model from a corpus, encode text against a model, or decode token ids
// back to bytes. The three verbs and their exact stdout contract are the
// external interface spec.md §6.2 describes; everything interesting is in
// the bpetok and internal packages this command only wires together.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	if err := newRootCmd(logger).ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd(logger *slog.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:           "bpetok",
		Short:         "byte-level BPE tokenizer",
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	root.AddCommand(
		newTrainCmd(logger),
		newEncodeCmd(logger),
		newDecodeCmd(logger),
	)

	return root
}
