package main

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/bpetok/bpetok"
)

func newEncodeCmd(logger *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "encode <model-in> <text>",
		Short: "encode text into token ids using a trained model",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEncode(logger, cmd.OutOrStdout(), args[0], args[1])
		},
	}
}

func runEncode(logger *slog.Logger, stdout io.Writer, modelPath, text string) error {
	model, err := bpetok.Load(modelPath)
	if err != nil {
		return fmt.Errorf("loading model: %w", err)
	}

	ids := model.NewEncoder().Encode([]byte(text))
	logger.Debug("encoded", "token_count", len(ids))

	w := bufio.NewWriter(stdout)
	for i, id := range ids {
		if i > 0 {
			if err := w.WriteByte(' '); err != nil {
				return err
			}
		}
		if _, err := w.WriteString(strconv.FormatUint(uint64(id), 10)); err != nil {
			return err
		}
	}
	if err := w.WriteByte('\n'); err != nil {
		return err
	}
	return w.Flush()
}
