package main

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/bpetok/bpetok"
)

func newDecodeCmd(logger *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "decode <model-in> <id>...",
		Short: "decode token ids back into bytes using a trained model",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDecode(logger, cmd.OutOrStdout(), args[0], args[1:])
		},
	}
}

func runDecode(logger *slog.Logger, stdout io.Writer, modelPath string, rawIDs []string) error {
	model, err := bpetok.Load(modelPath)
	if err != nil {
		return fmt.Errorf("loading model: %w", err)
	}

	ids := make([]uint32, len(rawIDs))
	for i, raw := range rawIDs {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return fmt.Errorf("bad argument: id %q: %w", raw, err)
		}
		ids[i] = uint32(id)
	}

	out := model.NewDecoder().Decode(ids)
	logger.Debug("decoded", "byte_count", len(out))

	if _, err := stdout.Write(out); err != nil {
		return err
	}
	_, err = stdout.Write([]byte{'\n'})
	return err
}
