package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/bpetok/bpetok"
)

func newTrainCmd(logger *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "train <corpus-path> <model-out> <target_vocab> [min_freq]",
		Short: "learn BPE merge rules from a text corpus",
		Args:  cobra.RangeArgs(3, 4),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrain(logger, args)
		},
	}
}

func runTrain(logger *slog.Logger, args []string) error {
	corpusPath, modelOut := args[0], args[1]

	targetVocab, err := strconv.Atoi(args[2])
	if err != nil {
		return fmt.Errorf("bad argument: target_vocab: %w", err)
	}

	minFreq := 2
	if len(args) == 4 {
		minFreq, err = strconv.Atoi(args[3])
		if err != nil {
			return fmt.Errorf("bad argument: min_freq: %w", err)
		}
	}

	text, err := os.ReadFile(corpusPath)
	if err != nil {
		return fmt.Errorf("reading corpus: %w", err)
	}

	start := time.Now()
	model := bpetok.Train(text, targetVocab, minFreq)
	logger.Info("trained model",
		"corpus_bytes", len(text),
		"vocab_size", model.VocabSize(),
		"merge_count", model.MergeCount(),
		"elapsed", time.Since(start),
	)

	if err := bpetok.Save(modelOut, model); err != nil {
		return fmt.Errorf("saving model: %w", err)
	}

	return nil
}
