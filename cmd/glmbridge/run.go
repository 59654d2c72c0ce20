// Copyright 2026 The Glmbridge Authors
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/davetashner/glmbridge/internal/eventlog"
	"github.com/davetashner/glmbridge/internal/llm"
)

// Run-specific flag values.
var (
	runModel     string
	runMaxTokens int
	runLogDir    string
)

// runCmd streams a single completion through the resolved settings.
var runCmd = &cobra.Command{
	Use:   "run [prompt]",
	Short: "Stream a completion from a GLM model",
	Long: `Send a prompt to a GLM model through the resolved settings and stream
the response to stdout. The model may be an alias (opus, sonnet, haiku) or
a concrete model identifier from the alias table.

Pass the prompt as arguments, or pipe it via stdin:
  glmbridge run "explain this error"
  git diff | glmbridge run "review this change"`,
	Args: cobra.ArbitraryArgs,
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVarP(&runModel, "model", "m", "sonnet", "model name or alias")
	runCmd.Flags().IntVar(&runMaxTokens, "max-tokens", 0, "output token limit (0 = engine default)")
	runCmd.Flags().StringVar(&runLogDir, "log-dir", "", "record stream events as NDJSON in this directory")
	runCmd.Flags().StringVar(&apiKey, "key", "", "API key (defaults to ZAI_API_KEY)")
}

func runRun(cmd *cobra.Command, args []string) error {
	prompt := strings.TrimSpace(strings.Join(args, " "))
	if prompt == "" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("glmbridge: reading stdin (%w)", err)
		}
		prompt = strings.TrimSpace(string(data))
	}
	if prompt == "" {
		return exitError(ExitInvalidArgs, "glmbridge: no prompt given")
	}

	res, err := loadSettings(".")
	if err != nil {
		return err
	}

	factory := llm.NewResolvingFactory(&llm.AnthropicFactory{})
	model, err := factory.New(res, runModel)
	if err != nil {
		return exitError(ExitInvalidArgs, "glmbridge: %v", err)
	}

	stream, err := model.Stream(cmd.Context(), llm.StreamRequest{
		Messages:  []llm.Message{llm.UserText(prompt)},
		MaxTokens: runMaxTokens,
	})
	if err != nil {
		return err
	}
	defer stream.Close() //nolint:errcheck // drained below

	if runLogDir != "" {
		rec, err := eventlog.New(runLogDir)
		if err != nil {
			return err
		}
		defer rec.Close() //nolint:errcheck // best-effort close
		stream = rec.Wrap(stream)
		slog.Info("recording events", "path", rec.Path())
	}

	w := cmd.OutOrStdout()
	for stream.Next() {
		ev := stream.Current()
		switch ev.Kind {
		case llm.EventTextDelta:
			_, _ = fmt.Fprint(w, ev.Text)
		case llm.EventToolCall:
			slog.Debug("tool call", "tool", ev.ToolName, "id", ev.ToolCallID)
		case llm.EventToolError:
			_, _ = fmt.Fprintf(os.Stderr, "tool %s failed: %s\n", ev.ToolName, ev.Result)
		}
	}
	_, _ = fmt.Fprintln(w)

	if err := stream.Err(); err != nil {
		return err
	}

	usage := stream.Usage()
	slog.Info("completion finished",
		"model", model.ID(),
		"input_tokens", usage.InputTokens,
		"output_tokens", usage.OutputTokens)
	return nil
}
