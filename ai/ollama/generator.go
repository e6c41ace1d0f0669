// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package ollama

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"github.com/poiesic/chronicle/ai"
)

// Generator implements ai.TextGenerator by spawning the ollama CLI per call.
type Generator struct {
	executable string
	model      string
	timeout    time.Duration
	logger     *slog.Logger
}

// newGenerator is an internal constructor that returns the concrete type.
func newGenerator(config *ai.Config) (*Generator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &Generator{
		executable: config.Executable,
		model:      config.GeneratorModel,
		timeout:    config.Timeout,
		logger:     slog.Default().With("component", "ollama-generator"),
	}, nil
}

// NewGenerator creates a subprocess-backed generator from the configuration.
//
// Returns ai.TextGenerator interface to enforce abstraction.
func NewGenerator(config *ai.Config) (ai.TextGenerator, error) {
	return newGenerator(config)
}

// Generate runs one generation attempt. The subprocess receives the prompt on
// stdin and is forcibly terminated when the configured timeout expires, in
// which case the returned error wraps ai.ErrGenerationTimeout.
//
// A non-empty stderr alone does not fail the attempt; it is returned as
// advisory diagnostics alongside the output.
func (g *Generator) Generate(ctx context.Context, prompt string) (*ai.GenerationResult, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, ai.ErrEmptyPrompt
	}

	runCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, g.executable, "run", g.model)
	cmd.Stdin = strings.NewReader(prompt)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	elapsed := time.Since(start)

	if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		g.logger.Warn("generation timed out, process killed",
			"model", g.model, "timeout", g.timeout)
		return nil, fmt.Errorf("%w after %s", ai.ErrGenerationTimeout, g.timeout)
	}

	if err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		g.logger.Error("generation process failed",
			"model", g.model, "elapsed", elapsed.Round(100*time.Millisecond), "err", err)
		return nil, fmt.Errorf("generation process failed: %s", msg)
	}

	g.logger.Debug("generation completed",
		"model", g.model, "elapsed", elapsed.Round(100*time.Millisecond))

	return &ai.GenerationResult{
		Output:      strings.TrimSpace(stdout.String()),
		Diagnostics: strings.TrimSpace(stderr.String()),
	}, nil
}
