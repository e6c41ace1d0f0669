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


package ingestion

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/poiesic/chronicle/ai"
	"github.com/poiesic/chronicle/core"
)

// DefaultRetryBudget is the default number of extra attempts after the first.
const DefaultRetryBudget = 1

// summaryPrompt wraps chunk text in a facts-only summarization directive.
const summaryPrompt = `
Summarize the FACTS from this text only in a clear, concise paragraph.
Do NOT add interpretations, claims, or causes.
No assumptions. No conclusions.

TEXT:
%s
`

// Outcome is the result of summarizing one chunk.
type Outcome struct {
	// Summary is the generated text. Empty when Status is failed.
	Summary string

	// Status records whether any attempt succeeded.
	Status core.Status

	// Retries counts attempts beyond the first. A first-attempt success
	// is zero; exhausting the budget reports the full budget.
	Retries int

	// Err carries the last attempt's error message on failure, or the
	// generator's advisory diagnostics on success. Empty when neither applies.
	Err string
}

// Worker summarizes chunks through a text generator with bounded retries.
type Worker struct {
	generator ai.TextGenerator
	retries   int
	logger    *slog.Logger
}

// WorkerOption configures a Worker.
type WorkerOption func(*Worker) error

// WithRetryBudget sets the number of extra attempts after the first.
// Default is DefaultRetryBudget.
func WithRetryBudget(retries int) WorkerOption {
	return func(w *Worker) error {
		if retries < 0 {
			return ErrNegativeRetryBudget
		}
		w.retries = retries
		return nil
	}
}

// WithWorkerLogger sets a custom logger.
// Default is slog.Default().
func WithWorkerLogger(logger *slog.Logger) WorkerOption {
	return func(w *Worker) error {
		if logger == nil {
			logger = slog.Default()
		}
		w.logger = logger.With("component", "summary-worker")
		return nil
	}
}

// NewWorker creates a summarization worker around the given generator.
func NewWorker(generator ai.TextGenerator, opts ...WorkerOption) (*Worker, error) {
	if generator == nil {
		return nil, ErrGeneratorRequired
	}

	w := &Worker{
		generator: generator,
		retries:   DefaultRetryBudget,
		logger:    slog.Default().With("component", "summary-worker"),
	}

	for _, opt := range opts {
		if err := opt(w); err != nil {
			return nil, err
		}
	}
	return w, nil
}

// Summarize runs up to budget+1 generation attempts over the chunk text.
// The first successful attempt wins. Timeouts are recorded as
// "Timeout on attempt N" with 1-based attempt numbering; other generator
// errors are recorded verbatim. When every attempt fails, the outcome
// carries the last error and the full retry budget.
func (w *Worker) Summarize(ctx context.Context, text string) *Outcome {
	prompt := fmt.Sprintf(summaryPrompt, text)

	var lastError string
	for attempt := 1; attempt <= w.retries+1; attempt++ {
		result, err := w.generator.Generate(ctx, prompt)
		if err == nil {
			w.logger.Debug("chunk summarized", "attempt", attempt)
			return &Outcome{
				Summary: result.Output,
				Status:  core.StatusSuccess,
				Retries: attempt - 1,
				Err:     result.Diagnostics,
			}
		}

		if errors.Is(err, ai.ErrGenerationTimeout) {
			lastError = fmt.Sprintf("Timeout on attempt %d", attempt)
			w.logger.Warn("generation timed out", "attempt", attempt)
		} else {
			lastError = err.Error()
			w.logger.Warn("generation failed", "attempt", attempt, "err", err)
		}
	}

	return &Outcome{
		Status:  core.StatusFailed,
		Retries: w.retries,
		Err:     lastError,
	}
}
