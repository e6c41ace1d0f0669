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


package synthesis

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/poiesic/chronicle/ai"
	"github.com/poiesic/chronicle/search"
)

// answerPrompt combines the question with numbered source summaries and the
// synthesis directive.
const answerPrompt = `Answer the question below using ONLY the numbered source summaries provided.

QUESTION:
%s

SOURCES:
%s

Write ONE coherent paragraph answering the question from the supplied facts only.
Keep the inline citation markers like [1] next to the facts they support.
Frame the answer in terms of engineering and infrastructure.
Do not add facts that are not in the sources.`

// Answer is a synthesized paragraph plus its citation table.
type Answer struct {
	// Text is the generated paragraph, or an explicit diagnostic string
	// when synthesis failed or had nothing to work with.
	Text string

	// References lists the citation table in number order. Populated even
	// when Text carries a diagnostic.
	References []*Reference
}

// Synthesizer turns ranked search results into a cited answer.
type Synthesizer struct {
	generator ai.TextGenerator
	logger    *slog.Logger
}

// Option configures a Synthesizer.
type Option func(*Synthesizer) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Synthesizer) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger.With("component", "synthesizer")
		return nil
	}
}

// NewSynthesizer creates a synthesizer around the given generator.
func NewSynthesizer(generator ai.TextGenerator, opts ...Option) (*Synthesizer, error) {
	if generator == nil {
		return nil, ErrGeneratorRequired
	}

	s := &Synthesizer{
		generator: generator,
		logger:    slog.Default().With("component", "synthesizer"),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Synthesize answers the question from the ranked results with a single
// generation call and no retry. A generation failure degrades to a
// diagnostic answer text; the reference table is returned either way.
func (s *Synthesizer) Synthesize(ctx context.Context, question string, results []*search.Result) *Answer {
	references, numbers := buildReferences(results)

	if len(results) == 0 {
		return &Answer{
			Text:       "No answer synthesized: no matching results to draw from.",
			References: references,
		}
	}

	var sources strings.Builder
	for i, result := range results {
		fmt.Fprintf(&sources, "[%d] %s\n\n", numbers[i], result.Unit.Summary)
	}

	prompt := fmt.Sprintf(answerPrompt, question, strings.TrimSpace(sources.String()))
	s.logger.Debug("synthesizing answer", "results", len(results), "references", len(references))

	result, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		s.logger.Warn("synthesis failed", "err", err)
		return &Answer{
			Text:       fmt.Sprintf("No answer synthesized: %s", err),
			References: references,
		}
	}

	return &Answer{
		Text:       result.Output,
		References: references,
	}
}
