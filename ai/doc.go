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


// Package ai defines the capability interfaces for external model services:
// text generation (summarization and answer synthesis) and text embedding
// (semantic retrieval).
//
// The interfaces deliberately treat the generation backend as an opaque,
// possibly-failing black box. Implementations live in subpackages:
//
//   - ai/ollama: spawns the ollama CLI as a subprocess per call
//   - ai/openai: OpenAI-compatible HTTP services via langchaingo
//   - ai/mock: deterministic in-memory doubles for tests
//
// Callers own retry policy; implementations only enforce the configured
// per-call timeout and report failures as errors.
package ai
