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


// Package openai implements the ai interfaces against OpenAI-compatible HTTP
// APIs (Ollama's /v1 endpoint, LocalAI, vLLM, or the hosted OpenAI service).
//
// It is the network alternative to the subprocess backend in ai/ollama: the
// same models reachable over HTTP instead of a spawned CLI, with the same
// per-call timeout contract.
package openai
