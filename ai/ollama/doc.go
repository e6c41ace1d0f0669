// Package ollama runs text generation through a locally installed ollama CLI.
//
// Each Generate call spawns one `ollama run <model>` subprocess, feeds the
// prompt on stdin, and waits for output up to the configured timeout. On
// expiry the process is killed and the attempt reported as a timeout; the
// caller decides whether to retry.
package ollama
