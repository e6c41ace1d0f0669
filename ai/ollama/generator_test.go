package ollama

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/poiesic/chronicle/ai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeScript writes an executable shell script that stands in for the
// ollama CLI during tests.
func writeScript(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("subprocess tests rely on /bin/sh")
	}

	path := filepath.Join(t.TempDir(), "fake-ollama")
	script := "#!/bin/sh\n" + body + "\n"
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))
	return path
}

func testConfig(executable string, timeout time.Duration) *ai.Config {
	return ai.NewConfig(
		ai.WithExecutable(executable),
		ai.WithTimeout(timeout),
		ai.WithGeneratorModel("test-model"),
	)
}

func TestNewGenerator(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		gen, err := NewGenerator(testConfig("ollama", time.Second))
		require.NoError(t, err)
		assert.NotNil(t, gen)
	})

	t.Run("invalid config", func(t *testing.T) {
		cfg := testConfig("ollama", time.Second)
		cfg.GeneratorModel = ""
		_, err := NewGenerator(cfg)
		assert.Error(t, err)
	})
}

func TestGenerate_Success(t *testing.T) {
	// Consume stdin, emit output and an advisory warning.
	script := writeScript(t, `cat >/dev/null
printf 'The bridge opened in 1856.\n'
printf 'loading model\n' >&2`)

	gen, err := NewGenerator(testConfig(script, 5*time.Second))
	require.NoError(t, err)

	result, err := gen.Generate(context.Background(), "Summarize the facts.")
	require.NoError(t, err)
	assert.Equal(t, "The bridge opened in 1856.", result.Output)
	assert.Equal(t, "loading model", result.Diagnostics)
}

func TestGenerate_StderrAloneIsNotFailure(t *testing.T) {
	script := writeScript(t, `cat >/dev/null
printf 'output\n'
printf 'warning only\n' >&2`)

	gen, err := NewGenerator(testConfig(script, 5*time.Second))
	require.NoError(t, err)

	result, err := gen.Generate(context.Background(), "prompt")
	require.NoError(t, err)
	assert.Equal(t, "output", result.Output)
	assert.Equal(t, "warning only", result.Diagnostics)
}

func TestGenerate_Timeout(t *testing.T) {
	script := writeScript(t, `sleep 10`)

	gen, err := NewGenerator(testConfig(script, 100*time.Millisecond))
	require.NoError(t, err)

	start := time.Now()
	_, err = gen.Generate(context.Background(), "prompt")
	require.Error(t, err)
	assert.ErrorIs(t, err, ai.ErrGenerationTimeout)
	// The process must be killed near the deadline, not after the sleep.
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestGenerate_ProcessFailure(t *testing.T) {
	t.Run("nonzero exit with stderr", func(t *testing.T) {
		script := writeScript(t, `cat >/dev/null
printf 'model not found\n' >&2
exit 1`)

		gen, err := NewGenerator(testConfig(script, 5*time.Second))
		require.NoError(t, err)

		_, err = gen.Generate(context.Background(), "prompt")
		require.Error(t, err)
		assert.NotErrorIs(t, err, ai.ErrGenerationTimeout)
		assert.Contains(t, err.Error(), "model not found")
	})

	t.Run("missing executable", func(t *testing.T) {
		gen, err := NewGenerator(testConfig(filepath.Join(t.TempDir(), "missing"), time.Second))
		require.NoError(t, err)

		_, err = gen.Generate(context.Background(), "prompt")
		assert.Error(t, err)
	})
}

func TestGenerate_EmptyPrompt(t *testing.T) {
	gen, err := NewGenerator(testConfig("ollama", time.Second))
	require.NoError(t, err)

	_, err = gen.Generate(context.Background(), "   ")
	assert.ErrorIs(t, err, ai.ErrEmptyPrompt)
}
