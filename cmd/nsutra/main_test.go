package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SaiNikhilTadepalli/NeuralSutra/symbolic"
	"github.com/SaiNikhilTadepalli/NeuralSutra/verify"
)

func runCLI(args ...string) (code int, stdout, stderr string) {
	var out, errOut bytes.Buffer
	code = run(context.Background(), args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestUsage(t *testing.T) {
	code, _, stderr := runCLI()
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, stderr, "commands:")

	code, _, _ = runCLI("help")
	assert.Equal(t, exitOK, code)

	code, _, stderr = runCLI("frobnicate", "x")
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, stderr, `unknown command "frobnicate"`)
}

func TestCompile(t *testing.T) {
	code, stdout, _ := runCLI("compile", "x*cos(x)")
	require.Equal(t, exitOK, code)
	F := symbolic.MustParse(strings.TrimSpace(stdout))
	assert.True(t, verify.Verify(symbolic.MustParse("x*cos(x)"), F, "x"), stdout)
}

func TestCompile_Trace(t *testing.T) {
	code, _, stderr := runCLI("compile", "-trace", "x*exp(x) + x")
	require.Equal(t, exitOK, code)
	assert.Contains(t, stderr, "+++ pass 1")
}

func TestKernels(t *testing.T) {
	code, stdout, _ := runCLI("multiply", "(x + 1)*(x - 1)")
	require.Equal(t, exitOK, code)
	assert.Equal(t, "x^2 - 1\n", stdout)

	code, stdout, _ = runCLI("divide", "-var", "t", "(t^2 - 1)/(t - 1)")
	require.Equal(t, exitOK, code)
	assert.Equal(t, "t + 1\n", stdout)
}

func TestFormats(t *testing.T) {
	code, stdout, _ := runCLI("multiply", "-format", "json", "x*x")
	require.Equal(t, exitOK, code)
	e, err := symbolic.ParseJSON([]byte(stdout))
	require.NoError(t, err)
	assert.True(t, e.Equal(symbolic.MustParse("x^2")))

	code, stdout, _ = runCLI("multiply", "-format", "latex", "x*x")
	require.Equal(t, exitOK, code)
	assert.Contains(t, stdout, "x^{2}")
}

func TestVerify(t *testing.T) {
	code, stdout, _ := runCLI("verify", "-candidate", "x^3/3", "x^2")
	assert.Equal(t, exitOK, code)
	assert.Equal(t, "true\n", stdout)

	code, stdout, _ = runCLI("verify", "-candidate", "x^3", "x^2")
	assert.Equal(t, exitError, code)
	assert.Equal(t, "false\n", stdout)

	code, _, stderr := runCLI("verify", "x^2")
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, stderr, "-candidate")
}

func TestClassifyAndTokens(t *testing.T) {
	code, stdout, _ := runCLI("classify", "x^2/(x + 1)")
	require.Equal(t, exitOK, code)
	assert.Equal(t, "divide\n", stdout)

	code, stdout, _ = runCLI("tokens", "x")
	require.Equal(t, exitOK, code)
	assert.Equal(t, "Symbol ( 'x' )\n", stdout)
}

func TestErrors(t *testing.T) {
	code, _, stderr := runCLI("compile")
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, stderr, "missing expression")

	code, _, _ = runCLI("compile", "x +")
	assert.Equal(t, exitError, code)

	code, _, _ = runCLI("compile", "-max-passes", "0", "x")
	assert.Equal(t, exitUsage, code)

	code, _, _ = runCLI("compile", "-h")
	assert.Equal(t, exitOK, code)
}

func TestBench(t *testing.T) {
	chart := filepath.Join(t.TempDir(), "chart.html")
	code, stdout, stderr := runCLI("bench", "-case", "DUAL_POLY_PRODUCT", "-html", chart, "-timeout", "1m")
	require.Equal(t, exitOK, code, stderr)
	assert.Contains(t, stdout, "DUAL_POLY_PRODUCT")
	assert.NotContains(t, stdout, "NESTED_COMPOSITE")

	data, err := os.ReadFile(chart)
	require.NoError(t, err)
	assert.Contains(t, string(data), "DUAL_POLY_PRODUCT")
}
