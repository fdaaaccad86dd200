package engine_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/SaiNikhilTadepalli/NeuralSutra/engine"
	"github.com/SaiNikhilTadepalli/NeuralSutra/symbolic"
	"github.com/SaiNikhilTadepalli/NeuralSutra/verify"
)

func newLogged(buf *bytes.Buffer) *engine.Engine {
	logger := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return engine.New(engine.WithLogger(logger))
}

func TestEngine_Multiply(t *testing.T) {
	var buf bytes.Buffer
	e := newLogged(&buf)

	got := e.Multiply(symbolic.MustParse("(x - 1)*(x + 1)"), "x")
	assert.Equal(t, "x^2 - 1", got.String())
	assert.Empty(t, buf.String())
}

func TestEngine_DivideFallbackLogged(t *testing.T) {
	var buf bytes.Buffer
	e := newLogged(&buf)

	in := symbolic.MustParse("sin(x)/(x + 1)")
	got := e.Divide(in, "x")
	assert.True(t, in.Equal(got))
	assert.Contains(t, buf.String(), "kernel fallback")
	assert.Contains(t, buf.String(), "kernel=divide")
	assert.Contains(t, buf.String(), "structural mismatch")
}

func TestEngine_Integrate(t *testing.T) {
	e := engine.New()
	f := symbolic.MustParse("(x^2 + 1)*exp(2*x)")
	assert.True(t, verify.Verify(f, e.Integrate(f, "x"), "x"))

	g := symbolic.MustParse("sin(x)*cos(x)")
	assert.True(t, verify.Verify(g, e.Integrate(g, "x"), "x"))
}

func TestEngine_NilLoggerIsSilent(t *testing.T) {
	e := engine.New(engine.WithLogger(nil))
	assert.NotPanics(t, func() {
		e.Multiply(symbolic.MustParse("sin(x)*x"), "x")
	})
}
