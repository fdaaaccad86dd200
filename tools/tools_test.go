package tools_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SaiNikhilTadepalli/NeuralSutra/engine"
	"github.com/SaiNikhilTadepalli/NeuralSutra/router"
	"github.com/SaiNikhilTadepalli/NeuralSutra/symbolic"
	"github.com/SaiNikhilTadepalli/NeuralSutra/tools"
	"github.com/SaiNikhilTadepalli/NeuralSutra/verify"
)

func newHandler() *tools.Handler {
	return tools.NewHandler(engine.New(), router.RuleClassifier{})
}

func call(t *testing.T, tool string, params map[string]interface{}) tools.ToolResponse {
	t.Helper()
	return newHandler().HandleToolCall(context.Background(), tools.ToolRequest{Tool: tool, Params: params})
}

func TestExpand(t *testing.T) {
	resp := call(t, "expand", map[string]interface{}{"expr": "(x + 1)*(x - 1)"})
	require.Empty(t, resp.Error)
	assert.Equal(t, "x^2 - 1", resp.String)
	assert.NotEmpty(t, resp.LaTeX)
	assert.NotNil(t, resp.Result)
}

func TestJSONTreeParam(t *testing.T) {
	decoded := roundTrip(t, symbolic.JSONValue(symbolic.MustParse("x*sin(x)")))

	resp := call(t, "diff", map[string]interface{}{"expr": decoded, "var": "x"})
	require.Empty(t, resp.Error)
	got := symbolic.MustParse(resp.String)
	assert.True(t, verify.Symbolic(got, symbolic.MustParse("sin(x) + x*cos(x)")), resp.String)
}

func TestKernelTools(t *testing.T) {
	resp := call(t, "multiply", map[string]interface{}{"expr": "(x + 2)*(x + 3)"})
	require.Empty(t, resp.Error)
	assert.Equal(t, "x^2 + 5*x + 6", resp.String)

	resp = call(t, "divide", map[string]interface{}{"expr": "(x^2 + 3*x + 2)/(x + 1)"})
	require.Empty(t, resp.Error)
	assert.Equal(t, "x + 2", resp.String)

	f := symbolic.MustParse("x*exp(x)")
	resp = call(t, "integrate_tabular", map[string]interface{}{"expr": "x*exp(x)"})
	require.Empty(t, resp.Error)
	assert.True(t, verify.Verify(f, symbolic.MustParse(resp.String), "x"), resp.String)
}

// roundTrip re-decodes v the way a server would receive it.
func roundTrip(t *testing.T, v interface{}) map[string]interface{} {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &m))
	return m
}

func TestCompileAndVerify(t *testing.T) {
	resp := call(t, "compile", map[string]interface{}{"expr": "x^2*cos(x) + 1/(x + 1)", "var": "x"})
	require.Empty(t, resp.Error)

	check := call(t, "verify", map[string]interface{}{
		"expr":      "x^2*cos(x) + 1/(x + 1)",
		"candidate": roundTrip(t, resp.Result),
	})
	require.Empty(t, check.Error)
	assert.Equal(t, true, check.Result)

	wrong := call(t, "verify", map[string]interface{}{"expr": "x", "candidate": "x^3"})
	assert.Equal(t, false, wrong.Result)
}

func TestClassifyAndTokens(t *testing.T) {
	resp := call(t, "classify", map[string]interface{}{"expr": "x^3*sinh(x)"})
	require.Empty(t, resp.Error)
	assert.Equal(t, int(router.Integrate), resp.Result)
	assert.Equal(t, "integrate", resp.String)

	resp = call(t, "tokens", map[string]interface{}{"expr": "x"})
	require.Empty(t, resp.Error)
	assert.Equal(t, []string{"Symbol", "(", "'x'", ")"}, resp.Result)
	assert.Equal(t, "Symbol ( 'x' )", resp.String)
}

func TestToLatex(t *testing.T) {
	resp := call(t, "to_latex", map[string]interface{}{"expr": "sin(x)"})
	require.Empty(t, resp.Error)
	assert.Contains(t, resp.LaTeX, `\sin`)
}

func TestErrors(t *testing.T) {
	tests := []struct {
		tool   string
		params map[string]interface{}
	}{
		{"expand", map[string]interface{}{}},
		{"expand", map[string]interface{}{"expr": 3.0}},
		{"expand", map[string]interface{}{"expr": "x +"}},
		{"diff", map[string]interface{}{"expr": "x", "var": ""}},
		{"diff", map[string]interface{}{"expr": "x", "var": 1.0}},
		{"verify", map[string]interface{}{"expr": "x"}},
		{"expand", map[string]interface{}{"expr": map[string]interface{}{"type": "matrix"}}},
		{"no_such_tool", nil},
	}
	for _, tt := range tests {
		resp := call(t, tt.tool, tt.params)
		assert.NotEmpty(t, resp.Error, "%s %v", tt.tool, tt.params)
	}
}

func TestCompileCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	resp := newHandler().HandleToolCall(ctx, tools.ToolRequest{Tool: "compile", Params: map[string]interface{}{"expr": "x*sin(x)"}})
	assert.Contains(t, resp.Error, "canceled")
}

func TestToolSpec(t *testing.T) {
	var spec struct {
		Tools []struct {
			Name        string `json:"name"`
			InputSchema struct {
				Required []string `json:"required"`
			} `json:"inputSchema"`
		} `json:"tools"`
	}
	require.NoError(t, json.Unmarshal([]byte(tools.ToolSpec()), &spec))
	assert.Len(t, spec.Tools, 13)

	h := newHandler()
	for _, tool := range spec.Tools {
		if tool.Name == "tool_spec" {
			continue
		}
		resp := h.HandleToolCall(context.Background(), tools.ToolRequest{Tool: tool.Name, Params: map[string]interface{}{}})
		assert.Contains(t, resp.Error, "missing param", tool.Name)
	}

	resp := h.HandleToolCall(context.Background(), tools.ToolRequest{Tool: "tool_spec"})
	require.Empty(t, resp.Error)
	raw, ok := resp.Result.(json.RawMessage)
	require.True(t, ok)
	assert.True(t, json.Valid(raw))
}
