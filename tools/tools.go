// Package tools exposes the kernels, compiler, verifier and CAS operations as
// JSON tool calls.
package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/SaiNikhilTadepalli/NeuralSutra/compiler"
	"github.com/SaiNikhilTadepalli/NeuralSutra/engine"
	"github.com/SaiNikhilTadepalli/NeuralSutra/router"
	"github.com/SaiNikhilTadepalli/NeuralSutra/symbolic"
	"github.com/SaiNikhilTadepalli/NeuralSutra/verify"
)

// DefaultVar is used when a request names no variable.
const DefaultVar = "x"

type ToolRequest struct {
	Tool   string                 `json:"tool"`
	Params map[string]interface{} `json:"params"`
}

type ToolResponse struct {
	Result interface{} `json:"result,omitempty"`
	LaTeX  string      `json:"latex,omitempty"`
	String string      `json:"string,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// Handler serves tool calls. The zero value is not usable; use NewHandler.
type Handler struct {
	engine     *engine.Engine
	classifier router.Classifier
	compiler   *compiler.Compiler
	verifier   *verify.Verifier
}

// NewHandler returns a Handler routing compile and classify calls through
// classifier. Compiler options apply to the compile tool.
func NewHandler(e *engine.Engine, classifier router.Classifier, opts ...compiler.Option) *Handler {
	return &Handler{
		engine:     e,
		classifier: classifier,
		compiler:   compiler.New(e, classifier, opts...),
		verifier:   verify.New(),
	}
}

// HandleToolCall runs one tool. Failures are reported in ToolResponse.Error.
func (h *Handler) HandleToolCall(ctx context.Context, req ToolRequest) ToolResponse {
	// Expressions arrive either as source text or as JSON trees.
	getExpr := func(key string) (symbolic.Expr, error) {
		v, ok := req.Params[key]
		if !ok {
			return nil, fmt.Errorf("missing param: %s", key)
		}
		switch val := v.(type) {
		case string:
			return symbolic.Parse(val)
		case map[string]interface{}:
			return symbolic.FromJSON(val)
		}
		return nil, fmt.Errorf("invalid type for param %s", key)
	}
	getVar := func() (string, error) {
		v, ok := req.Params["var"]
		if !ok {
			return DefaultVar, nil
		}
		s, ok := v.(string)
		if !ok || strings.TrimSpace(s) == "" {
			return "", fmt.Errorf("param var must be a non-empty string")
		}
		return s, nil
	}
	respond := func(e symbolic.Expr) ToolResponse {
		return ToolResponse{Result: symbolic.JSONValue(e), LaTeX: symbolic.LaTeX(e), String: symbolic.String(e)}
	}
	unary := func(fn func(symbolic.Expr) symbolic.Expr) ToolResponse {
		e, err := getExpr("expr")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		return respond(fn(e))
	}
	withVar := func(fn func(symbolic.Expr, string) symbolic.Expr) ToolResponse {
		e, err := getExpr("expr")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		v, err := getVar()
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		return respond(fn(e, v))
	}

	switch req.Tool {
	case "simplify":
		return unary(symbolic.Simplify)

	case "expand":
		return unary(symbolic.Expand)

	case "diff":
		return withVar(symbolic.Diff)

	case "integrate":
		return withVar(symbolic.IntegrateOrHold)

	case "multiply":
		return withVar(h.engine.Multiply)

	case "divide":
		return withVar(h.engine.Divide)

	case "integrate_tabular":
		return withVar(h.engine.Integrate)

	case "compile":
		e, err := getExpr("expr")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		v, err := getVar()
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		out, err := h.compiler.Compile(ctx, e, v)
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		return respond(out)

	case "verify":
		e, err := getExpr("expr")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		cand, err := getExpr("candidate")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		v, err := getVar()
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		ok := h.verifier.Verify(e, cand, v)
		return ToolResponse{Result: ok, String: fmt.Sprint(ok)}

	case "classify":
		e, err := getExpr("expr")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		intent, err := h.classifier.Classify(ctx, router.Tokenize(e))
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		return ToolResponse{Result: int(intent), String: intent.String()}

	case "tokens":
		e, err := getExpr("expr")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		toks := router.Tokenize(e)
		return ToolResponse{Result: toks, String: strings.Join(toks, " ")}

	case "to_latex":
		e, err := getExpr("expr")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		return ToolResponse{LaTeX: symbolic.LaTeX(e), String: symbolic.String(e)}

	case "tool_spec":
		return ToolResponse{Result: json.RawMessage(ToolSpec())}
	}

	return ToolResponse{Error: fmt.Sprintf("unknown tool: %s", req.Tool)}
}

// ToolSpec returns the JSON schema of every tool.
func ToolSpec() string {
	expr := map[string]string{"expr": "string|object"}
	exprVar := map[string]string{"expr": "string|object", "var": "string"}
	tools := []map[string]interface{}{
		ts("simplify", "Canonical simplification", []string{"expr"}, expr),
		ts("expand", "Algebraically expand expression", []string{"expr"}, expr),
		ts("diff", "First derivative d/dvar", []string{"expr"}, exprVar),
		ts("integrate", "Direct rule-based integration; unresolved parts stay as Integral", []string{"expr"}, exprVar),
		ts("multiply", "Urdhva Tiryagbhyam product of polynomial factors", []string{"expr"}, exprVar),
		ts("divide", "Paravartya Yojayet division of a rational function", []string{"expr"}, exprVar),
		ts("integrate_tabular", "Tabular integration by parts of polynomial times transcendental", []string{"expr"}, exprVar),
		ts("compile", "Multi-pass routed integration", []string{"expr"}, exprVar),
		ts("verify", "Check that candidate is an antiderivative of expr", []string{"expr", "candidate"},
			map[string]string{"expr": "string|object", "candidate": "string|object", "var": "string"}),
		ts("classify", "Kernel intent for an integrand (0 fallback, 1 multiply, 2 divide, 3 integrate)", []string{"expr"}, expr),
		ts("tokens", "srepr token stream of an expression", []string{"expr"}, expr),
		ts("to_latex", "Convert to LaTeX", []string{"expr"}, expr),
		ts("tool_spec", "Return this tool schema", []string{}, map[string]string{}),
	}
	spec := map[string]interface{}{"tools": tools}
	b, _ := json.MarshalIndent(spec, "", "  ")
	return string(b)
}

func ts(name, description string, required []string, props map[string]string) map[string]interface{} {
	properties := map[string]interface{}{}
	for k, typ := range props {
		if strings.Contains(typ, "|") {
			properties[k] = map[string]interface{}{"type": strings.Split(typ, "|")}
			continue
		}
		properties[k] = map[string]interface{}{"type": typ}
	}
	return map[string]interface{}{
		"name":        name,
		"description": description,
		"inputSchema": map[string]interface{}{
			"type":       "object",
			"properties": properties,
			"required":   required,
		},
	}
}
