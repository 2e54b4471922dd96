package tools_test

import (
	"context"
	"strconv"
	"testing"

	"github.com/scoutai/scout/internal/tools"
)

func evalExpr(t *testing.T, input map[string]interface{}) string {
	t.Helper()
	out, err := tools.Calculate().Execute(context.Background(), input)
	if err != nil {
		t.Fatalf("calculate: %v", err)
	}
	return out
}

func TestCalculateArithmetic(t *testing.T) {
	cases := []struct {
		expr string
		want float64
	}{
		{"2 + 2", 4},
		{"(120 / 2)", 60},
		{"10 % 3", 1},
		{"2 ** 10", 1024},
	}
	for _, c := range cases {
		got := evalExpr(t, map[string]interface{}{"expression": c.expr})
		f, err := strconv.ParseFloat(got, 64)
		if err != nil {
			t.Fatalf("%s: result %q not numeric: %v", c.expr, got, err)
		}
		if f != c.want {
			t.Errorf("%s = %v, want %v", c.expr, f, c.want)
		}
	}
}

func TestCalculateWithParams(t *testing.T) {
	got := evalExpr(t, map[string]interface{}{
		"expression": "principal * rate",
		"params": map[string]interface{}{
			"principal": 1000.0,
			"rate":      0.05,
		},
	})
	if got != "50" {
		t.Errorf("result = %q, want 50", got)
	}
}

func TestCalculateConstants(t *testing.T) {
	got := evalExpr(t, map[string]interface{}{"expression": "pi > 3.14 && pi < 3.15"})
	if got != "true" {
		t.Errorf("result = %q, want true", got)
	}
}

func TestCalculateErrors(t *testing.T) {
	calc := tools.Calculate()

	if _, err := calc.Execute(context.Background(), map[string]interface{}{}); err == nil {
		t.Error("missing expression should error")
	}
	if _, err := calc.Execute(context.Background(), map[string]interface{}{"expression": "2 +* 2"}); err == nil {
		t.Error("malformed expression should error")
	}
	if _, err := calc.Execute(context.Background(), map[string]interface{}{"expression": "unknown_var + 1"}); err == nil {
		t.Error("unknown parameter should error")
	}
}
