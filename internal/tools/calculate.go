package tools

import (
	"context"
	"fmt"
	"math"

	"github.com/Knetic/govaluate"
)

// constParams are always available to expressions unless shadowed.
var constParams = map[string]interface{}{
	"pi": math.Pi,
	"e":  math.E,
}

// Calculate evaluates mathematical expressions.
func Calculate() Tool {
	return Tool{
		Name: "calculate",
		Description: "Evaluate a mathematical expression. Supports arithmetic, comparison " +
			"and boolean operators plus the constants pi and e. Example: '(2 + 3) * 4'.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"expression": map[string]interface{}{
					"type":        "string",
					"description": "Mathematical expression to evaluate, e.g. '1000 * (1 + 0.05) ** 3'",
				},
				"params": map[string]interface{}{
					"type":        "object",
					"description": "Optional named parameters referenced by the expression",
				},
			},
			"required": []string{"expression"},
		},
		Execute: func(ctx context.Context, input map[string]interface{}) (string, error) {
			exprStr, _ := input["expression"].(string)
			if exprStr == "" {
				return "", fmt.Errorf("expression is required")
			}

			expr, err := govaluate.NewEvaluableExpression(exprStr)
			if err != nil {
				return "", fmt.Errorf("parse expression: %w", err)
			}

			params := make(map[string]interface{}, len(constParams))
			for k, v := range constParams {
				params[k] = v
			}
			if extra, ok := input["params"].(map[string]interface{}); ok {
				for k, v := range extra {
					params[k] = v
				}
			}

			result, err := expr.Evaluate(params)
			if err != nil {
				return "", fmt.Errorf("evaluate expression: %w", err)
			}
			return fmt.Sprintf("%v", result), nil
		},
	}
}
