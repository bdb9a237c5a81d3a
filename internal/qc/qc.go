package qc

import (
	"context"
	"fmt"
	"strings"

	"data-qc/internal/dataset"
	"data-qc/internal/llm"
	"data-qc/internal/llmjson"
)

// DefaultMaxSampleRows caps how many rows are embedded in the QC prompt.
const DefaultMaxSampleRows = 20

const (
	errCallFailed  = "LLM call failed"
	errInvalidJSON = "LLM response not valid JSON"
)

const promptTemplate = `
You are a strict data-quality analyst. You will receive a JSON array of up to %[1]d rows.
Return exactly one JSON object (no text) with keys:
- summary: one-line summary
- anomalies: array of {row_index, column, value, issue, severity} (severity: low/medium/high)
- suggested_actions: array of short recommendations

Rules:
- Check numeric ranges (e.g., 'age' > 150 is an error).
- Check name-like fields that are only digits.
- Check inconsistent types or obvious format errors.
- Use column headers to infer meaning.
- Return only valid JSON, nothing else.

Data:
%[2]s
`

// Answer asks a free-form question. Failures come back as the answer text.
func Answer(ctx context.Context, client llm.Client, question string) string {
	prompt := fmt.Sprintf("You are a helpful assistant. Answer concisely.\nQuestion: %s\nAnswer:", question)
	resp, err := client.Complete(ctx, prompt)
	if err != nil {
		return fmt.Sprintf("%s: %v", errCallFailed, err)
	}
	return strings.TrimSpace(resp)
}

// BuildPrompt embeds the first maxRows rows of ds into the QC instructions.
func BuildPrompt(ds dataset.Dataset, maxRows int) (string, error) {
	if maxRows <= 0 {
		maxRows = DefaultMaxSampleRows
	}
	sample, err := ds.RowsJSON(maxRows, "  ")
	if err != nil {
		return "", fmt.Errorf("serialize sample: %w", err)
	}
	return fmt.Sprintf(promptTemplate, maxRows, sample), nil
}

// Check runs the QC prompt over a sample of ds. It never returns an error:
// transport failures and unusable replies come back as a Degraded result.
func Check(ctx context.Context, client llm.Client, ds dataset.Dataset, maxRows int) Result {
	prompt, err := BuildPrompt(ds, maxRows)
	if err != nil {
		return Result{Degraded: &Degraded{Error: errCallFailed, RawException: err.Error()}}
	}
	text, err := client.Complete(ctx, prompt)
	if err != nil {
		return Result{Degraded: &Degraded{Error: errCallFailed, RawException: err.Error()}}
	}

	parsed := llmjson.Extract(text)
	if !parsed.OK || parsed.Value == nil {
		return Result{Degraded: &Degraded{Error: errInvalidJSON, Raw: text}}
	}
	return Result{Report: &Report{Value: parsed.Value, raw: parsed.JSON()}}
}
