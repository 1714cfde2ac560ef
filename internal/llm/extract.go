// Package llm extracts structured JSON from free-form model output.
// Model responses wrap payloads in prose, markdown fences, or slightly
// broken JSON; extraction tries progressively more forgiving strategies
// and never returns an error to the caller through a panic.
package llm

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

// ===============================
// OPTIONS & RESULT
// ===============================

// Options controls extraction behavior.
type Options struct {
	// ExpectArray selects the required top-level shape: a JSON array
	// when true, a JSON object when false.
	ExpectArray bool

	// Logger receives a warning when every strategy fails. Nil is fine.
	Logger *zap.Logger
}

// Result is the outcome of an extraction attempt.
type Result struct {
	Success bool
	Data    interface{}
	RawJSON string
	Err     error
}

// ErrNoJSON is returned when no candidate in the text parses.
var ErrNoJSON = errors.New("no parsable JSON found in text")

// previewLimit caps how much of the input ends up in failure logs.
const previewLimit = 200

var (
	fenceRe         = regexp.MustCompile("```(?:json)?\\s*([\\s\\S]*?)```")
	trailingCommaRe = regexp.MustCompile(`,\s*([}\]])`)
	bareKeyRe       = regexp.MustCompile(`([{,]\s*)([A-Za-z_$][A-Za-z0-9_$]*)\s*:`)
	undefinedRe     = regexp.MustCompile(`\bundefined\b`)
)

// ===============================
// EXTRACTION
// ===============================

// ExtractJSON pulls the first JSON value of the expected shape out of
// text. Strategies run in order: parse the whole text, parse the first
// fenced code block, scan for a balanced object or array, and finally
// take the greedy span between the outermost delimiters. Candidates
// that fail as-is are retried after lightweight repairs.
func ExtractJSON(text string, opts Options) Result {
	candidates := collectCandidates(text, opts.ExpectArray)

	var lastErr error
	for _, candidate := range candidates {
		if data, err := parseShaped(candidate, opts.ExpectArray); err == nil {
			return Result{Success: true, Data: data, RawJSON: candidate}
		} else {
			lastErr = err
		}
	}

	// Second pass with repairs applied.
	for _, candidate := range candidates {
		repaired := repairJSON(candidate)
		if repaired == candidate {
			continue
		}
		if data, err := parseShaped(repaired, opts.ExpectArray); err == nil {
			if opts.Logger != nil {
				opts.Logger.Debug("extracted JSON after repair",
					zap.Int("original_len", len(candidate)),
					zap.Int("repaired_len", len(repaired)))
			}
			return Result{Success: true, Data: data, RawJSON: repaired}
		} else {
			lastErr = err
		}
	}

	if lastErr == nil {
		lastErr = ErrNoJSON
	}

	if opts.Logger != nil {
		opts.Logger.Warn("failed to extract JSON from text",
			zap.String("preview", truncate(text, previewLimit)),
			zap.Bool("expect_array", opts.ExpectArray),
			zap.Error(lastErr))
	}

	return Result{Success: false, Err: lastErr}
}

// ExtractTyped decodes the extracted JSON into T and gates it through
// validate. When extraction or validation fails, fallback is returned
// with ok set to false.
func ExtractTyped[T any](text string, opts Options, validate func(*T) bool, fallback *T) (*T, bool) {
	result := ExtractJSON(text, opts)
	if !result.Success {
		return fallback, false
	}

	var value T
	if err := json.Unmarshal([]byte(result.RawJSON), &value); err != nil {
		if opts.Logger != nil {
			opts.Logger.Warn("extracted JSON does not match expected type",
				zap.String("preview", truncate(result.RawJSON, previewLimit)),
				zap.Error(err))
		}
		return fallback, false
	}

	if validate != nil && !validate(&value) {
		if opts.Logger != nil {
			opts.Logger.Warn("extracted JSON failed validation",
				zap.String("preview", truncate(result.RawJSON, previewLimit)))
		}
		return fallback, false
	}

	return &value, true
}

// ===============================
// CANDIDATE STRATEGIES
// ===============================

// collectCandidates gathers substrings worth parsing, most precise
// first. Duplicates are dropped while preserving order.
func collectCandidates(text string, expectArray bool) []string {
	opener, closer := "{", "}"
	if expectArray {
		opener, closer = "[", "]"
	}

	var candidates []string
	add := func(s string) {
		s = strings.TrimSpace(s)
		if s == "" {
			return
		}
		for _, existing := range candidates {
			if existing == s {
				return
			}
		}
		candidates = append(candidates, s)
	}

	// Whole text as-is.
	add(text)

	// First fenced code block.
	if m := fenceRe.FindStringSubmatch(text); m != nil {
		add(m[1])
	}

	// Balanced scan from the first expected opener.
	if span := balancedSpan(text, opener[0], closer[0]); span != "" {
		add(span)
	}

	// Greedy span between the outermost delimiters.
	if start := strings.Index(text, opener); start >= 0 {
		if end := strings.LastIndex(text, closer); end > start {
			add(text[start : end+1])
		}
	}

	return candidates
}

// balancedSpan returns the substring from the first opener to its
// matching closer, tracking string and escape state so braces inside
// quoted values do not end the scan early.
func balancedSpan(text string, opener, closer byte) string {
	start := strings.IndexByte(text, opener)
	if start < 0 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(text); i++ {
		ch := text[i]

		if escaped {
			escaped = false
			continue
		}

		switch {
		case ch == '\\' && inString:
			escaped = true
		case ch == '"':
			inString = !inString
		case inString:
			// Delimiters inside strings are payload, not structure.
		case ch == opener:
			depth++
		case ch == closer:
			depth--
			if depth == 0 {
				return text[start : i+1]
			}
		}
	}

	return ""
}

// ===============================
// REPAIRS
// ===============================

// repairJSON applies the fixes that cover the common ways model output
// deviates from strict JSON.
func repairJSON(s string) string {
	repaired := trailingCommaRe.ReplaceAllString(s, "$1")

	// Swapping quote style is only safe when the candidate does not
	// already use double quotes anywhere.
	if !strings.Contains(repaired, `"`) {
		repaired = strings.ReplaceAll(repaired, "'", `"`)
	}

	repaired = bareKeyRe.ReplaceAllString(repaired, `$1"$2":`)
	repaired = undefinedRe.ReplaceAllString(repaired, "null")

	return repaired
}

// parseShaped parses s and enforces the expected top-level shape.
func parseShaped(s string, expectArray bool) (interface{}, error) {
	var data interface{}
	if err := json.Unmarshal([]byte(s), &data); err != nil {
		return nil, err
	}

	if expectArray {
		if _, ok := data.([]interface{}); !ok {
			return nil, errors.New("parsed JSON is not an array")
		}
	} else {
		if _, ok := data.(map[string]interface{}); !ok {
			return nil, errors.New("parsed JSON is not an object")
		}
	}

	return data, nil
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}
