package llm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestExtractJSONPlain(t *testing.T) {
	result := ExtractJSON(`{"summary": "A bright house", "confidence": 0.9}`, Options{})

	require.True(t, result.Success)
	data, ok := result.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "A bright house", data["summary"])
}

func TestExtractJSONFromProse(t *testing.T) {
	text := `Sure! Here is the analysis you asked for: {"summary": "A happy family", "confidence": 0.8} Hope this helps!`

	result := ExtractJSON(text, Options{})

	require.True(t, result.Success)
	data := result.Data.(map[string]interface{})
	assert.Equal(t, "A happy family", data["summary"])
}

func TestExtractJSONFromFencedBlock(t *testing.T) {
	text := "Of course! Here it is:\n```json\n{\"summary\": \"A tall tree\", \"recommendations\": [\"paint more trees\"]}\n```\nLet me know if you need anything else."

	result := ExtractJSON(text, Options{})

	require.True(t, result.Success)
	data := result.Data.(map[string]interface{})
	assert.Equal(t, "A tall tree", data["summary"])
}

func TestExtractJSONBalancedScan(t *testing.T) {
	t.Run("braces inside strings do not end the scan", func(t *testing.T) {
		text := `Result: {"note": "curly } inside", "count": 1} done`

		result := ExtractJSON(text, Options{})

		require.True(t, result.Success)
		data := result.Data.(map[string]interface{})
		assert.Equal(t, "curly } inside", data["note"])
	})

	t.Run("first balanced object wins over later ones", func(t *testing.T) {
		text := `First {"a": 1} and later {"b": 2}`

		result := ExtractJSON(text, Options{})

		require.True(t, result.Success)
		data := result.Data.(map[string]interface{})
		assert.Contains(t, data, "a")
		assert.NotContains(t, data, "b")
	})

	t.Run("escaped quotes inside strings", func(t *testing.T) {
		text := `Here: {"quote": "she said \"hi\"", "n": 2} end`

		result := ExtractJSON(text, Options{})

		require.True(t, result.Success)
		data := result.Data.(map[string]interface{})
		assert.Equal(t, `she said "hi"`, data["quote"])
	})
}

func TestExtractJSONArrays(t *testing.T) {
	t.Run("array extracted when expected", func(t *testing.T) {
		text := `The best colors are: ["red", "teal", "gold"] - enjoy!`

		result := ExtractJSON(text, Options{ExpectArray: true})

		require.True(t, result.Success)
		items := result.Data.([]interface{})
		assert.Len(t, items, 3)
	})

	t.Run("object rejected when array expected", func(t *testing.T) {
		result := ExtractJSON(`{"not": "an array"}`, Options{ExpectArray: true})
		assert.False(t, result.Success)
	})

	t.Run("array rejected when object expected", func(t *testing.T) {
		result := ExtractJSON(`[1, 2, 3]`, Options{})
		assert.False(t, result.Success)
	})
}

func TestExtractJSONRepairs(t *testing.T) {
	t.Run("bare keys and trailing comma", func(t *testing.T) {
		result := ExtractJSON(`{name: "Ali", age: 5,}`, Options{})

		require.True(t, result.Success)
		data := result.Data.(map[string]interface{})
		assert.Equal(t, "Ali", data["name"])
		assert.Equal(t, float64(5), data["age"])
	})

	t.Run("single quotes swapped when no double quotes present", func(t *testing.T) {
		result := ExtractJSON(`{'name': 'Zuna', 'age': 5}`, Options{})

		require.True(t, result.Success)
		data := result.Data.(map[string]interface{})
		assert.Equal(t, "Zuna", data["name"])
	})

	t.Run("single quotes left alone when double quotes present", func(t *testing.T) {
		// Swapping here would corrupt the double-quoted value, so the
		// candidate stays broken and extraction fails.
		result := ExtractJSON(`{'name': "Ali"}`, Options{})
		assert.False(t, result.Success)
	})

	t.Run("undefined becomes null", func(t *testing.T) {
		result := ExtractJSON(`{"name": "Ali", "nickname": undefined}`, Options{})

		require.True(t, result.Success)
		data := result.Data.(map[string]interface{})
		assert.Nil(t, data["nickname"])
	})

	t.Run("trailing comma in array", func(t *testing.T) {
		result := ExtractJSON(`["red", "blue",]`, Options{ExpectArray: true})

		require.True(t, result.Success)
		assert.Len(t, result.Data.([]interface{}), 2)
	})
}

func TestExtractJSONFailure(t *testing.T) {
	t.Run("garbage never panics", func(t *testing.T) {
		inputs := []string{
			"",
			"no json here at all",
			"{{{{",
			"}}}}",
			"{\"unterminated: ",
			strings.Repeat("x", 10000),
		}
		for _, input := range inputs {
			result := ExtractJSON(input, Options{})
			assert.False(t, result.Success)
			assert.Error(t, result.Err)
		}
	})

	t.Run("failure logs a truncated preview", func(t *testing.T) {
		core, logs := observer.New(zap.WarnLevel)
		logger := zap.New(core)

		long := "nothing useful " + strings.Repeat("y", 500)
		result := ExtractJSON(long, Options{Logger: logger})

		assert.False(t, result.Success)
		entries := logs.FilterMessage("failed to extract JSON from text").All()
		require.Len(t, entries, 1)

		preview := entries[0].ContextMap()["preview"].(string)
		assert.LessOrEqual(t, len(preview), previewLimit+3)
	})
}

func TestExtractTyped(t *testing.T) {
	type analysis struct {
		Summary    string  `json:"summary"`
		Confidence float64 `json:"confidence"`
	}

	valid := func(a *analysis) bool { return a.Summary != "" }
	fallback := &analysis{Summary: "We could not read this drawing yet."}

	t.Run("valid payload decodes", func(t *testing.T) {
		text := `Here you go: {"summary": "A sunny day", "confidence": 0.7}`

		got, ok := ExtractTyped(text, Options{}, valid, fallback)

		require.True(t, ok)
		assert.Equal(t, "A sunny day", got.Summary)
		assert.InDelta(t, 0.7, got.Confidence, 0.001)
	})

	t.Run("validation failure falls back", func(t *testing.T) {
		got, ok := ExtractTyped(`{"confidence": 0.9}`, Options{}, valid, fallback)

		assert.False(t, ok)
		assert.Same(t, fallback, got)
	})

	t.Run("no JSON falls back", func(t *testing.T) {
		got, ok := ExtractTyped("sorry, I cannot help with that", Options{}, valid, fallback)

		assert.False(t, ok)
		assert.Same(t, fallback, got)
	})

	t.Run("wrong types fall back", func(t *testing.T) {
		got, ok := ExtractTyped(`{"summary": 42, "confidence": "high"}`, Options{}, valid, fallback)

		assert.False(t, ok)
		assert.Same(t, fallback, got)
	})
}
