package words

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewQuestionShape(t *testing.T) {
	q := NewQuestion("apple", "apfel", []string{"birne", "kirsche", "traube"})

	assert.NotEmpty(t, q.ID)
	require.Len(t, q.Options, 4)

	// The correct answer appears exactly once among four distinct options
	occurrences := 0
	seen := make(map[string]bool)
	for _, option := range q.Options {
		assert.False(t, seen[option], "duplicate option %q", option)
		seen[option] = true
		if option == q.CorrectAnswer {
			occurrences++
		}
	}
	assert.Equal(t, 1, occurrences)
}

func TestNewQuestionShufflesOptions(t *testing.T) {
	positions := make(map[int]bool)
	for i := 0; i < 200; i++ {
		q := NewQuestion("apple", "apfel", []string{"birne", "kirsche", "traube"})
		for idx, option := range q.Options {
			if option == q.CorrectAnswer {
				positions[idx] = true
			}
		}
	}
	// With 200 draws the odds of a single position are astronomically small
	assert.Greater(t, len(positions), 1, "correct answer must not sit at a fixed position")
}

func TestNewQuestionUniqueIDs(t *testing.T) {
	a := NewQuestion("apple", "apfel", []string{"a", "b", "c"})
	b := NewQuestion("apple", "apfel", []string{"a", "b", "c"})
	assert.NotEqual(t, a.ID, b.ID)
}

func TestHTTPClientGenerate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/question", r.URL.Path)
		assert.Equal(t, "de", r.URL.Query().Get("language"))
		json.NewEncoder(w).Encode(map[string]interface{}{
			"word":           "apple",
			"correct_answer": "apfel",
			"distractors":    []string{"birne", "kirsche", "traube"},
		})
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL)
	q, err := client.Generate("de")
	require.NoError(t, err)
	assert.Equal(t, "apple", q.Word)
	assert.Equal(t, "apfel", q.CorrectAnswer)
	assert.Len(t, q.Options, 4)
}

func TestHTTPClientGenerateBadDistractorCount(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"word":           "apple",
			"correct_answer": "apfel",
			"distractors":    []string{"birne"},
		})
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL)
	_, err := client.Generate("de")
	assert.Error(t, err)
}

func TestHTTPClientValidate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/validate", r.URL.Path)
		assert.Equal(t, "obst", r.URL.Query().Get("category"))
		assert.Equal(t, "apfel", r.URL.Query().Get("word"))
		json.NewEncoder(w).Encode(ValidationResult{Valid: true, WordID: "de:apfel"})
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL)
	result, err := client.Validate("de", "obst", "apfel")
	require.NoError(t, err)
	assert.True(t, result.Valid)
	assert.Equal(t, "de:apfel", result.WordID)
}

func TestHTTPClientRandomCategory(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/category", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]string{"category": "obst"})
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL)
	category, err := client.RandomCategory("de")
	require.NoError(t, err)
	assert.Equal(t, "obst", category)
}

func TestHTTPClientServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL)
	_, err := client.Generate("de")
	assert.Error(t, err)
}
