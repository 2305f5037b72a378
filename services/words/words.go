package words

import (
	"math/rand"

	"github.com/google/uuid"
)

// Question is one quiz prompt: a source word and four answer options, the
// correct translation appearing exactly once among them.
type Question struct {
	ID            string   `json:"id"`
	Word          string   `json:"word"`
	CorrectAnswer string   `json:"correct_answer"`
	Options       []string `json:"options"`
}

// NewQuestion builds a question with a fresh unique id. The options are
// shuffled so the correct answer's position carries no information.
func NewQuestion(word, correct string, distractors []string) Question {
	options := append([]string{correct}, distractors...)
	rand.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})
	return Question{
		ID:            uuid.NewString(),
		Word:          word,
		CorrectAnswer: correct,
		Options:       options,
	}
}

// QuestionGenerator produces quiz questions for a target language. Backed by
// the external translation service, mocked in tests.
type QuestionGenerator interface {
	Generate(language string) (*Question, error)
}

// ValidationResult is the lookup service's verdict on a submitted word.
type ValidationResult struct {
	Valid bool `json:"valid"`
	// Canonical language-scoped identifier, e.g. "de:apfel". Used for the
	// room's used-word dedup set.
	WordID string `json:"word_id"`
}

// WordValidator checks category membership of a submitted word in the target
// language.
type WordValidator interface {
	Validate(language, category, word string) (*ValidationResult, error)
}

// CategoryPicker returns a random challenge category for cooperative mode.
type CategoryPicker interface {
	RandomCategory(language string) (string, error)
}

// Service bundles all three collaborator roles, the shape main wires in.
type Service interface {
	QuestionGenerator
	WordValidator
	CategoryPicker
}
