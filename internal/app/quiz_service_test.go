package app

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validQuizJSON(count int) string {
	questions := make([]QuizQuestion, count)
	for i := range questions {
		questions[i] = QuizQuestion{
			Question:     fmt.Sprintf("Question %d?", i+1),
			Options:      []string{"A", "B", "C", "D"},
			CorrectIndex: i % 4,
		}
	}
	raw, _ := json.Marshal(questions)
	return string(raw)
}

func TestParseQuizQuestionsPlainArray(t *testing.T) {
	questions, err := ParseQuizQuestions(validQuizJSON(5), 5)
	require.NoError(t, err)
	require.Len(t, questions, 5)
	assert.Equal(t, "Question 1?", questions[0].Question)
	assert.Equal(t, []string{"A", "B", "C", "D"}, questions[0].Options)
	assert.Equal(t, 0, questions[0].CorrectIndex)
}

func TestParseQuizQuestionsStripsMarkdownFence(t *testing.T) {
	fenced := "```json\n" + validQuizJSON(3) + "\n```"

	questions, err := ParseQuizQuestions(fenced, 3)
	require.NoError(t, err)
	assert.Len(t, questions, 3)
}

func TestParseQuizQuestionsStripsBareFence(t *testing.T) {
	fenced := "```\n" + validQuizJSON(2) + "\n```"

	questions, err := ParseQuizQuestions(fenced, 2)
	require.NoError(t, err)
	assert.Len(t, questions, 2)
}

func TestParseQuizQuestionsRejectsInvalidJSON(t *testing.T) {
	_, err := ParseQuizQuestions("I cannot generate a quiz right now.", 5)
	assert.ErrorIs(t, err, ErrQuizMalformed)
}

func TestParseQuizQuestionsRejectsNonArray(t *testing.T) {
	_, err := ParseQuizQuestions(`{"question":"q","options":["A","B","C","D"],"correctIndex":0}`, 1)
	assert.ErrorIs(t, err, ErrQuizMalformed)
}

func TestParseQuizQuestionsRejectsWrongCount(t *testing.T) {
	_, err := ParseQuizQuestions(validQuizJSON(4), 5)
	assert.ErrorIs(t, err, ErrQuizMalformed)
}

func TestParseQuizQuestionsRejectsWrongOptionCount(t *testing.T) {
	raw := `[{"question":"q","options":["A","B","C"],"correctIndex":0}]`
	_, err := ParseQuizQuestions(raw, 1)
	assert.ErrorIs(t, err, ErrQuizMalformed)
}

func TestParseQuizQuestionsRejectsIndexOutOfRange(t *testing.T) {
	for _, idx := range []int{-1, 4} {
		raw := fmt.Sprintf(`[{"question":"q","options":["A","B","C","D"],"correctIndex":%d}]`, idx)
		_, err := ParseQuizQuestions(raw, 1)
		assert.ErrorIs(t, err, ErrQuizMalformed, "index %d must be rejected", idx)
	}
}

func TestParseQuizQuestionsRejectsEmptyQuestionText(t *testing.T) {
	raw := `[{"question":"  ","options":["A","B","C","D"],"correctIndex":1}]`
	_, err := ParseQuizQuestions(raw, 1)
	assert.ErrorIs(t, err, ErrQuizMalformed)
}
