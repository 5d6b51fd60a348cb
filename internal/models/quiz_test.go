package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnswerKey_TwoWireForms(t *testing.T) {
	var fromString Question
	require.NoError(t, json.Unmarshal([]byte(`{"type":"mcq","prompt":"p","correctAnswer":"Paris"}`), &fromString))
	require.NotNil(t, fromString.CorrectAnswer)
	assert.Equal(t, "Paris", fromString.CorrectAnswer.Text)
	assert.Nil(t, fromString.CorrectAnswer.Index)

	var fromIndex Question
	require.NoError(t, json.Unmarshal([]byte(`{"type":"mcq","prompt":"p","correctAnswer":2}`), &fromIndex))
	require.NotNil(t, fromIndex.CorrectAnswer)
	require.NotNil(t, fromIndex.CorrectAnswer.Index)
	assert.Equal(t, 2, *fromIndex.CorrectAnswer.Index)
}

func TestAnswerKey_RoundTripsWithoutConversion(t *testing.T) {
	text, err := json.Marshal(AnswerText("Paris"))
	require.NoError(t, err)
	assert.Equal(t, `"Paris"`, string(text))

	index, err := json.Marshal(AnswerIndex(0))
	require.NoError(t, err)
	assert.Equal(t, `0`, string(index))
}

func TestAnswerKey_RejectsOtherShapes(t *testing.T) {
	var key AnswerKey
	err := json.Unmarshal([]byte(`{"value":"Paris"}`), &key)
	assert.Error(t, err)
}

func TestAnswerKey_IsBlank(t *testing.T) {
	var nilKey *AnswerKey
	assert.True(t, nilKey.IsBlank())
	assert.True(t, AnswerText("").IsBlank())
	assert.False(t, AnswerText("A").IsBlank())
	// Index zero is a real answer, not a blank.
	assert.False(t, AnswerIndex(0).IsBlank())
}

func TestAnswerKey_String(t *testing.T) {
	assert.Equal(t, "B", AnswerText("B").String())
	assert.Equal(t, "2", AnswerIndex(2).String())
	var nilKey *AnswerKey
	assert.Equal(t, "", nilKey.String())
}

func TestSubmissionDetail_QuestionKey(t *testing.T) {
	detail := SubmissionDetail{QuestionID: 42}
	assert.Equal(t, "42", detail.QuestionKey())
}

func TestSubmissionResult_DetailByQuestion(t *testing.T) {
	result := SubmissionResult{
		Details: []SubmissionDetail{
			{QuestionID: 1, Correct: true},
			{QuestionID: 2, Correct: false, Expected: "B"},
		},
	}

	byQuestion := result.DetailByQuestion()

	require.Len(t, byQuestion, 2)
	assert.True(t, byQuestion["1"].Correct)
	assert.Equal(t, "B", byQuestion["2"].Expected)
}
