package scoring

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func naturalOptions(questionID uint, firstOptionID uint) []Option {
	opts := make([]Option, ColumnCount)
	for i := range opts {
		opts[i] = Option{
			ID:         firstOptionID + uint(i),
			QuestionID: questionID,
			Order:      i + 1,
		}
	}
	return opts
}

func TestPermutationRowsAreBijections(t *testing.T) {
	for qi := 0; qi < QuestionCount; qi++ {
		row, err := PermutationRow(qi)
		require.NoError(t, err)

		seen := make(map[byte]bool, ColumnCount)
		for _, letter := range row {
			assert.GreaterOrEqual(t, letter, byte('A'), "question %s", QuestionLabel(qi))
			assert.LessOrEqual(t, letter, byte('H'), "question %s", QuestionLabel(qi))
			assert.False(t, seen[letter], "question %s repeats %c", QuestionLabel(qi), letter)
			seen[letter] = true
		}
		assert.Len(t, seen, ColumnCount, "question %s", QuestionLabel(qi))
	}
}

func TestPermutationRowOutOfRange(t *testing.T) {
	for _, qi := range []int{-1, QuestionCount, 42} {
		_, err := PermutationRow(qi)
		var cfgErr *ConfigurationError
		assert.True(t, errors.As(err, &cfgErr), "index %d", qi)
	}
}

func TestResolvePositions_QuestionOne(t *testing.T) {
	opts := naturalOptions(1, 101)

	positions, err := ResolvePositions(0, opts)
	require.NoError(t, err)

	// 第一题：G D F C A H B E
	want := []uint{107, 104, 106, 103, 101, 108, 102, 105}
	for p, id := range want {
		assert.Equal(t, id, positions[p].ID, "column %d", p)
	}
}

func TestResolvePositions_EveryOptionPlacedOnce(t *testing.T) {
	for qi := 0; qi < QuestionCount; qi++ {
		opts := naturalOptions(uint(qi+1), uint(qi*10+1))
		positions, err := ResolvePositions(qi, opts)
		require.NoError(t, err)

		seen := map[uint]bool{}
		for _, o := range positions {
			seen[o.ID] = true
		}
		assert.Len(t, seen, ColumnCount)
	}
}

func TestResolvePositions_WrongOptionCount(t *testing.T) {
	_, err := ResolvePositions(2, naturalOptions(3, 1)[:7])

	var mal *MalformedQuestionError
	require.True(t, errors.As(err, &mal))
	assert.Equal(t, 7, mal.OptionCount)
	assert.Equal(t, 2, mal.QuestionIndex)
}

func TestResolvePositions_DuplicateOption(t *testing.T) {
	opts := naturalOptions(1, 1)
	opts[5].ID = opts[0].ID

	_, err := ResolvePositions(0, opts)
	var mal *MalformedQuestionError
	assert.True(t, errors.As(err, &mal))
}

func TestResolvePositions_MissingRow(t *testing.T) {
	_, err := ResolvePositions(QuestionCount, naturalOptions(8, 1))

	var cfgErr *ConfigurationError
	assert.True(t, errors.As(err, &cfgErr))
}

func TestQuestionLabel(t *testing.T) {
	assert.Equal(t, "I", QuestionLabel(0))
	assert.Equal(t, "VII", QuestionLabel(6))
	assert.Equal(t, "8", QuestionLabel(7))
}
