package search

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dabke-research/sumgraph/pkg/apperror"
)

func TestClosestIndexValue_Basic(t *testing.T) {
	array := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	idx, value, err := ClosestIndexValue(array, 3.3)
	assert.NoError(t, err)
	assert.Equal(t, 2, idx)
	assert.Equal(t, 3.0, value)
}

func TestClosestIndexValue_SingleElement(t *testing.T) {
	idx, value, err := ClosestIndexValue([]float64{1}, 5)
	assert.NoError(t, err)
	assert.Equal(t, 0, idx)
	assert.Equal(t, 1.0, value)
}

func TestClosestIndexValue_ExactMatch(t *testing.T) {
	array := []float64{0, 10, 20, 30, 40}

	idx, value, err := ClosestIndexValue(array, 20)
	assert.NoError(t, err)
	assert.Equal(t, 2, idx)
	assert.Equal(t, 20.0, value)
}

func TestClosestIndexValue_TieBreaksLower(t *testing.T) {
	array := []float64{0, 10}

	idx, value, err := ClosestIndexValue(array, 5)
	assert.NoError(t, err)
	assert.Equal(t, 0, idx)
	assert.Equal(t, 0.0, value)
}

func TestClosestIndexValue_BeforeFirst(t *testing.T) {
	array := []float64{5, 10, 15}

	idx, value, err := ClosestIndexValue(array, -100)
	assert.NoError(t, err)
	assert.Equal(t, 0, idx)
	assert.Equal(t, 5.0, value)
}

func TestClosestIndexValue_AfterLast(t *testing.T) {
	array := []float64{5, 10, 15}

	idx, value, err := ClosestIndexValue(array, 100)
	assert.NoError(t, err)
	assert.Equal(t, 2, idx)
	assert.Equal(t, 15.0, value)
}

func TestClosestIndexValue_EmptyArray(t *testing.T) {
	_, _, err := ClosestIndexValue(nil, 1.0)
	assert.Error(t, err)
	assert.Equal(t, apperror.CodeEmptyArray, apperror.Code(err))
}
