package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sample struct {
	Difficulty string `validate:"required,difficulty"`
	Mark       string `validate:"required,mark"`
}

func TestCustomTags(t *testing.T) {
	v := GetValidator()

	assert.NoError(t, v.Struct(sample{Difficulty: "hard", Mark: "O"}))
	assert.NoError(t, v.Struct(sample{Difficulty: "Easy", Mark: "X"}))
	assert.Error(t, v.Struct(sample{Difficulty: "legendary", Mark: "X"}))
	assert.Error(t, v.Struct(sample{Difficulty: "medium", Mark: "Z"}))
	assert.Error(t, v.Struct(sample{}))
}
