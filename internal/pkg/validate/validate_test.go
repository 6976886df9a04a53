package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sample struct {
	Message string `json:"message" validate:"required,max=5"`
	Kind    string `json:"kind,omitempty" validate:"omitempty,oneof=a b"`
}

func TestStruct_Valid(t *testing.T) {
	assert.NoError(t, Struct(sample{Message: "hi"}))
}

func TestStruct_UsesJSONNames(t *testing.T) {
	err := Struct(sample{Kind: "c"})
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "message failed 'required'")
		assert.Contains(t, err.Error(), "kind failed 'oneof=a b'")
	}
}

func TestStruct_Max(t *testing.T) {
	err := Struct(sample{Message: "too long"})
	if assert.Error(t, err) {
		assert.Equal(t, "message failed 'max=5'", err.Error())
	}
}
