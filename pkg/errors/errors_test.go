package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindNotFound, KindOf(NotFound("loan %s not found", "x")))
	assert.Equal(t, KindConflict, KindOf(Conflict("already approved")))
	assert.Equal(t, KindInternal, KindOf(stderrors.New("connection reset")))
}

func TestKindSurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("reviewing: %w", Conflict("already approved"))
	assert.True(t, IsKind(err, KindConflict))
}

func TestMessageOf_HidesUncodedErrors(t *testing.T) {
	assert.Equal(t, "internal error", MessageOf(stderrors.New("pq: password authentication failed")))
	assert.Equal(t, "line is locked", MessageOf(Conflict("line is locked")))
}

func TestWrapInternal_KeepsCause(t *testing.T) {
	cause := stderrors.New("connection reset")
	err := WrapInternal(cause)

	assert.Equal(t, KindInternal, KindOf(err))
	assert.True(t, stderrors.Is(err, cause))
}
