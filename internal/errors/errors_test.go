package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"agrismart/domain/core"

	"github.com/stretchr/testify/assert"
)

func TestWrapKeepsCode(t *testing.T) {
	inner := UnknownCategory("state", "Atlantis")
	err := Wrap(inner, "prediction failed")

	assert.Equal(t, CodeUnknownCategory, GetCode(err))
	assert.True(t, core.IsUnknownCategory(err))
	assert.Equal(t, CodeInternalError, GetCode(Wrap(fmt.Errorf("boom"), "context")))
	assert.Nil(t, Wrap(nil, "nothing"))
	assert.Equal(t, "UNKNOWN", GetCode(fmt.Errorf("plain")))
}

func TestMissingArtifactChain(t *testing.T) {
	err := MissingArtifact("scaler.gob", core.ErrArtifactMismatch)
	assert.True(t, core.IsMissingArtifact(err))
	assert.ErrorIs(t, err, core.ErrArtifactMismatch)

	bare := MissingArtifact("scaler.gob", nil)
	assert.ErrorIs(t, bare, core.ErrMissingArtifact)
}

func TestInsufficientDataChain(t *testing.T) {
	split := fmt.Errorf("%w: cannot split 1 rows", core.ErrInsufficientData)
	err := InsufficientData("failed to split dataset", split)
	assert.Equal(t, CodeInsufficientData, GetCode(err))
	assert.ErrorIs(t, err, split)
	assert.Contains(t, err.Error(), "cannot split 1 rows")

	other := stderrors.New("empty column")
	err = InsufficientData("failed to fit", other)
	assert.ErrorIs(t, err, core.ErrInsufficientData)
	assert.ErrorIs(t, err, other)

	assert.ErrorIs(t, InsufficientData("no rows", nil), core.ErrInsufficientData)
}

func TestConfigInvalidKeepsCause(t *testing.T) {
	cause := stderrors.New("model.yield_trees must be at least 10")
	err := ConfigInvalid("configuration validation failed", cause)

	assert.Equal(t, CodeConfigInvalid, GetCode(err))
	assert.ErrorIs(t, err, cause)
	assert.True(t, IsAppError(err))
}
