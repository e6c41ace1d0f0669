package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateUnit(t *testing.T) {
	valid := func() *Unit {
		return &Unit{
			ID:       "some-id",
			SourceID: "report.pdf",
			Position: 0,
			Text:     "chunk text",
			Status:   StatusSuccess,
		}
	}

	t.Run("valid unit", func(t *testing.T) {
		require.NoError(t, ValidateUnit(valid()))
	})

	t.Run("nil unit", func(t *testing.T) {
		err := ValidateUnit(nil)
		assert.ErrorIs(t, err, ErrInvalidUnit)
	})

	t.Run("empty source id", func(t *testing.T) {
		unit := valid()
		unit.SourceID = ""
		err := ValidateUnit(unit)
		assert.ErrorIs(t, err, ErrInvalidUnit)
		assert.ErrorIs(t, err, ErrEmptySourceID)
	})

	t.Run("negative position", func(t *testing.T) {
		unit := valid()
		unit.Position = -1
		err := ValidateUnit(unit)
		assert.ErrorIs(t, err, ErrNegativePosition)
	})

	t.Run("unknown status", func(t *testing.T) {
		unit := valid()
		unit.Status = Status("pending")
		err := ValidateUnit(unit)
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("negative retries", func(t *testing.T) {
		unit := valid()
		unit.Retries = -2
		err := ValidateUnit(unit)
		assert.ErrorIs(t, err, ErrNegativeRetries)
	})
}

func TestValidateStatus(t *testing.T) {
	assert.NoError(t, ValidateStatus(StatusSuccess))
	assert.NoError(t, ValidateStatus(StatusFailed))
	assert.NoError(t, ValidateStatus(""))
	assert.Error(t, ValidateStatus(Status("done")))
}
