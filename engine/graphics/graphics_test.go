package graphics

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeviceAcquisitionErrorWrapping(t *testing.T) {
	base := errors.New("no adapters found")
	err := error(&DeviceAcquisitionError{Err: base})

	assert.ErrorIs(t, err, base)
	assert.Contains(t, err.Error(), "no compatible gpu adapter")

	var target *DeviceAcquisitionError
	assert.ErrorAs(t, fmt.Errorf("startup: %w", err), &target)
	assert.Same(t, err, error(target))
}

func TestDeviceCreationErrorWrapping(t *testing.T) {
	base := errors.New("limits rejected")
	err := error(&DeviceCreationError{Err: base})

	assert.ErrorIs(t, err, base)
	assert.Contains(t, err.Error(), "device creation failed")

	var target *DeviceCreationError
	assert.ErrorAs(t, fmt.Errorf("startup: %w", err), &target)
}

func TestNewGraphicsContextRejectsNilDescriptor(t *testing.T) {
	assert.Panics(t, func() {
		_, _ = NewGraphicsContext(nil)
	})
}
