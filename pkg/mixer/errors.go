package mixer

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrLayerIndex              = errors.New("layer index out of range")
	ErrDeviceCount             = errors.New("device count mismatch")
	ErrStateMismatch           = errors.New("state type mismatch")
	ErrSubscribeWhileAnimating = errors.New("subscribe while animating")
)

func stateMismatch(owner string, s State) error {
	return errors.Wrap(ErrStateMismatch, fmt.Sprintf("%s cannot accept %T", owner, s))
}
