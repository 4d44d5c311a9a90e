package effect

import (
	"fmt"

	"github.com/pkg/errors"

	"ledmix/pkg/mixer"
)

func mismatch(name string, s mixer.State) error {
	return errors.Wrap(mixer.ErrStateMismatch, fmt.Sprintf("%s effect cannot accept %T", name, s))
}
