package config

import (
	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// AssetsFs roots fs at the configured assets directory. Without one, fs is
// returned as is.
func (c *Config) AssetsFs(fs afero.Fs) (afero.Fs, error) {
	if c.Assets == "" {
		return fs, nil
	}
	if exists, err := afero.DirExists(fs, c.Assets); err != nil {
		return nil, err
	} else if !exists {
		return nil, errors.Errorf("assets dir %q not exists", c.Assets)
	}
	return afero.NewBasePathFs(fs, c.Assets), nil
}
