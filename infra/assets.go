package infra

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// DefaultAssetDir is the web build output next to this repository:
// <infra dir>/../../web/dist.
func DefaultAssetDir() string {
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		return filepath.Join("..", "web", "dist")
	}
	return filepath.Join(filepath.Dir(file), "..", "..", "web", "dist")
}

// ResolveAssetDir returns the absolute asset directory, falling back to
// DefaultAssetDir when dir is empty. The directory must exist.
func ResolveAssetDir(dir string) (string, error) {
	if dir == "" {
		dir = DefaultAssetDir()
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", errors.Wrapf(err, "could not resolve UI directory %s", dir)
	}

	info, err := os.Stat(abs)
	switch {
	case os.IsNotExist(err):
		return "", errors.Errorf("UI directory not found: %s", abs)
	case err != nil:
		return "", errors.Wrapf(err, "could not stat UI directory %s", abs)
	case !info.IsDir():
		return "", errors.Errorf("UI directory not found: %s is not a directory", abs)
	}

	zap.S().Infof("UI directory is: %s", abs)
	return abs, nil
}
