package exifmeta

import (
	"os"

	"github.com/pkg/errors"
)

var ErrNoTargets = errors.New("no files to process")

// CheckTargets verifies every path exists before any operation touches it.
func CheckTargets(paths []string) error {
	if len(paths) == 0 {
		return ErrNoTargets
	}
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			if os.IsNotExist(err) {
				return errors.Errorf("path [%s] does not exist", path)
			}
			return errors.Wrapf(err, "path [%s]", path)
		}
	}
	return nil
}
