// Package scaffold checks package names and target paths before uv runs.
package scaffold

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// ErrEmptyPackageName is returned when no package name is given.
var ErrEmptyPackageName = errors.New("package name must not be empty")

// ErrInvalidPackageName is returned for names that would escape the programming directory.
var ErrInvalidPackageName = errors.New("invalid package name")

// ValidatePackageName rejects names that are not a single path element
func ValidatePackageName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyPackageName
	}
	if name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w '%s': must be a single directory name", ErrInvalidPackageName, name)
	}
	return nil
}

// PackagePath returns where uv will create packageName
func PackagePath(root, packageName string) string {
	return filepath.Join(root, packageName)
}

// Exists reports whether anything is already present at root/packageName
func Exists(fs afero.Fs, root, packageName string) (bool, error) {
	exists, err := afero.Exists(fs, PackagePath(root, packageName))
	if err != nil {
		return false, fmt.Errorf("failed to check package path: %w", err)
	}
	return exists, nil
}

// PackageExistsError reports a package directory that is already present
type PackageExistsError struct {
	Name string
	Dir  string
}

func (e *PackageExistsError) Error() string {
	return fmt.Sprintf("package '%s' already exists in '%s'", e.Name, e.Dir)
}
