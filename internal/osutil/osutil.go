// Package osutil resolves the per-user application directory behind a
// swappable provider so path errors can be tested.
package osutil

import (
	"fmt"
	"os"
	"path/filepath"
)

// AppName names the directory under the user config dir that holds the
// config file and the journal.
const AppName = "datepick"

// PathProvider abstracts the OS calls used to locate and create the
// application directory.
type PathProvider interface {
	UserConfigDir() (string, error)
	MkdirAll(path string, perm os.FileMode) error
}

// DefaultPathProvider uses the os package.
type DefaultPathProvider struct{}

// UserConfigDir calls os.UserConfigDir.
func (DefaultPathProvider) UserConfigDir() (string, error) {
	return os.UserConfigDir()
}

// MkdirAll calls os.MkdirAll.
func (DefaultPathProvider) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

// Provider is used by AppDir and AppFile. Tests replace it.
var Provider PathProvider = DefaultPathProvider{}

// SetProvider installs p.
func SetProvider(p PathProvider) {
	Provider = p
}

// ResetProvider restores DefaultPathProvider.
func ResetProvider() {
	Provider = DefaultPathProvider{}
}

// AppDir returns <user config dir>/datepick, creating it if needed.
func AppDir() (string, error) {
	base, err := Provider.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating user config dir: %w", err)
	}
	dir := filepath.Join(base, AppName)
	if err := Provider.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating %s: %w", dir, err)
	}
	return dir, nil
}

// AppFile returns the path of name inside AppDir.
func AppFile(name string) (string, error) {
	dir, err := AppDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}
