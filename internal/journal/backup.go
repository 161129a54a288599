package journal

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/multierr"
)

const (
	// BackupSuffix is inserted before the rotation number.
	BackupSuffix = ".bak"
	// MaxBackupCount is the number of backups kept.
	MaxBackupCount = 3
)

// BackupPath returns the path of backup n for the journal at path.
// .bak.1 is the newest.
func BackupPath(path string, n int) string {
	return fmt.Sprintf("%s%s.%d", path, BackupSuffix, n)
}

// rotateBackups drops the oldest backup and shifts the others up by one.
func rotateBackups(path string) error {
	if err := os.Remove(BackupPath(path, MaxBackupCount)); err != nil && !os.IsNotExist(err) {
		return err
	}
	for i := MaxBackupCount - 1; i >= 1; i-- {
		if err := os.Rename(BackupPath(path, i), BackupPath(path, i+1)); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}

// CreateBackup copies the journal to .bak.1 after rotating older backups.
// A missing journal is not backed up and is not an error.
func CreateBackup(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if err := rotateBackups(path); err != nil {
		return err
	}
	return copyFile(path, BackupPath(path, 1))
}

// BackupInfo identifies one backup file.
type BackupInfo struct {
	Number int
	Path   string
}

// ListBackups returns the existing backups, newest first.
func ListBackups(path string) ([]BackupInfo, error) {
	var backups []BackupInfo
	for i := 1; i <= MaxBackupCount; i++ {
		p := BackupPath(path, i)
		if _, err := os.Stat(p); err == nil {
			backups = append(backups, BackupInfo{Number: i, Path: p})
		} else if !os.IsNotExist(err) {
			return nil, err
		}
	}
	return backups, nil
}

// RestoreBackup replaces the journal with backup n. The current journal is
// backed up first, so the restored backup moves to .bak.n+1.
func RestoreBackup(path string, n int) error {
	if n < 1 || n > MaxBackupCount {
		return fmt.Errorf("invalid backup number %d, must be between 1 and %d", n, MaxBackupCount)
	}
	if _, err := os.Stat(BackupPath(path, n)); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("backup %d does not exist", n)
		}
		return err
	}

	// Read the backup before rotation renames it.
	data, err := os.ReadFile(BackupPath(path, n))
	if err != nil {
		return err
	}
	if err := CreateBackup(path); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func copyFile(src, dst string) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, in.Close()) }()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, out.Close()) }()

	_, err = io.Copy(out, in)
	return err
}
