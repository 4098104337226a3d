package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths contains all file-system paths used by the converter.
// Everything is anchored at the executable directory so the tool works the
// same from dev builds and installed copies.
type Paths struct {
	ExecutableDir string
	DataDir       string
	RawDir        string
	ProcessedDir  string
	LogsDir       string
	ConfigFile    string
}

// GetPaths resolves the application paths relative to the executable
// location, following symlinks to the real binary.
func GetPaths() (*Paths, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("failed to get executable path: %w", err)
	}

	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve executable symlinks: %w", err)
	}

	return PathsAt(filepath.Dir(exe)), nil
}

// PathsAt builds the standard layout under an explicit base directory.
// Tests use this to anchor the layout at a temp dir.
func PathsAt(baseDir string) *Paths {
	dataDir := filepath.Join(baseDir, "data")
	return &Paths{
		ExecutableDir: baseDir,
		DataDir:       dataDir,
		RawDir:        filepath.Join(dataDir, "raw"),
		ProcessedDir:  filepath.Join(dataDir, "processed"),
		LogsDir:       filepath.Join(baseDir, "logs"),
		ConfigFile:    filepath.Join(baseDir, DefaultConfigFileName),
	}
}

// EnsureDirectories creates every directory the converter writes to.
func (p *Paths) EnsureDirectories() error {
	dirs := []string{p.DataDir, p.RawDir, p.ProcessedDir, p.LogsDir}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// BatteryName maps a battery index to its archive base name following the
// fixed B00<index zero-padded to 2 digits> convention, e.g. 5 -> B0005.
func BatteryName(index int) string {
	return fmt.Sprintf("%s%02d", ArchiveNamePrefix, index)
}

// GetArchivePath returns the full path of the source archive for a battery
// index, e.g. <raw dir>/B0005.mat.
func (p *Paths) GetArchivePath(index int) string {
	return filepath.Join(p.RawDir, BatteryName(index)+ArchiveExt)
}

// GetProcessedPath returns the full path of an output file in the
// processed-data directory.
func (p *Paths) GetProcessedPath(filename string) string {
	return filepath.Join(p.ProcessedDir, filename)
}

// GetRawPath returns the full path of a file in the raw-data directory.
func (p *Paths) GetRawPath(filename string) string {
	return filepath.Join(p.RawDir, filename)
}

// GetLogPath returns the full path of a log file.
func (p *Paths) GetLogPath(filename string) string {
	return filepath.Join(p.LogsDir, filename)
}
