package backend

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// artifactName is the base name of the prebuilt backend binary shipped as a
// release asset under lib/<platform>/.
const artifactName = "manatan-server"

// MissingArtifactError reports that no backend artifact exists for the
// current platform. This is a packaging failure: the release asset for the
// build target was never delivered next to the gateway.
type MissingArtifactError struct {
	Platform string
	Path     string
}

func (e *MissingArtifactError) Error() string {
	return fmt.Sprintf("missing backend artifact for %s: expected %s", e.Platform, e.Path)
}

// platformDir returns the per-target directory name, e.g. "linux_amd64".
func platformDir() string {
	return runtime.GOOS + "_" + runtime.GOARCH
}

// Locate resolves the backend artifact path for the current platform.
// baseDir is the directory containing the lib/ tree; when empty the
// directory of the running executable is used.
func Locate(baseDir string) (string, error) {
	if baseDir == "" {
		exe, err := os.Executable()
		if err != nil {
			return "", fmt.Errorf("resolve executable path: %w", err)
		}
		baseDir = filepath.Dir(exe)
	}

	name := artifactName
	if runtime.GOOS == "windows" {
		name += ".exe"
	}

	path := filepath.Join(baseDir, "lib", platformDir(), name)
	if _, err := os.Stat(path); err != nil {
		return "", &MissingArtifactError{Platform: platformDir(), Path: path}
	}
	return path, nil
}
