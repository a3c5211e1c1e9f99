package treefs

import (
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// TempDirPath returns a path under the system temp directory that does not
// exist yet. It is the default root provider for Builders without an
// explicit RootFolder; the directory itself is only created at
// materialization time.
func TempDirPath() string {
	base := os.TempDir()
	for {
		candidate := filepath.Join(base, "tree-"+uuid.NewString()[:8])
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate
		}
	}
}
