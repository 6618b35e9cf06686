package prefabs

import (
	"embed"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Dir is checked before the embedded copies so tuning can change while the
// game runs.
var Dir = "prefabs"

var (
	//go:embed *.yaml
	specFS embed.FS

	//go:embed scripts/*.tengo
	scriptFS embed.FS
)

// ReadSpecFile returns the raw yaml of a tuning file. Both "player.yaml" and
// "prefabs/player.yaml" name the same file.
func ReadSpecFile(name string) ([]byte, error) {
	return readOverlay(specFS, specPath(name))
}

// LoadScript returns the source of an enemy script. A copy under Dir/scripts
// wins over the embedded one.
func LoadScript(name string) ([]byte, error) {
	return readOverlay(scriptFS, scriptPath(name))
}

func readOverlay(embedded fs.FS, rel string) ([]byte, error) {
	if data, err := os.ReadFile(filepath.Join(Dir, filepath.FromSlash(rel))); err == nil {
		return data, nil
	}
	return fs.ReadFile(embedded, rel)
}

// specPath strips a leading prefabs/ so watcher events and embedded names
// compare equal.
func specPath(name string) string {
	if name == "" {
		return ""
	}
	s := filepath.ToSlash(name)
	s, _ = strings.CutPrefix(s, "prefabs/")
	return s
}

func scriptPath(name string) string {
	if name == "" {
		return ""
	}
	s := specPath(name)
	s, _ = strings.CutPrefix(s, "scripts/")
	return path.Join("scripts", s)
}
