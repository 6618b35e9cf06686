package levels

import (
	"embed"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
)

//go:embed *.json
var LevelsFS embed.FS

// Dir is checked before the embedded copies so levels can be edited without
// rebuilding.
var Dir = "levels"

// Name returns the file name of level index.
func Name(index int) string {
	return strconv.Itoa(index) + ".json"
}

// Open returns the level file for index, preferring a copy on disk.
func Open(index int) (io.ReadCloser, error) {
	if index < 0 {
		return nil, fmt.Errorf("levels: invalid index %d", index)
	}
	name := Name(index)
	if f, err := os.Open(filepath.Join(Dir, name)); err == nil {
		return f, nil
	}
	f, err := LevelsFS.Open(name)
	if err != nil {
		return nil, fmt.Errorf("levels: open %s: %w", name, err)
	}
	return f, nil
}

// Count returns how many consecutive levels starting at 0 exist.
func Count() int {
	n := 0
	for {
		name := Name(n)
		if _, err := fs.Stat(LevelsFS, name); err != nil {
			if _, err := os.Stat(filepath.Join(Dir, name)); err != nil {
				return n
			}
		}
		n++
	}
}
