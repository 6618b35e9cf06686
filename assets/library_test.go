package assets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSheetFramesSingleImage(t *testing.T) {
	frames, err := sheetFrames(nil, Entry{File: "gun.png", Size: [2]int{7, 4}})
	require.NoError(t, err)
	assert.Len(t, frames, 1)
}

func TestSheetFramesRejectsEmptySheet(t *testing.T) {
	_, err := sheetFrames(nil, Entry{File: "player.png", Size: [2]int{8, 15}, Frames: 4})
	assert.ErrorContains(t, err, "player.png")
}

func TestReadDiskNeedsDirectory(t *testing.T) {
	lib, err := NewLibrary("")
	require.NoError(t, err)
	_, err = lib.readDisk(Entry{File: "gun.png"})
	assert.Error(t, err)
}
