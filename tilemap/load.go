package tilemap

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/milk9111/platformer/levels"
)

type levelFile struct {
	Tilemap  map[string]Tile `json:"tilemap"`
	TileSize int             `json:"tile_size"`
	Offgrid  []Tile          `json:"offgrid"`
}

// Decode reads a level in the "x;y" keyed JSON layout.
func Decode(r io.Reader) (*Tilemap, error) {
	var lf levelFile
	if err := json.NewDecoder(r).Decode(&lf); err != nil {
		return nil, fmt.Errorf("tilemap: decode: %w", err)
	}
	t := New(lf.TileSize)
	for key, tile := range lf.Tilemap {
		x, y, err := parseGridKey(key)
		if err != nil {
			return nil, err
		}
		tile.Pos = [2]float64{float64(x), float64(y)}
		t.Set(tile)
	}
	for _, tile := range lf.Offgrid {
		t.AddOffgrid(tile)
	}
	return t, nil
}

// Encode writes t in the layout Decode reads.
func Encode(w io.Writer, t *Tilemap) error {
	if t == nil {
		return fmt.Errorf("tilemap: encode nil map")
	}
	lf := levelFile{
		Tilemap:  make(map[string]Tile, len(t.grid)),
		TileSize: t.TileSize,
		Offgrid:  t.Offgrid(),
	}
	for k, tile := range t.grid {
		lf.Tilemap[gridKey(k[0], k[1])] = tile
	}
	enc := json.NewEncoder(w)
	return enc.Encode(lf)
}

// LoadLevel decodes level index from the levels package.
func LoadLevel(index int) (*Tilemap, error) {
	f, err := levels.Open(index)
	if err != nil {
		return nil, fmt.Errorf("tilemap: load level %d: %w", index, err)
	}
	defer f.Close()

	t, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("tilemap: load level %d: %w", index, err)
	}
	return t, nil
}
