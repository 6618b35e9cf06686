// Command levelview draws a level in the terminal: terrain, spawners and
// items, one character per tile.
package main

import (
	"flag"
	"fmt"
	"log"
	"slices"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/milk9111/platformer/levels"
	"github.com/milk9111/platformer/prefabs"
	"github.com/milk9111/platformer/tilemap"
)

type viewer struct {
	screen tcell.Screen
	specs  *prefabs.Specs

	level int
	count int
	grid  *Grid

	// top-left tile shown
	scrollX, scrollY int
	status           string
}

func (v *viewer) load(index int) {
	m, err := tilemap.LoadLevel(index)
	if err != nil {
		v.status = err.Error()
		return
	}
	v.level = index
	v.grid = BuildGrid(m, v.specs)
	v.scrollX, v.scrollY = v.grid.MinX, v.grid.MinY
	v.status = ""
}

func (v *viewer) draw() {
	v.screen.Clear()
	w, h := v.screen.Size()

	if v.grid != nil {
		for k, c := range v.grid.Cells {
			x, y := k[0]-v.scrollX, k[1]-v.scrollY+1
			if x >= 0 && x < w && y >= 1 && y < h-1 {
				v.screen.SetContent(x, y, c.Rune, nil, c.Style)
			}
		}
	}

	header := fmt.Sprintf("level %d/%d  scroll %d,%d  [hjkl/arrows] scroll  [n/p] level  [q] quit", v.level, v.count-1, v.scrollX, v.scrollY)
	v.text(0, 0, header, tcell.StyleDefault.Reverse(true))
	v.text(0, h-1, v.footer(), tcell.StyleDefault)
	v.screen.Show()
}

func (v *viewer) footer() string {
	if v.status != "" {
		return v.status
	}
	if v.grid == nil {
		return ""
	}
	keys := make([]rune, 0, len(v.grid.Legend))
	for r := range v.grid.Legend {
		keys = append(keys, r)
	}
	slices.Sort(keys)
	parts := make([]string, 0, len(keys))
	for _, r := range keys {
		parts = append(parts, fmt.Sprintf("%c %s", r, v.grid.Legend[r]))
	}
	return strings.Join(parts, "  ")
}

func (v *viewer) text(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		v.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

// handle returns false when the viewer should exit.
func (v *viewer) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyLeft:
			v.scrollX--
		case tcell.KeyRight:
			v.scrollX++
		case tcell.KeyUp:
			v.scrollY--
		case tcell.KeyDown:
			v.scrollY++
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case 'h':
				v.scrollX -= 4
			case 'l':
				v.scrollX += 4
			case 'k':
				v.scrollY -= 4
			case 'j':
				v.scrollY += 4
			case 'n':
				v.load(min(v.level+1, v.count-1))
			case 'p':
				v.load(max(v.level-1, 0))
			}
		}
	case *tcell.EventResize:
		v.screen.Sync()
	}
	return true
}

func main() {
	level := flag.Int("level", 0, "level index to open")
	flag.Parse()

	specs, err := prefabs.LoadAll()
	if err != nil {
		log.Fatalf("levelview: %v", err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("levelview: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("levelview: %v", err)
	}
	defer screen.Fini()

	v := &viewer{screen: screen, specs: specs, count: max(levels.Count(), 1)}
	v.load(*level)

	for {
		v.draw()
		if !v.handle(screen.PollEvent()) {
			return
		}
	}
}
