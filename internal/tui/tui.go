// Package tui renders the storage-topology browser: a full-height
// VG/LV detail panel on the left, the physical volumes of the selected
// device's VG on the top right, and the flattened block-device table
// on the bottom right. The snapshot is never mutated here; key
// handling only moves the view state.
package tui

import (
	"fmt"

	tcell "github.com/gdamore/tcell/v2"

	"lvmnav/internal/scan"
)

const (
	panelMain = iota
	panelPVs
	panelBlockDevs
	panelCount
)

const (
	minWidth  = 80
	minHeight = 10
)

// viewState tracks selection and focus. It is the only mutable state
// in the refresh loop.
type viewState struct {
	cursor    int // selected device in the main panel
	pvCursor  int
	devCursor int
	panel     int
}

// Run displays the browser for the given snapshot and blocks until
// the operator quits.
func Run(snap *scan.Snapshot) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize screen: %w", err)
	}
	defer screen.Fini()

	screen.SetStyle(tcell.StyleDefault)
	screen.Clear()

	state := viewState{}
	for {
		render(screen, snap, &state)
		screen.Show()

		switch ev := screen.PollEvent().(type) {
		case *tcell.EventKey:
			if quit := handleKey(ev, snap, &state); quit {
				return nil
			}
		case *tcell.EventResize:
			screen.Sync()
		}
	}
}

// handleKey is the reducer for one keystroke. Tab cycles panel focus;
// j/k and the arrow keys move the focused panel's cursor; q and ESC
// quit.
func handleKey(ev *tcell.EventKey, snap *scan.Snapshot, state *viewState) bool {
	if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
		ev.Rune() == 'q' || ev.Rune() == 'Q' {
		return true
	}
	if ev.Key() == tcell.KeyTab {
		state.panel = (state.panel + 1) % panelCount
		return false
	}

	up := ev.Key() == tcell.KeyUp || ev.Rune() == 'k'
	down := ev.Key() == tcell.KeyDown || ev.Rune() == 'j'
	if !up && !down {
		return false
	}

	switch state.panel {
	case panelMain:
		if up && state.cursor > 0 {
			state.cursor--
		}
		if down && state.cursor < len(snap.Devices)-1 {
			state.cursor++
		}
	case panelPVs:
		n := pvRowCount(snap, state)
		if up && state.pvCursor > 0 {
			state.pvCursor--
		}
		if down && state.pvCursor < n-1 {
			state.pvCursor++
		}
	case panelBlockDevs:
		if up && state.devCursor > 0 {
			state.devCursor--
		}
		if down && state.devCursor < len(snap.Devices)-1 {
			state.devCursor++
		}
	}
	return false
}

func selectedDevice(snap *scan.Snapshot, state *viewState) scan.DeviceRecord {
	if state.cursor >= 0 && state.cursor < len(snap.Devices) {
		return snap.Devices[state.cursor]
	}
	return scan.DeviceRecord{}
}

func render(screen tcell.Screen, snap *scan.Snapshot, state *viewState) {
	screen.Clear()
	w, h := screen.Size()

	if h < minHeight || w < minWidth {
		drawText(screen, 0, 0, w, tcell.StyleDefault,
			fmt.Sprintf("Terminal too small. Please resize to at least %dx%d.", minWidth, minHeight))
		return
	}

	vgWidth := w / 2
	pvWidth := w - vgWidth
	pvHeight := h / 2
	devHeight := h - pvHeight

	renderMainPanel(screen, snap, state, 0, 0, vgWidth, h)
	renderPVPanel(screen, snap, state, vgWidth, 0, pvWidth, pvHeight)
	renderBlockDevPanel(screen, snap, state, vgWidth, pvHeight, pvWidth, devHeight)
}
