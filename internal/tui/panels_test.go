package tui

import (
	"strings"
	"testing"

	tcell "github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"

	"lvmnav/internal/scan"
)

func TestPartColumn(t *testing.T) {
	assert.Equal(t, "Disk", partColumn(scan.DeviceRecord{Kind: scan.KindDisk}))
	assert.Equal(t, "Pri", partColumn(scan.DeviceRecord{Kind: scan.KindPartition}))
	assert.Equal(t, "Extd", partColumn(scan.DeviceRecord{
		Kind: scan.KindPartition, FdiskID: "5", FdiskType: "", GPTFlagsType: "Extended"}))
	assert.Equal(t, "Logi", partColumn(scan.DeviceRecord{
		Kind: scan.KindPartition, FdiskID: "Logical"}))
	assert.Equal(t, "---", partColumn(scan.DeviceRecord{Kind: scan.KindLVM}))
}

func TestDeviceRow(t *testing.T) {
	row := deviceRow(scan.DeviceRecord{
		Name: "sda1", SizeBytes: 536870912, Kind: scan.KindPartition,
		GPTFSInfo: "ext4", GPTFlags: "lvm",
	})
	assert.Contains(t, row, "sda1")
	assert.Contains(t, row, "512.00 MiB")
	// The lvm flag is upper-cased in the flags column.
	assert.Contains(t, row, "LVM")
	assert.NotContains(t, row, " lvm ")

	// Long names are shortened with an ellipsis.
	row = deviceRow(scan.DeviceRecord{Name: "very-long-device-name", Kind: scan.KindDisk})
	assert.Contains(t, row, "very-long-...")

	// Extended partitions blank their flags column.
	row = deviceRow(scan.DeviceRecord{
		Kind: scan.KindPartition, GPTFlagsType: "extended", GPTFlags: "boot"})
	assert.NotContains(t, row, "boot")

	// Missing metadata shows placeholders.
	row = deviceRow(scan.DeviceRecord{Name: "sdz", Kind: scan.KindDisk})
	assert.True(t, strings.Contains(row, "---"))
}

func TestClampCol(t *testing.T) {
	assert.Equal(t, "short", clampCol("short", 6))
	assert.Equal(t, "longe.", clampCol("longertext", 6))
}

func snapWith(n int) *scan.Snapshot {
	snap := &scan.Snapshot{
		PVByPath: map[string]scan.PhysicalVolume{},
		VGByName: map[string]scan.VolumeGroup{},
		LVsByVG:  map[string][]scan.LVSegment{},
	}
	for i := 0; i < n; i++ {
		snap.Devices = append(snap.Devices, scan.DeviceRecord{Path: "/dev/sd" + string(rune('a'+i))})
	}
	return snap
}

func TestHandleKeyNavigation(t *testing.T) {
	snap := snapWith(3)
	state := &viewState{}

	down := tcell.NewEventKey(tcell.KeyRune, 'j', tcell.ModNone)
	up := tcell.NewEventKey(tcell.KeyRune, 'k', tcell.ModNone)

	handleKey(down, snap, state)
	handleKey(down, snap, state)
	assert.Equal(t, 2, state.cursor)
	// Cursor clamps at the end of the list.
	handleKey(down, snap, state)
	assert.Equal(t, 2, state.cursor)

	handleKey(up, snap, state)
	assert.Equal(t, 1, state.cursor)

	// Tab cycles through the three panels and wraps.
	tab := tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone)
	handleKey(tab, snap, state)
	assert.Equal(t, panelPVs, state.panel)
	handleKey(tab, snap, state)
	assert.Equal(t, panelBlockDevs, state.panel)
	handleKey(tab, snap, state)
	assert.Equal(t, panelMain, state.panel)
}

func TestHandleKeyQuit(t *testing.T) {
	snap := snapWith(1)
	state := &viewState{}

	assert.True(t, handleKey(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), snap, state))
	assert.True(t, handleKey(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), snap, state))
	assert.False(t, handleKey(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), snap, state))
}
