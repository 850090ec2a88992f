package tui

import (
	"fmt"
	"strings"

	tcell "github.com/gdamore/tcell/v2"

	"lvmnav/internal/resolve"
	"lvmnav/internal/scan"
	"lvmnav/internal/sizefmt"
)

// renderMainPanel draws the VG / LV detail for the selected device.
func renderMainPanel(screen tcell.Screen, snap *scan.Snapshot, state *viewState, x, y, w, h int) {
	drawBox(screen, x, y, w, h, tcell.StyleDefault)
	bold := tcell.StyleDefault.Bold(true)

	dev := selectedDevice(snap, state)
	maxX := x + w - 2

	if dev.Kind == scan.KindLVM {
		// The selection is itself a logical volume; show it directly
		// with VG/LV names recovered from the device path.
		drawText(screen, x+2, y, maxX, tcell.StyleDefault, " Logical Volume Information ")

		vgName, lvName := "Unknown", "Unknown"
		if vg, lv, ok := resolve.SplitLVPath(dev.Path); ok {
			vgName, lvName = vg, lv
		}
		drawText(screen, x+2, y+2, maxX, tcell.StyleDefault, "Device: "+dev.Path)
		drawText(screen, x+2, y+3, maxX, tcell.StyleDefault, "VG Name: "+vgName)
		drawText(screen, x+2, y+4, maxX, tcell.StyleDefault, "LV Name: "+lvName)
		drawText(screen, x+2, y+5, maxX, tcell.StyleDefault, "Size: "+sizefmt.Uint(dev.SizeBytes))
		drawText(screen, x+2, y+7, maxX, tcell.StyleDefault, "Mounted: "+dev.MountPoint)
		drawText(screen, x+2, y+8, maxX, tcell.StyleDefault, "Used: "+dev.Used)
		drawText(screen, x+2, y+9, maxX, tcell.StyleDefault, "Available: "+dev.Avail)
		return
	}

	res := resolve.Resolve(snap, dev.Path)
	if !res.HasLVM {
		drawText(screen, x+2, y+1, maxX, tcell.StyleDefault, "No LVM info for "+dev.Path)
		return
	}

	header := fmt.Sprintf(" Volume Group - %s (%s) ",
		resolve.Ellipsize(res.VGName, w-18), res.VGSize)
	drawText(screen, x+2, y, maxX, tcell.StyleDefault, resolve.Ellipsize(header, w-4))

	lvNames := make([]string, 0, len(res.LVs))
	for _, lv := range res.LVs {
		lvNames = append(lvNames, lv.Name)
	}
	names := "none"
	if len(lvNames) > 0 {
		names = strings.Join(lvNames, ", ")
	}

	drawText(screen, x+2, y+2, maxX, tcell.StyleDefault, "VG Format:     "+res.VGAttr)
	drawText(screen, x+2, y+3, maxX, tcell.StyleDefault, "VG seg size:   "+res.ExtentSize)
	drawText(screen, x+2, y+4, maxX, tcell.StyleDefault, "Logical Vols:  "+resolve.Ellipsize(names, w-20))
	drawText(screen, x+2, y+5, maxX, tcell.StyleDefault, "Free space:    "+res.VGFree)
	drawText(screen, x+2, y+7, maxX, bold, "[ Discovered LVols.. ]")

	row := y + 9
	bottom := y + h - 2
	for _, lv := range res.LVs {
		if row >= bottom {
			break
		}
		drawText(screen, x+2, row, maxX, bold,
			resolve.Ellipsize("Logical Volume: "+lv.Name, w-4))
		row++

		drawText(screen, x+4, row, maxX, tcell.StyleDefault, "Mounted: "+lv.MountPoint)
		row++
		drawText(screen, x+4, row, maxX, tcell.StyleDefault, "Capacity: "+lv.Capacity)
		row++
		drawText(screen, x+4, row, maxX, tcell.StyleDefault, "Used: "+lv.Used)
		row++
		drawText(screen, x+4, row, maxX, tcell.StyleDefault, "Available: "+lv.Avail)
		row += 2

		if row >= bottom {
			break
		}
		segHeader := fmt.Sprintf("%-10s %-10s %10s %10s %-20s %s",
			"LE Start", "LE End", "PE Count", "PE Size", "PVs", "PE Start")
		drawText(screen, x+4, row, maxX, tcell.StyleDefault.Underline(true),
			resolve.Ellipsize(segHeader, w-6))
		row++

		for _, seg := range lv.Segments {
			if row >= bottom {
				break
			}
			line := fmt.Sprintf("%-10s %-10s %10s %10s %-20s %s",
				seg.LEStart, seg.LEEnd, seg.PECount, seg.PESize,
				resolve.Ellipsize(seg.DeviceList(), 20), seg.PEStart())
			drawText(screen, x+4, row, maxX, tcell.StyleDefault,
				resolve.Ellipsize(line, w-6))
			row++
		}
		row++
	}
}

// pvRowCount returns how many rows the PV panel currently shows, for
// cursor clamping.
func pvRowCount(snap *scan.Snapshot, state *viewState) int {
	dev := selectedDevice(snap, state)
	res := resolve.Resolve(snap, dev.Path)
	if res.HasLVM {
		return len(res.PVsInVG)
	}
	return len(snap.PVByPath)
}

// renderPVPanel draws the physical volumes of the selected device's
// VG, or every PV on the system when the selection has no LVM role.
func renderPVPanel(screen tcell.Screen, snap *scan.Snapshot, state *viewState, x, y, w, h int) {
	drawBox(screen, x, y, w, h, tcell.StyleDefault)

	titleStyle := tcell.StyleDefault
	if state.panel == panelPVs {
		titleStyle = titleStyle.Bold(true)
	}
	drawText(screen, x+2, y, x+w-2, titleStyle, " Physical Volumes (PV) ")

	maxX := x + w - 2
	header := fmt.Sprintf("%-15s %10s %8s %10s", "Block dev", "Size bin", "LV #", "Free cap")
	drawText(screen, x+2, y+2, maxX, tcell.StyleDefault.Underline(true),
		resolve.Ellipsize(header, w-4))

	dev := selectedDevice(snap, state)
	res := resolve.Resolve(snap, dev.Path)

	nameWidth := 15
	if w-25 < nameWidth {
		nameWidth = w - 25
	}

	if res.HasLVM {
		if state.pvCursor >= len(res.PVsInVG) && len(res.PVsInVG) > 0 {
			state.pvCursor = len(res.PVsInVG) - 1
		}
		for j, p := range res.PVsInVG {
			if y+3+j >= y+h-1 {
				break
			}
			style := tcell.StyleDefault
			if j == state.pvCursor && state.panel == panelPVs {
				style = style.Reverse(true)
			}
			line := fmt.Sprintf("%-15s %10s %8d %s",
				resolve.Ellipsize(p.Name, nameWidth), sizefmt.Parse(p.Size),
				res.LVCountByPV[p.Name], sizefmt.Parse(p.Free))
			drawText(screen, x+2, y+3+j, maxX, style, resolve.Ellipsize(line, w-4))
		}
		return
	}

	// No PV for the selection; list every PV so the panel is never
	// blank, with the owning VG in place of the LV count.
	j := 0
	for _, p := range snap.PVByPath {
		if y+3+j >= y+h-1 {
			break
		}
		vgName := p.VGName
		if vgName == "" {
			vgName = sizefmt.NA
		}
		line := fmt.Sprintf("%-15s %10s %8s %s",
			resolve.Ellipsize(p.Name, nameWidth), sizefmt.Parse(p.Size),
			vgName, sizefmt.Parse(p.Free))
		drawText(screen, x+2, y+3+j, maxX, tcell.StyleDefault, resolve.Ellipsize(line, w-4))
		j++
	}
}

// renderBlockDevPanel draws the scrollable flattened device table.
func renderBlockDevPanel(screen tcell.Screen, snap *scan.Snapshot, state *viewState, x, y, w, h int) {
	drawBox(screen, x, y, w, h, tcell.StyleDefault)

	titleStyle := tcell.StyleDefault
	if state.panel == panelBlockDevs {
		titleStyle = titleStyle.Bold(true)
	}
	drawText(screen, x+2, y, x+w-2, titleStyle, " System Block Devices ")

	if len(snap.Devices) == 0 {
		drawText(screen, x+2, y+1, x+w-2, tcell.StyleDefault, "No block devices available")
		return
	}

	maxX := x + w - 2
	header := fmt.Sprintf("%-15s %-12s %-8s %-8s %-8s %-8s %-8s",
		"Device", "Size bin", "Unit", "Part", "Type", "FSinf", "Flags")
	drawText(screen, x+2, y+2, maxX, tcell.StyleDefault.Underline(true),
		resolve.Ellipsize(header, w-4))

	visible := h - 4
	if visible < 1 {
		visible = 1
	}
	start := state.devCursor
	if max := len(snap.Devices) - visible; start > max {
		start = max
	}
	if start < 0 {
		start = 0
	}
	end := start + visible
	if end > len(snap.Devices) {
		end = len(snap.Devices)
	}

	for i, dev := range snap.Devices[start:end] {
		row := y + 3 + i
		if row >= y+h-1 {
			break
		}
		style := tcell.StyleDefault
		if start+i == state.devCursor && state.panel == panelBlockDevs {
			style = style.Reverse(true)
		}
		drawText(screen, x+2, row, maxX, style, resolve.Ellipsize(deviceRow(dev), w-4))
	}
}

// deviceRow formats one block-device table line with the per-column
// truncation and placeholder rules.
func deviceRow(dev scan.DeviceRecord) string {
	name := dev.Name
	if len(name) > 13 {
		name = name[:10] + "..."
	}

	diskType := dev.FdiskType
	if dev.GPTTableType != "" && dev.GPTTableType != sizefmt.NA {
		diskType = dev.GPTTableType
	}
	fsInfo := dev.GPTFSInfo
	flags := dev.GPTFlags

	partType := partColumn(dev)
	if dev.Kind == scan.KindPartition && partType == "Extd" {
		flags = "---"
	}

	if diskType == "" {
		diskType = "---"
	}
	if fsInfo == "" {
		fsInfo = "---"
	}
	if flags == "" {
		flags = "---"
	}

	partType = clampCol(partType, 6)
	diskType = clampCol(diskType, 6)
	fsInfo = clampCol(fsInfo, 6)
	flags = clampCol(flags, 6)
	unit := clampCol(string(dev.Kind), 6)

	if flags == "lvm" {
		flags = "LVM"
	}

	return fmt.Sprintf("%-15s %-12s %-8s %-8s %-8s %-8s %-8s",
		name, sizefmt.Uint(dev.SizeBytes), unit, partType, diskType, fsInfo, flags)
}

// partColumn classifies the Part column: disks show "Disk", dos and
// GPT partitions map to primary/extended/logical, anything else shows
// the placeholder.
func partColumn(dev scan.DeviceRecord) string {
	switch dev.Kind {
	case scan.KindDisk:
		return "Disk"
	case scan.KindPartition:
		id := strings.ToLower(dev.FdiskID)
		gptFlags := strings.ToLower(dev.GPTFlagsType)
		switch {
		case strings.Contains(id, "extended") || strings.Contains(gptFlags, "extended"):
			return "Extd"
		case strings.Contains(id, "logical") || strings.Contains(gptFlags, "logical"):
			return "Logi"
		default:
			return "Pri"
		}
	default:
		return "---"
	}
}
