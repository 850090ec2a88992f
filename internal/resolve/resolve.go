// Package resolve cross-references a selected device path against a
// snapshot: its PV record, the owning VG, the sibling PVs, the LVs in
// that VG grouped by name, and for each LV its backing device record
// and per-segment extent placement. Resolution is a pure function of
// (path, snapshot); every missing reference degrades to the "N/A"
// sentinel at field granularity and never aborts sibling fields.
package resolve

import (
	"strconv"
	"strings"

	"lvmnav/internal/scan"
	"lvmnav/internal/sizefmt"
)

// Segment is one extent range of an LV, with display-ready fields.
type Segment struct {
	LEStart  string
	LEEnd    string
	PECount  string
	PESize   string
	Devices  []string
	PEStarts []string
}

// PEStart returns the comma-joined physical start extents in the order
// the backing devices appear in the placement string.
func (s Segment) PEStart() string {
	return strings.Join(s.PEStarts, ", ")
}

// DeviceList returns the comma-joined clean backing device names.
func (s Segment) DeviceList() string {
	return strings.Join(s.Devices, ", ")
}

// LVGroup collects all segment rows sharing one lv_name within a VG,
// in encounter order, plus the backing DeviceRecord when one of the
// two LVM path conventions (or the infix fallback) matched.
type LVGroup struct {
	Name       string
	Capacity   string
	MountPoint string
	Used       string
	Avail      string
	Device     *scan.DeviceRecord
	Segments   []Segment
}

// Result is the resolution of one selected device path.
type Result struct {
	Path string

	// HasLVM is false when the path has no PV record; all other
	// fields are then zero and the caller renders "no PV/VG
	// information" from the device's own record.
	HasLVM bool

	PV         scan.PhysicalVolume
	VGName     string
	VGFound    bool
	VGSize     string
	VGFree     string
	VGAttr     string
	ExtentSize string // formatted VG extent size

	PVsInVG     []scan.PhysicalVolume
	LVCountByPV map[string]int
	LVs         []LVGroup
}

// Resolve cross-references the selected path against the snapshot.
func Resolve(snap *scan.Snapshot, path string) Result {
	res := Result{Path: path}

	pv, ok := snap.PVByPath[path]
	if !ok {
		return res
	}
	res.HasLVM = true
	res.PV = pv
	res.VGName = pv.VGName

	vg, vgFound := snap.VGByName[pv.VGName]
	res.VGFound = vgFound
	res.VGSize = sizefmt.Parse(vg.Size)
	res.VGFree = sizefmt.Parse(vg.Free)
	res.VGAttr = vg.Attr
	res.ExtentSize = sizefmt.Parse(vg.ExtentSize)

	// Sibling PVs require a membership scan: PV records do not point
	// at each other. Deterministic order for display.
	for _, dev := range snap.Devices {
		if p, ok := snap.PVByPath[dev.Path]; ok && p.VGName == pv.VGName {
			res.PVsInVG = append(res.PVsInVG, p)
		}
	}
	for name, p := range snap.PVByPath {
		if p.VGName == pv.VGName && !containsPV(res.PVsInVG, name) {
			res.PVsInVG = append(res.PVsInVG, p)
		}
	}

	rows := snap.LVsByVG[pv.VGName]
	res.LVCountByPV = countLVsPerPV(rows, snap.PVByPath)
	res.LVs = groupLVs(rows, vg, snap)
	return res
}

func containsPV(pvs []scan.PhysicalVolume, name string) bool {
	for _, p := range pvs {
		if p.Name == name {
			return true
		}
	}
	return false
}

// countLVsPerPV counts how many LV segment rows place extents on each
// PV, by matching PV names inside the placement device strings.
func countLVsPerPV(rows []scan.LVSegment, pvByPath map[string]scan.PhysicalVolume) map[string]int {
	counts := make(map[string]int)
	for _, row := range rows {
		for _, tok := range strings.Split(row.Devices, ",") {
			tok = strings.TrimSpace(tok)
			if tok == "" {
				continue
			}
			for name := range pvByPath {
				if strings.Contains(tok, name) {
					counts[name]++
				}
			}
		}
	}
	return counts
}

// groupLVs groups segment rows by lv_name preserving encounter order
// and resolves each group's backing device record.
func groupLVs(rows []scan.LVSegment, vg scan.VolumeGroup, snap *scan.Snapshot) []LVGroup {
	var groups []LVGroup
	index := make(map[string]int)

	for _, row := range rows {
		i, ok := index[row.LVName]
		if !ok {
			i = len(groups)
			index[row.LVName] = i
			groups = append(groups, newLVGroup(row, vg.Name, snap))
		}
		groups[i].Segments = append(groups[i].Segments, buildSegment(row, vg))
	}
	return groups
}

func newLVGroup(row scan.LVSegment, vgName string, snap *scan.Snapshot) LVGroup {
	g := LVGroup{
		Name:       row.LVName,
		Capacity:   sizefmt.Parse(row.Size),
		MountPoint: sizefmt.NA,
		Used:       sizefmt.NA,
		Avail:      sizefmt.NA,
	}
	if dev := FindLVDevice(snap.Devices, vgName, row.LVName); dev != nil {
		g.Device = dev
		g.MountPoint = dev.MountPoint
		g.Used = dev.Used
		g.Avail = dev.Avail
	}
	return g
}

// FindLVDevice locates the flattened DeviceRecord backing an LV. Linux
// exposes the same LV under /dev/<vg>/<lv> and /dev/mapper/<vg>-<lv>;
// both are tried exactly, then an infix match as a last resort. An LV
// name containing hyphens is never split further, so the mapper
// candidate is the plain <vg>-<lv> join.
func FindLVDevice(devices []scan.DeviceRecord, vgName, lvName string) *scan.DeviceRecord {
	devPath := "/dev/" + vgName + "/" + lvName
	mapperPath := "/dev/mapper/" + vgName + "-" + lvName

	for i := range devices {
		if devices[i].Path == devPath || devices[i].Path == mapperPath {
			return &devices[i]
		}
	}
	for i := range devices {
		p := devices[i].Path
		if strings.Contains(p, "/"+vgName+"/"+lvName) ||
			strings.Contains(p, "/"+vgName+"-"+lvName) {
			return &devices[i]
		}
	}
	return nil
}

// buildSegment computes the displayed extent range for one segment
// row. The row's own seg_start_pe/seg_size_pe fields win when numeric;
// otherwise the start extent comes from the placement string. Extent
// byte size uses the VG extent size as the common unit.
func buildSegment(row scan.LVSegment, vg scan.VolumeGroup) Segment {
	seg := Segment{
		LEStart: sizefmt.NA,
		LEEnd:   sizefmt.NA,
		PECount: sizefmt.NA,
		PESize:  sizefmt.NA,
	}
	seg.Devices, seg.PEStarts = ParsePlacement(row.Devices)

	count, countOK := parseExtent(row.SegSizePE)
	if countOK {
		seg.PECount = strconv.FormatInt(count, 10)
		if extentSize, ok := parseExtent(vg.ExtentSize); ok {
			seg.PESize = sizefmt.Bytes(float64(extentSize * count))
		}
	}

	if start, ok := parseExtent(row.SegStartPE); ok {
		seg.LEStart = strconv.FormatInt(start, 10)
		if countOK {
			seg.LEEnd = strconv.FormatInt(start+count-1, 10)
		}
	} else if len(seg.PEStarts) > 0 {
		// Fall back to the first parenthesized start extent from the
		// placement string.
		seg.LEStart = seg.PEStarts[0]
		if start, err := strconv.ParseFloat(seg.PEStarts[0], 64); err == nil && countOK {
			seg.LEEnd = strconv.FormatInt(int64(start)+count-1, 10)
		}
	}

	return seg
}

// parseExtent parses an extent count field, which the LVM tools may
// report as an integer or a float-formatted string.
func parseExtent(s string) (int64, bool) {
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return int64(v), true
}

// ParsePlacement splits an LVM placement string of the form
// "physical_device(start_extent)[, ...]" into the clean device list
// and the start-extent list. A token without a parenthesized suffix
// passes through to the device list unchanged and contributes no
// start extent.
func ParsePlacement(devices string) (devs, starts []string) {
	if strings.TrimSpace(devices) == "" {
		return nil, nil
	}
	for _, tok := range strings.Split(devices, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		lp := strings.Index(tok, "(")
		rp := strings.Index(tok, ")")
		if lp > 0 && rp > lp {
			devs = append(devs, strings.TrimSpace(tok[:lp]))
			starts = append(starts, tok[lp+1:rp])
		} else {
			devs = append(devs, tok)
		}
	}
	return devs, starts
}

// SplitLVPath recovers the VG and LV names from either LVM device path
// convention. Mapper paths join VG and LV with the first hyphen; the
// remainder, hyphens included, is the LV name. Plain /dev paths split
// on the first slash after the VG.
func SplitLVPath(path string) (vgName, lvName string, ok bool) {
	if rest, found := strings.CutPrefix(path, "/dev/mapper/"); found {
		parts := strings.SplitN(rest, "-", 2)
		if len(parts) == 2 && parts[0] != "" && parts[1] != "" {
			return parts[0], parts[1], true
		}
		return "", "", false
	}
	if rest, found := strings.CutPrefix(path, "/dev/"); found {
		parts := strings.SplitN(rest, "/", 2)
		if len(parts) == 2 && parts[0] != "" && parts[1] != "" {
			return parts[0], parts[1], true
		}
	}
	return "", "", false
}

// Ellipsize truncates free text to max characters with an ellipsis
// marker. Identity fields (device paths, VG/LV names used as keys)
// must not pass through here.
func Ellipsize(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
