package scan

import (
	"strings"

	"lvmnav/internal/sizefmt"
)

// lsblkOutput is the top-level JSON document from lsblk.
type lsblkOutput struct {
	Blockdevices []lsblkNode `json:"blockdevices"`
}

// lsblkNode is one device in the lsblk tree. With -b sizes arrive as
// raw byte counts.
type lsblkNode struct {
	Name     string      `json:"name"`
	Path     string      `json:"path"`
	Size     uint64      `json:"size"`
	Type     string      `json:"type"`
	Children []lsblkNode `json:"children,omitempty"`
}

func kindOf(t string) DeviceKind {
	switch t {
	case "disk":
		return KindDisk
	case "part":
		return KindPartition
	case "lvm":
		return KindLVM
	default:
		return KindOther
	}
}

// flattenDevices walks the lsblk forest depth-first in pre-order and
// produces one DeviceRecord per unique identity key (path, falling
// back to name). The first occurrence of a key wins; children are
// visited even when their parent was a duplicate, since a device can
// be reachable through more than one branch.
func flattenDevices(roots []lsblkNode, usage map[string]MountUsage,
	mbr map[string]mbrDisk, gpt map[string]gptDisk) []DeviceRecord {
	seen := make(map[string]bool)
	var out []DeviceRecord
	for _, root := range roots {
		out = visitNode(root, seen, out, usage, mbr, gpt)
	}
	return out
}

func visitNode(node lsblkNode, seen map[string]bool, out []DeviceRecord,
	usage map[string]MountUsage, mbr map[string]mbrDisk, gpt map[string]gptDisk) []DeviceRecord {
	key := node.Path
	if key == "" {
		key = node.Name
	}
	if key != "" && !seen[key] {
		seen[key] = true
		out = append(out, buildRecord(node, key, usage, mbr, gpt))
	}
	for _, child := range node.Children {
		out = visitNode(child, seen, out, usage, mbr, gpt)
	}
	return out
}

func buildRecord(node lsblkNode, key string, usage map[string]MountUsage,
	mbr map[string]mbrDisk, gpt map[string]gptDisk) DeviceRecord {
	rec := DeviceRecord{
		Path:       key,
		Name:       node.Name,
		SizeBytes:  node.Size,
		Kind:       kindOf(node.Type),
		MountPoint: sizefmt.NA,
		Used:       sizefmt.NA,
		Avail:      sizefmt.NA,
	}

	if u, ok := usage[key]; ok {
		rec.MountPoint = u.MountPoint
		rec.Used = u.Used
		rec.Avail = u.Avail
	}

	if strings.HasPrefix(key, "/dev/") {
		if disk := matchDisk(key, mbr, gpt); disk != "" {
			attachTableInfo(&rec, key, disk, mbr, gpt)
		}
	}

	return rec
}

// matchDisk returns the longest parsed disk path that is a prefix of
// the device path, so /dev/sda1 attaches to /dev/sda and not to a
// shorter accidental prefix.
func matchDisk(path string, mbr map[string]mbrDisk, gpt map[string]gptDisk) string {
	best := ""
	for disk := range mbr {
		if strings.HasPrefix(path, disk) && len(disk) > len(best) {
			best = disk
		}
	}
	for disk := range gpt {
		if strings.HasPrefix(path, disk) && len(disk) > len(best) {
			best = disk
		}
	}
	return best
}

func attachTableInfo(rec *DeviceRecord, path, disk string,
	mbr map[string]mbrDisk, gpt map[string]gptDisk) {
	if path == disk {
		if d, ok := mbr[disk]; ok {
			rec.DiskModel = d.Model
			rec.DiskLabelType = d.LabelType
		}
		if d, ok := gpt[disk]; ok {
			rec.GPTModel = d.Model
			rec.GPTTableType = d.TableType
		}
		return
	}
	if d, ok := mbr[disk]; ok {
		if p, ok := d.Partitions[path]; ok {
			rec.FdiskID = p.IDInfo
			rec.FdiskType = p.TypeInfo
		}
	}
	if d, ok := gpt[disk]; ok {
		if p, ok := d.Partitions[path]; ok {
			rec.GPTFlagsType = p.FlagsType
			rec.GPTFSInfo = p.FSInfo
			rec.GPTFlags = p.Flags
		}
	}
}
