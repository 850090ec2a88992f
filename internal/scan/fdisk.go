package scan

import (
	"regexp"
	"strings"
)

// mbrPartition holds the id and type columns of a dos-label partition
// row from fdisk.
type mbrPartition struct {
	IDInfo   string
	TypeInfo string
}

// mbrDisk is the fdisk view of one disk.
type mbrDisk struct {
	Model      string
	LabelType  string
	Partitions map[string]mbrPartition
}

var diskHeaderRe = regexp.MustCompile(`Disk (/[^:]+):`)

// parseFdisk parses `fdisk -l` output into per-disk metadata, keyed by
// disk path. The report is a sequence of per-disk blocks; a
// "Disk /..." header resets the current-disk context. Partition rows
// are only recorded for the legacy dos label scheme, where the id and
// type columns exist. Unrecognized lines are skipped.
func parseFdisk(out string) map[string]mbrDisk {
	disks := make(map[string]mbrDisk)

	var currentDisk string
	inTable := false

	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)

		switch {
		case strings.HasPrefix(line, "Disk /"):
			if m := diskHeaderRe.FindStringSubmatch(line); m != nil {
				currentDisk = m[1]
				disks[currentDisk] = mbrDisk{Partitions: make(map[string]mbrPartition)}
				inTable = false
			}

		case currentDisk != "" && strings.Contains(line, "Disk model:"):
			d := disks[currentDisk]
			d.Model = cleanDeviceInfo(strings.TrimSpace(strings.SplitN(line, "Disk model:", 2)[1]))
			disks[currentDisk] = d

		case currentDisk != "" && strings.Contains(line, "Disklabel type:"):
			d := disks[currentDisk]
			d.LabelType = strings.TrimSpace(strings.SplitN(line, "Disklabel type:", 2)[1])
			disks[currentDisk] = d

		case currentDisk != "" && strings.Contains(line, "Device") &&
			strings.Contains(line, "Start") && strings.Contains(line, "End"):
			inTable = true

		case currentDisk != "" && inTable && line != "" && !strings.HasPrefix(line, "Disk "):
			parts := strings.Fields(line)
			if len(parts) < 2 || !strings.HasPrefix(parts[0], currentDisk) {
				continue
			}
			if disks[currentDisk].LabelType != "dos" || len(parts) < 7 {
				continue
			}
			disks[currentDisk].Partitions[parts[0]] = mbrPartition{
				IDInfo:   parts[4],
				TypeInfo: strings.Join(parts[5:], " "),
			}
		}
	}

	return disks
}
