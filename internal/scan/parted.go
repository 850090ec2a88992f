package scan

import (
	"strconv"
	"strings"
)

// gptPartition holds the flags/filesystem columns of a parted
// partition row.
type gptPartition struct {
	FlagsType string
	FSInfo    string
	Flags     string
}

// gptDisk is the parted view of one disk.
type gptDisk struct {
	Model      string
	TableType  string
	Partitions map[string]gptPartition
}

// parseParted parses `parted -l` output into per-disk metadata, keyed
// by disk path. Partition rows start with the partition number; the
// partition path is synthesized as <disk><number>. The filesystem and
// flag columns are taken from the trailing positions of the row.
func parseParted(out string) map[string]gptDisk {
	disks := make(map[string]gptDisk)

	var currentDisk string
	inTable := false

	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)

		switch {
		case strings.HasPrefix(line, "Disk /"):
			if m := diskHeaderRe.FindStringSubmatch(line); m != nil {
				currentDisk = m[1]
				disks[currentDisk] = gptDisk{Partitions: make(map[string]gptPartition)}
				inTable = false
			}

		case currentDisk != "" && strings.HasPrefix(line, "Model:"):
			d := disks[currentDisk]
			d.Model = cleanDeviceInfo(strings.TrimSpace(strings.TrimPrefix(line, "Model:")))
			disks[currentDisk] = d

		case currentDisk != "" && strings.Contains(line, "Partition Table:"):
			d := disks[currentDisk]
			d.TableType = strings.TrimSpace(strings.SplitN(line, "Partition Table:", 2)[1])
			disks[currentDisk] = d

		case currentDisk != "" && strings.Contains(line, "Number") &&
			strings.Contains(line, "Start") && strings.Contains(line, "End"):
			inTable = true

		case currentDisk != "" && inTable && line != "":
			parts := strings.Fields(line)
			if len(parts) < 4 {
				continue
			}
			if _, err := strconv.Atoi(parts[0]); err != nil {
				continue
			}
			partPath := currentDisk + parts[0]

			flagsType := "N/A"
			if len(parts) > 4 {
				flagsType = parts[4]
			}
			disks[currentDisk].Partitions[partPath] = gptPartition{
				FlagsType: flagsType,
				FSInfo:    cleanDeviceInfo(parts[len(parts)-2]),
				Flags:     cleanDeviceInfo(parts[len(parts)-1]),
			}
		}
	}

	return disks
}
