package scan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lvmnav/internal/sizefmt"
)

func sampleTree() []lsblkNode {
	return []lsblkNode{
		{
			Name: "sda", Path: "/dev/sda", Size: 107374182400, Type: "disk",
			Children: []lsblkNode{
				{Name: "sda1", Path: "/dev/sda1", Size: 536870912, Type: "part"},
				{
					Name: "sda2", Path: "/dev/sda2", Size: 106837311488, Type: "part",
					Children: []lsblkNode{
						{Name: "vg0-root", Path: "/dev/mapper/vg0-root", Size: 53687091200, Type: "lvm"},
					},
				},
			},
		},
		// The same LVM volume reachable through a second branch.
		{
			Name: "sdb", Path: "/dev/sdb", Size: 53687091200, Type: "disk",
			Children: []lsblkNode{
				{Name: "vg0-root", Path: "/dev/mapper/vg0-root", Size: 53687091200, Type: "lvm"},
			},
		},
	}
}

func TestFlattenDevicesDedupAndOrder(t *testing.T) {
	devices := flattenDevices(sampleTree(), nil, nil, nil)

	paths := make([]string, 0, len(devices))
	for _, d := range devices {
		paths = append(paths, d.Path)
	}
	// Pre-order, first occurrence wins, duplicate dropped.
	assert.Equal(t, []string{
		"/dev/sda", "/dev/sda1", "/dev/sda2", "/dev/mapper/vg0-root", "/dev/sdb",
	}, paths)

	// Usage fields default to the sentinel when df reported nothing.
	for _, d := range devices {
		assert.Equal(t, sizefmt.NA, d.MountPoint)
		assert.Equal(t, sizefmt.NA, d.Used)
		assert.Equal(t, sizefmt.NA, d.Avail)
	}
}

func TestFlattenDevicesIdempotent(t *testing.T) {
	first := flattenDevices(sampleTree(), nil, nil, nil)
	second := flattenDevices(sampleTree(), nil, nil, nil)
	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].Path, second[i].Path)
	}
}

func TestFlattenDevicesEnrichment(t *testing.T) {
	usage := map[string]MountUsage{
		"/dev/sda1": {MountPoint: "/boot", Used: "100.00 MiB", Avail: "400.00 MiB"},
	}
	mbr := map[string]mbrDisk{
		"/dev/sda": {
			Model:     "VBOX HDD",
			LabelType: "dos",
			Partitions: map[string]mbrPartition{
				"/dev/sda1": {IDInfo: "512M", TypeInfo: "83 Linux"},
			},
		},
	}
	gpt := map[string]gptDisk{
		"/dev/sda": {
			Model:     "ATA VBOX HDD",
			TableType: "gpt",
			Partitions: map[string]gptPartition{
				"/dev/sda1": {FlagsType: "primary", FSInfo: "ext4", Flags: "boot"},
			},
		},
	}

	devices := flattenDevices(sampleTree(), usage, mbr, gpt)
	byPath := make(map[string]DeviceRecord)
	for _, d := range devices {
		byPath[d.Path] = d
	}

	// Disk-level fields only on the disk itself.
	sda := byPath["/dev/sda"]
	assert.Equal(t, "VBOX HDD", sda.DiskModel)
	assert.Equal(t, "dos", sda.DiskLabelType)
	assert.Equal(t, "gpt", sda.GPTTableType)
	assert.Empty(t, sda.FdiskID)

	// Partition-level fields only on the partition.
	sda1 := byPath["/dev/sda1"]
	assert.Equal(t, "/boot", sda1.MountPoint)
	assert.Equal(t, "512M", sda1.FdiskID)
	assert.Equal(t, "83 Linux", sda1.FdiskType)
	assert.Equal(t, "primary", sda1.GPTFlagsType)
	assert.Equal(t, "ext4", sda1.GPTFSInfo)
	assert.Empty(t, sda1.DiskModel)

	// A partition absent from the parsed table carries no metadata.
	assert.Empty(t, byPath["/dev/sda2"].FdiskID)
}

func TestMatchDiskLongestPrefix(t *testing.T) {
	mbr := map[string]mbrDisk{
		"/dev/sda":  {},
		"/dev/sdab": {},
	}
	assert.Equal(t, "/dev/sdab", matchDisk("/dev/sdab1", mbr, nil))
	assert.Equal(t, "/dev/sda", matchDisk("/dev/sda1", mbr, nil))
	assert.Equal(t, "", matchDisk("/dev/sdc1", mbr, nil))
}

func TestFlattenDevicesNameFallback(t *testing.T) {
	nodes := []lsblkNode{{Name: "md0", Size: 1024, Type: "raid1"}}
	devices := flattenDevices(nodes, nil, nil, nil)
	require.Len(t, devices, 1)
	assert.Equal(t, "md0", devices[0].Path)
	assert.Equal(t, KindOther, devices[0].Kind)
}
