package scan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const partedSample = `Disk /dev/sda: 107GB
Model: ATA VBOX HARDDISK (scsi)
Sector size (logical/physical): 512B/512B
Partition Table: gpt
Disk Flags:

Number  Start   End     Size    Type      File system  Flags
 1      1049kB  538MB   537MB   primary   fat32        boot
 2      538MB   107GB   107GB   primary   ext4         lvm

Disk /dev/sdb: 53.7GB
Model: Linux device-mapper (linear) (dm)
Partition Table: msdos

Number  Start  End     Size    Type
 1      1049kB 53.7GB  53.7GB  primary
`

func TestParseParted(t *testing.T) {
	disks := parseParted(partedSample)
	require.Len(t, disks, 2)

	sda := disks["/dev/sda"]
	assert.Equal(t, "ATA VBOX HDD (scsi)", sda.Model)
	assert.Equal(t, "gpt", sda.TableType)
	require.Len(t, sda.Partitions, 2)

	// Partition paths are synthesized as <disk><number>.
	p1 := sda.Partitions["/dev/sda1"]
	assert.Equal(t, "primary", p1.FlagsType)
	assert.Equal(t, "fat32", p1.FSInfo)
	assert.Equal(t, "boot", p1.Flags)

	p2 := sda.Partitions["/dev/sda2"]
	assert.Equal(t, "ext4", p2.FSInfo)
	assert.Equal(t, "lvm", p2.Flags)

	sdb := disks["/dev/sdb"]
	assert.Equal(t, "LINUX Dev-map", sdb.Model)
	assert.Equal(t, "msdos", sdb.TableType)
	// Row has only five tokens: flags type present, trailing columns
	// fall back to the last two positions.
	p := sdb.Partitions["/dev/sdb1"]
	assert.Equal(t, "primary", p.FlagsType)
	assert.Equal(t, "53.7GB", p.FSInfo)
	assert.Equal(t, "primary", p.Flags)
}

func TestParsePartedDegenerateInput(t *testing.T) {
	assert.Empty(t, parseParted(""))

	// Rows not starting with a partition number are skipped.
	disks := parseParted(`Disk /dev/sda: 1GB
Partition Table: gpt
Number  Start  End  Size
total  1049kB 538MB 537MB
`)
	assert.Empty(t, disks["/dev/sda"].Partitions)
}
