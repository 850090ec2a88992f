// Package scan takes a one-shot snapshot of the host's storage
// topology by aggregating the output of lsblk, fdisk, parted, df and
// the three LVM reporting tools. Every record is immutable once the
// snapshot is built; a new load produces a new snapshot.
package scan

import (
	"time"

	"github.com/google/uuid"
)

// DeviceKind categorizes a block device record.
type DeviceKind string

const (
	KindDisk      DeviceKind = "disk"
	KindPartition DeviceKind = "part"
	KindLVM       DeviceKind = "lvm"
	KindOther     DeviceKind = "other"
)

// DeviceRecord is one flattened row of the block-device tree, enriched
// with filesystem usage and partition-table metadata. Mount and usage
// fields always hold either a real value or the "N/A" sentinel;
// partition-table fields are empty unless the device matched a disk
// known to fdisk or parted.
type DeviceRecord struct {
	Path      string     `json:"path"`
	Name      string     `json:"name"`
	SizeBytes uint64     `json:"size_bytes"`
	Kind      DeviceKind `json:"kind"`

	MountPoint string `json:"mount_point"`
	Used       string `json:"used"`
	Avail      string `json:"avail"`

	// Disk-level metadata (path equals a parsed disk path).
	DiskModel     string `json:"disk_model,omitempty"`
	DiskLabelType string `json:"disklabel_type,omitempty"`
	GPTModel      string `json:"gpt_model,omitempty"`
	GPTTableType  string `json:"gpt_table_type,omitempty"`

	// Partition-level metadata (path lies under a parsed disk path).
	FdiskID      string `json:"fdisk_id,omitempty"`
	FdiskType    string `json:"fdisk_type,omitempty"`
	GPTFlagsType string `json:"gpt_flags_type,omitempty"`
	GPTFSInfo    string `json:"gpt_fs_info,omitempty"`
	GPTFlags     string `json:"gpt_flags,omitempty"`
}

// MountUsage is one df row: where a source device is mounted and how
// much of it is used. Used and Avail are pre-formatted display strings.
type MountUsage struct {
	MountPoint string
	Used       string
	Avail      string
}

// PhysicalVolume is one pvs report row. Name doubles as the device
// path and is the join key to DeviceRecord. Sizes are raw decimal byte
// strings exactly as reported (--units b --nosuffix).
type PhysicalVolume struct {
	Name   string `json:"pv_name"`
	Size   string `json:"pv_size"`
	Free   string `json:"pv_free"`
	VGName string `json:"vg_name"`
	Format string `json:"pv_fmt"`
}

// VolumeGroup is one vgs report row.
type VolumeGroup struct {
	Name       string `json:"vg_name"`
	Size       string `json:"vg_size"`
	Free       string `json:"vg_free"`
	PVCount    string `json:"pv_count"`
	LVCount    string `json:"lv_count"`
	Attr       string `json:"vg_attr"`
	ExtentSize string `json:"vg_extent_size"`
}

// LVSegment is one lvs report row. An LV spanning several extent
// ranges reports one row per segment, so LVName alone is not unique;
// grouping rows by LVName reconstructs the LV's extent map. Devices is
// the placement string, e.g. "/dev/sda1(0), /dev/sdb1(128)".
type LVSegment struct {
	VGName     string `json:"vg_name"`
	LVName     string `json:"lv_name"`
	Size       string `json:"lv_size"`
	SegSizePE  string `json:"seg_size_pe"`
	SegStartPE string `json:"seg_start_pe"`
	Devices    string `json:"devices"`
}

// Snapshot is the full data model produced by one load cycle.
type Snapshot struct {
	ID      uuid.UUID `json:"id"`
	TakenAt time.Time `json:"taken_at"`

	Devices  []DeviceRecord            `json:"devices"`
	PVByPath map[string]PhysicalVolume `json:"pvs"`
	VGByName map[string]VolumeGroup    `json:"vgs"`
	LVsByVG  map[string][]LVSegment    `json:"lvs"`
}
