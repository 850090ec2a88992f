package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lvmnav/internal/scan"
)

func testSnap() *scan.Snapshot {
	return &scan.Snapshot{
		ID:      uuid.New(),
		TakenAt: time.Now(),
		Devices: []scan.DeviceRecord{{Path: "/dev/sda"}, {Path: "/dev/sda1"}},
		PVByPath: map[string]scan.PhysicalVolume{
			"/dev/sda1": {Name: "/dev/sda1", VGName: "vg0"},
		},
		VGByName: map[string]scan.VolumeGroup{
			"vg0": {Name: "vg0", Size: "1073741824", Free: "536870912"},
		},
		LVsByVG: map[string][]scan.LVSegment{
			"vg0": {{LVName: "lv0"}, {LVName: "lv0"}},
		},
	}
}

func TestRecordAndList(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	defer db.Close()

	snap := testSnap()
	require.NoError(t, db.RecordSnapshot(snap))
	// Recording the same snapshot twice is a no-op.
	require.NoError(t, db.RecordSnapshot(snap))

	records, err := db.List(10)
	require.NoError(t, err)
	require.Len(t, records, 1)

	r := records[0]
	assert.Equal(t, snap.ID.String(), r.SnapshotID)
	assert.Equal(t, 2, r.DeviceCount)
	assert.Equal(t, 1, r.PVCount)
	assert.Equal(t, 1, r.VGCount)
	assert.Equal(t, 2, r.LVSegments)
	assert.Equal(t, int64(1073741824), r.VGTotalBytes)
	assert.Equal(t, int64(536870912), r.VGFreeBytes)
}

func TestListEmpty(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	defer db.Close()

	records, err := db.List(0)
	require.NoError(t, err)
	assert.Empty(t, records)
}
