package scan

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"lvmnav/internal/runner"
)

// ErrNoDevices is the one terminating condition: lsblk reported
// nothing usable, so there is nothing to browse. Every other tool
// failure degrades to absent fields within the snapshot.
var ErrNoDevices = errors.New("no block devices found or permission denied")

// Tools names the external commands invoked during a load. Overridable
// through configuration, mainly for hosts that keep the LVM tools
// outside PATH.
type Tools struct {
	Lsblk  string
	Fdisk  string
	Parted string
	DF     string
	PVs    string
	VGs    string
	LVs    string
}

// DefaultTools returns the standard Linux tool names.
func DefaultTools() Tools {
	return Tools{
		Lsblk:  "lsblk",
		Fdisk:  "fdisk",
		Parted: "parted",
		DF:     "df",
		PVs:    "pvs",
		VGs:    "vgs",
		LVs:    "lvs",
	}
}

// Load takes one snapshot: it enumerates the block-device tree,
// enriches it with df usage and fdisk/parted partition-table metadata,
// and loads the LVM relational maps. Up to six external commands run
// serially; any of them may be absent.
func Load(r runner.Runner, tools Tools, log zerolog.Logger) (*Snapshot, error) {
	var tree lsblkOutput
	status := runner.RunJSON(r, &tree, tools.Lsblk, "-b", "-O", "-J")
	log.Debug().Stringer("status", status).Int("roots", len(tree.Blockdevices)).Msg("lsblk tree")

	mbr := parseFdisk(runner.RunText(r, tools.Fdisk, "-l"))
	gpt := parseParted(runner.RunText(r, tools.Parted, "-l"))
	usage := parseDF(runner.RunText(r, tools.DF, "--output=source,size,used,avail,pcent,target"))

	devices := flattenDevices(tree.Blockdevices, usage, mbr, gpt)
	if len(devices) == 0 {
		return nil, ErrNoDevices
	}

	pvByPath, vgByName, lvsByVG := loadLVM(r, tools, log)

	snap := &Snapshot{
		ID:       uuid.New(),
		TakenAt:  time.Now(),
		Devices:  devices,
		PVByPath: pvByPath,
		VGByName: vgByName,
		LVsByVG:  lvsByVG,
	}
	log.Info().Str("snapshot", snap.ID.String()).
		Int("devices", len(devices)).Int("pvs", len(pvByPath)).
		Int("vgs", len(vgByName)).Msg("snapshot loaded")
	return snap, nil
}
