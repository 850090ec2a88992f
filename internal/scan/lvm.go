package scan

import (
	"github.com/rs/zerolog"

	"lvmnav/internal/runner"
)

// The LVM tools wrap their rows as {"report":[{"pv":[...]}]} and so
// on. All sizes are requested in raw bytes with no suffix so they
// arrive as plain decimal strings.
type pvReport struct {
	Report []struct {
		PV []PhysicalVolume `json:"pv"`
	} `json:"report"`
}

type vgReport struct {
	Report []struct {
		VG []VolumeGroup `json:"vg"`
	} `json:"report"`
}

type lvReport struct {
	Report []struct {
		LV []LVSegment `json:"lv"`
	} `json:"report"`
}

var lvmArgs = []string{"--reportformat", "json", "--units", "b", "--nosuffix", "-o"}

// loadLVM invokes pvs, vgs and lvs and builds the three relational
// lookup structures. A failing tool leaves its structure empty; the
// resolver tolerates any subset being absent.
func loadLVM(r runner.Runner, tools Tools, log zerolog.Logger) (
	map[string]PhysicalVolume, map[string]VolumeGroup, map[string][]LVSegment) {

	pvByPath := make(map[string]PhysicalVolume)
	vgByName := make(map[string]VolumeGroup)
	lvsByVG := make(map[string][]LVSegment)

	var pvs pvReport
	status := runner.RunJSON(r, &pvs, tools.PVs, append(lvmArgs, "pv_name,pv_size,pv_free,vg_name,pv_fmt")...)
	for _, rep := range pvs.Report {
		// Duplicate pv_name rows are degenerate input; last writer wins.
		for _, pv := range rep.PV {
			pvByPath[pv.Name] = pv
		}
	}
	log.Debug().Stringer("status", status).Int("rows", len(pvByPath)).Msg("pvs report")

	var vgs vgReport
	status = runner.RunJSON(r, &vgs, tools.VGs, append(lvmArgs, "vg_name,vg_size,vg_free,pv_count,lv_count,vg_attr,vg_extent_size")...)
	for _, rep := range vgs.Report {
		for _, vg := range rep.VG {
			vgByName[vg.Name] = vg
		}
	}
	log.Debug().Stringer("status", status).Int("rows", len(vgByName)).Msg("vgs report")

	var lvs lvReport
	status = runner.RunJSON(r, &lvs, tools.LVs, append(lvmArgs, "vg_name,lv_name,lv_size,seg_size_pe,seg_start_pe,devices")...)
	rows := 0
	for _, rep := range lvs.Report {
		// One row per segment; report order is preserved per VG.
		for _, lv := range rep.LV {
			lvsByVG[lv.VGName] = append(lvsByVG[lv.VGName], lv)
			rows++
		}
	}
	log.Debug().Stringer("status", status).Int("rows", rows).Msg("lvs report")

	return pvByPath, vgByName, lvsByVG
}
