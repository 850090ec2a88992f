package scan

import (
	"strconv"
	"strings"

	"lvmnav/internal/sizefmt"
)

// parseDF parses `df --output=source,size,used,avail,pcent,target`
// into a map from source device to mount/usage info. The block counts
// are 1 KiB units and are converted to bytes before formatting. The
// mount target may contain spaces and is everything from the sixth
// column onward. Short or malformed rows are skipped.
func parseDF(out string) map[string]MountUsage {
	usage := make(map[string]MountUsage)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) < 2 {
		return usage
	}
	for _, line := range lines[1:] {
		parts := strings.Fields(line)
		if len(parts) < 6 {
			continue
		}
		used, err := strconv.ParseInt(parts[2], 10, 64)
		if err != nil {
			continue
		}
		avail, err := strconv.ParseInt(parts[3], 10, 64)
		if err != nil {
			continue
		}
		usage[parts[0]] = MountUsage{
			MountPoint: strings.Join(parts[5:], " "),
			Used:       sizefmt.Bytes(float64(used * 1024)),
			Avail:      sizefmt.Bytes(float64(avail * 1024)),
		}
	}

	return usage
}
