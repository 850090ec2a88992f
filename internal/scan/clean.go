package scan

import "strings"

// cleanDeviceInfo normalizes model/filesystem/flag strings extracted
// from fdisk and parted output for narrow-column display.
func cleanDeviceInfo(text string) string {
	text = strings.ReplaceAll(text, "HARDDISK", "HDD")
	text = strings.ReplaceAll(text, "(iscsi)", "")
	text = strings.ReplaceAll(text, "Linux device-mapper (linear) (dm)", "LINUX Dev-map")
	return text
}
