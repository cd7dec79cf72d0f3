package game

import "fmt"

// FormatHUD renders the snapshot as the window-title readout.
func FormatHUD(h HUDSnapshot) string {
	if h.Crashing {
		return "Skyfire :: CRASHED"
	}
	return fmt.Sprintf("Skyfire :: SPD %3.0f  ALT %4.0f", h.Speed, h.Altitude)
}
