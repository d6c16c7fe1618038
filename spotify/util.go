package spotify

import (
	"fmt"
	"strings"

	spot "github.com/zmb3/spotify/v2"
)

// ExtractID returns the ID part of a track URI such as spotify:track:<id>.
func ExtractID(uri spot.URI) (spot.ID, error) {
	parts := strings.Split(string(uri), ":")
	if len(parts) != 3 || parts[0] != "spotify" || parts[1] != "track" || parts[2] == "" {
		return "", fmt.Errorf("not a track uri: %q", uri)
	}
	return spot.ID(parts[2]), nil
}
