package platform

import (
	"fmt"
	"sort"
	"strings"
)

// Platform identifies an external game store.
type Platform string

const (
	Steam       Platform = "steam"
	Xbox        Platform = "xbox"
	PlayStation Platform = "psn"
	Nintendo    Platform = "nintendo"
	Epic        Platform = "epic"
)

// Capabilities describes what a platform integration can do.
type Capabilities struct {
	Name              string `json:"name"`
	Official          bool   `json:"official"`
	Experimental      bool   `json:"experimental"`
	AuthType          string `json:"auth_type"`
	SyncSupported     bool   `json:"sync_supported"`
	PlaytimeSupported bool   `json:"playtime_supported"`
	RequiresUserToken bool   `json:"requires_user_token"`
	Warning           string `json:"warning,omitempty"`
}

var capabilities = map[Platform]Capabilities{
	Steam: {
		Name:              "Steam",
		Official:          true,
		AuthType:          "openid",
		SyncSupported:     true,
		PlaytimeSupported: true,
	},
	Xbox: {
		Name:              "Xbox",
		Official:          true,
		AuthType:          "oauth2",
		SyncSupported:     true,
		PlaytimeSupported: true,
	},
	PlayStation: {
		Name:              "PlayStation Network",
		Experimental:      true,
		AuthType:          "npsso",
		SyncSupported:     true,
		RequiresUserToken: true,
		Warning:           "Experimental: Requires NPSSO token from your PlayStation account cookies",
	},
	Nintendo: {
		Name:              "Nintendo Switch",
		Experimental:      true,
		AuthType:          "custom",
		SyncSupported:     true,
		PlaytimeSupported: true,
		RequiresUserToken: true,
		Warning:           "Experimental: Requires Nintendo Switch Online subscription",
	},
	Epic: {
		Name:              "Epic Games",
		Experimental:      true,
		AuthType:          "custom",
		SyncSupported:     true,
		RequiresUserToken: true,
		Warning:           "Experimental: Uses unofficial API - may be unstable",
	},
}

// Parse validates a platform name, case-insensitively.
func Parse(s string) (Platform, error) {
	p := Platform(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := capabilities[p]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownPlatform, s)
	}
	return p, nil
}

// String implements fmt.Stringer.
func (p Platform) String() string {
	return string(p)
}

// Capabilities returns the capability entry for p.
func (p Platform) Capabilities() (Capabilities, bool) {
	c, ok := capabilities[p]
	return c, ok
}

// All returns every known platform in name order.
func All() []Platform {
	out := make([]Platform, 0, len(capabilities))
	for p := range capabilities {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
