package models

// Platform identifiers used in the settings enabled-map.
const (
	PlatformLinkedIn     = "linkedin"
	PlatformIndeed       = "indeed"
	PlatformZipRecruiter = "ziprecruiter"
	PlatformGoogle       = "google"
	PlatformBing         = "bing"
	PlatformDuckDuckGo   = "duckduckgo"
)

// Settings holds per-user toggles. Upserted as a whole record,
// last-write-wins.
type Settings struct {
	UserID        int             `json:"userId" db:"user_id"`
	Notifications bool            `json:"notifications" db:"notifications"`
	PrivacyMode   bool            `json:"privacyMode" db:"privacy_mode"`
	AutoDetect    bool            `json:"autoDetect" db:"auto_detect"`
	Platforms     map[string]bool `json:"platforms" db:"platforms"`
}

// DefaultSettings returns the settings assigned to a freshly registered user:
// everything on.
func DefaultSettings(userID int) *Settings {
	return &Settings{
		UserID:        userID,
		Notifications: true,
		PrivacyMode:   true,
		AutoDetect:    true,
		Platforms: map[string]bool{
			PlatformLinkedIn:     true,
			PlatformIndeed:       true,
			PlatformZipRecruiter: true,
			PlatformGoogle:       true,
			PlatformBing:         true,
			PlatformDuckDuckGo:   true,
		},
	}
}

// SettingsPatch is a partial settings update. Nil fields keep their prior
// values; platforms listed in the map are merged over the existing map.
type SettingsPatch struct {
	Notifications *bool           `json:"notifications,omitempty"`
	PrivacyMode   *bool           `json:"privacyMode,omitempty"`
	AutoDetect    *bool           `json:"autoDetect,omitempty"`
	Platforms     map[string]bool `json:"platforms,omitempty"`
}

// Apply merges the patch into s and returns s.
func (p *SettingsPatch) Apply(s *Settings) *Settings {
	if p.Notifications != nil {
		s.Notifications = *p.Notifications
	}
	if p.PrivacyMode != nil {
		s.PrivacyMode = *p.PrivacyMode
	}
	if p.AutoDetect != nil {
		s.AutoDetect = *p.AutoDetect
	}
	if len(p.Platforms) > 0 {
		if s.Platforms == nil {
			s.Platforms = make(map[string]bool, len(p.Platforms))
		}
		for k, v := range p.Platforms {
			s.Platforms[k] = v
		}
	}
	return s
}
