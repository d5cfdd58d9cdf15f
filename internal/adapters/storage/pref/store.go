package pref

import "context"

// Theme values persisted for the display preference.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Store persists display preferences. Independent of the session; a theme
// choice survives logout.
type Store interface {
	Theme(ctx context.Context) (string, error)
	SetTheme(ctx context.Context, theme string) error
}
