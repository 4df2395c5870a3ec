package client

import (
	"image/color"

	"tankbattle/game"
)

// RoleStyle holds the draw colors of one side
type RoleStyle struct {
	Role       game.Role
	Body       color.RGBA
	Barrel     color.RGBA
	Projectile color.RGBA
}

var (
	// RoleStyles holds the palette for each side
	RoleStyles = map[game.Role]RoleStyle{
		game.RolePlayer: {
			Role:       game.RolePlayer,
			Body:       color.RGBA{0, 200, 0, 255}, // Green for the player
			Barrel:     color.RGBA{0, 120, 0, 255},
			Projectile: color.RGBA{255, 255, 0, 255},
		},
		game.RoleHostile: {
			Role:       game.RoleHostile,
			Body:       color.RGBA{220, 0, 0, 255}, // Red for hostiles
			Barrel:     color.RGBA{130, 0, 0, 255},
			Projectile: color.RGBA{255, 120, 0, 255},
		},
	}

	colorBackground   = color.RGBA{20, 20, 40, 255}
	colorHUD          = color.RGBA{255, 255, 255, 255}
	colorHealthBack   = color.RGBA{100, 0, 0, 255}
	colorHealthFront  = color.RGBA{0, 255, 0, 255}
	colorOverlay      = color.RGBA{0, 0, 0, 170}
	colorControls     = color.RGBA{255, 255, 255, 90}
	colorControlsKnob = color.RGBA{255, 255, 255, 160}
)

// StyleFor returns the palette of a role
func StyleFor(role game.Role) RoleStyle {
	if s, ok := RoleStyles[role]; ok {
		return s
	}
	// Default fallback
	return RoleStyle{
		Role:       role,
		Body:       color.RGBA{255, 100, 0, 255},
		Barrel:     color.RGBA{150, 60, 0, 255},
		Projectile: color.RGBA{255, 255, 255, 255},
	}
}
