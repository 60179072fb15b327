// Package ui is the raylib front end: menu, settings panel, HUD and board drawing.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// Theme holds UI styling constants.
type Theme struct {
	Background    rl.Color
	BoardBg       rl.Color
	PanelBg       rl.Color
	PanelBorder   rl.Color
	SectionHeader rl.Color
	LabelColor    rl.Color
	ValueColor    rl.Color
	BarBg         rl.Color
	BarFill       rl.Color

	// Board
	AgentColor   rl.Color
	HeadColor    rl.Color
	StunnedColor rl.Color
	FoodColor    rl.Color

	Padding        int32
	LineHeight     int32
	LabelWidth     int32
	BarHeight      int32
	FontSize       int32
	HeaderFontSize int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		Background:    rl.Color{R: 10, G: 12, B: 16, A: 255},
		BoardBg:       rl.Black,
		PanelBg:       rl.Color{R: 20, G: 25, B: 30, A: 240},
		PanelBorder:   rl.Color{R: 60, G: 70, B: 80, A: 255},
		SectionHeader: rl.Yellow,
		LabelColor:    rl.LightGray,
		ValueColor:    rl.LightGray,
		BarBg:         rl.Color{R: 40, G: 40, B: 40, A: 255},
		BarFill:       rl.Color{R: 100, G: 150, B: 200, A: 255},

		AgentColor:   rl.Green,
		HeadColor:    rl.Color{R: 180, G: 255, B: 180, A: 255},
		StunnedColor: rl.Color{R: 220, G: 200, B: 60, A: 255},
		FoodColor:    rl.Red,

		Padding:        10,
		LineHeight:     18,
		LabelWidth:     90,
		BarHeight:      12,
		FontSize:       14,
		HeaderFontSize: 16,
	}
}
