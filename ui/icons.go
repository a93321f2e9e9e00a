// Package ui provides the graphical user interface for Pxls Desktop.
// This file contains icon generation utilities for the system tray.
package ui

import (
	"bytes"
	"image"
	"image/color"
	"image/png"

	"github.com/yllada/pxls-desktop/common"
)

// IconConfig defines the configuration for icon generation.
type IconConfig struct {
	Size     int
	CellSize int
	Gap      int
	// Palette colors the grid cells row by row, wrapping around.
	Palette    []color.RGBA
	Background color.RGBA
}

// pxlsPalette is a handful of colors from the canvas' default palette.
var pxlsPalette = []color.RGBA{
	{255, 167, 209, 255}, // pink
	{229, 0, 0, 255},     // red
	{229, 149, 0, 255},   // orange
	{229, 217, 0, 255},   // yellow
	{148, 224, 68, 255},  // lime
	{2, 190, 1, 255},     // green
	{0, 211, 221, 255},   // cyan
	{0, 131, 199, 255},   // blue
	{0, 0, 234, 255},     // navy
	{207, 110, 228, 255}, // lavender
	{130, 0, 128, 255},   // purple
	{160, 106, 66, 255},  // brown
}

// DefaultPresenceOnIconConfig returns the colored icon shown while rich
// presence is enabled.
func DefaultPresenceOnIconConfig() IconConfig {
	return IconConfig{
		Size:       common.TrayIconSize,
		CellSize:   4,
		Gap:        1,
		Palette:    pxlsPalette,
		Background: color.RGBA{34, 34, 34, 255},
	}
}

// DefaultPresenceOffIconConfig returns the gray icon shown while rich
// presence is disabled.
func DefaultPresenceOffIconConfig() IconConfig {
	gray := make([]color.RGBA, len(pxlsPalette))
	for i, c := range pxlsPalette {
		y := uint8((299*int(c.R) + 587*int(c.G) + 114*int(c.B)) / 1000)
		gray[i] = color.RGBA{y, y, y, 255}
	}
	cfg := DefaultPresenceOnIconConfig()
	cfg.Palette = gray
	return cfg
}

// IconGenerator generates PNG icons for the system tray.
type IconGenerator struct {
	config IconConfig
}

// NewIconGenerator creates a new icon generator with the given config.
func NewIconGenerator(config IconConfig) *IconGenerator {
	return &IconGenerator{config: config}
}

// Generate creates a PNG icon and returns the bytes.
func (g *IconGenerator) Generate() []byte {
	var buf bytes.Buffer
	png.Encode(&buf, g.Image())
	return buf.Bytes()
}

// Image draws the pixel grid: square cells separated by gaps on a
// rounded background.
func (g *IconGenerator) Image() *image.RGBA {
	size := g.config.Size
	img := image.NewRGBA(image.Rect(0, 0, size, size))

	g.drawBackground(img)
	g.drawGrid(img)

	return img
}

// drawBackground fills the icon leaving the four corner pixels clear.
func (g *IconGenerator) drawBackground(img *image.RGBA) {
	size := g.config.Size
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			corner := (x == 0 || x == size-1) && (y == 0 || y == size-1)
			if !corner {
				img.Set(x, y, g.config.Background)
			}
		}
	}
}

// drawGrid centers as many cells as fit and colors them from the palette.
func (g *IconGenerator) drawGrid(img *image.RGBA) {
	cfg := g.config
	if len(cfg.Palette) == 0 || cfg.CellSize <= 0 {
		return
	}

	pitch := cfg.CellSize + cfg.Gap
	cells := (cfg.Size - cfg.Gap) / pitch
	offset := (cfg.Size - (cells*pitch - cfg.Gap)) / 2

	for row := 0; row < cells; row++ {
		for col := 0; col < cells; col++ {
			c := cfg.Palette[(row*cells+col)%len(cfg.Palette)]
			x0 := offset + col*pitch
			y0 := offset + row*pitch
			for y := y0; y < y0+cfg.CellSize; y++ {
				for x := x0; x < x0+cfg.CellSize; x++ {
					img.Set(x, y, c)
				}
			}
		}
	}
}

// GeneratePresenceOnIcon generates the presence enabled icon.
func GeneratePresenceOnIcon() []byte {
	return NewIconGenerator(DefaultPresenceOnIconConfig()).Generate()
}

// GeneratePresenceOffIcon generates the presence disabled icon.
func GeneratePresenceOffIcon() []byte {
	return NewIconGenerator(DefaultPresenceOffIconConfig()).Generate()
}
