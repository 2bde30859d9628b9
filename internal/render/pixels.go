package render

import (
	"image"
	"image/color"

	"varazs/internal/core"
	"varazs/internal/room"
)

// Palette colours a rasterised room window.
type Palette struct {
	Empty  color.RGBA
	Floor  color.RGBA
	Wall   color.RGBA
	Player color.RGBA
}

// DefaultPalette is used by the minimap and PNG exports.
var DefaultPalette = Palette{
	Empty:  color.RGBA{A: 0},
	Floor:  color.RGBA{R: 70, G: 64, B: 58, A: 255},
	Wall:   color.RGBA{R: 200, G: 190, B: 170, A: 255},
	Player: color.RGBA{R: 230, G: 60, B: 50, A: 255},
}

// fillRoomsRGBA paints every cell of g as a tile x tile block into buf, a
// row-major RGBA buffer of (g.W*tile) x (g.H*tile) pixels. Rooms get a wall
// border with a gap in the middle third of each side that has a door. The
// cell at (markX, markY) gets a player dot.
func fillRoomsRGBA(buf []byte, g *core.ByteGrid, tile int, pal Palette, markX, markY int) {
	stride := g.W * tile * 4
	third := tile / 3
	for row := 0; row < g.H; row++ {
		for col := 0; col < g.W; col++ {
			v := g.At(col, row)
			doors := room.Door(v) & room.AllDoors
			marked := col == markX && row == markY
			for py := 0; py < tile; py++ {
				for px := 0; px < tile; px++ {
					c := pal.Empty
					if v != 0 {
						c = roomPixel(px, py, tile, third, doors, pal)
						if marked && px >= third && px < tile-third && py >= third && py < tile-third {
							c = pal.Player
						}
					}
					base := (row*tile+py)*stride + (col*tile+px)*4
					buf[base+0] = c.R
					buf[base+1] = c.G
					buf[base+2] = c.B
					buf[base+3] = c.A
				}
			}
		}
	}
}

func roomPixel(px, py, tile, third int, doors room.Door, pal Palette) color.RGBA {
	last := tile - 1
	mid := px >= third && px < tile-third
	midY := py >= third && py < tile-third
	switch {
	case py == 0:
		if mid && doors.Has(room.North) {
			return pal.Floor
		}
		return pal.Wall
	case py == last:
		if mid && doors.Has(room.South) {
			return pal.Floor
		}
		return pal.Wall
	case px == 0:
		if midY && doors.Has(room.West) {
			return pal.Floor
		}
		return pal.Wall
	case px == last:
		if midY && doors.Has(room.East) {
			return pal.Floor
		}
		return pal.Wall
	}
	return pal.Floor
}

// RoomImage rasterises g into a new image with tile-sized cells.
func RoomImage(g *core.ByteGrid, tile int, pal Palette, markX, markY int) *image.RGBA {
	if tile < 3 {
		tile = 3
	}
	img := image.NewRGBA(image.Rect(0, 0, g.W*tile, g.H*tile))
	fillRoomsRGBA(img.Pix, g, tile, pal, markX, markY)
	return img
}
