package observer

import (
	"github.com/vovakirdan/tui-farm/internal/farm"
)

// FrameType tags every message the feed sends.
const FrameType = "FRAME"

// Frame is one spectator update, encoded as JSON.
type Frame struct {
	Type       string      `json:"type"`
	SessionID  string      `json:"session_id"`
	Tick       uint64      `json:"tick"`
	Day        int         `json:"day"`
	Night      bool        `json:"night"`
	NightAlpha float64     `json:"night_alpha"`
	Width      int         `json:"width"`
	Height     int         `json:"height"`
	Rows       []string    `json:"rows"`
	Player     PlayerFrame `json:"player"`
	Events     []EventMsg  `json:"events,omitempty"`
}

// PlayerFrame is the spectator view of the farmer.
type PlayerFrame struct {
	X         int            `json:"x"`
	Y         int            `json:"y"`
	Direction string         `json:"direction"`
	Action    string         `json:"action"`
	Tool      string         `json:"tool"`
	Inventory map[string]int `json:"inventory"`
}

// EventMsg is a world event since the previous frame.
type EventMsg struct {
	Kind   string `json:"kind"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Item   string `json:"item,omitempty"`
	Amount int    `json:"amount,omitempty"`
	Day    int    `json:"day"`
}

// Glyph returns the map character for a tile:
// '~' water, '.' grass, '#' bare dirt, a stage digit for a growing crop and
// 'W' or 'T' for ripe wheat or tomato.
func Glyph(v farm.TileView) byte {
	switch v.Kind {
	case farm.TileWater:
		return '~'
	case farm.TileGrass:
		return '.'
	case farm.TileDirt:
		if !v.HasCrop {
			return '#'
		}
		if v.Ripe {
			if v.CropKind == farm.CropTomato {
				return 'T'
			}
			return 'W'
		}
		return byte('0' + min(v.CropStage, 9))
	default:
		return '?'
	}
}

// BuildFrame encodes a snapshot. The player is drawn as '@'.
func BuildFrame(sessionID string, snap farm.Snapshot, events []farm.Event) Frame {
	rows := make([]string, snap.Height)
	for y := 0; y < snap.Height; y++ {
		row := make([]byte, snap.Width)
		for x := 0; x < snap.Width; x++ {
			row[x] = Glyph(snap.At(x, y))
		}
		if y == snap.Player.Y && snap.Player.X >= 0 && snap.Player.X < snap.Width {
			row[snap.Player.X] = '@'
		}
		rows[y] = string(row)
	}

	tool := "hand"
	if p := snap.Player; p.Selected >= 0 && p.Selected < len(p.Tools) {
		tool = p.Tools[p.Selected].Name
	}

	f := Frame{
		Type:       FrameType,
		SessionID:  sessionID,
		Tick:       snap.Tick,
		Day:        snap.Day.Day,
		Night:      snap.Day.Night,
		NightAlpha: snap.Day.NightAlpha,
		Width:      snap.Width,
		Height:     snap.Height,
		Rows:       rows,
		Player: PlayerFrame{
			X:         snap.Player.X,
			Y:         snap.Player.Y,
			Direction: snap.Player.Direction.String(),
			Action:    snap.Player.Action.String(),
			Tool:      tool,
			Inventory: snap.Player.Inventory,
		},
	}
	for _, e := range events {
		f.Events = append(f.Events, EventMsg{
			Kind:   e.Kind.String(),
			X:      e.X,
			Y:      e.Y,
			Item:   e.Item,
			Amount: e.Amount,
			Day:    e.Day,
		})
	}
	return f
}
