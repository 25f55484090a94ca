// Command snapshotpng rasterizes one encoded kernel.Snapshot to a PNG for
// offline debugging — ships, bullets, and scenario overlay lines, with no
// live rendering, encoding, or streaming involved.
//
// Usage:
//
//	go run ./cmd/snapshotpng -in snapshot.gob -out snapshot.png
package main

import (
	"flag"
	"log"
	"math"
	"os"

	"github.com/fogleman/gg"

	"orbitsim/internal/kernel"
)

const (
	imageSize  = 1024
	marginPx   = 32
	shipRadius = 6.0
)

func main() {
	inPath := flag.String("in", "", "path to a gob-encoded kernel.Snapshot")
	outPath := flag.String("out", "snapshot.png", "output PNG path")
	flag.Parse()

	if *inPath == "" {
		log.Fatal("snapshotpng: -in is required")
	}

	data, err := os.ReadFile(*inPath)
	if err != nil {
		log.Fatalf("snapshotpng: read %s: %v", *inPath, err)
	}

	snap, err := kernel.DecodeSnapshot(data)
	if err != nil {
		log.Fatalf("snapshotpng: decode: %v", err)
	}

	worldSize := kernel.DefaultWorldSize
	dc := gg.NewContext(imageSize, imageSize)
	render(dc, snap, worldSize)

	if err := dc.SavePNG(*outPath); err != nil {
		log.Fatalf("snapshotpng: save %s: %v", *outPath, err)
	}
	log.Printf("snapshotpng: wrote %s (tick %d, %s)", *outPath, snap.Tick, snap.Status.Kind)
}

// toPixel maps world coordinates (origin at arena center, +Y up) onto the
// image canvas (origin top-left, +Y down).
func toPixel(p kernel.Vec2, worldSize float64) (float64, float64) {
	scale := (imageSize - 2*marginPx) / worldSize
	x := marginPx + (p.X+worldSize/2)*scale
	y := marginPx + (worldSize/2-p.Y)*scale
	return x, y
}

func render(dc *gg.Context, snap kernel.Snapshot, worldSize float64) {
	dc.SetRGB(0.04, 0.04, 0.08)
	dc.Clear()

	drawGrid(dc, worldSize)

	for _, line := range snap.Lines {
		ax, ay := toPixel(line.A, worldSize)
		bx, by := toPixel(line.B, worldSize)
		setColor(dc, line.Color, 0.5, 0.5, 0.5)
		dc.SetLineWidth(1)
		dc.DrawLine(ax, ay, bx, by)
		dc.Stroke()
	}

	for _, b := range snap.Bullets {
		x, y := toPixel(b.Position, worldSize)
		dc.SetRGB(1, 0.9, 0.3)
		dc.DrawCircle(x, y, 2)
		dc.Fill()
	}

	for _, s := range snap.Ships {
		drawShip(dc, s, worldSize)
	}
}

func drawGrid(dc *gg.Context, worldSize float64) {
	dc.SetRGB(0.15, 0.15, 0.2)
	dc.SetLineWidth(1)
	const divisions = 10
	for i := 0; i <= divisions; i++ {
		frac := float64(i) / divisions
		x := marginPx + frac*(imageSize-2*marginPx)
		dc.DrawLine(x, marginPx, x, imageSize-marginPx)
		dc.DrawLine(marginPx, x, imageSize-marginPx, x)
	}
	dc.Stroke()
}

func drawShip(dc *gg.Context, s kernel.ShipSnapshot, worldSize float64) {
	x, y := toPixel(s.Position, worldSize)

	r, g, b := teamColor(s.Team)
	dc.SetRGB(r, g, b)

	radius := shipRadius * classScale(s.Class)
	dc.DrawCircle(x, y, radius)
	dc.Fill()

	// heading tick, flipped to image-space rotation (screen Y is inverted)
	hx := x + radius*2*math.Cos(-s.Heading)
	hy := y + radius*2*math.Sin(-s.Heading)
	dc.SetLineWidth(2)
	dc.DrawLine(x, y, hx, hy)
	dc.Stroke()

	if s.Health > 0 {
		barWidth := radius * 3
		dc.SetRGBA(0.2, 0.2, 0.2, 0.8)
		dc.DrawRectangle(x-barWidth/2, y-radius-8, barWidth, 3)
		dc.Fill()
		dc.SetRGB(0.3, 0.9, 0.3)
		dc.DrawRectangle(x-barWidth/2, y-radius-8, barWidth*clamp01(s.Health/100), 3)
		dc.Fill()
	}
}

func classScale(c kernel.ShipClass) float64 {
	switch c {
	case kernel.ClassCruiser:
		return 2.2
	case kernel.ClassFrigate:
		return 1.6
	case kernel.ClassFighter:
		return 1.0
	case kernel.ClassMissile, kernel.ClassTorpedo:
		return 0.5
	case kernel.ClassAsteroid:
		return 1.8
	default:
		return 1.0
	}
}

func teamColor(team int32) (float64, float64, float64) {
	palette := [][3]float64{
		{0.3, 0.7, 1.0},
		{1.0, 0.4, 0.3},
		{0.6, 1.0, 0.4},
		{1.0, 0.8, 0.2},
	}
	if team < 0 {
		return 0.6, 0.6, 0.6 // neutral (targets/asteroids)
	}
	return palette[int(team)%len(palette)][0], palette[int(team)%len(palette)][1], palette[int(team)%len(palette)][2]
}

func setColor(dc *gg.Context, name string, r, g, b float64) {
	switch name {
	case "red":
		dc.SetRGB(1, 0.3, 0.3)
	case "green":
		dc.SetRGB(0.3, 1, 0.3)
	case "blue":
		dc.SetRGB(0.3, 0.3, 1)
	case "":
		dc.SetRGB(r, g, b)
	default:
		dc.SetRGB(r, g, b)
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
