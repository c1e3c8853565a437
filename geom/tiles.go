package geom

import (
	"github.com/pkg/errors"
)

// TilePair identifies two neighbouring satellite image tiles
type TilePair struct {
	From int
	To   int
}

// TileOffsets holds pixel displacement between each tile i and its neighbour i+1
type TileOffsets map[TilePair]PixelOffset

// NewTileOffsets builds offsets from tie points: the same feature seen on tile i and on tile i+1
func NewTileOffsets(tiePoints map[TilePair][2]PixelPoint) TileOffsets {
	offsets := make(TileOffsets, len(tiePoints))
	for k, pts := range tiePoints {
		offsets[k] = PixelOffset{X: pts[0].X - pts[1].X, Y: pts[0].Y - pts[1].Y}
	}
	return offsets
}

func (to TileOffsets) accumulate(tileA, tileB int) (PixelOffset, error) {
	d := PixelOffset{}
	if tileB > tileA {
		for i := tileA; i < tileB; i++ {
			off, ok := to[TilePair{From: i, To: i + 1}]
			if !ok {
				return d, errors.Wrapf(ErrUnknownTile, "%d -> %d", i, i+1)
			}
			d.X += off.X
			d.Y += off.Y
		}
		return d, nil
	}
	for i := tileB; i < tileA; i++ {
		off, ok := to[TilePair{From: i, To: i + 1}]
		if !ok {
			return d, errors.Wrapf(ErrUnknownTile, "%d -> %d", i, i+1)
		}
		d.X -= off.X
		d.Y -= off.Y
	}
	return d, nil
}

// PointTileToTile maps a point on tile A onto the pixel frame of tile B
func (to TileOffsets) PointTileToTile(tileA int, pt PixelPoint, tileB int) (PixelPoint, error) {
	if tileA == tileB {
		return pt, nil
	}
	d, err := to.accumulate(tileA, tileB)
	if err != nil {
		return PixelPoint{}, err
	}
	return PixelPoint{X: pt.X - d.X, Y: pt.Y - d.Y}, nil
}

// DistanceTileToTile returns the pixel displacement from a point on tile A to a point on tile B
func (to TileOffsets) DistanceTileToTile(tileA int, ptA PixelPoint, tileB int, ptB PixelPoint) (PixelOffset, error) {
	a, err := to.PointTileToTile(tileA, ptA, tileB)
	if err != nil {
		return PixelOffset{}, err
	}
	return PixelOffset{X: ptB.X - a.X, Y: ptB.Y - a.Y}, nil
}
