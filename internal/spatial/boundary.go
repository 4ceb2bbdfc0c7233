package spatial

import (
	"github.com/golang/geo/s2"
	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
)

// Boundary is a district polygon prepared for containment tests
type Boundary struct {
	shells []shell
	rect   s2.Rect
}

type shell struct {
	outer *s2.Loop
	holes []*s2.Loop
}

// NewBoundary converts a GeoJSON polygon or multipolygon into a Boundary
func NewBoundary(g geom.T) (*Boundary, error) {
	b := &Boundary{rect: s2.EmptyRect()}

	switch t := g.(type) {
	case *geom.Polygon:
		if err := b.addPolygon(t); err != nil {
			return nil, err
		}
	case *geom.MultiPolygon:
		for i := 0; i < t.NumPolygons(); i++ {
			if err := b.addPolygon(t.Polygon(i)); err != nil {
				return nil, err
			}
		}
	case nil:
		return nil, eris.New("spatial: nil boundary geometry")
	default:
		return nil, eris.Errorf("spatial: unsupported boundary geometry %T", g)
	}

	if len(b.shells) == 0 {
		return nil, eris.New("spatial: boundary has no rings")
	}
	return b, nil
}

func (b *Boundary) addPolygon(p *geom.Polygon) error {
	if p.NumLinearRings() == 0 {
		return nil
	}

	outer, err := loopFromRing(p.LinearRing(0).Coords())
	if err != nil {
		return err
	}
	sh := shell{outer: outer}
	for i := 1; i < p.NumLinearRings(); i++ {
		hole, err := loopFromRing(p.LinearRing(i).Coords())
		if err != nil {
			return err
		}
		sh.holes = append(sh.holes, hole)
	}

	b.shells = append(b.shells, sh)
	b.rect = b.rect.Union(outer.RectBound())
	return nil
}

// loopFromRing builds an s2 loop from GeoJSON [lng, lat] coordinates.
// The closing vertex is dropped and the loop is normalized so that it
// encloses the smaller of the two regions regardless of ring winding.
func loopFromRing(coords []geom.Coord) (*s2.Loop, error) {
	if n := len(coords); n > 1 && coords[0].Equal(geom.XY, coords[n-1]) {
		coords = coords[:n-1]
	}
	if len(coords) < 3 {
		return nil, eris.Errorf("spatial: ring needs at least 3 vertices, got %d", len(coords))
	}

	points := make([]s2.Point, 0, len(coords))
	for _, c := range coords {
		points = append(points, s2.PointFromLatLng(s2.LatLngFromDegrees(c.Y(), c.X())))
	}

	loop := s2.LoopFromPoints(points)
	loop.Normalize()
	return loop, nil
}

// Contains reports whether the point lies inside the boundary
func (b *Boundary) Contains(lat, lng float64) bool {
	pt := s2.PointFromLatLng(s2.LatLngFromDegrees(lat, lng))
	for _, sh := range b.shells {
		if !sh.outer.ContainsPoint(pt) {
			continue
		}
		inHole := false
		for _, h := range sh.holes {
			if h.ContainsPoint(pt) {
				inHole = true
				break
			}
		}
		if !inHole {
			return true
		}
	}
	return false
}

// Center returns the center of the boundary's bounding rectangle as (lat, lng)
func (b *Boundary) Center() (float64, float64) {
	c := b.rect.Center()
	return c.Lat.Degrees(), c.Lng.Degrees()
}

// Bounds returns the south-west and north-east corners as (lat, lng) pairs
func (b *Boundary) Bounds() (swLat, swLng, neLat, neLng float64) {
	lo, hi := b.rect.Lo(), b.rect.Hi()
	return lo.Lat.Degrees(), lo.Lng.Degrees(), hi.Lat.Degrees(), hi.Lng.Degrees()
}
