package render

import (
	"math"

	"github.com/taigrr/rgeo/pkg/math3d"
)

// NoHit is returned by Pick when no triangle lies under the cursor.
const NoHit = -1

const (
	pickEpsilon = 1e-6
	pickOriginZ = -100
	pickFar     = 9999999
)

// Pick casts a ray straight into the screen at (x, y) and returns the index
// of the nearest triangle it hits. Triangles tagged Ignore are skipped.
func Pick(tris []Triangle, x, y float64) int {
	origin := math3d.V3(x, y, pickOriginZ)
	dir := math3d.V3(0, 0, 1)

	hit := NoHit
	closest := float64(pickFar)
	for i := range tris {
		t := &tris[i]
		if t.Kind() == KindIgnore {
			continue
		}
		d, ok := intersect(origin, dir, t)
		if ok && d > 0 && d < closest {
			closest = d
			hit = i
		}
	}
	return hit
}

// intersect is the Moller-Trumbore ray/triangle test.
func intersect(origin, dir math3d.Vec3, t *Triangle) (float64, bool) {
	v0 := t.V[0].Pos.Vec3()
	e1 := t.V[1].Pos.Vec3().Sub(v0)
	e2 := t.V[2].Pos.Vec3().Sub(v0)

	pv := dir.Cross(e2)
	det := e1.Dot(pv)
	if math.Abs(det) < pickEpsilon {
		return 0, false
	}
	inv := 1 / det

	tv := origin.Sub(v0)
	u := tv.Dot(pv) * inv
	if u < 0 || u > 1 {
		return 0, false
	}

	qv := tv.Cross(e1)
	v := dir.Dot(qv) * inv
	if v < 0 || u+v > 1 {
		return 0, false
	}

	return e2.Dot(qv) * inv, true
}
