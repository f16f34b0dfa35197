package camera

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-avatar/common"
	"github.com/Carmen-Shannon/oxy-avatar/engine/controller"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const eps = 1e-4

var _ controller.TransformSink = NewCameraController()

// near compares element-wise with an absolute tolerance.
func near(got, want []float32) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if math32.Abs(got[i]-want[i]) > eps {
			return false
		}
	}
	return true
}

func TestDefaultSitsBehindOrigin(t *testing.T) {
	cc := NewCameraController()
	want := mgl32.Vec3{0, 2.5, -5 * math32.Cos(math32.Pi/6)}
	if got := cc.Position(); !near(got[:], want[:]) {
		t.Fatalf("Position() = %v, want %v", got, want)
	}
}

func TestSetTransformFollowsTarget(t *testing.T) {
	cc := NewCameraController(WithTrail(0))
	azimuth := cc.Azimuth()

	cc.SetTransform(mgl32.Vec3{3, 0, 7}, common.YawRotation(math32.Pi/2))

	want := mgl32.Vec3{3, 1.5, 7}
	if got := cc.Target(); !near(got[:], want[:]) {
		t.Fatalf("Target() = %v", got)
	}
	if cc.Azimuth() != azimuth {
		t.Fatal("azimuth should not move with trailing disabled")
	}
	if d := cc.Position().Sub(cc.Target()).Len(); math32.Abs(d-cc.Radius()) > eps {
		t.Fatalf("distance to target = %v, want radius %v", d, cc.Radius())
	}
}

func TestTrailSwingsBehindAvatar(t *testing.T) {
	tests := []struct {
		name        string
		trail       float32
		wantAzimuth float32
	}{
		{name: "snap", trail: 1, wantAzimuth: -math32.Pi / 2},
		{name: "half", trail: 0.5, wantAzimuth: -3 * math32.Pi / 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cc := NewCameraController(WithTrail(tt.trail), WithTargetOffset(mgl32.Vec3{}))
			// facing +X, so behind is -X
			cc.SetTransform(mgl32.Vec3{}, common.YawRotation(math32.Pi/2))
			if got := cc.Azimuth(); math32.Abs(got-tt.wantAzimuth) > eps {
				t.Fatalf("Azimuth() = %v, want %v", got, tt.wantAzimuth)
			}
		})
	}

	cc := NewCameraController(WithTrail(1), WithTargetOffset(mgl32.Vec3{}))
	cc.SetTransform(mgl32.Vec3{}, common.YawRotation(math32.Pi/2))
	if x := cc.Position().X(); x >= 0 {
		t.Fatalf("camera x = %v, want behind the avatar on -X", x)
	}
}

func TestOrbitBounds(t *testing.T) {
	cc := NewCameraController(WithRadiusBounds(2, 10), WithElevationBounds(0.1, 1))

	cc.SetRadius(1000)
	if cc.Radius() != 10 {
		t.Fatalf("Radius() = %v, want 10", cc.Radius())
	}
	cc.Zoom(1000)
	if cc.Radius() != 2 {
		t.Fatalf("Radius() after zoom = %v, want 2", cc.Radius())
	}
	cc.SetElevation(-1)
	if cc.Elevation() != 0.1 {
		t.Fatalf("Elevation() = %v", cc.Elevation())
	}
	for i := 0; i < 100; i++ {
		cc.OrbitUp()
	}
	if cc.Elevation() != 1 {
		t.Fatalf("Elevation() after OrbitUp = %v", cc.Elevation())
	}

	az := cc.Azimuth()
	cc.OrbitLeft()
	cc.OrbitRight()
	if math32.Abs(cc.Azimuth()-az) > eps {
		t.Fatal("OrbitLeft then OrbitRight should cancel")
	}
}

func TestCameraLooksAtTarget(t *testing.T) {
	cc := NewCameraController(WithTrail(0))
	cam := NewCamera(WithController(cc))

	cc.SetTransform(mgl32.Vec3{10, 0, -4}, mgl32.QuatIdent())
	cam.Update()

	target := cam.ViewMatrix().Mul4x1(cc.Target().Vec4(1))
	if math32.Abs(target.X()) > eps || math32.Abs(target.Y()) > eps {
		t.Fatalf("target in view space = %v, want on the -Z axis", target)
	}
	if math32.Abs(target.Z()+cc.Radius()) > eps {
		t.Fatalf("target depth = %v, want %v", target.Z(), -cc.Radius())
	}

	cam.SetAspect(0)
	if cam.Aspect() != 16.0/9.0 {
		t.Fatal("non-positive aspect should be ignored")
	}
	cam.SetAspect(2)
	vp, want := cam.ViewProjectionMatrix(), cam.ProjectionMatrix().Mul4(cam.ViewMatrix())
	if !near(vp[:], want[:]) {
		t.Fatal("ViewProjectionMatrix should equal projection × view")
	}
}
