package viewport

import (
	"math"
	"testing"

	"map-digitizer/pkg/geometry"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestNewFitsWholeImage(t *testing.T) {
	// 4000x2000 image on an 800x800 display: width limits the scale.
	v := New(4000, 2000, 800, 800)
	if !near(v.XMin, 0) || !near(v.XMax, 4000) {
		t.Errorf("x limits = [%v, %v]", v.XMin, v.XMax)
	}
	if !near(v.YMin, -1000) || !near(v.YMax, 3000) {
		t.Errorf("y limits = [%v, %v]", v.YMin, v.YMax)
	}
	p := v.DeviceToImage(400, 400)
	if !near(p.X, 2000) || !near(p.Y, 1000) {
		t.Errorf("centre maps to %v", p)
	}
}

func TestDeviceImageRoundTrip(t *testing.T) {
	v := New(1000, 1000, 500, 500).ZoomAt(100, 300, 0.25).Pan(37, -12)
	for _, d := range [][2]float64{{0, 0}, {250, 250}, {499, 12}} {
		p := v.DeviceToImage(d[0], d[1])
		x, y := v.ImageToDevice(p)
		if !near(x, d[0]) || !near(y, d[1]) {
			t.Errorf("(%v,%v) -> %v -> (%v,%v)", d[0], d[1], p, x, y)
		}
	}
}

func TestDeviceToImageHalfPixel(t *testing.T) {
	// Display is twice the image size, so odd device positions land on
	// exact half pixels.
	v := New(400, 200, 800, 400)
	if p := v.DeviceToImage(201, 99); p.X != 100.5 || p.Y != 49.5 {
		t.Errorf("DeviceToImage(201, 99) = %v, want {100.5 49.5}", p)
	}
}

func TestScrollStepsCompound(t *testing.T) {
	v := New(1000, 1000, 500, 500)
	twice := v.Scroll(200, 200, 1, DefaultZoomStep).Scroll(200, 200, 1, DefaultZoomStep)
	once := v.Scroll(200, 200, 2, DefaultZoomStep)
	if !near(once.VisibleWidth(), twice.VisibleWidth()) || !near(once.XMin, twice.XMin) {
		t.Errorf("Scroll(2) = %+v, two Scroll(1) = %+v", once, twice)
	}
	if same := v.Scroll(200, 200, 0, DefaultZoomStep); same != v {
		t.Error("zero steps changed view")
	}
	if same := v.Scroll(200, 200, 1, 1); same != v {
		t.Error("unit step changed view")
	}
}

func TestZoomKeepsCursorAnchor(t *testing.T) {
	v := New(1000, 1000, 500, 500)
	before := v.DeviceToImage(120, 380)

	zoomed := v.Scroll(120, 380, 3, DefaultZoomStep)
	after := zoomed.DeviceToImage(120, 380)
	if after.Distance(before) > 1e-9 {
		t.Errorf("anchor moved from %v to %v", before, after)
	}
	want := 1000 / math.Pow(DefaultZoomStep, 3)
	if !near(zoomed.VisibleWidth(), want) {
		t.Errorf("VisibleWidth = %v, want %v", zoomed.VisibleWidth(), want)
	}

	out := zoomed.Scroll(120, 380, -3, DefaultZoomStep)
	if !near(out.VisibleWidth(), 1000) {
		t.Errorf("zoom out VisibleWidth = %v, want 1000", out.VisibleWidth())
	}
}

func TestZoomLimits(t *testing.T) {
	v := New(1000, 1000, 500, 500)
	in := v.ZoomAt(250, 250, 1e-6)
	if !near(in.VisibleWidth(), minVisibleWidth) {
		t.Errorf("zoom-in clamp VisibleWidth = %v", in.VisibleWidth())
	}
	out := v.ZoomAt(250, 250, 1e6)
	if !near(out.VisibleWidth(), maxVisibleFactor*1000) {
		t.Errorf("zoom-out clamp VisibleWidth = %v", out.VisibleWidth())
	}
	if same := v.ZoomAt(0, 0, -1); same != v {
		t.Errorf("negative factor changed view")
	}
}

func TestPanFollowsDrag(t *testing.T) {
	v := New(1000, 1000, 500, 500)
	under := v.DeviceToImage(100, 100)
	moved := v.Pan(50, -20)
	if got := moved.DeviceToImage(150, 80); got.Distance(under) > 1e-9 {
		t.Errorf("dragged point at %v, want %v", got, under)
	}
	if moved.VisibleWidth() != v.VisibleWidth() {
		t.Error("pan changed scale")
	}
}

func TestClosureToleranceScalesWithZoom(t *testing.T) {
	v := New(1000, 1000, 500, 500)
	if tol := v.ClosureTolerance(0.02); !near(tol, 20) {
		t.Errorf("tolerance = %v, want 20", tol)
	}
	z := v.ZoomAt(250, 250, 0.1)
	if tol := z.ClosureTolerance(0.02); !near(tol, 2) {
		t.Errorf("zoomed tolerance = %v, want 2", tol)
	}
}

func TestResizeKeepsScaleAndCentre(t *testing.T) {
	v := New(1000, 1000, 500, 500).ZoomAt(250, 250, 0.5)
	c := v.Visible().Center()
	scale := v.DisplayW / v.VisibleWidth()

	r := v.Resize(800, 300)
	if got := r.Visible().Center(); got.Distance(c) > 1e-9 {
		t.Errorf("centre moved to %v, want %v", got, c)
	}
	if got := r.DisplayW / r.VisibleWidth(); !near(got, scale) {
		t.Errorf("scale = %v, want %v", got, scale)
	}
	if !near(r.DisplayH/r.VisibleHeight(), scale) {
		t.Error("vertical scale differs from horizontal")
	}

	first := Viewport{ImageW: 100, ImageH: 50}.Resize(200, 100)
	if first.Visible() != geometry.NewRect(0, 0, 100, 50) {
		t.Errorf("first resize = %+v", first.Visible())
	}
}
