package capture

import (
	"context"
	"errors"
	"image"
	"testing"
)

func stubBackends(t *testing.T, portal func(context.Context, bool, Options) (*image.RGBA, error), x11 func() (*image.RGBA, error)) {
	t.Helper()
	origPortal, origX11 := portalFn, x11Fn
	portalFn, x11Fn = portal, x11
	t.Cleanup(func() { portalFn, x11Fn = origPortal, origX11 })
}

func TestCaptureFallsBackToX11(t *testing.T) {
	portalErr := errors.New("no portal")
	stubBackends(t,
		func(context.Context, bool, Options) (*image.RGBA, error) { return nil, portalErr },
		func() (*image.RGBA, error) { return image.NewRGBA(image.Rect(0, 0, 8, 6)), nil },
	)
	img, err := Capture(context.Background(), Options{})
	if err != nil {
		t.Fatalf("Capture: %v", err)
	}
	if img.Bounds().Dx() != 8 {
		t.Errorf("unexpected image %v", img.Bounds())
	}
}

func TestCaptureJoinsErrors(t *testing.T) {
	portalErr := errors.New("no portal")
	stubBackends(t,
		func(context.Context, bool, Options) (*image.RGBA, error) { return nil, portalErr },
		func() (*image.RGBA, error) { return nil, ErrUnsupported },
	)
	_, err := Capture(context.Background(), Options{Mode: ModeScreen})
	if !errors.Is(err, portalErr) || !errors.Is(err, ErrUnsupported) {
		t.Errorf("err = %v, want both backend errors", err)
	}
}

func TestCaptureRegionNeedsPortal(t *testing.T) {
	var interactive bool
	stubBackends(t,
		func(_ context.Context, i bool, _ Options) (*image.RGBA, error) {
			interactive = i
			return nil, ErrUnsupported
		},
		func() (*image.RGBA, error) {
			t.Error("region capture must not fall back to x11")
			return nil, nil
		},
	)
	if _, err := Capture(context.Background(), Options{Mode: ModeRegion}); !errors.Is(err, ErrUnsupported) {
		t.Errorf("err = %v", err)
	}
	if !interactive {
		t.Error("region capture was not interactive")
	}
}

func TestCaptureCropsToRect(t *testing.T) {
	stubBackends(t,
		func(context.Context, bool, Options) (*image.RGBA, error) {
			return image.NewRGBA(image.Rect(0, 0, 100, 100)), nil
		},
		nil,
	)
	img, err := Capture(context.Background(), Options{Rect: image.Rect(90, 90, 120, 110)})
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds() != image.Rect(0, 0, 10, 10) {
		t.Errorf("bounds = %v", img.Bounds())
	}
	if _, err := cropToRect(img, image.Rect(50, 50, 60, 60)); err == nil {
		t.Error("expected error for region outside image")
	}
}

func TestParseMode(t *testing.T) {
	for in, want := range map[string]Mode{"": ModeScreen, "Screen": ModeScreen, "region": ModeRegion} {
		if got, err := ParseMode(in); err != nil || got != want {
			t.Errorf("ParseMode(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseMode("window"); err == nil {
		t.Error("expected error for window")
	}
}
