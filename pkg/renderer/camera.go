package renderer

import (
	"context"
	"fmt"
	"math"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/geometry"
	"github.com/df07/go-sphere-tracer/pkg/integrator"
	"github.com/df07/go-sphere-tracer/pkg/output"
)

// CameraConfig contains all camera configuration parameters
type CameraConfig struct {
	AspectRatio     float64    // Ratio of image width over height
	ImageWidth      int        // Rendered image width in pixels
	SamplesPerPixel int        // Random samples per pixel
	MaxDepth        int        // Maximum number of ray bounces
	VFov            float64    // Vertical field of view in degrees
	LookFrom        core.Point // Camera position
	LookAt          core.Point // Point the camera looks at
	Up              core.Vec3  // Camera-relative "up" direction
	DefocusAngle    float64    // Variation angle of rays through each pixel, in degrees
	FocusDist       float64    // Distance from LookFrom to the plane of perfect focus
}

// DefaultCameraConfig returns the default camera: a square 100 pixel wide pinhole
// image looking down -Z from the origin
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		AspectRatio:     1.0,
		ImageWidth:      100,
		SamplesPerPixel: 10,
		MaxDepth:        10,
		VFov:            90,
		LookFrom:        core.NewVec3(0, 0, 0),
		LookAt:          core.NewVec3(0, 0, -1),
		Up:              core.NewVec3(0, 1, 0),
		DefocusAngle:    0,
		FocusDist:       10,
	}
}

// MergeCameraConfig fills zero-valued fields of config from the defaults.
// LookAt is only defaulted when both LookFrom and LookAt are zero.
func MergeCameraConfig(config CameraConfig) CameraConfig {
	defaults := DefaultCameraConfig()
	zero := core.Vec3{}

	if config.AspectRatio == 0 {
		config.AspectRatio = defaults.AspectRatio
	}
	if config.ImageWidth == 0 {
		config.ImageWidth = defaults.ImageWidth
	}
	if config.SamplesPerPixel == 0 {
		config.SamplesPerPixel = defaults.SamplesPerPixel
	}
	if config.MaxDepth == 0 {
		config.MaxDepth = defaults.MaxDepth
	}
	if config.VFov == 0 {
		config.VFov = defaults.VFov
	}
	if config.LookFrom == zero && config.LookAt == zero {
		config.LookAt = defaults.LookAt
	}
	if config.Up == zero {
		config.Up = defaults.Up
	}
	if config.FocusDist == 0 {
		config.FocusDist = defaults.FocusDist
	}
	return config
}

// Camera generates primary rays. Derived state is computed by Initialize and
// does not change for the duration of a render.
type Camera struct {
	config CameraConfig

	imageHeight  int
	center       core.Point
	pixel00Loc   core.Point // Location of pixel (0, 0) center
	pixelDeltaU  core.Vec3  // Offset to the pixel on the right
	pixelDeltaV  core.Vec3  // Offset to the pixel below
	u, v, w      core.Vec3  // Camera frame basis vectors
	defocusDiskU core.Vec3  // Defocus disk horizontal radius
	defocusDiskV core.Vec3  // Defocus disk vertical radius
}

// NewCamera validates config (after merging defaults) and creates a camera
func NewCamera(config CameraConfig) (*Camera, error) {
	config = MergeCameraConfig(config)
	if err := validateCameraConfig(config); err != nil {
		return nil, err
	}

	camera := &Camera{config: config}
	camera.Initialize()
	return camera, nil
}

func validateCameraConfig(config CameraConfig) error {
	switch {
	case config.ImageWidth <= 0:
		return fmt.Errorf("%w: image width %d must be positive", ErrInvalidCamera, config.ImageWidth)
	case config.AspectRatio <= 0 || math.IsNaN(config.AspectRatio) || math.IsInf(config.AspectRatio, 0):
		return fmt.Errorf("%w: aspect ratio %g must be positive and finite", ErrInvalidCamera, config.AspectRatio)
	case config.SamplesPerPixel < 0:
		return fmt.Errorf("%w: samples per pixel %d must not be negative", ErrInvalidCamera, config.SamplesPerPixel)
	case config.VFov <= 0 || config.VFov >= 180:
		return fmt.Errorf("%w: vertical field of view %g must be in (0, 180)", ErrInvalidCamera, config.VFov)
	case config.FocusDist <= 0:
		return fmt.Errorf("%w: focus distance %g must be positive", ErrInvalidCamera, config.FocusDist)
	}

	view := config.LookFrom.Subtract(config.LookAt)
	if view.NearZero() {
		return fmt.Errorf("%w: look-from and look-at coincide at %v", ErrInvalidCamera, config.LookFrom)
	}
	if config.Up.Cross(view).NearZero() {
		return fmt.Errorf("%w: up vector %v is parallel to the view direction", ErrInvalidCamera, config.Up)
	}
	return nil
}

// Initialize derives the image height, camera basis, viewport and defocus disk.
// It is idempotent and runs at the start of every render.
func (c *Camera) Initialize() {
	cfg := c.config

	c.imageHeight = int(math.Round(float64(cfg.ImageWidth) / cfg.AspectRatio))
	if c.imageHeight < 1 {
		c.imageHeight = 1
	}

	c.center = cfg.LookFrom

	// Viewport dimensions
	theta := core.DegreesToRadians(cfg.VFov)
	h := math.Tan(theta / 2)
	viewportHeight := 2 * h * cfg.FocusDist
	viewportWidth := viewportHeight * (float64(cfg.ImageWidth) / float64(c.imageHeight))

	// Orthonormal camera basis
	c.w = cfg.LookFrom.Subtract(cfg.LookAt).Normalize()
	c.u = cfg.Up.Cross(c.w).Normalize()
	c.v = c.w.Cross(c.u)

	// Vectors across the horizontal and down the vertical viewport edges
	viewportU := c.u.Multiply(viewportWidth)
	viewportV := c.v.Negate().Multiply(viewportHeight)

	c.pixelDeltaU = viewportU.Divide(float64(cfg.ImageWidth))
	c.pixelDeltaV = viewportV.Divide(float64(c.imageHeight))

	viewportUpperLeft := c.center.
		Subtract(c.w.Multiply(cfg.FocusDist)).
		Subtract(viewportU.Multiply(0.5)).
		Subtract(viewportV.Multiply(0.5))
	c.pixel00Loc = viewportUpperLeft.Add(c.pixelDeltaU.Add(c.pixelDeltaV).Multiply(0.5))

	defocusRadius := cfg.FocusDist * math.Tan(core.DegreesToRadians(cfg.DefocusAngle/2))
	c.defocusDiskU = c.u.Multiply(defocusRadius)
	c.defocusDiskV = c.v.Multiply(defocusRadius)
}

// GetRay returns a ray through a random point of pixel (i, j), originating at the
// camera center or, with depth of field, on the defocus disk
func (c *Camera) GetRay(i, j int, sampler core.Sampler) core.Ray {
	offset := sampleSquare(sampler.Get2D())
	pixelSample := c.pixel00Loc.
		Add(c.pixelDeltaU.Multiply(float64(i) + offset.X)).
		Add(c.pixelDeltaV.Multiply(float64(j) + offset.Y))

	rayOrigin := c.center
	if c.config.DefocusAngle > 0 {
		rayOrigin = c.defocusDiskSample(sampler.Get2D())
	}

	return core.NewRay(rayOrigin, pixelSample.Subtract(rayOrigin))
}

// sampleSquare maps a [0,1)² sample to [-0.5,0.5)²
func sampleSquare(sample core.Vec2) core.Vec2 {
	return core.NewVec2(sample.X-0.5, sample.Y-0.5)
}

func (c *Camera) defocusDiskSample(sample core.Vec2) core.Point {
	p := core.SamplePointInUnitDisk(sample)
	return c.center.Add(c.defocusDiskU.Multiply(p.X)).Add(c.defocusDiskV.Multiply(p.Y))
}

// ImageSize returns the rendered image dimensions
func (c *Camera) ImageSize() (width, height int) {
	return c.config.ImageWidth, c.imageHeight
}

// Config returns the merged configuration the camera was built from
func (c *Camera) Config() CameraConfig {
	return c.config
}

// Basis returns the camera frame vectors u (right), v (up) and w (backward)
func (c *Camera) Basis() (u, v, w core.Vec3) {
	return c.u, c.v, c.w
}

// Render traces world with the path tracing integrator over the default sky and
// streams the image to out
func (c *Camera) Render(world geometry.Hittable, out output.FrameWriter) error {
	rt := NewRaytracer(c, integrator.NewPathTracingIntegrator(nil), nil)
	_, err := rt.Render(context.Background(), world, out)
	return err
}
