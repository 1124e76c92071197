package render

import (
	"errors"
	"image"

	"github.com/fogleman/fauxgl"
	"github.com/nfnt/resize"
	"github.com/soypat/glgl/math/ms3"
)

// PreviewConfig configures the software rendered preview of a mesh.
type PreviewConfig struct {
	// Output image size in pixels.
	Width, Height int
	// Supersample renders at a multiple of the output size before downsampling.
	Supersample int
	// Camera position, view center and up direction. The mesh is fitted
	// into a bi-unit cube centered at the origin before rendering.
	Eye, LookAt, Up ms3.Vec
	// FovY is the vertical field of view in degrees.
	FovY       float64
	Near, Far  float64
	Light      ms3.Vec
	Background string // Hex color.
	Color      string // Hex color.
}

// DefaultPreviewConfig returns an isometric view configuration.
func DefaultPreviewConfig() PreviewConfig {
	const scale = 0.4 // Relative to Full HD.
	return PreviewConfig{
		Width:       int(1920 * scale),
		Height:      int(1080 * scale),
		Supersample: 2,
		Eye:         ms3.Vec{X: 2.4, Y: 2.4, Z: 2.4},
		Up:          ms3.Vec{Z: 1},
		FovY:        30,
		Near:        1,
		Far:         10,
		Light:       ms3.Vec{X: -0.75, Y: 1, Z: 0.25},
		Background:  "#FFF8E3",
		Color:       "#468966",
	}
}

// Preview renders msh with a Phong shader.
func Preview(msh Mesh, cfg PreviewConfig) (image.Image, error) {
	if msh.TriangleCount() == 0 {
		return nil, errors.New("empty mesh")
	} else if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, errors.New("invalid preview size")
	}
	scale := max(cfg.Supersample, 1)
	var (
		eye    = fauxVec(cfg.Eye)
		center = fauxVec(cfg.LookAt)
		up     = fauxVec(cfg.Up)
		light  = fauxVec(cfg.Light).Normalize()
	)
	mesh := fauxMesh(msh)
	// fit mesh in a bi-unit cube centered at the origin
	mesh.BiUnitCube()
	context := fauxgl.NewContext(cfg.Width*scale, cfg.Height*scale)
	context.ClearColorBufferWith(fauxgl.HexColor(cfg.Background))
	context.Cull = fauxgl.CullNone
	aspect := float64(cfg.Width) / float64(cfg.Height)
	matrix := fauxgl.LookAt(eye, center, up).Perspective(cfg.FovY, aspect, cfg.Near, cfg.Far)
	shader := fauxgl.NewPhongShader(matrix, light, eye)
	shader.ObjectColor = fauxgl.HexColor(cfg.Color)
	context.Shader = shader
	context.DrawMesh(mesh)
	// downsample image for antialiasing
	img := context.Image()
	if scale > 1 {
		img = resize.Resize(uint(cfg.Width), uint(cfg.Height), img, resize.Bilinear)
	}
	return img, nil
}

// SavePNG writes img to a PNG file at path.
func SavePNG(path string, img image.Image) error {
	return fauxgl.SavePNG(path, img)
}

// fauxMesh converts msh to a fauxgl mesh. Normals are flipped to face out of the
// solid for shading.
func fauxMesh(msh Mesh) *fauxgl.Mesh {
	tris := make([]*fauxgl.Triangle, msh.TriangleCount())
	for i := range tris {
		var v [3]fauxgl.Vertex
		for j := range v {
			mv := msh.Vertices[msh.Indices[3*i+j]]
			v[j] = fauxgl.Vertex{
				Position: fauxVec(mv.Position),
				Normal:   fauxVec(ms3.Scale(-1, mv.Normal)),
			}
		}
		tris[i] = fauxgl.NewTriangle(v[0], v[1], v[2])
	}
	return fauxgl.NewTriangleMesh(tris)
}

func fauxVec(v ms3.Vec) fauxgl.Vector {
	return fauxgl.V(float64(v.X), float64(v.Y), float64(v.Z))
}
