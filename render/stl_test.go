package render_test

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/soypat/glgl/math/ms3"
	"github.com/soypat/mold"
	"github.com/soypat/mold/render"
)

func TestSTLCreateWriteRead(t *testing.T) {
	cyl, err := mold.NewCylinder(0.6, 1.2, 0.1)
	if err != nil {
		t.Fatal(err)
	}
	msh := render.ExtractBox(centeredBox(ms3.Vec{}, ms3.Vec{X: 1.6, Y: 1.6, Z: 1.6}), render.Resolution{X: 20, Y: 20, Z: 20}, cyl)
	path := filepath.Join(t.TempDir(), "cylinder.stl")
	err = render.CreateSTL(path, msh.Reader())
	if err != nil {
		t.Fatal(err)
	}
	bfile, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var b bytes.Buffer
	n, err := render.WriteSTL(&b, msh.Triangles())
	if err != nil {
		t.Fatal(err)
	}
	if n != b.Len() || b.Len() != 84+50*msh.TriangleCount() {
		t.Fatalf("WriteSTL wrote %d bytes, want %d", b.Len(), 84+50*msh.TriangleCount())
	}
	if !bytes.Equal(b.Bytes(), bfile) {
		t.Fatal("WriteSTL and CreateSTL output mismatch")
	}
	model, err := render.ReadSTL(bytes.NewReader(bfile))
	if err != nil {
		t.Fatal(err)
	}
	want := msh.Triangles()
	if len(model) != len(want) {
		t.Fatalf("read %d triangles, want %d", len(model), len(want))
	}
	for i := range model {
		if model[i] != want[i] {
			t.Fatalf("triangle %d: got %v, want %v", i, model[i], want[i])
		}
	}
}

func TestSTLEmpty(t *testing.T) {
	var b bytes.Buffer
	if _, err := render.WriteSTL(&b, nil); err == nil {
		t.Error("expected error writing empty model")
	}
	path := filepath.Join(t.TempDir(), "empty.stl")
	if err := render.CreateSTL(path, render.Mesh{}.Reader()); err == nil {
		t.Error("expected error creating STL of empty mesh")
	}
	if _, err := render.ReadSTL(bytes.NewReader(make([]byte, 84))); err == nil {
		t.Error("expected error reading STL with no triangles")
	}
}

func TestSTLTruncated(t *testing.T) {
	for _, count := range []uint32{1, 3, 0xFFFFFFFF} {
		stl := make([]byte, 84+50)
		binary.LittleEndian.PutUint32(stl[80:], count)
		// Header is followed by a single zeroed triangle, cut short when count is 1.
		body := stl
		if count == 1 {
			body = stl[:84+20]
		}
		_, err := render.ReadSTL(bytes.NewReader(body))
		if !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
			t.Errorf("count %d: want EOF error for truncated body, got %v", count, err)
		}
	}
}
