package render

import (
	"errors"
	"io"
	"os"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// GLTFDocument builds a glTF document holding msh as a single indexed triangle
// primitive with positions, normals and texture coordinates.
func GLTFDocument(msh Mesh, name string) (*gltf.Document, error) {
	if len(msh.Indices) == 0 {
		return nil, errors.New("empty mesh")
	} else if len(msh.Indices)%3 != 0 {
		return nil, errors.New("mesh index count not a multiple of 3")
	}
	positions := make([][3]float32, len(msh.Vertices))
	normals := make([][3]float32, len(msh.Vertices))
	coords := make([][2]float32, len(msh.Vertices))
	for i, v := range msh.Vertices {
		positions[i] = arrayFromVec(v.Position)
		normals[i] = arrayFromVec(v.Normal)
		coords[i] = v.Coords
	}
	doc := gltf.NewDocument()
	prim := &gltf.Primitive{
		Mode: gltf.PrimitiveTriangles,
		Attributes: map[string]int{
			gltf.POSITION:   modeler.WritePosition(doc, positions),
			gltf.NORMAL:     modeler.WriteNormal(doc, normals),
			gltf.TEXCOORD_0: modeler.WriteTextureCoord(doc, coords),
		},
		Indices: gltf.Index(modeler.WriteIndices(doc, msh.Indices)),
	}
	doc.Meshes = append(doc.Meshes, &gltf.Mesh{Name: name, Primitives: []*gltf.Primitive{prim}})
	doc.Nodes = append(doc.Nodes, &gltf.Node{Name: name, Mesh: gltf.Index(len(doc.Meshes) - 1)})
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, len(doc.Nodes)-1)
	return doc, nil
}

// WriteGLB encodes msh as a binary glTF (GLB) stream.
func WriteGLB(w io.Writer, msh Mesh, name string) error {
	doc, err := GLTFDocument(msh, name)
	if err != nil {
		return err
	}
	enc := gltf.NewEncoder(w)
	enc.AsBinary = true
	return enc.Encode(doc)
}

// CreateGLTF writes msh to a binary glTF file at path.
func CreateGLTF(path string, msh Mesh, name string) error {
	fp, err := os.Create(path)
	if err != nil {
		return err
	}
	defer fp.Close()
	err = WriteGLB(fp, msh, name)
	if err != nil {
		return err
	}
	return fp.Close()
}
