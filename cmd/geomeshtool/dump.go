package main

import (
	"bufio"
	"encoding/binary"
	"os"

	"github.com/Faultbox/geomesh/pkg/tessellate"
)

// Binary dump layout, little endian:
//
//	magic "GMSH", uint32 mesh count, then per mesh:
//	uint8 primitive, uint8 size,
//	uint32 position count + float32 values,
//	uint32 color byte count + bytes,
//	uint32 batch-id count + uint32 values,
//	uint32 index count + uint16 values,
//	16 x float64 local-to-world matrix.
func writeMeshes(path string, meshes []*tessellate.Mesh) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if _, err := w.WriteString("GMSH"); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(len(meshes))); err != nil {
		return err
	}
	for _, m := range meshes {
		if err := writeMesh(w, m); err != nil {
			return err
		}
	}
	return w.Flush()
}

func writeMesh(w *bufio.Writer, m *tessellate.Mesh) error {
	le := binary.LittleEndian
	if err := binary.Write(w, le, [2]uint8{uint8(m.Primitive), uint8(m.Size)}); err != nil {
		return err
	}
	if err := binary.Write(w, le, uint32(len(m.Positions))); err != nil {
		return err
	}
	if err := binary.Write(w, le, m.Positions); err != nil {
		return err
	}
	if err := binary.Write(w, le, uint32(len(m.Colors))); err != nil {
		return err
	}
	if err := binary.Write(w, le, m.Colors); err != nil {
		return err
	}
	if err := binary.Write(w, le, uint32(len(m.BatchIDs))); err != nil {
		return err
	}
	if err := binary.Write(w, le, m.BatchIDs); err != nil {
		return err
	}
	if err := binary.Write(w, le, uint32(len(m.Indices))); err != nil {
		return err
	}
	if err := binary.Write(w, le, m.Indices); err != nil {
		return err
	}
	return binary.Write(w, le, m.Matrix)
}
