package gltf

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/go-gl/mathgl/mgl32"
)

// NodeKind is the closed set of node variants the scene distinguishes.
type NodeKind int

const (
	KindGroup NodeKind = iota
	KindMesh
	KindPoints
)

func (k NodeKind) String() string {
	switch k {
	case KindMesh:
		return "mesh"
	case KindPoints:
		return "points"
	default:
		return "group"
	}
}

// ModelNode is one flattened scene-graph node. Mesh and points nodes carry
// world-space vertex positions (triangle lists already de-indexed); group
// nodes carry none.
type ModelNode struct {
	Name      string
	Kind      NodeKind
	Positions []mgl32.Vec3
}

// Model is a loaded GLB asset.
type Model struct {
	Nodes []ModelNode
	Min   mgl32.Vec3
	Max   mgl32.Vec3
}

// LoadFile reads and decodes a GLB file.
func LoadFile(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("gltf: open %s: %w", path, err)
	}
	defer f.Close()
	m, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("gltf: %s: %w", path, err)
	}
	return m, nil
}

// Decode reads a GLB stream into a Model.
func Decode(r io.Reader) (*Model, error) {
	jsonChunk, binChunk, err := readGLB(r)
	if err != nil {
		return nil, err
	}
	doc, err := parseDocument(jsonChunk)
	if err != nil {
		return nil, err
	}

	ld := &loader{doc: doc, bin: binChunk}
	m := &Model{
		Min: mgl32.Vec3{float32(math.Inf(1)), float32(math.Inf(1)), float32(math.Inf(1))},
		Max: mgl32.Vec3{float32(math.Inf(-1)), float32(math.Inf(-1)), float32(math.Inf(-1))},
	}

	for _, root := range doc.rootNodes() {
		if err := ld.flatten(m, root, mgl32.Ident4()); err != nil {
			return nil, err
		}
	}
	if len(m.Nodes) == 0 || m.Min.X() > m.Max.X() {
		return nil, fmt.Errorf("gltf: model has no geometry")
	}
	return m, nil
}

// Walk visits every node in flattening order.
func (m *Model) Walk(fn func(ModelNode)) {
	for _, n := range m.Nodes {
		fn(n)
	}
}

// TrianglePositions concatenates the positions of all mesh nodes.
func (m *Model) TrianglePositions() []mgl32.Vec3 {
	var out []mgl32.Vec3
	for _, n := range m.Nodes {
		if n.Kind == KindMesh {
			out = append(out, n.Positions...)
		}
	}
	return out
}

func (d *Document) rootNodes() []int {
	if len(d.Scenes) > 0 {
		idx := 0
		if d.Scene != nil {
			idx = *d.Scene
		}
		if idx >= 0 && idx < len(d.Scenes) {
			return d.Scenes[idx].Nodes
		}
	}
	// No scene: treat every node as a root. Child duplication is accepted
	// for such malformed files.
	roots := make([]int, len(d.Nodes))
	for i := range roots {
		roots[i] = i
	}
	return roots
}

type loader struct {
	doc *Document
	bin []byte
}

func (ld *loader) flatten(m *Model, idx int, parent mgl32.Mat4) error {
	if idx < 0 || idx >= len(ld.doc.Nodes) {
		return fmt.Errorf("gltf: node index %d out of range", idx)
	}
	node := ld.doc.Nodes[idx]
	world := parent.Mul4(nodeTransform(node))

	out := ModelNode{Name: node.Name, Kind: KindGroup}
	if node.Mesh != nil {
		if *node.Mesh < 0 || *node.Mesh >= len(ld.doc.Meshes) {
			return fmt.Errorf("gltf: mesh index %d out of range", *node.Mesh)
		}
		for _, prim := range ld.doc.Meshes[*node.Mesh].Primitives {
			kind, positions, err := ld.primitive(prim, world)
			if err != nil {
				return err
			}
			out.Kind = kind
			out.Positions = append(out.Positions, positions...)
		}
		for _, p := range out.Positions {
			m.Min = minVec3(m.Min, p)
			m.Max = maxVec3(m.Max, p)
		}
	}
	m.Nodes = append(m.Nodes, out)

	for _, child := range node.Children {
		if err := ld.flatten(m, child, world); err != nil {
			return err
		}
	}
	return nil
}

func (ld *loader) primitive(prim Primitive, world mgl32.Mat4) (NodeKind, []mgl32.Vec3, error) {
	kind := KindMesh
	if prim.Mode != nil && *prim.Mode == ModePoints {
		kind = KindPoints
	}

	posIdx, ok := prim.Attributes["POSITION"]
	if !ok {
		return kind, nil, fmt.Errorf("gltf: primitive has no POSITION attribute")
	}
	raw, err := ld.vec3Accessor(posIdx)
	if err != nil {
		return kind, nil, err
	}

	var positions []mgl32.Vec3
	if prim.Indices != nil {
		indices, err := ld.indexAccessor(*prim.Indices)
		if err != nil {
			return kind, nil, err
		}
		positions = make([]mgl32.Vec3, 0, len(indices))
		for _, i := range indices {
			if int(i) >= len(raw) {
				return kind, nil, fmt.Errorf("gltf: index %d past %d positions", i, len(raw))
			}
			positions = append(positions, raw[i])
		}
	} else {
		positions = raw
	}

	for i, p := range positions {
		positions[i] = mgl32.TransformCoordinate(p, world)
	}
	return kind, positions, nil
}

func (ld *loader) vec3Accessor(idx int) ([]mgl32.Vec3, error) {
	acc, view, err := ld.accessor(idx)
	if err != nil {
		return nil, err
	}
	if acc.ComponentType != ComponentFloat || acc.Type != "VEC3" {
		return nil, fmt.Errorf("gltf: accessor %d: want float VEC3, got %d %s", idx, acc.ComponentType, acc.Type)
	}
	stride := view.ByteStride
	if stride == 0 {
		stride = 12
	}
	data, err := ld.viewData(view, acc.ByteOffset, acc.Count, stride, 12)
	if err != nil {
		return nil, fmt.Errorf("gltf: accessor %d: %w", idx, err)
	}

	out := make([]mgl32.Vec3, acc.Count)
	for i := range out {
		off := i * stride
		out[i] = mgl32.Vec3{
			math.Float32frombits(binary.LittleEndian.Uint32(data[off:])),
			math.Float32frombits(binary.LittleEndian.Uint32(data[off+4:])),
			math.Float32frombits(binary.LittleEndian.Uint32(data[off+8:])),
		}
	}
	return out, nil
}

func (ld *loader) indexAccessor(idx int) ([]uint32, error) {
	acc, view, err := ld.accessor(idx)
	if err != nil {
		return nil, err
	}
	var size int
	switch acc.ComponentType {
	case ComponentUShort:
		size = 2
	case ComponentUInt:
		size = 4
	default:
		return nil, fmt.Errorf("gltf: accessor %d: unsupported index component type %d", idx, acc.ComponentType)
	}
	stride := view.ByteStride
	if stride == 0 {
		stride = size
	}
	data, err := ld.viewData(view, acc.ByteOffset, acc.Count, stride, size)
	if err != nil {
		return nil, fmt.Errorf("gltf: accessor %d: %w", idx, err)
	}

	out := make([]uint32, acc.Count)
	for i := range out {
		off := i * stride
		if size == 2 {
			out[i] = uint32(binary.LittleEndian.Uint16(data[off:]))
		} else {
			out[i] = binary.LittleEndian.Uint32(data[off:])
		}
	}
	return out, nil
}

func (ld *loader) accessor(idx int) (Accessor, BufferView, error) {
	if idx < 0 || idx >= len(ld.doc.Accessors) {
		return Accessor{}, BufferView{}, fmt.Errorf("gltf: accessor index %d out of range", idx)
	}
	acc := ld.doc.Accessors[idx]
	if acc.BufferView == nil {
		return Accessor{}, BufferView{}, fmt.Errorf("gltf: accessor %d has no buffer view", idx)
	}
	if acc.ByteOffset < 0 {
		return Accessor{}, BufferView{}, fmt.Errorf("gltf: accessor %d has negative byte offset %d", idx, acc.ByteOffset)
	}
	if *acc.BufferView < 0 || *acc.BufferView >= len(ld.doc.BufferViews) {
		return Accessor{}, BufferView{}, fmt.Errorf("gltf: buffer view index %d out of range", *acc.BufferView)
	}
	view := ld.doc.BufferViews[*acc.BufferView]
	if view.ByteOffset < 0 || view.ByteLength <= 0 {
		return Accessor{}, BufferView{}, fmt.Errorf("gltf: buffer view %d has invalid extent offset=%d length=%d", *acc.BufferView, view.ByteOffset, view.ByteLength)
	}
	if view.Buffer != 0 || (len(ld.doc.Buffers) > 0 && ld.doc.Buffers[view.Buffer].URI != "") {
		return Accessor{}, BufferView{}, fmt.Errorf("gltf: only the embedded GLB buffer is supported")
	}
	return acc, view, nil
}

// viewData bounds-checks an accessor's span within its buffer view and the
// binary chunk, returning the slice starting at the accessor's offset.
func (ld *loader) viewData(view BufferView, byteOffset, count, stride, elemSize int) ([]byte, error) {
	if count <= 0 {
		return nil, fmt.Errorf("invalid element count %d", count)
	}
	if stride < elemSize {
		return nil, fmt.Errorf("invalid byte stride %d", stride)
	}
	span := (count-1)*stride + elemSize
	if byteOffset+span > view.ByteLength {
		return nil, fmt.Errorf("accessor span %d exceeds buffer view length %d", byteOffset+span, view.ByteLength)
	}
	start := view.ByteOffset + byteOffset
	if start+span > len(ld.bin) {
		return nil, fmt.Errorf("buffer view exceeds binary chunk length %d", len(ld.bin))
	}
	return ld.bin[start : start+span], nil
}

func nodeTransform(n Node) mgl32.Mat4 {
	if n.Matrix != nil {
		return mgl32.Mat4(*n.Matrix)
	}
	m := mgl32.Ident4()
	if n.Translation != nil {
		m = m.Mul4(mgl32.Translate3D(n.Translation[0], n.Translation[1], n.Translation[2]))
	}
	if n.Rotation != nil {
		q := mgl32.Quat{
			W: n.Rotation[3],
			V: mgl32.Vec3{n.Rotation[0], n.Rotation[1], n.Rotation[2]},
		}
		m = m.Mul4(q.Mat4())
	}
	if n.Scale != nil {
		m = m.Mul4(mgl32.Scale3D(n.Scale[0], n.Scale[1], n.Scale[2]))
	}
	return m
}

func minVec3(a, b mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{
		float32(math.Min(float64(a.X()), float64(b.X()))),
		float32(math.Min(float64(a.Y()), float64(b.Y()))),
		float32(math.Min(float64(a.Z()), float64(b.Z()))),
	}
}

func maxVec3(a, b mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{
		float32(math.Max(float64(a.X()), float64(b.X()))),
		float32(math.Max(float64(a.Y()), float64(b.Y()))),
		float32(math.Max(float64(a.Z()), float64(b.Z()))),
	}
}
