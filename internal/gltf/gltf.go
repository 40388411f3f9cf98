// Package gltf reads binary glTF 2.0 (GLB) model files, extracting the
// geometry the scene renders: world-space vertex positions per node and the
// model's bounding box. It is a reader, not a full glTF implementation;
// animations, skins, textures and external buffers are out of scope.
package gltf

import (
	"encoding/json"
	"fmt"
)

// Document mirrors the subset of the glTF JSON schema the reader consumes.
type Document struct {
	Asset struct {
		Version string `json:"version"`
	} `json:"asset"`
	Scene       *int         `json:"scene"`
	Scenes      []Scene      `json:"scenes"`
	Nodes       []Node       `json:"nodes"`
	Meshes      []Mesh       `json:"meshes"`
	Accessors   []Accessor   `json:"accessors"`
	BufferViews []BufferView `json:"bufferViews"`
	Buffers     []Buffer     `json:"buffers"`
}

type Scene struct {
	Name  string `json:"name"`
	Nodes []int  `json:"nodes"`
}

type Node struct {
	Name        string       `json:"name"`
	Children    []int        `json:"children"`
	Mesh        *int         `json:"mesh"`
	Matrix      *[16]float32 `json:"matrix"`
	Translation *[3]float32  `json:"translation"`
	Rotation    *[4]float32  `json:"rotation"` // x, y, z, w
	Scale       *[3]float32  `json:"scale"`
}

type Mesh struct {
	Name       string      `json:"name"`
	Primitives []Primitive `json:"primitives"`
}

// Primitive rendering modes.
const (
	ModePoints    = 0
	ModeTriangles = 4
)

type Primitive struct {
	Attributes map[string]int `json:"attributes"`
	Indices    *int           `json:"indices"`
	Mode       *int           `json:"mode"` // default is ModeTriangles
}

// Accessor component types.
const (
	ComponentUShort = 5123
	ComponentUInt   = 5125
	ComponentFloat  = 5126
)

type Accessor struct {
	BufferView    *int   `json:"bufferView"`
	ByteOffset    int    `json:"byteOffset"`
	ComponentType int    `json:"componentType"`
	Count         int    `json:"count"`
	Type          string `json:"type"`
}

type BufferView struct {
	Buffer     int `json:"buffer"`
	ByteOffset int `json:"byteOffset"`
	ByteLength int `json:"byteLength"`
	ByteStride int `json:"byteStride"`
}

type Buffer struct {
	URI        string `json:"uri"`
	ByteLength int    `json:"byteLength"`
}

func parseDocument(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("gltf: decode JSON chunk: %w", err)
	}
	if doc.Asset.Version != "2.0" {
		return nil, fmt.Errorf("gltf: unsupported asset version %q", doc.Asset.Version)
	}
	return &doc, nil
}
