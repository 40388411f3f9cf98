package gltf

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// ErrNotGLB reports that the input does not start with a version-2 GLB
// header.
var ErrNotGLB = errors.New("gltf: not a GLB blob")

const (
	glbMagic   = 0x46546c67
	glbVersion = 2

	chunkJSON = 0x4e4f534a
	chunkBIN  = 0x004e4942
)

// readGLB splits a GLB stream into its JSON and binary chunks. The JSON
// chunk is mandatory and must come first; the binary chunk is optional.
func readGLB(r io.Reader) (jsonChunk, binChunk []byte, err error) {
	var header [3]uint32
	if err := binary.Read(r, binary.LittleEndian, header[:]); err != nil {
		return nil, nil, ErrNotGLB
	}
	if header[0] != glbMagic || header[1] != glbVersion {
		return nil, nil, ErrNotGLB
	}

	jsonChunk, typ, err := readChunk(r)
	if err != nil {
		return nil, nil, err
	}
	if typ != chunkJSON || len(jsonChunk) == 0 {
		return nil, nil, errors.New("gltf: first GLB chunk is not JSON")
	}

	binChunk, typ, err = readChunk(r)
	switch {
	case errors.Is(err, io.EOF):
		return jsonChunk, nil, nil
	case err != nil:
		return nil, nil, err
	case typ != chunkBIN:
		return nil, nil, fmt.Errorf("gltf: unexpected GLB chunk type %#x", typ)
	}
	return jsonChunk, binChunk, nil
}

func readChunk(r io.Reader) (data []byte, typ uint32, err error) {
	var head [2]uint32
	if err := binary.Read(r, binary.LittleEndian, head[:]); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, 0, io.EOF
		}
		return nil, 0, fmt.Errorf("gltf: read GLB chunk header: %w", err)
	}
	data = make([]byte, head[0])
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, 0, fmt.Errorf("gltf: read GLB chunk payload: %w", err)
	}
	return data, head[1], nil
}
