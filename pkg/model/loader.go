// pkg/model/loader.go

// Package model loads mesh data for the renderer. A model on disk is a
// triplet of files sharing a path prefix: "<prefix>.met" holds plain-text
// metadata, "<prefix>.ix" raw little-endian uint32 indices and
// "<prefix>.nv" raw little-endian float32 vertex data interleaved as
// normal x,y,z then position x,y,z per vertex.
package model

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/opd-ai/go-asteroids/pkg/config"
)

// FloatsPerVertex is the stride of the interleaved vertex stream. The
// vertex count in the metadata counts floats, not vertices.
const FloatsPerVertex = 6

// Topology selects the primitive type the index data describes.
type Topology int

const (
	Triangles Topology = iota
	Lines
)

// Model is one loaded mesh. Until Pack runs, Indices and Vertices hold
// the staged file data; afterwards they are released and the byte
// offsets locate the mesh inside the combined buffers.
type Model struct {
	Name        string
	Topology    Topology
	IndexCount  int
	VertexCount int

	Indices  []uint32
	Vertices []float32

	IndexOffset  int
	VertexOffset int

	indexSum  string
	vertexSum string
}

// LoadFromFile reads the metadata, index and vertex files for prefix and
// verifies the embedded checksums. Any missing file, zero count, short
// read or checksum mismatch fails the load.
func LoadFromFile(name, prefix string) (*Model, error) {
	m := &Model{Name: name, Topology: Triangles}

	if err := m.readMetadata(prefix + ".met"); err != nil {
		return nil, err
	}

	ixData, err := readExactly(prefix+".ix", m.IndexCount*4)
	if err != nil {
		return nil, err
	}
	m.Indices = make([]uint32, m.IndexCount)
	for i := range m.Indices {
		m.Indices[i] = binary.LittleEndian.Uint32(ixData[i*4:])
	}

	nvData, err := readExactly(prefix+".nv", m.VertexCount*4)
	if err != nil {
		return nil, err
	}
	m.Vertices = make([]float32, m.VertexCount)
	for i := range m.Vertices {
		m.Vertices[i] = math.Float32frombits(binary.LittleEndian.Uint32(nvData[i*4:]))
	}

	if sum := indexChecksum(m.Indices); sum != m.indexSum {
		return nil, fmt.Errorf("model %s: index checksum mismatch, got %s want %s",
			prefix, sum, m.indexSum)
	}
	if sum := vertexChecksum(m.Vertices); sum != m.vertexSum {
		return nil, fmt.Errorf("model %s: vertex checksum mismatch, got %s want %s",
			prefix, sum, m.vertexSum)
	}

	return m, nil
}

// LoadModels loads every configured model in order.
func LoadModels(cfgs []config.ModelConfig) ([]*Model, error) {
	models := make([]*Model, 0, len(cfgs))
	for _, mc := range cfgs {
		m, err := LoadFromFile(mc.Name, mc.Prefix)
		if err != nil {
			return nil, fmt.Errorf("loading model %q: %w", mc.Name, err)
		}
		models = append(models, m)
	}
	return models, nil
}

// readMetadata parses the whitespace-separated key/value lines of a
// .met file.
func (m *Model) readMetadata(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("model metadata: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 {
			continue
		}
		switch fields[0] {
		case "indexcount:":
			m.IndexCount, _ = strconv.Atoi(fields[1])
		case "vertexcount:":
			m.VertexCount, _ = strconv.Atoi(fields[1])
		case "indexsum:":
			m.indexSum = fields[1]
		case "vertexsum:":
			m.vertexSum = fields[1]
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("model metadata %s: %w", path, err)
	}
	if m.IndexCount <= 0 {
		return fmt.Errorf("model metadata %s: missing or zero index count", path)
	}
	if m.VertexCount <= 0 {
		return fmt.Errorf("model metadata %s: missing or zero vertex count", path)
	}
	return nil
}

// readExactly reads a file that must contain at least n bytes of data.
func readExactly(path string, n int) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("model data: %w", err)
	}
	if len(data) < n {
		return nil, fmt.Errorf("model data %s: got %d bytes, want %d", path, len(data), n)
	}
	return data, nil
}

// indexChecksum folds every 64th index pair into a single word, the
// high and low halves of the second index swapped.
func indexChecksum(ix []uint32) string {
	var sum uint32
	for i := 0; i+1 < len(ix); i += 64 {
		sum ^= ix[i]
		sum ^= ix[i+1] >> 16
		sum ^= ix[i+1] << 16
	}
	return strconv.FormatUint(uint64(sum), 16)
}

// vertexChecksum folds the bit pattern of every 64th float.
func vertexChecksum(nv []float32) string {
	var sum uint32
	for i := 0; i < len(nv); i += 64 {
		sum ^= math.Float32bits(nv[i])
	}
	return strconv.FormatUint(uint64(sum), 16)
}

// Buffers hold the combined vertex and index streams of all packed
// models, ready for a single device upload.
type Buffers struct {
	Vertices []float32
	Indices  []uint32
}

// Uploader receives the packed buffers, typically a render backend
// copying them into device memory.
type Uploader interface {
	UploadBuffers(vertices []float32, indices []uint32) error
}

// Pack concatenates the staged data of all models into combined buffers,
// assigns each model its byte offsets and releases the staging slices.
// When up is non-nil the combined buffers are handed to it.
func Pack(models []*Model, up Uploader) (*Buffers, error) {
	var vcount, icount int
	for i, m := range models {
		if m.Indices == nil || m.Vertices == nil {
			return nil, fmt.Errorf("model %s: already packed", m.Name)
		}
		if i > 0 {
			prev := models[i-1]
			m.VertexOffset = prev.VertexOffset + prev.VertexCount*4
			m.IndexOffset = prev.IndexOffset + prev.IndexCount*4
		}
		vcount += m.VertexCount
		icount += m.IndexCount
	}

	b := &Buffers{
		Vertices: make([]float32, 0, vcount),
		Indices:  make([]uint32, 0, icount),
	}
	for _, m := range models {
		b.Vertices = append(b.Vertices, m.Vertices...)
		b.Indices = append(b.Indices, m.Indices...)
		m.Vertices = nil
		m.Indices = nil
	}

	if up != nil {
		if err := up.UploadBuffers(b.Vertices, b.Indices); err != nil {
			return nil, fmt.Errorf("uploading model buffers: %w", err)
		}
	}
	return b, nil
}
