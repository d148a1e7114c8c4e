package render

import "cogentcore.org/core/math32"

// DefaultChunkCeiling is the maximum vertex count per uploaded chunk.
// Very large imported CAD linework is split so no single draw call
// exhausts device buffer limits.
const DefaultChunkCeiling = 15000

// Chunk is one contiguous run of line-strip vertices. Consecutive
// chunks of the same entity overlap by exactly one vertex so the seam
// stays visually continuous.
type Chunk struct {
	Vertices []math32.Vector3
	// Buffer is the uploaded device buffer, zero when the chunk is
	// CPU-side only.
	Buffer BufferRef
}

// chunkVertices splits a polyline into chunks of at most ceiling
// vertices with a 1-vertex overlap between consecutive chunks.
// Concatenating the chunks and dropping each chunk's first vertex
// after the first chunk reconstructs the original polyline exactly.
func chunkVertices(verts []math32.Vector3, ceiling int) []Chunk {
	if ceiling <= 1 {
		ceiling = DefaultChunkCeiling
	}
	if len(verts) == 0 {
		return nil
	}
	if len(verts) <= ceiling {
		return []Chunk{{Vertices: verts}}
	}

	var chunks []Chunk
	start := 0
	for start < len(verts)-1 {
		end := start + ceiling
		if end > len(verts) {
			end = len(verts)
		}
		chunks = append(chunks, Chunk{Vertices: verts[start:end]})
		if end == len(verts) {
			break
		}
		// The next chunk repeats this chunk's last vertex.
		start = end - 1
	}
	return chunks
}

// flatten packs vertices into the float32 triples an Uploader takes.
func flatten(verts []math32.Vector3) []float32 {
	out := make([]float32, 0, len(verts)*3)
	for _, v := range verts {
		out = append(out, v.X, v.Y, v.Z)
	}
	return out
}
