package render

import (
	"testing"

	"cogentcore.org/core/math32"
)

func makeVerts(n int) []math32.Vector3 {
	out := make([]math32.Vector3, n)
	for i := range out {
		out[i] = math32.Vec3(float32(i), float32(i*2), 0)
	}
	return out
}

func TestChunkVertices(t *testing.T) {
	tests := []struct {
		name       string
		n          int
		ceiling    int
		wantChunks int
	}{
		{"empty", 0, 100, 0},
		{"single vertex", 1, 100, 1},
		{"under ceiling", 99, 100, 1},
		{"at ceiling", 100, 100, 1},
		{"just over", 101, 100, 2},
		{"72k import", 72000, DefaultChunkCeiling, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks := chunkVertices(makeVerts(tt.n), tt.ceiling)
			if len(chunks) != tt.wantChunks {
				t.Fatalf("got %d chunks, want %d", len(chunks), tt.wantChunks)
			}
			for i, c := range chunks {
				if len(c.Vertices) > tt.ceiling {
					t.Errorf("chunk %d has %d vertices, over ceiling %d",
						i, len(c.Vertices), tt.ceiling)
				}
			}
		})
	}
}

func TestChunkVertices_SeamOverlap(t *testing.T) {
	verts := makeVerts(72000)
	chunks := chunkVertices(verts, DefaultChunkCeiling)
	if len(chunks) < 2 {
		t.Fatalf("got %d chunks, want several", len(chunks))
	}

	// Consecutive chunks share exactly one boundary vertex.
	for i := 1; i < len(chunks); i++ {
		prev := chunks[i-1].Vertices
		cur := chunks[i].Vertices
		if prev[len(prev)-1] != cur[0] {
			t.Errorf("chunks %d/%d do not share their boundary vertex", i-1, i)
		}
		if len(cur) > 1 && prev[len(prev)-2] == cur[1] {
			t.Errorf("chunks %d/%d overlap by more than one vertex", i-1, i)
		}
	}
}

func TestChunkVertices_Reconstruction(t *testing.T) {
	verts := makeVerts(72000)
	chunks := chunkVertices(verts, DefaultChunkCeiling)

	// Concatenating chunks and de-duplicating the seams must give back
	// the original polyline exactly.
	var rebuilt []math32.Vector3
	for i, c := range chunks {
		vs := c.Vertices
		if i > 0 {
			vs = vs[1:]
		}
		rebuilt = append(rebuilt, vs...)
	}
	if len(rebuilt) != len(verts) {
		t.Fatalf("rebuilt %d vertices, want %d", len(rebuilt), len(verts))
	}
	for i := range verts {
		if rebuilt[i] != verts[i] {
			t.Fatalf("vertex %d = %v, want %v", i, rebuilt[i], verts[i])
		}
	}
}

func TestFlatten(t *testing.T) {
	data := flatten([]math32.Vector3{math32.Vec3(1, 2, 3), math32.Vec3(4, 5, 6)})
	want := []float32{1, 2, 3, 4, 5, 6}
	if len(data) != len(want) {
		t.Fatalf("len = %d, want %d", len(data), len(want))
	}
	for i := range want {
		if data[i] != want[i] {
			t.Errorf("data[%d] = %v, want %v", i, data[i], want[i])
		}
	}
}
