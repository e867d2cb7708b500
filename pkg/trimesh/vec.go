package trimesh

import (
	"errors"
	"fmt"

	"github.com/chazu/bem/pkg/kernel"
	"github.com/dhconnelly/rtreego"
	"gonum.org/v1/gonum/spatial/r3"
)

// Vec3 is the position type used by the kernel pipeline.
type Vec3 = r3.Vec

// weldPoint is a welded vertex stored in the R-tree.
type weldPoint struct {
	index int
	pos   Vec3
	tol   float64
}

func (p *weldPoint) Bounds() rtreego.Rect {
	return rtreego.Point{p.pos.X, p.pos.Y, p.pos.Z}.ToRect(p.tol)
}

// welder assigns one index to every group of soup vertices lying within
// tolerance of each other.
type welder struct {
	tol       float64
	tree      *rtreego.Rtree
	exact     map[Vec3]int
	positions []Vec3
}

func newWelder(tol float64) *welder {
	w := &welder{tol: tol}
	if tol > 0 {
		w.tree = rtreego.NewTree(3, 25, 50)
	} else {
		w.exact = make(map[Vec3]int)
	}
	return w
}

func (w *welder) index(p Vec3) int {
	if w.tree == nil {
		if i, ok := w.exact[p]; ok {
			return i
		}
		i := len(w.positions)
		w.exact[p] = i
		w.positions = append(w.positions, p)
		return i
	}

	query := rtreego.Point{p.X, p.Y, p.Z}.ToRect(w.tol)
	best := -1
	for _, s := range w.tree.SearchIntersect(query) {
		c := s.(*weldPoint)
		if r3.Norm(r3.Sub(c.pos, p)) > w.tol {
			continue
		}
		if best < 0 || c.index < best {
			best = c.index
		}
	}
	if best >= 0 {
		return best
	}
	i := len(w.positions)
	w.positions = append(w.positions, p)
	w.tree.Insert(&weldPoint{index: i, pos: p, tol: w.tol})
	return i
}

// Weld turns a triangle soup into an indexed mesh by merging vertices that
// lie within tolerance of an earlier vertex. A tolerance of zero merges
// only bit-identical positions. Triangles that collapse onto fewer than
// three distinct vertices are dropped.
func Weld(soup *kernel.Mesh, tolerance float64) (*Mesh[Vec3], error) {
	if soup == nil {
		return nil, errors.New("trimesh: weld: nil mesh")
	}
	if tolerance < 0 {
		return nil, fmt.Errorf("trimesh: weld: negative tolerance %g", tolerance)
	}
	if len(soup.Vertices)%3 != 0 {
		return nil, fmt.Errorf("trimesh: weld: vertex buffer length %d is not a multiple of 3", len(soup.Vertices))
	}
	if len(soup.Indices)%3 != 0 {
		return nil, &UnsupportedFaceArityError{Face: len(soup.Indices) / 3, Arity: len(soup.Indices) % 3}
	}

	w := newWelder(tolerance)
	remap := make([]int, soup.VertexCount())
	for i := range remap {
		x, y, z := soup.Vertex(i)
		remap[i] = w.index(Vec3{X: float64(x), Y: float64(y), Z: float64(z)})
	}

	faces := make([]Face, 0, soup.TriangleCount())
	for i := 0; i < soup.TriangleCount(); i++ {
		tri := soup.Triangle(i)
		var f Face
		for c, v := range tri {
			if int(v) >= len(remap) {
				return nil, &InvalidIndexError{Face: i, Corner: c, Index: int(v), VertexCount: len(remap)}
			}
			f[c] = remap[v]
		}
		if f[0] == f[1] || f[1] == f[2] || f[2] == f[0] {
			continue
		}
		faces = append(faces, f)
	}
	return New(w.positions, faces), nil
}

// ToKernel flattens an indexed mesh into the kernel's render layout with
// area-weighted vertex normals. Indices are shared, not duplicated.
func ToKernel(m *Mesh[Vec3], name string) *kernel.Mesh {
	normals := make([]Vec3, len(m.Positions))
	for _, f := range m.Faces {
		n := faceNormal(m, f)
		for _, v := range f {
			normals[v] = r3.Add(normals[v], n)
		}
	}

	out := &kernel.Mesh{
		Vertices: make([]float32, 0, 3*len(m.Positions)),
		Normals:  make([]float32, 0, 3*len(m.Positions)),
		Indices:  make([]uint32, 0, 3*len(m.Faces)),
		PartName: name,
	}
	for i, p := range m.Positions {
		out.Vertices = append(out.Vertices, float32(p.X), float32(p.Y), float32(p.Z))
		n := normals[i]
		if l := r3.Norm(n); l > 0 {
			n = r3.Scale(1/l, n)
		}
		out.Normals = append(out.Normals, float32(n.X), float32(n.Y), float32(n.Z))
	}
	for _, f := range m.Faces {
		out.Indices = append(out.Indices, uint32(f[0]), uint32(f[1]), uint32(f[2]))
	}
	return out
}

// faceNormal returns the unnormalized face normal, whose length is twice
// the triangle area.
func faceNormal(m *Mesh[Vec3], f Face) Vec3 {
	a, b, c := m.Positions[f[0]], m.Positions[f[1]], m.Positions[f[2]]
	return r3.Cross(r3.Sub(b, a), r3.Sub(c, a))
}

// Area returns the total surface area of the mesh.
func Area(m *Mesh[Vec3]) float64 {
	var sum float64
	for _, f := range m.Faces {
		sum += r3.Norm(faceNormal(m, f)) / 2
	}
	return sum
}
