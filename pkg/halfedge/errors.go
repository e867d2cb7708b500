package halfedge

import (
	"errors"
	"fmt"
)

// ErrNonManifold matches any *NonManifoldEdgeError under errors.Is.
var ErrNonManifold = errors.New("halfedge: non-manifold edge")

// NonManifoldEdgeError reports an undirected edge shared by more than two
// faces. Build does not repair such input.
type NonManifoldEdgeError struct {
	A, B  int   // edge endpoints, A < B
	Faces []int // every face using the edge, ascending
}

func (e *NonManifoldEdgeError) Error() string {
	return fmt.Sprintf("halfedge: edge %d-%d is shared by %d faces %v, at most 2 allowed",
		e.A, e.B, len(e.Faces), e.Faces)
}

// Is lets errors.Is(err, ErrNonManifold) succeed.
func (e *NonManifoldEdgeError) Is(target error) bool {
	return target == ErrNonManifold
}
