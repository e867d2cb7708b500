package halfedge

import "fmt"

// ValidationSeverity indicates whether a finding breaks the half-edge
// invariants or is merely informational.
type ValidationSeverity int

const (
	SeverityError   ValidationSeverity = iota // broken invariant
	SeverityWarning                           // informational
)

func (s ValidationSeverity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("ValidationSeverity(%d)", int(s))
	}
}

// ValidationError describes a single validation finding.
type ValidationError struct {
	HalfEdge ID                 // offending record, None for table-level findings
	Message  string             // human-readable description
	Severity ValidationSeverity // error or warning
}

func (e ValidationError) Error() string {
	if e.HalfEdge == None {
		return fmt.Sprintf("[%s] %s", e.Severity, e.Message)
	}
	return fmt.Sprintf("[%s] half-edge %d: %s", e.Severity, e.HalfEdge, e.Message)
}

// Validate checks the structural invariants of the mesh and returns every
// finding. An empty result means the mesh is sound. Faces whose shared
// edge runs the same way in both (inconsistent orientation) are reported
// as warnings, since Build pairs them without repairing the winding.
func (m *Mesh[P]) Validate() []ValidationError {
	var errs []ValidationError
	errs = append(errs, m.validateRecords()...)
	if len(errs) > 0 {
		// Link checks below follow Next and Twin and would index out of range.
		return errs
	}
	errs = append(errs, m.validateCycles()...)
	errs = append(errs, m.validateTwins()...)
	errs = append(errs, m.validateTables()...)
	return errs
}

// HasErrors reports whether any finding is error-severity.
func HasErrors(errs []ValidationError) bool {
	for _, e := range errs {
		if e.Severity == SeverityError {
			return true
		}
	}
	return false
}

func errorf(h ID, format string, args ...any) ValidationError {
	return ValidationError{HalfEdge: h, Message: fmt.Sprintf(format, args...), Severity: SeverityError}
}

// validateRecords checks that every index stored in a record is in range.
func (m *Mesh[P]) validateRecords() []ValidationError {
	var errs []ValidationError
	n := ID(len(m.records))
	for i, r := range m.records {
		h := ID(i)
		if r.Next < 0 || r.Next >= n {
			errs = append(errs, errorf(h, "next %d out of range", r.Next))
		}
		if r.Twin < 0 || r.Twin >= n {
			errs = append(errs, errorf(h, "twin %d out of range", r.Twin))
		}
		if r.Origin < 0 || r.Origin >= len(m.verts) {
			errs = append(errs, errorf(h, "origin vertex %d out of range", r.Origin))
		}
		if r.Face < 0 || r.Face >= len(m.faces) {
			errs = append(errs, errorf(h, "face %d out of range", r.Face))
		}
		if r.Edge < 0 || r.Edge >= len(m.edges) {
			errs = append(errs, errorf(h, "edge %d out of range", r.Edge))
		}
	}
	for name, table := range map[string][]ID{"vertex": m.verts, "edge": m.edges, "face": m.faces} {
		for i, h := range table {
			if h == None && name == "vertex" {
				continue
			}
			if h < 0 || h >= n {
				errs = append(errs, errorf(None, "%s %d representative %d out of range", name, i, h))
			}
		}
	}
	return errs
}

// validateCycles checks that Next forms a three-cycle within one face.
func (m *Mesh[P]) validateCycles() []ValidationError {
	var errs []ValidationError
	for i, r := range m.records {
		h := ID(i)
		b := r.Next
		c := m.records[b].Next
		if m.records[c].Next != h {
			errs = append(errs, errorf(h, "next does not return after three steps"))
			continue
		}
		if m.records[b].Face != r.Face || m.records[c].Face != r.Face {
			errs = append(errs, errorf(h, "next leaves face %d", r.Face))
		}
	}
	return errs
}

// validateTwins checks the twin involution and edge id agreement, and
// counts the half-edges per edge.
func (m *Mesh[P]) validateTwins() []ValidationError {
	var errs []ValidationError
	perEdge := make([]int, len(m.edges))
	for i, r := range m.records {
		h := ID(i)
		perEdge[r.Edge]++
		t := m.records[r.Twin]
		if t.Twin != h {
			errs = append(errs, errorf(h, "twin %d does not point back", r.Twin))
			continue
		}
		if t.Edge != r.Edge {
			errs = append(errs, errorf(h, "twin %d has edge %d, want %d", r.Twin, t.Edge, r.Edge))
		}
		if r.Twin == h {
			continue
		}
		if t.Origin != m.Dest(h) {
			errs = append(errs, ValidationError{
				HalfEdge: h,
				Message:  fmt.Sprintf("faces %d and %d traverse their shared edge in the same direction", r.Face, t.Face),
				Severity: SeverityWarning,
			})
		}
	}
	for e, n := range perEdge {
		if n < 1 || n > 2 {
			errs = append(errs, errorf(None, "edge %d has %d half-edges, want 1 or 2", e, n))
		}
	}
	return errs
}

// validateTables checks that each representative belongs to its slot.
func (m *Mesh[P]) validateTables() []ValidationError {
	var errs []ValidationError
	for v, h := range m.verts {
		if h != None && m.records[h].Origin != v {
			errs = append(errs, errorf(h, "represents vertex %d but starts at %d", v, m.records[h].Origin))
		}
	}
	for e, h := range m.edges {
		if m.records[h].Edge != e {
			errs = append(errs, errorf(h, "represents edge %d but has edge %d", e, m.records[h].Edge))
		}
	}
	for f, h := range m.faces {
		if m.records[h].Face != f {
			errs = append(errs, errorf(h, "represents face %d but belongs to %d", f, m.records[h].Face))
		}
	}
	return errs
}
