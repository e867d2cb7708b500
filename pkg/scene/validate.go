package scene

import "fmt"

// ValidationSeverity indicates whether a validation finding blocks
// tessellation or is merely informational.
type ValidationSeverity int

const (
	SeverityError   ValidationSeverity = iota // blocks tessellation
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
	Part     string             // which part has the problem (empty if scene-level)
	Message  string             // human-readable description
	Severity ValidationSeverity // error or warning
}

func (e ValidationError) Error() string {
	if e.Part == "" {
		return fmt.Sprintf("[%s] %s", e.Severity, e.Message)
	}
	return fmt.Sprintf("[%s] part %q: %s", e.Severity, e.Part, e.Message)
}

// Validate checks every part and returns all findings. An empty slice
// means the scene can be tessellated. It never mutates the scene.
func Validate(s *Scene) []ValidationError {
	var errs []ValidationError
	for i, p := range s.Parts {
		if p == nil {
			errs = append(errs, ValidationError{
				Message:  fmt.Sprintf("part %d is nil", i),
				Severity: SeverityError,
			})
			continue
		}
		errs = append(errs, validatePart(p)...)
	}
	return errs
}

func validatePart(p *Part) []ValidationError {
	var errs []ValidationError
	bad := func(sev ValidationSeverity, format string, args ...any) {
		errs = append(errs, ValidationError{Part: p.Name, Message: fmt.Sprintf(format, args...), Severity: sev})
	}

	if p.Name == "" {
		bad(SeverityError, "part has no name")
	}
	switch p.Kind {
	case PartMesh:
		if p.Mesh == nil {
			bad(SeverityError, "mesh part has no mesh")
			break
		}
		if err := p.Mesh.Validate(); err != nil {
			bad(SeverityError, "%v", err)
		}
		if p.Mesh.IsEmpty() {
			bad(SeverityWarning, "mesh has no faces")
		}
	case PartSolid:
		if p.Solid == nil {
			bad(SeverityError, "solid part has no solid")
		}
	default:
		bad(SeverityError, "unknown part kind %v", p.Kind)
	}
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
