package lattice

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when no tetrahedron satisfies a query, including
	// solid paths severed by a cut or leaving the tessellation.
	ErrNotFound = errors.New("no tetrahedron found")
	// ErrNoMaterial short circuits queries against surface elements that no
	// longer map to solid material
	ErrNoMaterial = fmt.Errorf("surface element has no material assigned: %w", ErrNotFound)
	// ErrBlocked reports virtual noded candidates no rule can disambiguate
	ErrBlocked = errors.New("ambiguous virtual noded topology")
	// ErrDiverged is a fatal consistency error, the lattice and the embedded
	// surface no longer agree.
	ErrDiverged = errors.New("lattice consistency error")
)
