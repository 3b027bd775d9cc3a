package hooks

import (
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/vnlattice/bcc/lattice"
)

var (
	ErrNoHook = errors.New("no such hook")
	// ErrInactive means the hook has no solver constraint to move yet
	ErrInactive = errors.New("hook has no active constraint")
)

// Solver is the constraint solver holding a spring from each hook target to an
// anchor inside a moving tet
type Solver interface {
	AddHook(tet int, w lattice.Barycentric, target r3.Vec, strong bool) (constraint int)
	MoveHook(constraint int, target r3.Vec)
	DeleteHook(constraint int)
}

type Hook struct {
	ID       int
	Triangle int
	UV       [2]float64
	// Target is the material position the hook pulls its anchor toward
	Target     r3.Vec
	Strong     bool
	Selected   bool
	Anchor     lattice.Anchor
	Constraint int // -1 until a solver holds it
}

/*
Hooks attaches points of the embedding surface to user positions. Each hook is
kept as a triangle and uv so its anchor can be found again after the lattice
changes, tet indices do not survive a cut.
*/
type Hooks struct {
	lt     *lattice.Lattice
	surf   lattice.Surface
	solver Solver
	log    *zap.Logger
	hooks  map[int]*Hook
	next   int
}

// New returns an empty registry, a nil solver leaves every hook inactive
func New(lt *lattice.Lattice, surf lattice.Surface, solver Solver, log *zap.Logger) *Hooks {
	if log == nil {
		log = zap.NewNop()
	}
	return &Hooks{
		lt:     lt,
		surf:   surf,
		solver: solver,
		log:    log,
		hooks:  make(map[int]*Hook),
	}
}

func (h *Hooks) Len() int { return len(h.hooks) }

// IDs returns the hook IDs in ascending order
func (h *Hooks) IDs() (ids []int) {
	for id := range h.hooks {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return
}

func (h *Hooks) Hook(id int) (hk Hook, ok bool) {
	var p *Hook
	if p, ok = h.hooks[id]; ok {
		hk = *p
	}
	return
}

// AddHook attaches a hook at uv on triangle tri with its target at the surface
// point, and selects it
func (h *Hooks) AddHook(tri int, uv [2]float64, strong bool) (id int, err error) {
	var a lattice.Anchor
	if a, err = h.lt.TriangleAnchor(h.surf, tri, uv); err != nil {
		return -1, fmt.Errorf("unable to hook triangle %d: %w", tri, err)
	}
	id = h.next
	h.next++
	hk := &Hook{
		ID:         id,
		Triangle:   tri,
		UV:         uv,
		Target:     h.lt.BarycentricToMaterial(a.Tet, a.Weights),
		Strong:     strong,
		Anchor:     a,
		Constraint: -1,
	}
	h.hooks[id] = hk
	h.activate(hk)
	h.SelectHook(id)
	return
}

func (h *Hooks) activate(hk *Hook) {
	if h.solver != nil {
		hk.Constraint = h.solver.AddHook(hk.Anchor.Tet, hk.Anchor.Weights, hk.Target, hk.Strong)
	}
}

// DeleteHook removes a hook and its constraint, unknown IDs are ignored
func (h *Hooks) DeleteHook(id int) {
	hk, ok := h.hooks[id]
	if !ok {
		return
	}
	if hk.Constraint > -1 && h.solver != nil {
		h.solver.DeleteHook(hk.Constraint)
	}
	delete(h.hooks, id)
}

// SelectHook marks hook id as the only selected hook, -1 clears the selection
func (h *Hooks) SelectHook(id int) {
	for hid, hk := range h.hooks {
		hk.Selected = hid == id
	}
}

// Selected returns the selected hook ID or -1
func (h *Hooks) Selected() int {
	for id, hk := range h.hooks {
		if hk.Selected {
			return id
		}
	}
	return -1
}

// SetHookPosition moves the target of an active hook
func (h *Hooks) SetHookPosition(id int, target r3.Vec) error {
	hk, ok := h.hooks[id]
	if !ok {
		return fmt.Errorf("hook %d: %w", id, ErrNoHook)
	}
	if hk.Constraint < 0 || h.solver == nil {
		return fmt.Errorf("hook %d: %w", id, ErrInactive)
	}
	hk.Target = target
	h.solver.MoveHook(hk.Constraint, target)
	return nil
}

/*
UpdateHookPhysics re-resolves every hook after a topology change and hands the
new anchors to the solver, whose constraints are assumed cleared. Hooks whose
triangle lost its material are deleted. A hook that can no longer be located
is deleted and the update fails.
*/
func (h *Hooks) UpdateHookPhysics() error {
	for _, id := range h.IDs() {
		hk := h.hooks[id]
		if !h.surf.TriangleMaterial(hk.Triangle) {
			h.log.Info("deleting hook without material",
				zap.Int("hook", id), zap.Int("triangle", hk.Triangle))
			delete(h.hooks, id)
			continue
		}
		a, err := h.lt.TriangleAnchor(h.surf, hk.Triangle, hk.UV)
		if err != nil {
			delete(h.hooks, id)
			return fmt.Errorf("hook %d lost its anchor: %w", id, err)
		}
		hk.Anchor = a
		hk.Constraint = -1
		h.activate(hk)
	}
	return nil
}
