package namespace

import "fmt"

// Ordered collection of namespaces with at most one entry per [Type].
//
// The zero value is an empty set ready to use.
type Set struct {
	list []Namespace
}

// Adds a namespace to the set.
//
// Returns [ErrDuplicateNamespace] when a namespace of the same type is
// already present, whatever the paths involved. The set is left unchanged
// in that case.
func (s *Set) Insert(ns Namespace) error {
	if s.Contains(ns.Type) {
		return fmt.Errorf("%w: %s", ErrDuplicateNamespace, ns.Type)
	}
	s.list = append(s.list, ns)
	return nil
}

// Returns true if the set holds a namespace of the given type.
func (s *Set) Contains(t Type) bool {
	_, ok := s.Get(t)
	return ok
}

// Returns the namespace of the given type, if present.
func (s *Set) Get(t Type) (Namespace, bool) {
	for _, ns := range s.list {
		if ns.Type == t {
			return ns, true
		}
	}
	return Namespace{}, false
}

// Returns true if the set creates (rather than joins) a namespace of the
// given type.
func (s *Set) Creates(t Type) bool {
	ns, ok := s.Get(t)
	return ok && !ns.IsJoin()
}

// Returns the namespaces in insertion order. The returned slice is a copy.
func (s *Set) List() []Namespace {
	return append([]Namespace(nil), s.list...)
}

// Returns the number of namespaces in the set.
func (s *Set) Len() int {
	return len(s.list)
}

// Returns the namespaces to create, in insertion order.
func (s *Set) ToCreate() []Namespace {
	return s.filter(false)
}

// Returns the namespaces to join, in insertion order.
func (s *Set) ToJoin() []Namespace {
	return s.filter(true)
}

func (s *Set) filter(join bool) []Namespace {
	var out []Namespace
	for _, ns := range s.list {
		if ns.IsJoin() == join {
			out = append(out, ns)
		}
	}
	return out
}

// Returns the clone flags that create every namespace of the create
// partition. Joined namespaces contribute nothing.
func (s *Set) CloneFlags() uintptr {
	var flags uintptr
	for _, ns := range s.ToCreate() {
		flags |= ns.Type.CloneFlag()
	}
	return flags
}
