package twin

import (
	"sync"

	"github.com/xyzbank/entity-contract-tests/servicedef"
)

// Store is a thread-safe, in-memory entity collection. Entities are listed in the order they
// were created, and IDs are assigned sequentially starting at 1.
type Store struct {
	mu         sync.RWMutex
	items      map[int]servicedef.Entity
	order      []int
	lastID     int
	lastAddnID int
}

func NewStore() *Store {
	return &Store{items: make(map[int]servicedef.Entity)}
}

// Create stores a new entity and returns it with its assigned IDs.
func (s *Store) Create(req servicedef.EntityRequest) servicedef.Entity {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastID++
	e := s.fromRequest(s.lastID, req, nil)
	s.items[e.ID] = e
	s.order = append(s.order, e.ID)
	return copyEntity(e)
}

// Get returns the entity with the given ID, if any.
func (s *Store) Get(id int) (servicedef.Entity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.items[id]
	return copyEntity(e), ok
}

// Replace overwrites every field of an existing entity. An existing addition keeps its ID.
func (s *Store) Replace(id int, req servicedef.EntityRequest) (servicedef.Entity, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	old, ok := s.items[id]
	if !ok {
		return servicedef.Entity{}, false
	}
	e := s.fromRequest(id, req, old.Addition)
	s.items[id] = e
	return copyEntity(e), true
}

// Delete removes an entity and returns true if it existed.
func (s *Store) Delete(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return false
	}
	delete(s.items, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

// List returns the entities for which match returns true, in creation order.
func (s *Store) List(match func(servicedef.Entity) bool) []servicedef.Entity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ret := make([]servicedef.Entity, 0, len(s.order))
	for _, id := range s.order {
		e := s.items[id]
		if match == nil || match(e) {
			ret = append(ret, copyEntity(e))
		}
	}
	return ret
}

// Len returns the number of stored entities.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Must be called with the lock held.
func (s *Store) fromRequest(id int, req servicedef.EntityRequest, oldAddition *servicedef.Addition) servicedef.Entity {
	e := servicedef.Entity{
		ID:               id,
		Title:            req.Title,
		Verified:         req.Verified,
		ImportantNumbers: append([]int{}, req.ImportantNumbers...),
	}
	if req.Addition != nil {
		addnID := 0
		if oldAddition != nil {
			addnID = oldAddition.ID
		} else {
			s.lastAddnID++
			addnID = s.lastAddnID
		}
		e.Addition = &servicedef.Addition{
			ID:               addnID,
			AdditionalInfo:   req.Addition.AdditionalInfo,
			AdditionalNumber: req.Addition.AdditionalNumber,
		}
	}
	return e
}

func copyEntity(e servicedef.Entity) servicedef.Entity {
	e.ImportantNumbers = append([]int{}, e.ImportantNumbers...)
	if e.Addition != nil {
		a := *e.Addition
		e.Addition = &a
	}
	return e
}
