package repository

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"sync"

	"github.com/volunteerhub/volunteer-server/internal/volunteer"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryRepo is an in-memory Repository used for local development and tests.
// It mirrors the Mongo repository's semantics: ObjectID keys, upsert on
// update, zero-count deletes.
type MemoryRepo struct {
	mu    sync.RWMutex
	store map[primitive.ObjectID]volunteer.Document
	order []primitive.ObjectID
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{store: make(map[primitive.ObjectID]volunteer.Document)}
}

func (m *MemoryRepo) Find(_ context.Context, f volunteer.Filter, opts volunteer.FindOptions) ([]volunteer.Document, error) {
	m.mu.RLock()
	out := make([]volunteer.Document, 0, len(m.store))
	for _, id := range m.order {
		if d := m.store[id]; f.Matches(d) {
			out = append(out, d.Clone())
		}
	}
	m.mu.RUnlock()

	if opts.Sort != nil {
		field, desc := opts.Sort.Field, opts.Sort.Desc
		sort.SliceStable(out, func(i, j int) bool {
			a, _ := out[i].Lookup(field)
			b, _ := out[j].Lookup(field)
			if desc {
				return less(b, a)
			}
			return less(a, b)
		})
	}

	if opts.Skip > 0 {
		if opts.Skip >= int64(len(out)) {
			return []volunteer.Document{}, nil
		}
		out = out[opts.Skip:]
	}
	if opts.Limit > 0 && opts.Limit < int64(len(out)) {
		out = out[:opts.Limit]
	}
	return out, nil
}

// less orders missing values first, then numbers, then strings, like a
// simplified BSON comparison.
func less(a, b interface{}) bool {
	ra, rb := rank(a), rank(b)
	if ra != rb {
		return ra < rb
	}
	switch av := a.(type) {
	case float64:
		return av < b.(float64)
	case string:
		return av < b.(string)
	}
	return false
}

func rank(v interface{}) int {
	switch v.(type) {
	case nil:
		return 0
	case float64:
		return 1
	case string:
		return 2
	}
	return 3
}

func (m *MemoryRepo) FindByID(_ context.Context, id string) (volunteer.Document, error) {
	oid, err := volunteer.ParseID(id)
	if err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if d, ok := m.store[oid]; ok {
		return d.Clone(), nil
	}
	return nil, nil
}

// Insert stores d under a fresh ObjectID; a client supplied _id is ignored.
func (m *MemoryRepo) Insert(_ context.Context, d volunteer.Document) (InsertResult, error) {
	doc := d.WithoutID()
	oid := primitive.NewObjectID()
	doc[volunteer.FieldID] = oid

	m.mu.Lock()
	defer m.mu.Unlock()
	m.store[oid] = doc
	m.order = append(m.order, oid)
	return InsertResult{Acknowledged: true, InsertedID: oid.Hex()}, nil
}

func (m *MemoryRepo) Upsert(_ context.Context, id string, d volunteer.Document) (UpdateResult, error) {
	oid, err := volunteer.ParseID(id)
	if err != nil {
		return UpdateResult{}, err
	}
	set := d.WithoutID()
	if len(set) == 0 {
		return UpdateResult{}, fmt.Errorf("%w: empty update", volunteer.ErrInvalidDocument)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.store[oid]
	if !ok {
		set[volunteer.FieldID] = oid
		m.store[oid] = set
		m.order = append(m.order, oid)
		hex := oid.Hex()
		return UpdateResult{Acknowledged: true, UpsertedCount: 1, UpsertedID: &hex}, nil
	}
	modified := false
	for k, v := range set {
		if old, had := cur[k]; !had || !reflect.DeepEqual(old, v) {
			cur[k] = v
			modified = true
		}
	}
	res := UpdateResult{Acknowledged: true, MatchedCount: 1}
	if modified {
		res.ModifiedCount = 1
	}
	return res, nil
}

func (m *MemoryRepo) Delete(_ context.Context, id string) (DeleteResult, error) {
	oid, err := volunteer.ParseID(id)
	if err != nil {
		return DeleteResult{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[oid]; !ok {
		return DeleteResult{Acknowledged: true}, nil
	}
	delete(m.store, oid)
	for i, o := range m.order {
		if o == oid {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return DeleteResult{Acknowledged: true, DeletedCount: 1}, nil
}

func (m *MemoryRepo) Count(_ context.Context, f volunteer.Filter) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var n int64
	for _, d := range m.store {
		if f.Matches(d) {
			n++
		}
	}
	return n, nil
}
