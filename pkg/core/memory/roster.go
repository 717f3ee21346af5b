package memory

import (
	"studentdb/pkg/common"
	"sync"

	"github.com/google/btree"
)

type Item struct {
	Rec common.Record
}

func (i Item) Less(than btree.Item) bool {
	return common.CompareIDs(i.Rec.ID, than.(Item).Rec.ID) < 0
}

// Roster is the in-memory student collection, ordered by numeric id.
type Roster struct {
	tree *btree.BTree
	lock sync.RWMutex
}

func NewRoster(degree int) *Roster {
	return &Roster{
		tree: btree.New(degree),
	}
}

// Put inserts rec or replaces the record with an equal id. It reports
// whether a record was replaced.
func (r *Roster) Put(rec common.Record) bool {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.tree.ReplaceOrInsert(Item{Rec: rec}) != nil
}

func (r *Roster) Get(id common.StudentID) (common.Record, bool) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	res := r.tree.Get(Item{Rec: common.Record{ID: id}})
	if res == nil {
		return common.Record{}, false
	}
	return res.(Item).Rec, true
}

func (r *Roster) Has(id common.StudentID) bool {
	r.lock.RLock()
	defer r.lock.RUnlock()
	return r.tree.Has(Item{Rec: common.Record{ID: id}})
}

func (r *Roster) Delete(id common.StudentID) bool {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.tree.Delete(Item{Rec: common.Record{ID: id}}) != nil
}

// Snapshot returns a fresh slice the caller owns.
func (r *Roster) Snapshot() []common.Record {
	r.lock.RLock()
	defer r.lock.RUnlock()

	out := make([]common.Record, 0, r.tree.Len())
	r.tree.Ascend(func(i btree.Item) bool {
		out = append(out, i.(Item).Rec)
		return true
	})
	return out
}

func (r *Roster) Clear() {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.tree.Clear(false)
}

func (r *Roster) Count() int {
	r.lock.RLock()
	defer r.lock.RUnlock()
	return r.tree.Len()
}
