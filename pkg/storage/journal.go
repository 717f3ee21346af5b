package storage

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"slices"

	"studentdb/pkg/common"
)

// JournalBackend keeps the collection as an append-only log of puts, deletes
// and whole-collection replacements. LoadAll replays it; the last operation
// per id wins.
type JournalBackend struct {
	wal *WAL
}

func NewJournalBackend(path string) (*JournalBackend, error) {
	w, err := OpenWAL(path)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	return &JournalBackend{wal: w}, nil
}

func (j *JournalBackend) Write(rec common.Record) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return j.wal.Append(OpPut, payload)
}

func (j *JournalBackend) Delete(id common.StudentID) error {
	return j.wal.Append(OpDelete, []byte(id.Normalize()))
}

// ReplaceAll appends the new collection as a single frame. A torn frame is
// dropped on replay, so a failed replace leaves the previous contents.
func (j *JournalBackend) ReplaceAll(records []common.Record) error {
	if records == nil {
		records = []common.Record{}
	}
	payload, err := json.Marshal(records)
	if err != nil {
		return err
	}
	return j.wal.Append(OpReplace, payload)
}

// LoadAll replays the journal. A torn or corrupt tail ends the replay with
// the entries read so far.
func (j *JournalBackend) LoadAll() ([]common.Record, error) {
	it, err := j.wal.NewIterator()
	if err != nil {
		return nil, err
	}
	defer it.Close()

	live := make(map[common.StudentID]common.Record)
	replayed := 0
	for {
		entry, err := it.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Printf("[Storage] Journal replay stopped after %d entries: %v", replayed, err)
			break
		}
		replayed++

		switch entry.Op {
		case OpPut:
			var rec common.Record
			if err := json.Unmarshal(entry.Payload, &rec); err != nil {
				log.Printf("[Storage] Skipping undecodable journal entry: %v", err)
				continue
			}
			live[rec.ID.Normalize()] = rec
		case OpDelete:
			delete(live, common.StudentID(entry.Payload).Normalize())
		case OpReplace:
			var recs []common.Record
			if err := json.Unmarshal(entry.Payload, &recs); err != nil {
				log.Printf("[Storage] Skipping undecodable journal replace: %v", err)
				continue
			}
			live = make(map[common.StudentID]common.Record, len(recs))
			for _, rec := range recs {
				live[rec.ID.Normalize()] = rec
			}
		default:
			log.Printf("[Storage] Skipping journal entry with unknown op %d", entry.Op)
		}
	}

	records := make([]common.Record, 0, len(live))
	for _, rec := range live {
		records = append(records, rec)
	}
	slices.SortFunc(records, func(a, b common.Record) int {
		return common.CompareIDs(a.ID, b.ID)
	})
	return records, nil
}

func (j *JournalBackend) Truncate() error {
	return j.wal.Truncate()
}

func (j *JournalBackend) Close() {
	if err := j.wal.Sync(); err != nil {
		log.Printf("[Storage] Journal sync: %v", err)
	}
	if err := j.wal.Close(); err != nil {
		log.Printf("[Storage] Journal close: %v", err)
	}
}
