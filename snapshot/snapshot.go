// Package snapshot persists register-file images in a bbolt database.
package snapshot

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/google/uuid"
	"go.etcd.io/bbolt"
)

const (
	BUCKET_NAME = "snapshots"
)

// Snapshot is one saved register file.
type Snapshot struct {
	ID    uuid.UUID        `cbor:"1,keyasint"`
	Name  string           `cbor:"2,keyasint"`
	Taken time.Time        `cbor:"3,keyasint"`
	Image map[uint32]uint8 `cbor:"4,keyasint"` // Address to byte.
}

// Memory returns the image keyed by bus address.
func (s *Snapshot) Memory() (img map[uintptr]uint8) {
	img = make(map[uintptr]uint8, len(s.Image))
	for addr, value := range s.Image {
		img[uintptr(addr)] = value
	}
	return
}

func (s *Snapshot) String() string {
	return fmt.Sprintf("%v %v %v (%d bytes)", s.ID, s.Taken.Format(time.RFC3339), s.Name, len(s.Image))
}

var encMode cbor.EncMode
var decMode cbor.DecMode

func init() {
	var err error

	encOpts := cbor.EncOptions{
		Sort: cbor.SortCanonical,
		Time: cbor.TimeRFC3339Nano,
	}
	encMode, err = encOpts.EncMode()
	if err != nil {
		panic(err)
	}

	decOpts := cbor.DecOptions{
		DupMapKey: cbor.DupMapKeyEnforcedAPF,
	}
	decMode, err = decOpts.DecMode()
	if err != nil {
		panic(err)
	}
}

// Store is a snapshot database.
type Store struct {
	Verbose bool // If set, log every store operation.

	db *bbolt.DB
}

// Open opens or creates the database at path, creating its directory.
func Open(path string) (store *Store, err error) {
	err = os.MkdirAll(filepath.Dir(path), 0o755)
	if err != nil {
		return
	}

	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(BUCKET_NAME))
		return err
	})
	if err != nil {
		db.Close()
		return
	}

	store = &Store{db: db}
	return
}

// Close releases the database.
func (st *Store) Close() error {
	return st.db.Close()
}

func (st *Store) trace(format string, args ...any) {
	if st.Verbose {
		log.Printf("snapshot: "+format, args...)
	}
}

// Save records image under name and returns the new snapshot's ID.
func (st *Store) Save(name string, image map[uintptr]uint8) (id uuid.UUID, err error) {
	if name == "" {
		err = ErrName
		return
	}

	snap := &Snapshot{
		ID:    uuid.New(),
		Name:  name,
		Taken: time.Now().UTC(),
		Image: make(map[uint32]uint8, len(image)),
	}
	for addr, value := range image {
		snap.Image[uint32(addr)] = value
	}

	data, err := encMode.Marshal(snap)
	if err != nil {
		return
	}

	err = st.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(BUCKET_NAME)).Put(snap.ID[:], data)
	})
	if err != nil {
		return
	}

	st.trace("save %v %q, %d bytes", snap.ID, name, len(data))
	id = snap.ID
	return
}

// Load returns the snapshot with the given ID.
func (st *Store) Load(id uuid.UUID) (snap *Snapshot, err error) {
	err = st.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket([]byte(BUCKET_NAME)).Get(id[:])
		if data == nil {
			return fmt.Errorf("%w: %v", ErrNotFound, id)
		}
		snap = &Snapshot{}
		return decMode.Unmarshal(data, snap)
	})
	if err != nil {
		snap = nil
		return
	}

	st.trace("load %v %q", id, snap.Name)
	return
}

// List returns every snapshot, oldest first.
func (st *Store) List() (snaps []*Snapshot, err error) {
	err = st.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(BUCKET_NAME)).ForEach(func(_, data []byte) error {
			snap := &Snapshot{}
			err := decMode.Unmarshal(data, snap)
			if err != nil {
				return err
			}
			snaps = append(snaps, snap)
			return nil
		})
	})
	if err != nil {
		snaps = nil
		return
	}

	slices.SortStableFunc(snaps, func(a, b *Snapshot) int {
		return a.Taken.Compare(b.Taken)
	})
	return
}

// Find resolves ref as a snapshot ID, or else as the name of exactly one
// snapshot.
func (st *Store) Find(ref string) (snap *Snapshot, err error) {
	id, perr := uuid.Parse(ref)
	if perr == nil {
		return st.Load(id)
	}

	snaps, err := st.List()
	if err != nil {
		return
	}

	for _, s := range snaps {
		if s.Name != ref {
			continue
		}
		if snap != nil {
			snap = nil
			err = fmt.Errorf("%w: %v", ErrAmbiguous, ref)
			return
		}
		snap = s
	}

	if snap == nil {
		err = fmt.Errorf("%w: %v", ErrNotFound, ref)
	}
	return
}

// Delete removes the snapshot with the given ID.
func (st *Store) Delete(id uuid.UUID) (err error) {
	err = st.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(BUCKET_NAME))
		if bucket.Get(id[:]) == nil {
			return fmt.Errorf("%w: %v", ErrNotFound, id)
		}
		return bucket.Delete(id[:])
	})
	if err == nil {
		st.trace("delete %v", id)
	}
	return
}
