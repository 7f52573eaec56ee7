// Package sharedstore is the on-disk backing store spec.md §6 names but
// leaves unspecified: a single bbolt file holding one JSON blob per named
// SharedObject, the way a browser's local-shared-object directory holds
// one file per object.
package sharedstore

import (
	"encoding/json"

	"avm1core/pkg/attr"
	"avm1core/pkg/objerr"
	"avm1core/pkg/object"
	"avm1core/pkg/value"

	"go.etcd.io/bbolt"
)

var bucketName = []byte("shared_objects")

// Store is a single bbolt-backed database of named SharedObject snapshots.
type Store struct {
	db *bbolt.DB
}

// Open opens (creating if necessary) the bbolt file at path.
func Open(path string) (*Store, error) {
	db, err := bbolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, objerr.NewStoreError("open", "", err)
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	})
	if err != nil {
		db.Close()
		return nil, objerr.NewStoreError("open", "", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying bbolt database.
func (s *Store) Close() error { return s.db.Close() }

// record is the on-disk shape of one SharedObject's data: only stored,
// enumerable, JSON-representable properties persist — functions and
// virtual properties never serialize, matching the original's
// AMF-object persistence model (spec.md §6, Non-goal: no attempt to
// persist a full closure or prototype graph).
type record struct {
	Fields map[string]field `json:"fields"`
}

type field struct {
	Kind string `json:"kind"` // undefined | null | bool | number | string
	Val  any    `json:"val,omitempty"`
}

func encodeValue(v value.Value) (field, bool) {
	switch v.Type() {
	case value.TypeUndefined:
		return field{Kind: "undefined"}, true
	case value.TypeNull:
		return field{Kind: "null"}, true
	case value.TypeBoolean:
		return field{Kind: "bool", Val: v.AsBoolean()}, true
	case value.TypeNumber:
		return field{Kind: "number", Val: v.AsNumber()}, true
	case value.TypeString:
		return field{Kind: "string", Val: v.AsString()}, true
	default:
		return field{}, false
	}
}

func decodeValue(f field) value.Value {
	switch f.Kind {
	case "null":
		return value.Null()
	case "bool":
		b, _ := f.Val.(bool)
		return value.Bool(b)
	case "number":
		n, _ := f.Val.(float64)
		return value.Number(n)
	case "string":
		s, _ := f.Val.(string)
		return value.Str(s)
	default:
		return value.Undefined()
	}
}

// Flush persists so's own enumerable stored properties into s under
// so.Name(). It returns the count of properties written.
func (s *Store) Flush(act *object.Activation, so *object.SharedObject) (int, error) {
	rec := record{Fields: make(map[string]field)}
	for _, key := range so.GetKeys(act) {
		if !so.HasOwnProperty(act, key) || so.HasOwnVirtual(act, key) {
			continue
		}
		v := so.GetLocal(act, key, so)
		if f, ok := encodeValue(v); ok {
			rec.Fields[key] = f
		}
	}

	blob, err := json.Marshal(rec)
	if err != nil {
		return 0, objerr.NewStoreError("flush", so.Name(), err)
	}

	err = s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketName).Put([]byte(so.Name()), blob)
	})
	if err != nil {
		return 0, objerr.NewStoreError("flush", so.Name(), err)
	}
	return len(rec.Fields), nil
}

// Load reads the snapshot stored under name, if any, and writes its
// fields onto so as DontEnum-false stored properties (overwriting
// whatever so already held at those keys). It reports whether a
// snapshot existed.
func (s *Store) Load(act *object.Activation, name string, so *object.SharedObject) (bool, error) {
	var blob []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(bucketName).Get([]byte(name))
		if v != nil {
			blob = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return false, objerr.NewStoreError("load", name, err)
	}
	if blob == nil {
		return false, nil
	}

	var rec record
	if err := json.Unmarshal(blob, &rec); err != nil {
		return false, objerr.NewStoreError("load", name, err)
	}
	for key, f := range rec.Fields {
		so.DefineValue(act, key, decodeValue(f), attr.Empty())
	}
	return true, nil
}
