// Package boltengine is a second realization of pkg/kvengine.Engine backed
// by an embedded B-tree database (go.etcd.io/bbolt) instead of the
// log-structured engine in pkg/kvs. Every operation maps onto one database
// transaction against a single bucket.
package boltengine

import (
	"errors"
	"fmt"

	"github.com/LuisBarroso37/kvs/pkg/kvengine"
	bolt "go.etcd.io/bbolt"
)

// ErrKeyNotFound is returned by Remove when the key has no entry in the
// bucket — the same sentinel semantics pkg/kvs.ErrKeyNotFound carries, so
// callers can treat both engines identically.
var ErrKeyNotFound = errors.New("key not found")

var bucketName = []byte("kvs")

// Engine wraps one bbolt database file.
type Engine struct {
	db *bolt.DB
}

var _ kvengine.Engine = (*Engine)(nil)

// Open opens (creating if necessary) a bbolt database at path and ensures
// its single bucket exists.
func Open(path string) (*Engine, error) {
	db, err := bolt.Open(path, 0644, nil)
	if err != nil {
		return nil, fmt.Errorf("opening bolt database: %w", err)
	}

	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	}); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating bolt bucket: %w", err)
	}

	return &Engine{db: db}, nil
}

// Get returns the value for key, if present.
func (e *Engine) Get(key string) (string, bool, error) {
	var value []byte
	err := e.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bucketName).Get([]byte(key))
		if v != nil {
			value = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return "", false, err
	}
	if value == nil {
		return "", false, nil
	}
	return string(value), true, nil
}

// Set stores value under key.
func (e *Engine) Set(key, value string) error {
	return e.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketName).Put([]byte(key), []byte(value))
	})
}

// Remove deletes key, returning ErrKeyNotFound if it is absent.
func (e *Engine) Remove(key string) error {
	return e.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(bucketName)
		if bucket.Get([]byte(key)) == nil {
			return ErrKeyNotFound
		}
		return bucket.Delete([]byte(key))
	})
}

// Close closes the underlying database file.
func (e *Engine) Close() error {
	return e.db.Close()
}
