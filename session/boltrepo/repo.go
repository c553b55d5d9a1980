// Package boltrepo provides a BBolt-backed session repository. Records
// are sealed with secretbox so bearer tokens never hit disk in clear
// text; the database file survives restarts the way browser storage
// survives reloads.
package boltrepo

import (
	"crypto/rand"
	"encoding/json"

	"github.com/pkg/errors"
	"go.etcd.io/bbolt"
	"golang.org/x/crypto/nacl/secretbox"

	errs "github.com/agrovision/portal/internal/errors"
	"github.com/agrovision/portal/session"
)

var sessionsBucket = []byte("sessions")

const nonceSize = 24

// Repo implements session.Repo backed by a BBolt database.
type Repo struct {
	db  *bbolt.DB
	key [32]byte
}

var _ session.Repo = (*Repo)(nil)

// New returns a Repo backed by the given BBolt database.
func New(db *bbolt.DB, key [32]byte) *Repo {
	return &Repo{db: db, key: key}
}

// Open opens (or creates) a BBolt database at path and returns a Repo.
func Open(path string, key [32]byte, options *bbolt.Options) (*Repo, error) {
	db, err := bbolt.Open(path, 0600, options)
	if err != nil {
		return nil, errors.Wrap(err, "opening bbolt db")
	}
	return New(db, key), nil
}

// Close closes the underlying BBolt database.
func (r *Repo) Close() error {
	return r.db.Close()
}

func (r *Repo) Upsert(sessionID string, sess session.Session) error {
	if sessionID == "" {
		return errors.New("sessionID is required")
	}
	plaintext, err := json.Marshal(sess)
	if err != nil {
		return errors.Wrap(err, "encoding session")
	}
	sealed, err := r.seal(plaintext)
	if err != nil {
		return err
	}
	return r.db.Update(func(tx *bbolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(sessionsBucket)
		if err != nil {
			return err
		}
		return b.Put([]byte(sessionID), sealed)
	})
}

func (r *Repo) Get(sessionID string) (session.Session, error) {
	if sessionID == "" {
		return session.Session{}, errors.New("sessionID is required")
	}
	var sess session.Session
	err := r.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(sessionsBucket)
		if b == nil {
			return errors.Wrap(errs.ErrSessionNotFound, sessionID)
		}
		data := b.Get([]byte(sessionID))
		if data == nil {
			return errors.Wrap(errs.ErrSessionNotFound, sessionID)
		}
		plaintext, err := r.open(data)
		if err != nil {
			return err
		}
		return json.Unmarshal(plaintext, &sess)
	})
	if err != nil {
		return session.Session{}, err
	}
	return sess, nil
}

func (r *Repo) Delete(sessionID string) error {
	if sessionID == "" {
		return errors.New("sessionID is required")
	}
	return r.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(sessionsBucket)
		if b == nil {
			return nil
		}
		return b.Delete([]byte(sessionID))
	})
}

func (r *Repo) seal(plaintext []byte) ([]byte, error) {
	var nonce [nonceSize]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return nil, errors.Wrap(err, "generating nonce")
	}
	return secretbox.Seal(nonce[:], plaintext, &nonce, &r.key), nil
}

func (r *Repo) open(sealed []byte) ([]byte, error) {
	if len(sealed) < nonceSize {
		return nil, errors.New("sealed session record too short")
	}
	var nonce [nonceSize]byte
	copy(nonce[:], sealed[:nonceSize])
	plaintext, ok := secretbox.Open(nil, sealed[nonceSize:], &nonce, &r.key)
	if !ok {
		return nil, errors.New("session record failed to open, wrong key or corrupt data")
	}
	return plaintext, nil
}
