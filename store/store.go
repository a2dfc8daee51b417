// Copyright Amazon.com Inc. or its affiliates. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License"). You may
// not use this file except in compliance with the License. A copy of the
// License is located at
//
//	http://aws.amazon.com/apache2.0/
//
// or in the "license" file accompanying this file. This file is distributed
// on an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either
// express or implied. See the License for the specific language governing
// permissions and limitations under the License.

// Package store persists the network topology model. Each VPC and each
// peering is one JSON file; all reads and writes are whole-record. Callers
// follow load-mutate-save and hold the record's key lock for the whole span,
// so two invocations targeting the same key cannot lose an update.
package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

const (
	envConfigDir = "VPCCTL_CONFIG_DIR"
	defaultRoot  = "/var/lib/vpcctl"

	vpcSubdir     = "vpcs"
	peeringSubdir = "peerings"
	lockSubdir    = "locks"
)

var (
	// ErrNotFound reports a referenced record that does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrAlreadyExists reports a duplicate creation attempt.
	ErrAlreadyExists = errors.New("record already exists")
)

// Store is a file-backed topology store rooted at a single directory.
type Store struct {
	root  string
	locks keyedMutex
}

// DefaultRoot returns the store root directory, honoring VPCCTL_CONFIG_DIR.
func DefaultRoot() string {
	if dir := os.Getenv(envConfigDir); dir != "" {
		return dir
	}
	return defaultRoot
}

// New creates a store rooted at the given directory, creating the layout if
// needed.
func New(root string) (*Store, error) {
	for _, sub := range []string{vpcSubdir, peeringSubdir, lockSubdir} {
		if err := os.MkdirAll(filepath.Join(root, sub), 0755); err != nil {
			return nil, errors.Wrapf(err, "unable to create store directory %s", sub)
		}
	}

	return &Store{root: root}, nil
}

// GetVPC loads a VPC record by name.
func (s *Store) GetVPC(name string) (*VPC, error) {
	path, err := s.vpcPath(name)
	if err != nil {
		return nil, err
	}

	var vpc VPC
	if err := readRecord(path, &vpc); err != nil {
		return nil, err
	}

	return &vpc, nil
}

// SaveVPC writes a VPC record, overwriting any previous version atomically.
func (s *Store) SaveVPC(vpc *VPC) error {
	path, err := s.vpcPath(vpc.Name)
	if err != nil {
		return err
	}

	return writeRecord(path, vpc)
}

// DeleteVPC erases a VPC record.
func (s *Store) DeleteVPC(name string) error {
	path, err := s.vpcPath(name)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return errors.Wrapf(ErrNotFound, "vpc %s", name)
		}
		return errors.Wrapf(err, "unable to delete vpc record %s", name)
	}

	return nil
}

// ListVPCs loads all VPC records. Order is not significant.
func (s *Store) ListVPCs() ([]*VPC, error) {
	pattern := filepath.Join(s.root, vpcSubdir, "*.json")
	paths, err := filepath.Glob(pattern)
	if err != nil {
		return nil, errors.Wrap(err, "unable to list vpc records")
	}

	var vpcs []*VPC
	for _, path := range paths {
		var vpc VPC
		if err := readRecord(path, &vpc); err != nil {
			return nil, err
		}
		vpcs = append(vpcs, &vpc)
	}

	return vpcs, nil
}

// GetPeering loads the peering between two VPCs, trying both orderings of the
// pair before declaring non-existence.
func (s *Store) GetPeering(vpc1, vpc2 string) (*Peering, error) {
	for _, id := range []string{vpc1 + "-" + vpc2, vpc2 + "-" + vpc1} {
		path, err := s.peeringPath(id)
		if err != nil {
			return nil, err
		}

		var peering Peering
		err = readRecord(path, &peering)
		if err == nil {
			return &peering, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return nil, err
		}
	}

	return nil, errors.Wrapf(ErrNotFound, "peering %s-%s", vpc1, vpc2)
}

// SavePeering writes a peering record under its canonical id.
func (s *Store) SavePeering(peering *Peering) error {
	path, err := s.peeringPath(peering.ID())
	if err != nil {
		return err
	}

	return writeRecord(path, peering)
}

// DeletePeering erases the peering between two VPCs, whichever ordering it
// was stored under.
func (s *Store) DeletePeering(vpc1, vpc2 string) error {
	for _, id := range []string{vpc1 + "-" + vpc2, vpc2 + "-" + vpc1} {
		path, err := s.peeringPath(id)
		if err != nil {
			return err
		}

		err = os.Remove(path)
		if err == nil {
			return nil
		}
		if !os.IsNotExist(err) {
			return errors.Wrapf(err, "unable to delete peering record %s", id)
		}
	}

	return errors.Wrapf(ErrNotFound, "peering %s-%s", vpc1, vpc2)
}

// WithVPCLock runs fn holding the exclusive lock for one VPC key.
func (s *Store) WithVPCLock(name string, fn func() error) error {
	key, err := recordKey(name)
	if err != nil {
		return err
	}
	return s.withLock("vpc-"+key, fn)
}

// WithPairLock runs fn holding the exclusive lock for an unordered VPC pair.
// The key is order-independent so that swapped argument orders contend on the
// same lock.
func (s *Store) WithPairLock(vpc1, vpc2 string, fn func() error) error {
	key1, err := recordKey(vpc1)
	if err != nil {
		return err
	}
	key2, err := recordKey(vpc2)
	if err != nil {
		return err
	}

	if key1 > key2 {
		key1, key2 = key2, key1
	}
	return s.withLock("peering-"+key1+"--"+key2, fn)
}

// withLock serializes on an in-process keyed mutex and a flock'd lock file,
// covering concurrent goroutines and concurrent processes respectively.
func (s *Store) withLock(key string, fn func() error) error {
	mu := s.locks.get(key)
	mu.Lock()
	defer mu.Unlock()

	lockPath := filepath.Join(s.root, lockSubdir, key+".lock")
	f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return errors.Wrapf(err, "unable to open lock file for %s", key)
	}
	defer f.Close()

	if err := unix.Flock(int(f.Fd()), unix.LOCK_EX); err != nil {
		return errors.Wrapf(err, "unable to lock %s", key)
	}
	defer unix.Flock(int(f.Fd()), unix.LOCK_UN)

	return fn()
}

func (s *Store) vpcPath(name string) (string, error) {
	key, err := recordKey(name)
	if err != nil {
		return "", err
	}
	return filepath.Join(s.root, vpcSubdir, key+".json"), nil
}

func (s *Store) peeringPath(id string) (string, error) {
	key, err := recordKey(id)
	if err != nil {
		return "", err
	}
	return filepath.Join(s.root, peeringSubdir, key+".json"), nil
}

// recordKey rejects names that would escape the store directory.
func recordKey(name string) (string, error) {
	if name == "" || name == "." || name == ".." ||
		strings.ContainsAny(name, "/\\") {
		return "", errors.Errorf("invalid record name %q", name)
	}
	return name, nil
}

func readRecord(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Wrapf(ErrNotFound, "%s", filepath.Base(path))
		}
		return errors.Wrapf(err, "unable to read record %s", path)
	}

	if err := json.Unmarshal(data, v); err != nil {
		return errors.Wrapf(err, "corrupt record %s", path)
	}

	return nil
}

// writeRecord writes the record to a temporary file and renames it into
// place, so readers never observe a partial record.
func writeRecord(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrapf(err, "unable to encode record %s", path)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return errors.Wrapf(err, "unable to create temporary record in %s", dir)
	}

	_, err = tmp.Write(append(data, '\n'))
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(tmp.Name())
		return errors.Wrapf(err, "unable to write record %s", path)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return errors.Wrapf(err, "unable to commit record %s", path)
	}

	return nil
}

type keyedMutex struct {
	mu sync.Mutex
	m  map[string]*sync.Mutex
}

func (k *keyedMutex) get(key string) *sync.Mutex {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.m == nil {
		k.m = make(map[string]*sync.Mutex)
	}
	mu, ok := k.m[key]
	if !ok {
		mu = &sync.Mutex{}
		k.m[key] = mu
	}

	return mu
}
