// Package store persists canonical extracted records keyed by owner.
//
// Only canonical records are stored. Read-time views (claim records,
// coverage, estimates) are recomputed on every read and never written
// back.
package store

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aprilio/claimscope/internal/model"
)

// Backend is the low-level keyed byte store.
type Backend interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key derives the storage key for one owner's record of one kind.
func Key(owner string, kind model.DocumentKind) string {
	hash := sha256.Sum256([]byte(owner + ":" + string(kind)))
	return "claimscope:v1:" + hex.EncodeToString(hash[:])
}

// RecordStore is the typed record store over a backend.
type RecordStore struct {
	backend Backend
}

// NewRecordStore creates a record store over the given backend.
func NewRecordStore(backend Backend) *RecordStore {
	return &RecordStore{backend: backend}
}

// SaveMedicalRecord writes an owner's canonical medical record.
func (s *RecordStore) SaveMedicalRecord(owner string, record model.ExtractedMedicalRecord) error {
	return s.save(Key(owner, model.KindMedicalRecord), record)
}

// MedicalRecord reads an owner's canonical medical record.
func (s *RecordStore) MedicalRecord(owner string) (model.ExtractedMedicalRecord, bool, error) {
	var record model.ExtractedMedicalRecord
	ok, err := s.load(Key(owner, model.KindMedicalRecord), &record)
	return record, ok, err
}

// SavePolicy writes an owner's canonical insurance policy.
func (s *RecordStore) SavePolicy(owner string, policy model.ExtractedInsurancePolicy) error {
	return s.save(Key(owner, model.KindInsurancePolicy), policy)
}

// Policy reads an owner's canonical insurance policy.
func (s *RecordStore) Policy(owner string) (model.ExtractedInsurancePolicy, bool, error) {
	var policy model.ExtractedInsurancePolicy
	ok, err := s.load(Key(owner, model.KindInsurancePolicy), &policy)
	return policy, ok, err
}

func (s *RecordStore) save(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	return s.backend.Set(key, data, 0)
}

func (s *RecordStore) load(key string, v any) (bool, error) {
	data, found := s.backend.Get(key)
	if !found {
		return false, nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("unmarshal record: %w", err)
	}
	return true, nil
}
