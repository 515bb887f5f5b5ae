package store

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/aprilio/claimscope/internal/model"
)

func TestKey(t *testing.T) {
	key := Key("user-1", model.KindMedicalRecord)
	if !strings.HasPrefix(key, "claimscope:v1:") {
		t.Errorf("key %q missing namespace prefix", key)
	}

	if key != Key("user-1", model.KindMedicalRecord) {
		t.Error("key derivation must be stable")
	}
	if key == Key("user-2", model.KindMedicalRecord) {
		t.Error("different owners must not collide")
	}
	if key == Key("user-1", model.KindInsurancePolicy) {
		t.Error("different kinds must not collide")
	}
}

func TestRecordStore_MedicalRoundTrip(t *testing.T) {
	s := NewRecordStore(NewMemoryBackend(time.Hour, time.Hour))

	record := model.EmptyMedicalRecord()
	record.Hospital = "City Hospital"
	record.Diagnosis = "flu"

	if err := s.SaveMedicalRecord("user-1", record); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	got, found, err := s.MedicalRecord("user-1")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if !found {
		t.Fatal("record not found")
	}
	if got != record {
		t.Errorf("got %+v, want %+v", got, record)
	}
}

func TestRecordStore_MissingRecord(t *testing.T) {
	s := NewRecordStore(NewMemoryBackend(time.Hour, time.Hour))

	_, found, err := s.MedicalRecord("nobody")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if found {
		t.Error("expected not found")
	}
}

// A second save for the same owner replaces the first record.
func TestRecordStore_Overwrite(t *testing.T) {
	s := NewRecordStore(NewMemoryBackend(time.Hour, time.Hour))

	first := model.EmptyMedicalRecord()
	first.Hospital = "First Hospital"
	second := model.EmptyMedicalRecord()
	second.Hospital = "Second Hospital"

	_ = s.SaveMedicalRecord("user-1", first)
	_ = s.SaveMedicalRecord("user-1", second)

	got, _, _ := s.MedicalRecord("user-1")
	if got.Hospital != "Second Hospital" {
		t.Errorf("hospital = %q, want latest record", got.Hospital)
	}
}

// Medical record and policy live under separate keys for one owner.
func TestRecordStore_KindsIndependent(t *testing.T) {
	s := NewRecordStore(NewMemoryBackend(time.Hour, time.Hour))

	record := model.EmptyMedicalRecord()
	record.Hospital = "City Hospital"
	policy := model.EmptyInsurancePolicy()
	policy.Company = "Aegis Mutual"

	_ = s.SaveMedicalRecord("user-1", record)
	_ = s.SavePolicy("user-1", policy)

	gotRecord, foundRecord, _ := s.MedicalRecord("user-1")
	gotPolicy, foundPolicy, _ := s.Policy("user-1")
	if !foundRecord || !foundPolicy {
		t.Fatal("both kinds should be stored")
	}
	if gotRecord.Hospital != "City Hospital" || gotPolicy.Company != "Aegis Mutual" {
		t.Errorf("records crossed: %+v / %+v", gotRecord, gotPolicy)
	}
}

func TestDiskBackend_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	b := NewDiskBackend(dir, 0)

	if err := b.Set("key-1", []byte("payload"), 0); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	got, found := b.Get("key-1")
	if !found || string(got) != "payload" {
		t.Fatalf("got (%q, %v)", got, found)
	}

	// Zero TTL entries survive a fresh backend over the same directory.
	fresh := NewDiskBackend(dir, 0)
	if _, found := fresh.Get("key-1"); !found {
		t.Error("record should persist across backend instances")
	}
}

func TestDiskBackend_Expiry(t *testing.T) {
	b := NewDiskBackend(t.TempDir(), 0)

	if err := b.Set("key-1", []byte("payload"), time.Millisecond); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	time.Sleep(10 * time.Millisecond)

	if _, found := b.Get("key-1"); found {
		t.Error("expired record should not be returned")
	}
}

func TestDiskBackend_Delete(t *testing.T) {
	b := NewDiskBackend(t.TempDir(), 0)

	_ = b.Set("key-1", []byte("payload"), 0)
	if err := b.Delete("key-1"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, found := b.Get("key-1"); found {
		t.Error("deleted record should not be returned")
	}
}

func TestLayeredBackend_PromotesDiskHits(t *testing.T) {
	dir := t.TempDir()

	// Seed only the disk layer, as after a process restart.
	seed := NewDiskBackend(dir, 0)
	if err := seed.Set(Key("user-1", model.KindMedicalRecord), []byte(`{"hospital":"City Hospital"}`), 0); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	layered := NewLayeredBackend(time.Hour, dir, 0)
	key := Key("user-1", model.KindMedicalRecord)

	got, found := layered.Get(key)
	if !found {
		t.Fatal("disk record not visible through layered backend")
	}

	// Remove the disk file; the promoted copy must still answer.
	_ = os.RemoveAll(dir)
	promoted, found := layered.Get(key)
	if !found {
		t.Fatal("promoted record lost")
	}
	if string(promoted) != string(got) {
		t.Errorf("promoted copy differs: %q vs %q", promoted, got)
	}
}

func TestLayeredBackend_WritesBothLayers(t *testing.T) {
	dir := t.TempDir()
	layered := NewLayeredBackend(time.Hour, dir, 0)

	if err := layered.Set("key-1", []byte("payload"), 0); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	disk := NewDiskBackend(dir, 0)
	if _, found := disk.Get("key-1"); !found {
		t.Error("write did not reach the disk layer")
	}
}
