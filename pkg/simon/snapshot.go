package simon

import (
	"encoding/gob"
	"os"
)

// Snapshot is a session's register state at a given bit-clock, captured so
// a partial run can be pinned as a deterministic test fixture (spec.md §8
// scenarios 4/5) or resumed later. Adapted from the teacher's
// pkg/result/checkpoint.go gob pattern.
type Snapshot struct {
	K, C         []byte
	LFSR, Toggle byte
	Clock        int
}

// TakeSnapshot captures s's current register state. Call after Run, or
// mid-run via a StrobeSink that triggers at a known tick.
func TakeSnapshot(s *Session) Snapshot {
	lfsr, toggle := s.LFSRState()
	c := make([]byte, s.Seq.C.Width()/8)
	s.Seq.C.CopyBytesOut(c)
	return Snapshot{
		K:      s.KeyState(),
		C:      c,
		LFSR:   lfsr,
		Toggle: toggle,
		Clock:  s.Seq.K0,
	}
}

// Save writes a Snapshot to path using encoding/gob, the same persistence
// mechanism the teacher uses for search checkpoints.
func Save(path string, snap Snapshot) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gob.NewEncoder(f).Encode(snap)
}

// Load reads a Snapshot previously written by Save.
func Load(path string) (Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return Snapshot{}, err
	}
	defer f.Close()
	var snap Snapshot
	if err := gob.NewDecoder(f).Decode(&snap); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}
