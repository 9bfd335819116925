// Package id generates run identifiers.
//
// A run identifier is a ULID behind a "run_" prefix, so identifiers sort by
// creation time and are easy to pick out of logs and reports.
package id

import (
	"crypto/rand"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// RunPrefix marks run identifiers
const RunPrefix = "run_"

// RunID identifies one regeneration run, e.g. run_01J9ZQ4X5T8M2K7R3B6C0D1E2F
type RunID string

// entropy is shared by every run id; MonotonicEntropy is not safe for
// concurrent use.
var entropy = struct {
	sync.Mutex
	*ulid.MonotonicEntropy
}{MonotonicEntropy: ulid.Monotonic(rand.Reader, 0)}

// NewRunID returns an identifier stamped with the current time. Identifiers
// created within the same millisecond still sort in creation order.
func NewRunID() RunID {
	return newRunID(time.Now())
}

func newRunID(t time.Time) RunID {
	entropy.Lock()
	defer entropy.Unlock()
	return RunID(RunPrefix + ulid.MustNew(ulid.Timestamp(t), entropy.MonotonicEntropy).String())
}

// ParseRunID validates s as a run identifier.
func ParseRunID(s string) (RunID, error) {
	id := RunID(s)
	if _, err := id.ULID(); err != nil {
		return "", err
	}
	return id, nil
}

func (id RunID) String() string { return string(id) }

// ULID returns the identifier without its prefix.
func (id RunID) ULID() (ulid.ULID, error) {
	raw, ok := strings.CutPrefix(string(id), RunPrefix)
	if !ok {
		return ulid.ULID{}, fmt.Errorf("not a run id: %q", string(id))
	}
	u, err := ulid.ParseStrict(raw)
	if err != nil {
		return ulid.ULID{}, fmt.Errorf("run id %q: %w", string(id), err)
	}
	return u, nil
}

// Timestamp extracts the creation time, to millisecond resolution.
func (id RunID) Timestamp() (time.Time, error) {
	u, err := id.ULID()
	if err != nil {
		return time.Time{}, err
	}
	return ulid.Time(u.Time()), nil
}
