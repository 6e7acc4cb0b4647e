package entity

import (
	"time"
)

const (
	DefaultExpiresIn   = 300 * time.Second
	MinExpiresIn       = 60 * time.Second
	MaxExpiresIn       = 3600 * time.Second
	DefaultMaxAttempts = 3
	// RetentionWindow is how long any record is kept, whatever its state.
	RetentionWindow = 24 * time.Hour
)

// State is the lifecycle state derived from the stored fields at a given
// instant. It is never persisted.
type State int

const (
	StateActive State = iota
	StateConsumed
	StateExpired
	StateExhausted
)

func (s State) String() string {
	switch s {
	case StateConsumed:
		return "consumed"
	case StateExpired:
		return "expired"
	case StateExhausted:
		return "exhausted"
	default:
		return "active"
	}
}

// OTP is one issued code. CodeDigest holds the keyed digest, never the code.
type OTP struct {
	Token        string
	UserID       int64
	CodeDigest   string
	Channel      Channel
	CreatedAt    time.Time
	ExpiresIn    time.Duration
	Consumed     bool
	AttemptCount int32
	MaxAttempts  int32
}

func (o OTP) ExpiresAt() time.Time {
	return o.CreatedAt.Add(o.ExpiresIn)
}

// IsExpired reports whether now is past the expiry instant. A record is still
// usable at exactly ExpiresAt.
func (o OTP) IsExpired(now time.Time) bool {
	return now.After(o.ExpiresAt())
}

func (o OTP) IsExhausted() bool {
	return o.AttemptCount >= o.MaxAttempts
}

// RemainingSeconds is 0 once expired, otherwise the whole seconds left.
func (o OTP) RemainingSeconds(now time.Time) int64 {
	if o.IsExpired(now) {
		return 0
	}
	return int64(o.ExpiresAt().Sub(now) / time.Second)
}

func (o OTP) RemainingAttempts() int32 {
	return max(0, o.MaxAttempts-o.AttemptCount)
}

func (o OTP) State(now time.Time) State {
	switch {
	case o.Consumed:
		return StateConsumed
	case o.IsExhausted():
		return StateExhausted
	case o.IsExpired(now):
		return StateExpired
	default:
		return StateActive
	}
}

func (o OTP) IsActive(now time.Time) bool {
	return o.State(now) == StateActive
}

// Verdict is the outcome of judging a verification attempt against the live
// record, decided while the record is locked.
type Verdict int

const (
	VerdictMatch Verdict = iota + 1
	VerdictMismatch
	VerdictExpired
	VerdictExhausted
)

// Judge decides a verification attempt. Expiry is checked first so a wrong
// code on an expired record does not burn an attempt.
func Judge(rec OTP, now time.Time, codeMatches bool) Verdict {
	switch {
	case rec.IsExpired(now):
		return VerdictExpired
	case rec.IsExhausted():
		return VerdictExhausted
	case codeMatches:
		return VerdictMatch
	default:
		return VerdictMismatch
	}
}

// Contact is where a user can be reached.
type Contact struct {
	UserID int64
	Email  string
	Phone  string
	Name   string
}

// ListFilter narrows List. Nil fields do not filter.
type ListFilter struct {
	UserID   *int64
	Channel  *Channel
	Consumed *bool
	Limit    int32
	Offset   int32
}

type Stats struct {
	Total   int64
	Used    int64
	Active  int64
	Last24h int64
	Last7d  int64
}

type CleanupResult struct {
	RecordsDeleted  int64
	AccountsDeleted int64
	DryRun          bool
}

func (r CleanupResult) Total() int64 {
	return r.RecordsDeleted + r.AccountsDeleted
}
