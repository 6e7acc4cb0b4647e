package uid

import "github.com/google/uuid"

// UUID generates time-ordered (v7) UUID strings.
type UUID struct{}

// NewUUID returns a UUID generator.
func NewUUID() *UUID {
	return &UUID{}
}

// Generate returns a new UUID string.
func (u *UUID) Generate() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString() // fallback: uuidV4
	}
	return id.String()
}

// RandomUUID generates fully random (v4) UUID strings. Unlike v7 nothing about
// the value can be predicted from the creation time.
type RandomUUID struct{}

// NewRandomUUID returns a random UUID generator.
func NewRandomUUID() *RandomUUID {
	return &RandomUUID{}
}

// Generate returns a new random UUID string.
func (*RandomUUID) Generate() string {
	return uuid.NewString()
}

// IsCanonicalUUID reports whether s is a UUID in the 36 character hyphenated
// form. uuid.Parse alone also accepts urn and braced forms.
func IsCanonicalUUID(s string) bool {
	if len(s) != 36 {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}
