package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"

	"github.com/robalobadob/guess/internal/secret"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// Target returns a deterministic target for a date using HMAC(salt, YYYY-MM-DD) mapped into r.
func Target(date time.Time, salt string, r secret.Range) uint32 {
	dk := DateKey(date)
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(dk))
	sum := h.Sum(nil)
	// take first 8 bytes to uint64 for modulus distribution
	n := binary.BigEndian.Uint64(sum[:8])
	return r.Min + uint32(n%r.Size())
}

// Source draws the daily target for the date returned by now.
func Source(salt string, now func() time.Time) secret.Source {
	if now == nil {
		now = time.Now
	}
	return secret.SourceFunc(func(r secret.Range) uint32 {
		return Target(now(), salt, r)
	})
}
