package donation

import (
	"strconv"
	"time"
)

// KeyPrefix groups all donation records in the key-value store; aggregate
// reads are a single prefix scan over it.
const KeyPrefix = "donation:"

// Record is the persisted donation entity. A record is written only when the
// submission was eligible, and is never updated or deleted afterwards.
type Record struct {
	UserID     string    `json:"userId"`
	UserEmail  string    `json:"userEmail"`
	DonorName  string    `json:"donorName"`
	Age        int       `json:"age"`
	Gender     string    `json:"gender"`
	BloodGroup string    `json:"bloodGroup"`
	Weight     float64   `json:"weight"`
	IsEligible bool      `json:"isEligible"`
	Timestamp  time.Time `json:"timestamp"`
}

// Key derives the storage key for a record created by userID at the given
// instant: donation:<userId>:<epochMillis>. Unique per user per millisecond.
func Key(userID string, at time.Time) string {
	return KeyPrefix + userID + ":" + strconv.FormatInt(at.UnixMilli(), 10)
}
