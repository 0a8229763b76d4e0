package repository

import (
	"time"

	"github.com/jask/adminui/internal/member"
)

// Snapshot is one successful fetch of the source, stored for offline use.
type Snapshot struct {
	ID        string
	Origin    string
	FetchedAt time.Time
	Rejected  int
	Members   []member.Member
}
