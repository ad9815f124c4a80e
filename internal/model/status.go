package model

// Status is the lifecycle state of a Product or Category. Deleted is a flag,
// not a physical removal; default queries hide deleted documents.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusDeleted  Status = "deleted"
)

// ParseStatus maps a request token onto the closed status set. The empty
// token is valid and means "default visibility" (everything except deleted).
// Any other token is rejected.
func ParseStatus(token string) (Status, bool) {
	switch s := Status(token); s {
	case "", StatusActive, StatusInactive, StatusDeleted:
		return s, true
	}
	return "", false
}
