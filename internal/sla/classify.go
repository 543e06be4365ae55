package sla

import "time"

// Urgency is the discrete tier shown next to a pending question's
// countdown.
type Urgency string

const (
	Overdue     Urgency = "overdue"
	Urgent      Urgency = "urgent"
	Normal      Urgency = "normal"
	Comfortable Urgency = "comfortable"
)

const (
	urgentThreshold = 6 * time.Hour
	normalThreshold = 24 * time.Hour
)

// Deadline returns the SLA deadline for a question created at createdAt
// (epoch seconds, already normalized) with the given SLA commitment.
func Deadline(createdAt int64, slaHours float64) time.Time {
	return time.Unix(createdAt, 0).UTC().Add(time.Duration(slaHours * float64(time.Hour)))
}

// Remaining returns the time left until the SLA deadline. Negative when
// the deadline has passed.
func Remaining(createdAt int64, slaHours float64, now time.Time) time.Duration {
	return Deadline(createdAt, slaHours).Sub(now)
}

// Classify maps one question's creation time and SLA commitment to an
// urgency tier. Pure function of (createdAt, slaHours, now).
func Classify(createdAt int64, slaHours float64, now time.Time) Urgency {
	remaining := Remaining(createdAt, slaHours, now)
	switch {
	case remaining <= 0:
		return Overdue
	case remaining < urgentThreshold:
		return Urgent
	case remaining < normalThreshold:
		return Normal
	default:
		return Comfortable
	}
}

// EffectiveSLAHours picks the SLA commitment for a question. The
// per-question snapshot is immutable history and always wins; the expert's
// live setting is only a fallback for records created before snapshots
// existed.
func EffectiveSLAHours(snapshot *float64, expertDefault float64) float64 {
	if snapshot != nil && *snapshot > 0 {
		return *snapshot
	}
	return expertDefault
}
