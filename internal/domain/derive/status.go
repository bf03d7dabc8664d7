package derive

import "github.com/mamadbah2/loombook/internal/domain/models"

// LogStatus is the read-time classification of a production log.
type LogStatus string

const (
	StatusCompleted LogStatus = "Completed"
	StatusOngoing   LogStatus = "Ongoing"
	StatusArchived  LogStatus = "Archived"
	StatusUnknown   LogStatus = "Unknown"
)

// ParseLogStatus accepts the status names plus "Active" as an alias of Ongoing.
func ParseLogStatus(value string) (LogStatus, bool) {
	switch value {
	case string(StatusCompleted):
		return StatusCompleted, true
	case string(StatusOngoing), string(models.AllocationActive):
		return StatusOngoing, true
	case string(StatusArchived):
		return StatusArchived, true
	case string(StatusUnknown):
		return StatusUnknown, true
	default:
		return "", false
	}
}

// Status classifies a log against the weaver's current design allocations.
// A nil weaver means the reference is dangling.
func Status(log models.ProductionLog, weaver *models.Weaver) LogStatus {
	if weaver == nil || len(log.Items) == 0 {
		return StatusUnknown
	}

	allCompleted := true
	anyActive := false
	for _, item := range log.Items {
		alloc, ok := weaver.Allocation(item.DesignID)
		if !ok || alloc.Status != models.AllocationCompleted {
			allCompleted = false
		}
		if ok && alloc.Status == models.AllocationActive {
			anyActive = true
		}
	}

	switch {
	case allCompleted:
		return StatusCompleted
	case anyActive:
		return StatusOngoing
	default:
		return StatusArchived
	}
}

// StatusIn classifies a log, resolving its weaver from the snapshot.
func StatusIn(snap models.Snapshot, log models.ProductionLog) LogStatus {
	if w, ok := snap.Weaver(log.WeaverID); ok {
		return Status(log, &w)
	}
	return Status(log, nil)
}
