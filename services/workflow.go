package services

import (
	"fmt"

	"journal-review-api/models"
)

// allowedTransitions enumerates every legal status edge. Editors may decide
// a submission straight from submitted without a formal review round; the
// revisions loop returns through under_review on resubmission only.
var allowedTransitions = map[string][]string{
	models.StatusSubmitted: {
		models.StatusUnderReview,
		models.StatusRevisionsRequired,
		models.StatusAccepted,
		models.StatusRejected,
	},
	models.StatusUnderReview: {
		models.StatusRevisionsRequired,
		models.StatusAccepted,
		models.StatusRejected,
	},
	models.StatusRevisionsRequired: {
		models.StatusUnderReview,
	},
	models.StatusAccepted: {
		models.StatusPublished,
	},
	models.StatusRejected:  {},
	models.StatusPublished: {},
}

// editorStatuses are the targets an editor may set via the status endpoint.
// under_review happens through reviewer assignment, published through the
// publish step, and neither is reachable here.
var editorStatuses = map[string]bool{
	models.StatusRevisionsRequired: true,
	models.StatusAccepted:          true,
	models.StatusRejected:          true,
}

// ValidStatus reports whether status is one of the six known states.
func ValidStatus(status string) bool {
	_, ok := allowedTransitions[status]
	return ok
}

// CanTransition reports whether from -> to is a legal status edge.
func CanTransition(from, to string) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// CheckTransition validates a status edge and returns a validation error
// naming the offending pair when it is off the graph.
func CheckTransition(from, to string) error {
	if !ValidStatus(to) {
		return ValidationError(fmt.Sprintf("Unknown status '%s'", to))
	}
	if !CanTransition(from, to) {
		return ValidationError(fmt.Sprintf("Cannot change status from '%s' to '%s'", from, to))
	}
	return nil
}

// CheckEditorDecision validates an editor-initiated status change: the edge
// must be legal and the target must be one an editor may set directly.
func CheckEditorDecision(from, to string) error {
	if !editorStatuses[to] {
		return ValidationError(fmt.Sprintf("Status '%s' cannot be set directly", to))
	}
	return CheckTransition(from, to)
}

// IsEditable reports whether the owning author may still change manuscript
// content in this status.
func IsEditable(status string) bool {
	return status == models.StatusSubmitted || status == models.StatusRevisionsRequired
}

// IsOpenForReview reports whether reviewers may still be assigned or submit
// recommendations against this status.
func IsOpenForReview(status string) bool {
	return status == models.StatusSubmitted || status == models.StatusUnderReview
}
