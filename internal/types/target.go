package types

// TargetType discriminates what a discount plan is aimed at. Plans in the wild
// carry both variants; only the segment arm participates in resolution today.
type TargetType string

const (
	TargetTypeSegment  TargetType = "segment"
	TargetTypeCustomer TargetType = "customer"
)

func (t TargetType) Validate() bool {
	switch t {
	case TargetTypeSegment, TargetTypeCustomer:
		return true
	}
	return false
}

// ResolutionState tracks the order path through the pipeline. States are
// logged per request and never persisted.
type ResolutionState string

const (
	ResolutionStateReceived          ResolutionState = "received"
	ResolutionStateValidated         ResolutionState = "validated"
	ResolutionStateSegmentMatched    ResolutionState = "segment_matched"
	ResolutionStateNoMatch           ResolutionState = "no_match"
	ResolutionStatePlanSelected      ResolutionState = "plan_selected"
	ResolutionStateNoPlan            ResolutionState = "no_plan"
	ResolutionStateDiscountsComputed ResolutionState = "discounts_computed"
	ResolutionStateOrderSubmitted    ResolutionState = "order_submitted"
	ResolutionStateSucceeded         ResolutionState = "succeeded"
	ResolutionStateFailed            ResolutionState = "failed"
)
