package sale

// CheckoutState is a step of the checkout saga
type CheckoutState string

const (
	CheckoutStateIdle            CheckoutState = "IDLE"
	CheckoutStateValidating      CheckoutState = "VALIDATING"
	CheckoutStateHeaderPersisted CheckoutState = "HEADER_PERSISTED"
	CheckoutStateItemsPersisted  CheckoutState = "ITEMS_PERSISTED"
	CheckoutStateComposed        CheckoutState = "COMPOSED"
	CheckoutStateDone            CheckoutState = "DONE"

	CheckoutStateValidationFailed  CheckoutState = "VALIDATION_FAILED"
	CheckoutStateHeaderWriteFailed CheckoutState = "HEADER_WRITE_FAILED"
	CheckoutStateItemsWriteFailed  CheckoutState = "ITEMS_WRITE_FAILED"
)

// IsValid checks if the state is a valid CheckoutState
func (s CheckoutState) IsValid() bool {
	switch s {
	case CheckoutStateIdle, CheckoutStateValidating, CheckoutStateHeaderPersisted,
		CheckoutStateItemsPersisted, CheckoutStateComposed, CheckoutStateDone,
		CheckoutStateValidationFailed, CheckoutStateHeaderWriteFailed, CheckoutStateItemsWriteFailed:
		return true
	}
	return false
}

// String returns the string representation of CheckoutState
func (s CheckoutState) String() string {
	return string(s)
}

// IsTerminal reports whether no further transition is possible from s
func (s CheckoutState) IsTerminal() bool {
	switch s {
	case CheckoutStateDone, CheckoutStateValidationFailed,
		CheckoutStateHeaderWriteFailed, CheckoutStateItemsWriteFailed:
		return true
	}
	return false
}

// IsFailure reports whether s is one of the failure states
func (s CheckoutState) IsFailure() bool {
	switch s {
	case CheckoutStateValidationFailed, CheckoutStateHeaderWriteFailed, CheckoutStateItemsWriteFailed:
		return true
	}
	return false
}

// CanTransitionTo checks if the state can transition to the target.
// A failed composed read is not a state: COMPOSED is reached either way.
func (s CheckoutState) CanTransitionTo(target CheckoutState) bool {
	switch s {
	case CheckoutStateIdle:
		return target == CheckoutStateValidating
	case CheckoutStateValidating:
		return target == CheckoutStateHeaderPersisted || target == CheckoutStateValidationFailed ||
			target == CheckoutStateHeaderWriteFailed
	case CheckoutStateHeaderPersisted:
		return target == CheckoutStateItemsPersisted || target == CheckoutStateItemsWriteFailed
	case CheckoutStateItemsPersisted:
		return target == CheckoutStateComposed
	case CheckoutStateComposed:
		return target == CheckoutStateDone
	case CheckoutStateDone, CheckoutStateValidationFailed,
		CheckoutStateHeaderWriteFailed, CheckoutStateItemsWriteFailed:
		return false // Terminal states
	}
	return false
}
