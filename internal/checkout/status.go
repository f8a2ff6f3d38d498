package checkout

// Step is the wizard position. Steps only move forward on valid input
// and backward via Back; they never skip.
type Step int

const (
	StepShipping Step = 1
	StepPayment  Step = 2
	StepReview   Step = 3
)

func (s Step) String() string {
	switch s {
	case StepShipping:
		return "SHIPPING"
	case StepPayment:
		return "PAYMENT"
	case StepReview:
		return "REVIEW"
	default:
		return "UNKNOWN"
	}
}

type Status string

const (
	// StatusEmptyCart short-circuits the wizard: entered with nothing
	// to buy, it never reaches the shipping step.
	StatusEmptyCart  Status = "EMPTY_CART"
	StatusInProgress Status = "IN_PROGRESS"
	StatusConfirmed  Status = "CONFIRMED"
)

func (s Status) IsTerminal() bool {
	return s == StatusConfirmed || s == StatusEmptyCart
}
