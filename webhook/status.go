package webhook

/* Outcome represents what happened to a single outgoing webhook call
 * Async calls go Scheduled -> Delivered/Failed, or Rejected when the queue is full
 * Sync calls go straight to Delivered/Failed
 */
type Outcome int

const (
	Scheduled Outcome = iota + 1
	Rejected
	Delivered
	Failed
)

// Outcomes lists every outcome in reporting order
var Outcomes = []Outcome{Scheduled, Rejected, Delivered, Failed}

// String returns the string representation of the outcome
func (o Outcome) String() string {
	switch o {
	case Scheduled:
		return "scheduled"
	case Rejected:
		return "rejected"
	case Delivered:
		return "delivered"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// IsFinal returns true if the call has finished, successfully or not
func (o Outcome) IsFinal() bool {
	return o == Delivered || o == Failed
}

// outcomeFor classifies a finished call: a 2xx answer is Delivered,
// anything else, including a transport error, is Failed.
func outcomeFor(statusCode int, err error) Outcome {
	if err != nil || !isSuccess(statusCode) {
		return Failed
	}
	return Delivered
}

func isSuccess(statusCode int) bool {
	return statusCode >= 200 && statusCode < 300
}
