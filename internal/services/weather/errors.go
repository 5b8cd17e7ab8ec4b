package weather

// Reasons carried by ValidationError.
const (
	ReasonInvalidLocation   = "invalid location"
	ReasonDatesRequired     = "dates required"
	ReasonInvalidDateFormat = "invalid date format"
	ReasonRangeTooLarge     = "range too large"
	ReasonRangeReversed     = "range reversed"
)

// ValidationError is a caller mistake; the message is safe to show to the user.
type ValidationError struct {
	Reason  string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// UpstreamError is a failed or unusable response from the weather provider.
type UpstreamError struct {
	Err error
}

func (e *UpstreamError) Error() string {
	return "Failed to fetch weather data: " + e.Err.Error()
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

type StorageOp string

const (
	OpSave StorageOp = "save"
	OpLoad StorageOp = "load"
)

// StorageError is a failed read or write against the reading store.
type StorageError struct {
	Op  StorageOp
	Err error
}

func (e *StorageError) Error() string {
	if e.Op == OpLoad {
		return "Failed to load weather history: " + e.Err.Error()
	}
	return "Failed to save weather data: " + e.Err.Error()
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
