package game

import "errors"

var (
	ErrNoMapping              = errors.New("key has no slot")
	ErrInvalidCount           = errors.New("stack count out of range")
	ErrIllegalRun             = errors.New("cards do not form a stack")
	ErrIllegalDestination     = errors.New("cannot place onto destination")
	ErrEmptySource            = errors.New("nothing to move")
	ErrDragonCollectionFailed = errors.New("dragons not collectable")
	ErrEngine                 = errors.New("engine refused transfer")
)

// NoticeFor returns the status-line text for a rejection, or "" for errors
// that are dropped silently.
func NoticeFor(err error) string {
	switch {
	case err == nil,
		errors.Is(err, ErrNoMapping),
		errors.Is(err, ErrInvalidCount):
		return ""
	case errors.Is(err, ErrIllegalRun):
		return "Not a valid stack"
	case errors.Is(err, ErrIllegalDestination):
		return "Cannot stack onto that"
	case errors.Is(err, ErrEmptySource):
		return "Nothing to move"
	case errors.Is(err, ErrDragonCollectionFailed):
		return "Cannot collect dragon"
	}
	return "Move failed"
}
