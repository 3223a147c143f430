package store

// ErrorClassificator maps a driver error to a store [Status].
type ErrorClassificator interface {
	Classify(err error) Status
}
