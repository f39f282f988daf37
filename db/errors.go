package db

import (
	"strings"

	adb "github.com/mongodb/anser/db"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/x/mongo/driver"
)

// ResultsNotFound reports whether err means a query matched no documents.
func ResultsNotFound(err error) bool {
	if err == nil {
		return false
	}
	return adb.ResultsNotFound(err) || errors.Is(err, mongo.ErrNoDocuments)
}

// IsUnavailable reports whether err means the deployment could not be
// reached, as opposed to the operation itself failing.
func IsUnavailable(err error) bool {
	if err == nil {
		return false
	}

	cause := errors.Cause(err)
	if errors.Is(cause, mongo.ErrClientDisconnected) {
		return true
	}
	if mongo.IsNetworkError(cause) || mongo.IsTimeout(cause) {
		return true
	}

	return strings.Contains(cause.Error(), "server selection error")
}

// Server error codes for a document that exceeds the BSON size limit,
// either as sent or as it would be after an update.
const (
	errCodeObjectTooLarge       = 10334
	errCodeUpdatedDocTooLarge   = 17419
	errCodeUpdatedDocTooLargeV2 = 17420
)

// IsDocumentLimit reports whether err means a document was rejected for
// exceeding the maximum document size.
func IsDocumentLimit(err error) bool {
	if err == nil {
		return false
	}

	cause := errors.Cause(err)
	if errors.Is(cause, driver.ErrDocumentTooLarge) {
		return true
	}
	var serverErr mongo.ServerError
	if errors.As(cause, &serverErr) {
		for _, code := range []int{errCodeObjectTooLarge, errCodeUpdatedDocTooLarge, errCodeUpdatedDocTooLargeV2} {
			if serverErr.HasErrorCode(code) {
				return true
			}
		}
	}

	return strings.Contains(cause.Error(), "document is too large")
}
