package store

import (
	stdErrors "errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/rcpch/national-paediatric-diabetes-audit-sub001/errors"
)

func IsDuplicateKeyError(err error) bool {
	var e mongo.ServerError
	if !stdErrors.As(err, &e) {
		return false
	}
	return e.HasErrorCode(11000) || e.HasErrorCode(11001) || e.HasErrorCode(12582) ||
		e.HasErrorCodeWithMessage(16460, " E11000 ")
}

// Translate maps driver errors to their domain counterparts. Anything it does not know
// is wrapped with the failed operation.
func Translate(err error, operation string) error {
	switch {
	case err == nil:
		return nil
	case stdErrors.Is(err, mongo.ErrNoDocuments):
		return errors.NotFound
	case IsDuplicateKeyError(err):
		return errors.Duplicate
	default:
		return fmt.Errorf("error %s: %w", operation, err)
	}
}
