package postgres

import (
	"errors"

	"github.com/lib/pq"
)

// invalid_text_representation, raised when a malformed uuid is compared to a uuid column.
const pqInvalidTextRepresentation = "22P02"

func isInvalidText(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pqInvalidTextRepresentation
}
