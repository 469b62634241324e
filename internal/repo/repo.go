package repo

import (
	"errors"

	"github.com/storefront/backend/internal/mongodb"
)

var ErrNotFound = errors.New("not found")
var ErrDuplicate = errors.New("duplicate")

// MongoRepo is the single persistence gateway; every method is one document
// store operation (plus at most one read for error classification).
type MongoRepo struct {
	DB *mongodb.DB
}
