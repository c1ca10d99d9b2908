package postgresadapter

import (
	"context"

	"github.com/google/uuid"
)

// UUIDGenerator issues notification ids for envelopes that arrive without one.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
