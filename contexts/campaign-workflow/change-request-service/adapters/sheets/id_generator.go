package sheetsadapter

import (
	"context"

	"github.com/google/uuid"
)

// UUIDGenerator issues change request ids.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
