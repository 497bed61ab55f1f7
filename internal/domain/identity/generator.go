package identity

import (
	"context"
	"math"
	"math/rand"
	"strconv"

	"github.com/google/uuid"
)

// variabilityConstant bounds the legacy numeric id space.
const variabilityConstant = 1_000_000_000

// ExistsFunc probes storage for an id collision. A probe error is treated as
// "not taken": the candidate is accepted and the storage layer's conditional
// write remains the uniqueness guarantee, so an unreachable store can at
// worst surface an AlreadyExists on insert.
type ExistsFunc func(ctx context.Context, id string) (bool, error)

// NewNumericID draws random numeric ids in the legacy range until the probe
// reports no collision.
func NewNumericID(ctx context.Context, exists ExistsFunc) (string, error) {
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		candidate := strconv.FormatInt(int64(math.Round(rand.Float64()*variabilityConstant)), 10)
		taken, err := exists(ctx, candidate)
		if err != nil || !taken {
			return candidate, nil
		}
	}
}

// NewUUID draws random UUIDs until the probe reports no collision.
func NewUUID(ctx context.Context, exists ExistsFunc) (string, error) {
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		candidate := uuid.NewString()
		taken, err := exists(ctx, candidate)
		if err != nil || !taken {
			return candidate, nil
		}
	}
}
