package ports

//go:generate mockgen -source=persona_ports.go -destination=mocks/persona.go -package=mocks

import (
	"context"

	"github.com/vncsmyrnk/votemap/internal/core/domain"
)

type PersonaService interface {
	ComputeUserStats(ctx context.Context, voter domain.VoterIdentity) (*domain.UserStats, error)
}
