package queries

import (
	"context"
	"strings"

	"provenance/contexts/provenance/theft-registry/domain/entities"
	"provenance/contexts/provenance/theft-registry/ports"
)

type GetFlagUseCase struct {
	Repository ports.Repository
	Transactor ports.Transactor
}

// Execute never fails for an unknown serial; it reports Stolen=false.
func (u GetFlagUseCase) Execute(ctx context.Context, serialID string) (entities.TheftFlag, error) {
	serialID = strings.TrimSpace(serialID)
	flag := entities.TheftFlag{SerialID: serialID}
	err := u.Transactor.View(ctx, func(ctx context.Context) error {
		stored, found, err := u.Repository.GetFlag(ctx, serialID)
		if err != nil {
			return err
		}
		if found {
			flag = stored
		}
		return nil
	})
	if err != nil {
		return entities.TheftFlag{}, err
	}
	return flag, nil
}
