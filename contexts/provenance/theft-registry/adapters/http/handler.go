package httpadapter

import (
	"context"
	"log/slog"

	application "provenance/contexts/provenance/theft-registry/application"
	"provenance/contexts/provenance/theft-registry/application/commands"
	"provenance/contexts/provenance/theft-registry/application/queries"
	"provenance/contexts/provenance/theft-registry/domain/entities"
	httptransport "provenance/contexts/provenance/theft-registry/transport/http"
	ledger "provenance/contracts/ledger/v1"
)

type Handler struct {
	Flag    commands.FlagUseCase
	Unflag  commands.UnflagUseCase
	GetFlag queries.GetFlagUseCase
	Logger  *slog.Logger
}

func (h Handler) FlagHandler(ctx context.Context, callerID string, serialID string) (httptransport.TheftStatusResponse, error) {
	logger := application.ResolveLogger(h.Logger)
	logger.Debug("http flag stolen received",
		"event", "theft_http_flag_received",
		"module", "provenance/theft-registry",
		"layer", "transport",
		"caller", callerID,
		"serial_id", serialID,
	)

	caller, err := ledger.ParsePrincipal(callerID)
	if err != nil {
		return httptransport.TheftStatusResponse{}, err
	}
	flag, err := h.Flag.Execute(ctx, commands.FlagCommand{Caller: caller, SerialID: serialID})
	if err != nil {
		return httptransport.TheftStatusResponse{}, err
	}
	return toStatusResponse(flag), nil
}

func (h Handler) UnflagHandler(ctx context.Context, callerID string, serialID string) (httptransport.TheftStatusResponse, error) {
	caller, err := ledger.ParsePrincipal(callerID)
	if err != nil {
		return httptransport.TheftStatusResponse{}, err
	}
	flag, err := h.Unflag.Execute(ctx, commands.FlagCommand{Caller: caller, SerialID: serialID})
	if err != nil {
		return httptransport.TheftStatusResponse{}, err
	}
	return toStatusResponse(flag), nil
}

func (h Handler) StatusHandler(ctx context.Context, serialID string) (httptransport.TheftStatusResponse, error) {
	flag, err := h.GetFlag.Execute(ctx, serialID)
	if err != nil {
		return httptransport.TheftStatusResponse{}, err
	}
	return toStatusResponse(flag), nil
}

func toStatusResponse(flag entities.TheftFlag) httptransport.TheftStatusResponse {
	response := httptransport.TheftStatusResponse{
		SerialID: flag.SerialID,
		Stolen:   flag.Stolen,
	}
	if !flag.UpdatedAt.IsZero() {
		updatedAt := flag.UpdatedAt
		response.UpdatedBy = flag.UpdatedBy.Hex()
		response.UpdatedAt = &updatedAt
	}
	return response
}
