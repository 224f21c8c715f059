package usecase

import (
	"time"

	"github.com/jhoicas/Vitrina-api/internal/application/dto"
	"github.com/jhoicas/Vitrina-api/internal/domain"
	"github.com/jhoicas/Vitrina-api/internal/domain/repository"
)

// ReportUseCase reportes de movimientos (feature starter).
type ReportUseCase struct {
	movementRepo repository.MovementRepository
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(movementRepo repository.MovementRepository) *ReportUseCase {
	return &ReportUseCase{movementRepo: movementRepo}
}

// Summary totaliza ventas y compras del tenant en el período [from, to].
func (uc *ReportUseCase) Summary(scope domain.Scope, from, to time.Time) (*dto.ReportSummaryResponse, error) {
	if !to.After(from) {
		return nil, domain.ErrInvalidInput
	}
	summary, err := uc.movementRepo.SummaryByPeriod(scope, from, to)
	if err != nil {
		return nil, err
	}
	return &dto.ReportSummaryResponse{
		From:           from,
		To:             to,
		SalesCount:     summary.SalesCount,
		SalesTotal:     summary.SalesTotal,
		PurchasesCount: summary.PurchasesCount,
		PurchasesTotal: summary.PurchasesTotal,
	}, nil
}
