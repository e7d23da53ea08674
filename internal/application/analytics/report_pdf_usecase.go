package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
)

// ReportPDFGenerator puerto de salida para renderizar reportes en PDF.
type ReportPDFGenerator interface {
	TradeAccountPDF(ctx context.Context, report *dto.TradeAccountDTO) ([]byte, error)
	CashUpPDF(ctx context.Context, report *dto.CashUpDTO) ([]byte, error)
}

// ReportPDFUseCase exporta la cuenta comercial y el arqueo en PDF.
type ReportPDFUseCase struct {
	tradeAccount *TradeAccountUseCase
	cashUp       *CashUpUseCase
	generator    ReportPDFGenerator
}

// NewReportPDFUseCase construye el caso de uso.
func NewReportPDFUseCase(tradeAccount *TradeAccountUseCase, cashUp *CashUpUseCase, generator ReportPDFGenerator) *ReportPDFUseCase {
	return &ReportPDFUseCase{tradeAccount: tradeAccount, cashUp: cashUp, generator: generator}
}

// TradeAccountPDF devuelve (pdfBytes, filename, err).
func (uc *ReportPDFUseCase) TradeAccountPDF(ctx context.Context, businessID string, start, end time.Time) ([]byte, string, error) {
	report, err := uc.tradeAccount.Compute(ctx, businessID, start, end)
	if err != nil {
		return nil, "", err
	}
	pdfBytes, err := uc.generator.TradeAccountPDF(ctx, report)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: cuenta comercial: %w", err)
	}
	return pdfBytes, reportFilename("cuenta-comercial", start, end), nil
}

// CashUpPDF devuelve (pdfBytes, filename, err).
func (uc *ReportPDFUseCase) CashUpPDF(ctx context.Context, businessID string, start, end time.Time) ([]byte, string, error) {
	report, err := uc.cashUp.Compute(ctx, businessID, start, end)
	if err != nil {
		return nil, "", err
	}
	pdfBytes, err := uc.generator.CashUpPDF(ctx, report)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: arqueo: %w", err)
	}
	return pdfBytes, reportFilename("arqueo", start, end), nil
}

func reportFilename(prefix string, start, end time.Time) string {
	return fmt.Sprintf("%s_%s_%s.pdf", prefix, start.Format("20060102"), end.Format("20060102"))
}
