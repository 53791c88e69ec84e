// Package till controla a abertura e o fechamento das sessões de caixa.
package till

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hugohenrick/pdv-conveniencia/internal/domain"
	"github.com/hugohenrick/pdv-conveniencia/internal/domain/period"
	"github.com/hugohenrick/pdv-conveniencia/internal/domain/till"
	"github.com/hugohenrick/pdv-conveniencia/pkg/logger"
	"github.com/shopspring/decimal"
)

// Service implementa o controle de caixa
type Service struct {
	tx     domain.Transactor
	repo   till.Repository
	logger logger.Logger
	loc    *time.Location
	now    func() time.Time
}

// NewService cria uma nova instância de Service. loc é o fuso da loja usado
// nos filtros de período.
func NewService(tx domain.Transactor, repo till.Repository, log logger.Logger, loc *time.Location) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{tx: tx, repo: repo, logger: log, loc: loc, now: time.Now}
}

// OpenTill abre um novo caixa. Apenas um caixa pode estar aberto por vez.
func (s *Service) OpenTill(ctx context.Context, openingFloat decimal.Decimal, operatorID string) (*till.Till, error) {
	t, err := till.NewTill(openingFloat, operatorID, s.now())
	if err != nil {
		return nil, err
	}

	_, err = s.repo.FindOpen(ctx)
	switch {
	case err == nil:
		return nil, till.ErrTillAlreadyOpen
	case !errors.Is(err, till.ErrNoOpenTill):
		return nil, fmt.Errorf("erro ao verificar caixa aberto: %w", err)
	}

	// A restrição do banco cobre a corrida entre a verificação e a inserção
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}

	s.logger.Info("caixa aberto", "till_id", t.ID, "operator_id", operatorID, "opening_float", openingFloat.String())
	return t, nil
}

// CurrentTill retorna o caixa aberto
func (s *Service) CurrentTill(ctx context.Context) (*till.Till, error) {
	return s.repo.FindOpen(ctx)
}

// CloseTill fecha o caixa. closing_total é o valor inicial mais o total
// líquido das vendas. counted é opcional.
func (s *Service) CloseTill(ctx context.Context, tillID string, counted *decimal.Decimal) (*till.Till, error) {
	var closed *till.Till
	err := s.tx.Transaction(ctx, func(ctx context.Context) error {
		t, err := s.repo.FindByIDForUpdate(ctx, tillID)
		if err != nil {
			return err
		}
		if !t.IsOpen() {
			return till.ErrAlreadyClosed
		}

		summary, err := s.repo.SalesSummary(ctx, t.ID)
		if err != nil {
			return fmt.Errorf("erro ao somar vendas do caixa: %w", err)
		}
		if err := t.Close(summary.Net, counted, s.now()); err != nil {
			return err
		}

		ok, err := s.repo.Close(ctx, t)
		if err != nil {
			return err
		}
		if !ok {
			return till.ErrAlreadyClosed
		}
		closed = t
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("caixa fechado", "till_id", closed.ID, "closing_total", closed.ClosingTotal.String())
	return closed, nil
}

// GetTill busca um caixa pelo ID
func (s *Service) GetTill(ctx context.Context, id string) (*till.Till, error) {
	return s.repo.FindByID(ctx, id)
}

// ListTills lista os caixas abertos no período
func (s *Service) ListTills(ctx context.Context, p period.Period, from, to *time.Time) ([]*till.Till, error) {
	rng, err := period.Resolve(p, s.now(), s.loc, from, to)
	if err != nil {
		return nil, err
	}
	return s.repo.List(ctx, rng)
}

// SalesSummary agrega as vendas do caixa
func (s *Service) SalesSummary(ctx context.Context, tillID string) (*till.SalesSummary, error) {
	if _, err := s.repo.FindByID(ctx, tillID); err != nil {
		return nil, err
	}
	return s.repo.SalesSummary(ctx, tillID)
}

// PaymentMethodTotals agrega os pagamentos do caixa por forma de pagamento
func (s *Service) PaymentMethodTotals(ctx context.Context, tillID string) ([]till.MethodTotal, error) {
	if _, err := s.repo.FindByID(ctx, tillID); err != nil {
		return nil, err
	}
	return s.repo.PaymentTotals(ctx, tillID)
}
