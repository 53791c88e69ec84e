// Package intake registra as entradas de mercadoria de fornecedores.
package intake

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/hugohenrick/pdv-conveniencia/internal/domain"
	"github.com/hugohenrick/pdv-conveniencia/internal/domain/period"
	"github.com/hugohenrick/pdv-conveniencia/internal/domain/product"
	"github.com/hugohenrick/pdv-conveniencia/internal/domain/purchase"
	"github.com/hugohenrick/pdv-conveniencia/pkg/logger"
	"github.com/shopspring/decimal"
)

// StockAdjuster altera o saldo de estoque de um produto
type StockAdjuster interface {
	AdjustStock(ctx context.Context, productID string, delta int) (int, error)
}

// ItemRequest é um item recebido do fornecedor
type ItemRequest struct {
	ProductID string
	Quantity  int
	UnitCost  decimal.Decimal
}

// ListFilter define os critérios de consulta de compras
type ListFilter struct {
	SupplierID string
	Status     purchase.Status
	Period     period.Period
	From       *time.Time
	To         *time.Time
	Limit      int
	Offset     int
}

// Engine implementa o registro de compras e o cadastro de fornecedores
type Engine struct {
	tx        domain.Transactor
	purchases purchase.Repository
	suppliers purchase.SupplierRepository
	products  product.Repository
	stock     StockAdjuster
	logger    logger.Logger
	loc       *time.Location
	now       func() time.Time
}

// NewEngine cria uma nova instância de Engine
func NewEngine(
	tx domain.Transactor,
	purchases purchase.Repository,
	suppliers purchase.SupplierRepository,
	products product.Repository,
	stock StockAdjuster,
	log logger.Logger,
	loc *time.Location,
) *Engine {
	if loc == nil {
		loc = time.UTC
	}
	return &Engine{
		tx:        tx,
		purchases: purchases,
		suppliers: suppliers,
		products:  products,
		stock:     stock,
		logger:    log,
		loc:       loc,
		now:       time.Now,
	}
}

// RecordPurchase registra a compra como pendente, soma as quantidades ao
// estoque e grava o custo unitário como preço de custo do produto
func (e *Engine) RecordPurchase(ctx context.Context, supplierID string, reqs []ItemRequest, createdBy string) (*purchase.Purchase, error) {
	items := make([]purchase.Item, 0, len(reqs))
	for _, r := range reqs {
		items = append(items, purchase.Item{ProductID: r.ProductID, Quantity: r.Quantity, UnitCost: r.UnitCost})
	}
	p, err := purchase.NewPurchase(supplierID, createdBy, items, e.now())
	if err != nil {
		return nil, err
	}

	err = e.tx.Transaction(ctx, func(ctx context.Context) error {
		if _, err := e.suppliers.FindByID(ctx, supplierID); err != nil {
			return err
		}
		for _, it := range p.Items {
			if _, err := e.products.FindByID(ctx, it.ProductID); err != nil {
				return err
			}
		}

		if err := e.purchases.Create(ctx, p); err != nil {
			return err
		}
		for _, it := range byProduct(p.Items) {
			if _, err := e.stock.AdjustStock(ctx, it.ProductID, it.Quantity); err != nil {
				return err
			}
			if err := e.products.SetCostPrice(ctx, it.ProductID, it.UnitCost); err != nil {
				return fmt.Errorf("erro ao atualizar custo do produto: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.logger.Info("compra registrada", "purchase_id", p.ID, "supplier_id", supplierID, "total", p.Total.String())
	return p, nil
}

// MarkPurchaseCompleted conclui uma compra pendente. O estoque não é alterado.
func (e *Engine) MarkPurchaseCompleted(ctx context.Context, id string) error {
	err := e.tx.Transaction(ctx, func(ctx context.Context) error {
		p, err := e.purchases.FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := p.Complete(e.now()); err != nil {
			return err
		}
		return e.purchases.UpdateStatus(ctx, p)
	})
	if err != nil {
		return err
	}
	e.logger.Info("compra concluída", "purchase_id", id)
	return nil
}

// CancelPurchase cancela a compra e estorna o estoque dos itens. Falha se as
// unidades já foram vendidas.
func (e *Engine) CancelPurchase(ctx context.Context, id string) error {
	err := e.tx.Transaction(ctx, func(ctx context.Context) error {
		p, err := e.purchases.FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := p.Cancel(e.now()); err != nil {
			return err
		}
		for _, it := range byProduct(p.Items) {
			if _, err := e.stock.AdjustStock(ctx, it.ProductID, -it.Quantity); err != nil {
				return err
			}
		}
		return e.purchases.UpdateStatus(ctx, p)
	})
	if err != nil {
		return err
	}
	e.logger.Info("compra cancelada", "purchase_id", id)
	return nil
}

// byProduct devolve uma cópia dos itens ordenada por produto, a mesma ordem de
// bloqueio usada na liquidação de vendas
func byProduct(items []purchase.Item) []purchase.Item {
	sorted := make([]purchase.Item, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].ProductID < sorted[j].ProductID })
	return sorted
}

// GetPurchase busca uma compra com seus itens
func (e *Engine) GetPurchase(ctx context.Context, id string) (*purchase.Purchase, error) {
	return e.purchases.FindByID(ctx, id)
}

// ListPurchases lista compras por fornecedor, situação e período
func (e *Engine) ListPurchases(ctx context.Context, f ListFilter) ([]*purchase.Purchase, int, error) {
	rng, err := period.Resolve(f.Period, e.now(), e.loc, f.From, f.To)
	if err != nil {
		return nil, 0, err
	}
	return e.purchases.List(ctx, purchase.Filter{
		SupplierID: f.SupplierID,
		Status:     f.Status,
		Range:      rng,
		Limit:      f.Limit,
		Offset:     f.Offset,
	})
}
