// Package settlement fecha vendas no caixa aberto: valida os pagamentos,
// baixa o estoque e gera a conta a receber dos pagamentos em convênio, tudo
// em uma única transação.
package settlement

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/hugohenrick/pdv-conveniencia/internal/domain"
	"github.com/hugohenrick/pdv-conveniencia/internal/domain/customer"
	"github.com/hugohenrick/pdv-conveniencia/internal/domain/period"
	"github.com/hugohenrick/pdv-conveniencia/internal/domain/product"
	"github.com/hugohenrick/pdv-conveniencia/internal/domain/sale"
	"github.com/hugohenrick/pdv-conveniencia/internal/domain/till"
	"github.com/hugohenrick/pdv-conveniencia/pkg/logger"
	"github.com/shopspring/decimal"
)

// StockAdjuster altera o saldo de estoque de um produto
type StockAdjuster interface {
	AdjustStock(ctx context.Context, productID string, delta int) (int, error)
}

// CreditLedger consulta o crédito e registra dívidas de clientes
type CreditLedger interface {
	AvailableCredit(ctx context.Context, customerID string) (decimal.Decimal, error)
	RecordReceivable(ctx context.Context, customerID string, saleID *string, amount decimal.Decimal, dueDate time.Time) (*customer.Receivable, error)
	DueDateFor(c *customer.Customer) time.Time
}

// ItemRequest é um item pedido no caixa
type ItemRequest struct {
	ProductID string
	Quantity  int
}

// TenderRequest é um pagamento informado no caixa
type TenderRequest struct {
	Method sale.Method
	Amount decimal.Decimal
}

// SettleRequest reúne os dados de uma venda
type SettleRequest struct {
	Items         []ItemRequest
	Tenders       []TenderRequest
	Discount      decimal.Decimal
	SellerID      string
	CustomerID    *string
	CreditDueDate *time.Time // Vencimento da conta gerada; padrão pelo prazo do cliente
}

// SettleResult é o retorno de uma venda fechada. O troco não é gravado.
type SettleResult struct {
	SaleID   string          `json:"sale_id"`
	NetTotal decimal.Decimal `json:"net_total"`
	Change   decimal.Decimal `json:"change"`
}

// ListFilter define os critérios de consulta de vendas
type ListFilter struct {
	TillID     string
	CustomerID string
	Period     period.Period
	From       *time.Time
	To         *time.Time
	Limit      int
	Offset     int
}

// Engine implementa o fechamento de vendas
type Engine struct {
	tx        domain.Transactor
	tills     till.Repository
	products  product.Repository
	customers customer.Repository
	sales     sale.Repository
	stock     StockAdjuster
	ledger    CreditLedger
	logger    logger.Logger
	loc       *time.Location
	now       func() time.Time
}

// NewEngine cria uma nova instância de Engine
func NewEngine(
	tx domain.Transactor,
	tills till.Repository,
	products product.Repository,
	customers customer.Repository,
	sales sale.Repository,
	stock StockAdjuster,
	ledger CreditLedger,
	log logger.Logger,
	loc *time.Location,
) *Engine {
	if loc == nil {
		loc = time.UTC
	}
	return &Engine{
		tx:        tx,
		tills:     tills,
		products:  products,
		customers: customers,
		sales:     sales,
		stock:     stock,
		ledger:    ledger,
		logger:    log,
		loc:       loc,
		now:       time.Now,
	}
}

// SettleSale registra uma venda no caixa aberto
func (e *Engine) SettleSale(ctx context.Context, req SettleRequest) (*SettleResult, error) {
	payments, err := validate(req)
	if err != nil {
		return nil, err
	}

	var result *SettleResult
	err = e.tx.Transaction(ctx, func(ctx context.Context) error {
		current, err := e.tills.FindOpenForShare(ctx)
		if err != nil {
			return err
		}

		items, err := e.priceItems(ctx, req.Items)
		if err != nil {
			return err
		}

		s, err := sale.NewSale(current.ID, req.SellerID, req.CustomerID, items, payments, req.Discount, e.now())
		if err != nil {
			return err
		}

		var debtor *customer.Customer
		if req.CustomerID != nil {
			debtor, err = e.checkCustomer(ctx, *req.CustomerID, s)
			if err != nil {
				return err
			}
		}

		if err := e.sales.Create(ctx, s); err != nil {
			return err
		}
		for _, it := range s.Items {
			if _, err := e.stock.AdjustStock(ctx, it.ProductID, -it.Quantity); err != nil {
				return err
			}
		}

		if credit := s.StoreCreditTotal(); credit.IsPositive() {
			due := e.ledger.DueDateFor(debtor)
			if req.CreditDueDate != nil {
				due = *req.CreditDueDate
			}
			saleID := s.ID
			if _, err := e.ledger.RecordReceivable(ctx, debtor.ID, &saleID, credit, due); err != nil {
				return err
			}
		}

		result = &SettleResult{SaleID: s.ID, NetTotal: s.Net, Change: s.Change()}
		return nil
	})
	if err != nil {
		e.logger.Warn("venda recusada", "error", err.Error())
		return nil, err
	}

	e.logger.Info("venda registrada", "sale_id", result.SaleID, "net_total", result.NetTotal.String())
	return result, nil
}

// GetSale busca uma venda com itens e pagamentos
func (e *Engine) GetSale(ctx context.Context, id string) (*sale.Sale, error) {
	return e.sales.FindByID(ctx, id)
}

// ListSales lista vendas por caixa, cliente e período
func (e *Engine) ListSales(ctx context.Context, f ListFilter) ([]*sale.Sale, int, error) {
	rng, err := period.Resolve(f.Period, e.now(), e.loc, f.From, f.To)
	if err != nil {
		return nil, 0, err
	}
	return e.sales.List(ctx, sale.Filter{
		TillID:     f.TillID,
		CustomerID: f.CustomerID,
		Range:      rng,
		Limit:      f.Limit,
		Offset:     f.Offset,
	})
}

func validate(req SettleRequest) ([]sale.Payment, error) {
	if req.SellerID == "" {
		return nil, sale.ErrEmptySeller
	}
	if len(req.Items) == 0 {
		return nil, sale.ErrEmptyItems
	}
	for _, it := range req.Items {
		if it.Quantity < 1 {
			return nil, sale.ErrInvalidQuantity
		}
	}
	if req.Discount.IsNegative() {
		return nil, sale.ErrNegativeDiscount
	}
	if err := domain.CheckCents(req.Discount); err != nil {
		return nil, err
	}

	payments := make([]sale.Payment, 0, len(req.Tenders))
	for _, t := range req.Tenders {
		p := sale.Payment{Method: t.Method, Amount: t.Amount}
		if t.Method == sale.MethodStoreCredit {
			p.CustomerID = req.CustomerID
		}
		payments = append(payments, p)
	}
	if err := sale.ValidateTenders(payments, req.CustomerID); err != nil {
		return nil, err
	}
	return payments, nil
}

// priceItems bloqueia os produtos em ordem de ID, confere estoque e preenche
// o preço de venda do catálogo
func (e *Engine) priceItems(ctx context.Context, reqs []ItemRequest) ([]sale.Item, error) {
	wanted := map[string]int{}
	for _, it := range reqs {
		wanted[it.ProductID] += it.Quantity
	}
	ids := make([]string, 0, len(wanted))
	for id := range wanted {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	locked := make(map[string]*product.Product, len(ids))
	for _, id := range ids {
		p, err := e.products.FindByIDForUpdate(ctx, id)
		if err != nil {
			return nil, err
		}
		if !p.Active {
			return nil, product.ErrProductInactive
		}
		if p.Stock < wanted[id] {
			return nil, fmt.Errorf("%w: %s", product.ErrInsufficientStock, p.Code)
		}
		locked[id] = p
	}

	items := make([]sale.Item, 0, len(reqs))
	for _, it := range reqs {
		items = append(items, sale.Item{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: locked[it.ProductID].SellPrice,
		})
	}
	return items, nil
}

// checkCustomer bloqueia o cliente e confere o crédito dos pagamentos em convênio
func (e *Engine) checkCustomer(ctx context.Context, customerID string, s *sale.Sale) (*customer.Customer, error) {
	c, err := e.customers.FindByIDForUpdate(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if !c.IsActive() {
		return nil, customer.ErrCustomerNotFound
	}

	credit := s.StoreCreditTotal()
	if !credit.IsPositive() {
		return c, nil
	}
	if credit.GreaterThan(s.Net) {
		return nil, sale.ErrCreditExceedsTotal
	}
	available, err := e.ledger.AvailableCredit(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	if credit.GreaterThan(available) {
		return nil, customer.ErrCreditLimitExceeded
	}
	return c, nil
}
