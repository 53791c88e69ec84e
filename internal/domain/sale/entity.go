package sale

import (
	"time"

	"github.com/google/uuid"
	"github.com/hugohenrick/pdv-conveniencia/internal/domain"
	"github.com/hugohenrick/pdv-conveniencia/pkg/apperror"
	"github.com/shopspring/decimal"
)

var (
	ErrSaleNotFound             = apperror.New(apperror.KindNotFound, "venda não encontrada")
	ErrEmptyItems               = apperror.Validation("a venda precisa de ao menos um item")
	ErrInvalidQuantity          = apperror.Validation("quantidade deve ser maior ou igual a 1")
	ErrNegativeDiscount         = apperror.Validation("desconto não pode ser negativo")
	ErrDiscountExceedsTotal     = apperror.Validation("desconto maior que o total da venda")
	ErrEmptyTenders             = apperror.Validation("a venda precisa de ao menos uma forma de pagamento")
	ErrUnknownMethod            = apperror.Validation("forma de pagamento desconhecida")
	ErrStoreCreditNeedsCustomer = apperror.Validation("pagamento em convênio exige um cliente")
	ErrCreditExceedsTotal       = apperror.Validation("pagamento em convênio não pode gerar troco")
	ErrEmptySeller              = apperror.Validation("vendedor não informado")
	ErrInvalidTenderAmount      = apperror.New(apperror.KindInvalidTenderAmount, "valor do pagamento deve ser maior que zero")
	ErrInsufficientPayment      = apperror.New(apperror.KindInsufficientPayment, "pagamentos não cobrem o total da venda")
)

// Method representa uma forma de pagamento
type Method string

const (
	MethodCash        Method = "cash"         // Dinheiro
	MethodDebit       Method = "debit"        // Cartão de débito
	MethodCredit      Method = "credit"       // Cartão de crédito
	MethodPix         Method = "pix"          // PIX
	MethodStoreCredit Method = "store_credit" // Convênio (gera conta a receber)
)

// Valid verifica se a forma de pagamento é conhecida
func (m Method) Valid() bool {
	switch m {
	case MethodCash, MethodDebit, MethodCredit, MethodPix, MethodStoreCredit:
		return true
	}
	return false
}

// StatusCompleted é a única situação produzida pelo fluxo de venda
const StatusCompleted = "completed"

// Sale representa uma venda fechada em um caixa
type Sale struct {
	ID         string          `json:"id"`
	TillID     string          `json:"till_id"`
	SellerID   string          `json:"seller_id"`
	CustomerID *string         `json:"customer_id"`
	Gross      decimal.Decimal `json:"gross_total"`
	Discount   decimal.Decimal `json:"discount"`
	Net        decimal.Decimal `json:"net_total"`
	Status     string          `json:"status"`
	CreatedAt  time.Time       `json:"created_at"`
	Items      []Item          `json:"items"`
	Payments   []Payment       `json:"payments"`
}

// Item é uma linha da venda
type Item struct {
	ID        string          `json:"id"`
	SaleID    string          `json:"sale_id"`
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// Payment é um pagamento (tender) aplicado à venda
type Payment struct {
	ID         string          `json:"id"`
	SaleID     string          `json:"sale_id"`
	Method     Method          `json:"method"`
	Amount     decimal.Decimal `json:"amount"`
	CustomerID *string         `json:"customer_id"`
}

// NewSale monta a venda, calcula os totais e verifica se os pagamentos
// cobrem o total líquido. Os itens precisam vir com UnitPrice preenchido.
func NewSale(tillID, sellerID string, customerID *string, items []Item, payments []Payment, discount decimal.Decimal, at time.Time) (*Sale, error) {
	if len(items) == 0 {
		return nil, ErrEmptyItems
	}
	if discount.IsNegative() {
		return nil, ErrNegativeDiscount
	}
	if err := domain.CheckCents(discount); err != nil {
		return nil, err
	}

	s := &Sale{
		ID:         uuid.New().String(),
		TillID:     tillID,
		SellerID:   sellerID,
		CustomerID: customerID,
		Discount:   discount,
		Status:     StatusCompleted,
		CreatedAt:  at,
	}

	gross := decimal.Zero
	for _, it := range items {
		if it.Quantity < 1 {
			return nil, ErrInvalidQuantity
		}
		it.ID = uuid.New().String()
		it.SaleID = s.ID
		it.LineTotal = it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity)))
		gross = gross.Add(it.LineTotal)
		s.Items = append(s.Items, it)
	}
	if discount.GreaterThan(gross) {
		return nil, ErrDiscountExceedsTotal
	}
	s.Gross = gross
	s.Net = gross.Sub(discount)

	for _, p := range payments {
		p.ID = uuid.New().String()
		p.SaleID = s.ID
		s.Payments = append(s.Payments, p)
	}
	if s.TenderTotal().LessThan(s.Net) {
		return nil, ErrInsufficientPayment
	}
	return s, nil
}

// TenderTotal soma todos os pagamentos
func (s *Sale) TenderTotal() decimal.Decimal {
	total := decimal.Zero
	for _, p := range s.Payments {
		total = total.Add(p.Amount)
	}
	return total
}

// StoreCreditTotal soma os pagamentos em convênio
func (s *Sale) StoreCreditTotal() decimal.Decimal {
	return StoreCreditTotal(s.Payments)
}

// Change retorna o troco devido ao cliente
func (s *Sale) Change() decimal.Decimal {
	return s.TenderTotal().Sub(s.Net)
}

// StoreCreditTotal soma os pagamentos em convênio de uma lista
func StoreCreditTotal(payments []Payment) decimal.Decimal {
	total := decimal.Zero
	for _, p := range payments {
		if p.Method == MethodStoreCredit {
			total = total.Add(p.Amount)
		}
	}
	return total
}

// ValidateTenders verifica os pagamentos antes de qualquer leitura no banco
func ValidateTenders(payments []Payment, customerID *string) error {
	if len(payments) == 0 {
		return ErrEmptyTenders
	}
	for _, p := range payments {
		if !p.Method.Valid() {
			return ErrUnknownMethod
		}
		if !p.Amount.IsPositive() {
			return ErrInvalidTenderAmount
		}
		if err := domain.CheckCents(p.Amount); err != nil {
			return err
		}
		if p.Method == MethodStoreCredit && customerID == nil {
			return ErrStoreCreditNeedsCustomer
		}
	}
	return nil
}
