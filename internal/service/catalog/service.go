// Package catalog mantém produtos, categorias e saldos de estoque.
package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/hugohenrick/pdv-conveniencia/internal/domain"
	"github.com/hugohenrick/pdv-conveniencia/internal/domain/product"
	"github.com/hugohenrick/pdv-conveniencia/pkg/logger"
)

// Service implementa o gerenciamento de catálogo
type Service struct {
	tx           domain.Transactor
	products     product.Repository
	categories   product.CategoryRepository
	logger       logger.Logger
	expiryWindow time.Duration
	now          func() time.Time
}

// NewService cria uma nova instância de Service. expiryWindowDays define o
// horizonte padrão do alerta de validade.
func NewService(tx domain.Transactor, products product.Repository, categories product.CategoryRepository, log logger.Logger, expiryWindowDays int) *Service {
	if expiryWindowDays <= 0 {
		expiryWindowDays = 30
	}
	return &Service{
		tx:           tx,
		products:     products,
		categories:   categories,
		logger:       log,
		expiryWindow: time.Duration(expiryWindowDays) * 24 * time.Hour,
		now:          time.Now,
	}
}

// AdjustStock soma delta ao estoque do produto e retorna o novo saldo.
// Quando chamado dentro de uma transação participa dela.
func (s *Service) AdjustStock(ctx context.Context, productID string, delta int) (int, error) {
	var stock int
	err := s.tx.Transaction(ctx, func(ctx context.Context) error {
		p, err := s.products.FindByIDForUpdate(ctx, productID)
		if err != nil {
			return err
		}
		stock = p.Stock + delta
		if stock < 0 {
			return product.ErrInsufficientStock
		}
		return s.products.SetStock(ctx, productID, stock)
	})
	if err != nil {
		return 0, err
	}
	s.logger.Debug("estoque ajustado", "product_id", productID, "delta", delta, "stock", stock)
	return stock, nil
}

// CreateProduct cadastra um novo produto
func (s *Service) CreateProduct(ctx context.Context, f product.Fields) (*product.Product, error) {
	p, err := product.NewProduct(f)
	if err != nil {
		return nil, err
	}
	if err := s.checkCategory(ctx, p.CategoryID); err != nil {
		return nil, err
	}

	exists, err := s.products.ExistsActiveCode(ctx, p.Code, "")
	if err != nil {
		return nil, fmt.Errorf("erro ao verificar código do produto: %w", err)
	}
	if exists {
		return nil, product.ErrDuplicateCode
	}

	if err := s.products.Create(ctx, p); err != nil {
		return nil, err
	}
	s.logger.Info("produto cadastrado", "product_id", p.ID, "code", p.Code)
	return p, nil
}

// UpdateProduct altera os dados cadastrais de um produto
func (s *Service) UpdateProduct(ctx context.Context, id string, f product.Fields) (*product.Product, error) {
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := p.Update(f); err != nil {
		return nil, err
	}
	if err := s.checkCategory(ctx, p.CategoryID); err != nil {
		return nil, err
	}
	if p.Active {
		exists, err := s.products.ExistsActiveCode(ctx, p.Code, p.ID)
		if err != nil {
			return nil, fmt.Errorf("erro ao verificar código do produto: %w", err)
		}
		if exists {
			return nil, product.ErrDuplicateCode
		}
	}
	if err := s.products.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// SetProductActive ativa ou inativa um produto
func (s *Service) SetProductActive(ctx context.Context, id string, active bool) error {
	if err := s.products.SetActive(ctx, id, active); err != nil {
		return err
	}
	s.logger.Info("status do produto alterado", "product_id", id, "active", active)
	return nil
}

// DeleteProduct remove um produto sem movimentações
func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("produto removido", "product_id", id)
	return nil
}

// GetProduct busca um produto pelo ID
func (s *Service) GetProduct(ctx context.Context, id string) (*product.Product, error) {
	return s.products.FindByID(ctx, id)
}

// GetProductByCode busca um produto ativo pelo código de barras
func (s *Service) GetProductByCode(ctx context.Context, code string) (*product.Product, error) {
	return s.products.FindByCode(ctx, code)
}

// ListProducts lista produtos com filtro e paginação
func (s *Service) ListProducts(ctx context.Context, f product.Filter) ([]*product.Product, int, error) {
	return s.products.List(ctx, f)
}

// CriticalStock lista produtos ativos com estoque no mínimo ou abaixo
func (s *Service) CriticalStock(ctx context.Context) ([]*product.Product, error) {
	return s.products.ListCritical(ctx)
}

// ExpiringProducts lista produtos ativos que vencem dentro da janela.
// within <= 0 usa a janela configurada.
func (s *Service) ExpiringProducts(ctx context.Context, within time.Duration) ([]*product.Product, error) {
	if within <= 0 {
		within = s.expiryWindow
	}
	return s.products.ListExpiringBefore(ctx, s.now().Add(within))
}

// CreateCategory cadastra uma categoria
func (s *Service) CreateCategory(ctx context.Context, name, description string) (*product.Category, error) {
	c, err := product.NewCategory(name, description)
	if err != nil {
		return nil, err
	}
	if err := s.categories.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// UpdateCategory altera nome e descrição de uma categoria
func (s *Service) UpdateCategory(ctx context.Context, id, name, description string) (*product.Category, error) {
	c, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	updated, err := product.NewCategory(name, description)
	if err != nil {
		return nil, err
	}
	c.Name = updated.Name
	c.Description = updated.Description
	c.UpdatedAt = updated.UpdatedAt
	if err := s.categories.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// GetCategory busca uma categoria pelo ID
func (s *Service) GetCategory(ctx context.Context, id string) (*product.Category, error) {
	return s.categories.FindByID(ctx, id)
}

// ListCategories lista as categorias em ordem alfabética
func (s *Service) ListCategories(ctx context.Context) ([]*product.Category, error) {
	return s.categories.List(ctx)
}

// DeleteCategory remove uma categoria sem produtos vinculados
func (s *Service) DeleteCategory(ctx context.Context, id string) error {
	return s.tx.Transaction(ctx, func(ctx context.Context) error {
		if _, err := s.categories.FindByID(ctx, id); err != nil {
			return err
		}
		n, err := s.products.CountByCategory(ctx, id)
		if err != nil {
			return fmt.Errorf("erro ao contar produtos da categoria: %w", err)
		}
		if n > 0 {
			return product.ErrCategoryInUse
		}
		return s.categories.Delete(ctx, id)
	})
}

func (s *Service) checkCategory(ctx context.Context, categoryID *string) error {
	if categoryID == nil {
		return nil
	}
	_, err := s.categories.FindByID(ctx, *categoryID)
	return err
}
