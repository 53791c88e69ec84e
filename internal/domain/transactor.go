// Package domain reúne contratos compartilhados entre os agregados.
package domain

import "context"

// Transactor executa fn dentro de uma transação atômica.
//
// O contexto recebido por fn carrega a transação; repositórios chamados com
// esse contexto participam dela. Chamadas aninhadas reaproveitam a transação
// já aberta. Qualquer erro retornado por fn desfaz todas as escritas.
type Transactor interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}
