package ports

import (
	"context"

	"github.com/jhoicas/Optica-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn retorna error se hace rollback; si no, commit. Garantiza las invariantes entre turnos,
// órdenes, pagos y existencias aunque varias terminales operen a la vez.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos repository.Repositories) error) error
}
