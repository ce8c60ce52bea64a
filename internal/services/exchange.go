package services

import (
	"context"

	"github.com/thereayou/bookswap/internal/database"
	"github.com/thereayou/bookswap/internal/models"
)

// ExchangeDirectory отдает участников заявки на обмен для резолвера диалогов
type ExchangeDirectory interface {
	GetExchange(ctx context.Context, id string) (*models.ExchangeRequest, error)
}

// DatabaseExchangeDirectory читает read-модель заявок из общей базы
type DatabaseExchangeDirectory struct {
	db *database.Database
}

func NewDatabaseExchangeDirectory(db *database.Database) *DatabaseExchangeDirectory {
	return &DatabaseExchangeDirectory{db: db}
}

func (d *DatabaseExchangeDirectory) GetExchange(_ context.Context, id string) (*models.ExchangeRequest, error) {
	return d.db.GetExchangeRequest(id)
}
