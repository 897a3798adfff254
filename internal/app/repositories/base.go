package repositories

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/scholarship/internal/db"
)

// DefaultQueryTimeout bounds a single repository call when none is configured
const DefaultQueryTimeout = 5 * time.Second

// baseRepository carries what every repository needs: the pool, a
// dollar-placeholder statement builder and the per-call timeout.
type baseRepository struct {
	db      db.Pool
	sb      squirrel.StatementBuilderType
	timeout time.Duration
}

func newBaseRepository(pool db.Pool, timeout time.Duration) baseRepository {
	if timeout <= 0 {
		timeout = DefaultQueryTimeout
	}
	return baseRepository{
		db:      pool,
		sb:      squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
		timeout: timeout,
	}
}

// withTimeout derives a context bounded by the repository timeout. A tighter
// deadline already on ctx wins.
func (r baseRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository        *UserRepository
	StudentRepository     *StudentRepository
	CatalogRepository     *CatalogRepository
	ApplicationRepository *ApplicationRepository
	ExpedienteRepository  *ExpedienteRepository
	ProfileRepository     *ProfileRepository
	PanelRepository       *PanelRepository
}

// NewRepositories initializes all repositories
func NewRepositories(pool db.Pool, queryTimeout time.Duration) *Repositories {
	return &Repositories{
		UserRepository:        NewUserRepository(pool, queryTimeout),
		StudentRepository:     NewStudentRepository(pool, queryTimeout),
		CatalogRepository:     NewCatalogRepository(pool, queryTimeout),
		ApplicationRepository: NewApplicationRepository(pool, queryTimeout),
		ExpedienteRepository:  NewExpedienteRepository(pool, queryTimeout),
		ProfileRepository:     NewProfileRepository(pool, queryTimeout),
		PanelRepository:       NewPanelRepository(pool, queryTimeout),
	}
}
