package components

import (
	"ski-stays/internal/infra/db"
	"ski-stays/internal/infra/repository"
	"ski-stays/internal/infra/uow"
	"ski-stays/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		NewDBTX,
		func(pool *pgxpool.Pool) uow.TxBeginner {
			return pool
		},
		uow.NewPostgresUoW,
		// Read-side stores for queries
		fx.Annotate(
			repository.NewUserRepository,
			fx.As(new(queries.UserReadStore)),
		),
		fx.Annotate(
			repository.NewSessionRepository,
			fx.As(new(queries.SessionReadStore)),
		),
		fx.Annotate(
			repository.NewBookingRepository,
			fx.As(new(queries.BookingReadStore)),
		),
		fx.Annotate(
			repository.NewBookingAccessRepository,
			fx.As(new(queries.BookingAccessStore)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}
