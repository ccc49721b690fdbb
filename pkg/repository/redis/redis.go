package redis

import (
	"context"

	goredis "github.com/redis/go-redis/v9"

	"github.com/m-mizutani/goerr/v2"

	"github.com/hospitalops/pulse/pkg/domain/interfaces"
	"github.com/hospitalops/pulse/pkg/domain/model/errs"
)

// Key layout:
//   alert:<id>     JSON of the alert
//   alerts         set of alert IDs
//   bed:<id>       JSON of the bed
//   beds           set of bed IDs
//   staff:<id>     JSON of the staff member
//   staffs         set of staff IDs
//   equipment:<id> JSON of the equipment
//   equipments     set of equipment IDs
const (
	alertKeyPrefix     = "alert:"
	alertIndexKey      = "alerts"
	bedKeyPrefix       = "bed:"
	bedIndexKey        = "beds"
	patientKeyPrefix   = "patient:"
	patientIndexKey    = "patients"
	staffKeyPrefix     = "staff:"
	staffIndexKey      = "staffs"
	equipmentKeyPrefix = "equipment:"
	equipmentIndexKey  = "equipments"
)

// Repository is a Redis-backed Repository implementation.
type Repository struct {
	client *goredis.Client
}

var _ interfaces.Repository = &Repository{}

func New(ctx context.Context, addr, password string, db int) (*Repository, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to connect to redis",
			goerr.T(errs.TagDatabase), goerr.V("addr", addr))
	}

	return &Repository{client: client}, nil
}

func (r *Repository) Close() error {
	return r.client.Close()
}
