package redis

import (
	"context"
	"encoding/json"
	"sort"

	goredis "github.com/redis/go-redis/v9"

	"github.com/m-mizutani/goerr/v2"

	"github.com/hospitalops/pulse/pkg/domain/model/errs"
	"github.com/hospitalops/pulse/pkg/domain/model/resource"
	"github.com/hospitalops/pulse/pkg/domain/types"
)

func putJSON(ctx context.Context, client *goredis.Client, key, indexKey, id string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return goerr.Wrap(err, "failed to marshal record", goerr.V("key", key))
	}

	pipe := client.TxPipeline()
	pipe.Set(ctx, key, data, 0)
	pipe.SAdd(ctx, indexKey, id)
	if _, err := pipe.Exec(ctx); err != nil {
		return goerr.Wrap(err, "failed to store record",
			goerr.T(errs.TagDatabase), goerr.V("key", key))
	}
	return nil
}

func getJSON(ctx context.Context, client *goredis.Client, key string, v any) error {
	data, err := client.Get(ctx, key).Bytes()
	if err == goredis.Nil {
		return goerr.New("record not found", goerr.T(errs.TagNotFound), goerr.V("key", key))
	}
	if err != nil {
		return goerr.Wrap(err, "failed to get record",
			goerr.T(errs.TagDatabase), goerr.V("key", key))
	}
	if err := json.Unmarshal(data, v); err != nil {
		return goerr.Wrap(err, "failed to unmarshal record", goerr.V("key", key))
	}
	return nil
}

func deleteJSON(ctx context.Context, client *goredis.Client, key, indexKey, id string) error {
	deleted, err := client.Del(ctx, key).Result()
	if err != nil {
		return goerr.Wrap(err, "failed to delete record",
			goerr.T(errs.TagDatabase), goerr.V("key", key))
	}
	if deleted == 0 {
		return goerr.New("record not found", goerr.T(errs.TagNotFound), goerr.V("key", key))
	}
	if err := client.SRem(ctx, indexKey, id).Err(); err != nil {
		return goerr.Wrap(err, "failed to remove record from index",
			goerr.T(errs.TagDatabase), goerr.V("key", key))
	}
	return nil
}

func (r *Repository) PutBed(ctx context.Context, b *resource.Bed) error {
	return putJSON(ctx, r.client, bedKeyPrefix+b.ID.String(), bedIndexKey, b.ID.String(), b)
}

func (r *Repository) GetBed(ctx context.Context, id types.BedID) (*resource.Bed, error) {
	var b resource.Bed
	if err := getJSON(ctx, r.client, bedKeyPrefix+id.String(), &b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *Repository) DeleteBed(ctx context.Context, id types.BedID) error {
	return deleteJSON(ctx, r.client, bedKeyPrefix+id.String(), bedIndexKey, id.String())
}

func (r *Repository) ListBeds(ctx context.Context) ([]*resource.Bed, error) {
	ids, err := r.client.SMembers(ctx, bedIndexKey).Result()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list bed index", goerr.T(errs.TagDatabase))
	}

	beds := []*resource.Bed{}
	for _, id := range ids {
		b, err := r.GetBed(ctx, types.BedID(id))
		if err != nil {
			if goerr.HasTag(err, errs.TagNotFound) {
				continue
			}
			return nil, err
		}
		beds = append(beds, b)
	}
	sort.Slice(beds, func(i, j int) bool {
		return beds[i].Number < beds[j].Number
	})
	return beds, nil
}

func (r *Repository) PutPatient(ctx context.Context, p *resource.Patient) error {
	return putJSON(ctx, r.client, patientKeyPrefix+p.ID.String(), patientIndexKey, p.ID.String(), p)
}

func (r *Repository) GetPatient(ctx context.Context, id types.PatientID) (*resource.Patient, error) {
	var p resource.Patient
	if err := getJSON(ctx, r.client, patientKeyPrefix+id.String(), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repository) DeletePatient(ctx context.Context, id types.PatientID) error {
	return deleteJSON(ctx, r.client, patientKeyPrefix+id.String(), patientIndexKey, id.String())
}

func (r *Repository) ListPatients(ctx context.Context) ([]*resource.Patient, error) {
	ids, err := r.client.SMembers(ctx, patientIndexKey).Result()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list patient index", goerr.T(errs.TagDatabase))
	}

	patients := []*resource.Patient{}
	for _, id := range ids {
		p, err := r.GetPatient(ctx, types.PatientID(id))
		if err != nil {
			if goerr.HasTag(err, errs.TagNotFound) {
				continue
			}
			return nil, err
		}
		patients = append(patients, p)
	}
	sort.Slice(patients, func(i, j int) bool {
		return patients[i].Name < patients[j].Name
	})
	return patients, nil
}

func (r *Repository) PutStaff(ctx context.Context, s *resource.Staff) error {
	return putJSON(ctx, r.client, staffKeyPrefix+s.ID.String(), staffIndexKey, s.ID.String(), s)
}

func (r *Repository) GetStaff(ctx context.Context, id types.StaffID) (*resource.Staff, error) {
	var s resource.Staff
	if err := getJSON(ctx, r.client, staffKeyPrefix+id.String(), &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *Repository) DeleteStaff(ctx context.Context, id types.StaffID) error {
	return deleteJSON(ctx, r.client, staffKeyPrefix+id.String(), staffIndexKey, id.String())
}

func (r *Repository) ListStaff(ctx context.Context) ([]*resource.Staff, error) {
	ids, err := r.client.SMembers(ctx, staffIndexKey).Result()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list staff index", goerr.T(errs.TagDatabase))
	}

	staff := []*resource.Staff{}
	for _, id := range ids {
		s, err := r.GetStaff(ctx, types.StaffID(id))
		if err != nil {
			if goerr.HasTag(err, errs.TagNotFound) {
				continue
			}
			return nil, err
		}
		staff = append(staff, s)
	}
	sort.Slice(staff, func(i, j int) bool {
		return staff[i].Name < staff[j].Name
	})
	return staff, nil
}

func (r *Repository) PutEquipment(ctx context.Context, e *resource.Equipment) error {
	return putJSON(ctx, r.client, equipmentKeyPrefix+e.ID.String(), equipmentIndexKey, e.ID.String(), e)
}

func (r *Repository) GetEquipment(ctx context.Context, id types.EquipmentID) (*resource.Equipment, error) {
	var e resource.Equipment
	if err := getJSON(ctx, r.client, equipmentKeyPrefix+id.String(), &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *Repository) DeleteEquipment(ctx context.Context, id types.EquipmentID) error {
	return deleteJSON(ctx, r.client, equipmentKeyPrefix+id.String(), equipmentIndexKey, id.String())
}

func (r *Repository) ListEquipment(ctx context.Context) ([]*resource.Equipment, error) {
	ids, err := r.client.SMembers(ctx, equipmentIndexKey).Result()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list equipment index", goerr.T(errs.TagDatabase))
	}

	equipment := []*resource.Equipment{}
	for _, id := range ids {
		e, err := r.GetEquipment(ctx, types.EquipmentID(id))
		if err != nil {
			if goerr.HasTag(err, errs.TagNotFound) {
				continue
			}
			return nil, err
		}
		equipment = append(equipment, e)
	}
	sort.Slice(equipment, func(i, j int) bool {
		return equipment[i].Name < equipment[j].Name
	})
	return equipment, nil
}
