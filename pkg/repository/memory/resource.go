package memory

import (
	"context"
	"sort"

	"github.com/m-mizutani/goerr/v2"

	"github.com/hospitalops/pulse/pkg/domain/model/errs"
	"github.com/hospitalops/pulse/pkg/domain/model/resource"
	"github.com/hospitalops/pulse/pkg/domain/types"
)

func (r *Memory) PutBed(ctx context.Context, b *resource.Bed) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *b
	r.beds[b.ID] = &copied
	return nil
}

func (r *Memory) GetBed(ctx context.Context, id types.BedID) (*resource.Bed, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.beds[id]
	if !ok {
		return nil, goerr.New("bed not found", goerr.T(errs.TagNotFound), goerr.V("bed_id", id))
	}
	copied := *b
	return &copied, nil
}

func (r *Memory) DeleteBed(ctx context.Context, id types.BedID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.beds[id]; !ok {
		return goerr.New("bed not found", goerr.T(errs.TagNotFound), goerr.V("bed_id", id))
	}
	delete(r.beds, id)
	return nil
}

func (r *Memory) ListBeds(ctx context.Context) ([]*resource.Bed, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	beds := []*resource.Bed{}
	for _, b := range r.beds {
		copied := *b
		beds = append(beds, &copied)
	}
	sort.Slice(beds, func(i, j int) bool {
		return beds[i].Number < beds[j].Number
	})
	return beds, nil
}

func (r *Memory) PutPatient(ctx context.Context, p *resource.Patient) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *p
	r.patients[p.ID] = &copied
	return nil
}

func (r *Memory) GetPatient(ctx context.Context, id types.PatientID) (*resource.Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.patients[id]
	if !ok {
		return nil, goerr.New("patient not found", goerr.T(errs.TagNotFound), goerr.V("patient_id", id))
	}
	copied := *p
	return &copied, nil
}

func (r *Memory) DeletePatient(ctx context.Context, id types.PatientID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.patients[id]; !ok {
		return goerr.New("patient not found", goerr.T(errs.TagNotFound), goerr.V("patient_id", id))
	}
	delete(r.patients, id)
	return nil
}

func (r *Memory) ListPatients(ctx context.Context) ([]*resource.Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	patients := []*resource.Patient{}
	for _, p := range r.patients {
		copied := *p
		patients = append(patients, &copied)
	}
	sort.Slice(patients, func(i, j int) bool {
		return patients[i].Name < patients[j].Name
	})
	return patients, nil
}

func (r *Memory) PutStaff(ctx context.Context, s *resource.Staff) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *s
	r.staff[s.ID] = &copied
	return nil
}

func (r *Memory) GetStaff(ctx context.Context, id types.StaffID) (*resource.Staff, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.staff[id]
	if !ok {
		return nil, goerr.New("staff not found", goerr.T(errs.TagNotFound), goerr.V("staff_id", id))
	}
	copied := *s
	return &copied, nil
}

func (r *Memory) DeleteStaff(ctx context.Context, id types.StaffID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.staff[id]; !ok {
		return goerr.New("staff not found", goerr.T(errs.TagNotFound), goerr.V("staff_id", id))
	}
	delete(r.staff, id)
	return nil
}

func (r *Memory) ListStaff(ctx context.Context) ([]*resource.Staff, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	staff := []*resource.Staff{}
	for _, s := range r.staff {
		copied := *s
		staff = append(staff, &copied)
	}
	sort.Slice(staff, func(i, j int) bool {
		return staff[i].Name < staff[j].Name
	})
	return staff, nil
}

func (r *Memory) PutEquipment(ctx context.Context, e *resource.Equipment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *e
	r.equipment[e.ID] = &copied
	return nil
}

func (r *Memory) GetEquipment(ctx context.Context, id types.EquipmentID) (*resource.Equipment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.equipment[id]
	if !ok {
		return nil, goerr.New("equipment not found", goerr.T(errs.TagNotFound), goerr.V("equipment_id", id))
	}
	copied := *e
	return &copied, nil
}

func (r *Memory) DeleteEquipment(ctx context.Context, id types.EquipmentID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.equipment[id]; !ok {
		return goerr.New("equipment not found", goerr.T(errs.TagNotFound), goerr.V("equipment_id", id))
	}
	delete(r.equipment, id)
	return nil
}

func (r *Memory) ListEquipment(ctx context.Context) ([]*resource.Equipment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	equipment := []*resource.Equipment{}
	for _, e := range r.equipment {
		copied := *e
		equipment = append(equipment, &copied)
	}
	sort.Slice(equipment, func(i, j int) bool {
		return equipment[i].Name < equipment[j].Name
	})
	return equipment, nil
}
