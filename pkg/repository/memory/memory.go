package memory

import (
	"sync"

	"github.com/hospitalops/pulse/pkg/domain/interfaces"
	"github.com/hospitalops/pulse/pkg/domain/model/alert"
	"github.com/hospitalops/pulse/pkg/domain/model/resource"
	"github.com/hospitalops/pulse/pkg/domain/types"
)

// Memory is an in-memory Repository implementation used for development
// and tests.
type Memory struct {
	mu        sync.RWMutex
	alerts    map[types.AlertID]*alert.Alert
	beds      map[types.BedID]*resource.Bed
	patients  map[types.PatientID]*resource.Patient
	staff     map[types.StaffID]*resource.Staff
	equipment map[types.EquipmentID]*resource.Equipment
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		alerts:    make(map[types.AlertID]*alert.Alert),
		beds:      make(map[types.BedID]*resource.Bed),
		patients:  make(map[types.PatientID]*resource.Patient),
		staff:     make(map[types.StaffID]*resource.Staff),
		equipment: make(map[types.EquipmentID]*resource.Equipment),
	}
}
