package types

import (
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

type BedID string

func (x BedID) String() string {
	return string(x)
}

func NewBedID() BedID {
	return BedID(uuid.New().String())
}

type StaffID string

func (x StaffID) String() string {
	return string(x)
}

func NewStaffID() StaffID {
	return StaffID(uuid.New().String())
}

type EquipmentID string

func (x EquipmentID) String() string {
	return string(x)
}

func NewEquipmentID() EquipmentID {
	return EquipmentID(uuid.New().String())
}

type PatientID string

func (x PatientID) String() string {
	return string(x)
}

func NewPatientID() PatientID {
	return PatientID(uuid.New().String())
}

const (
	EmptyPatientID PatientID = ""
)

type UserID string

func (x UserID) String() string {
	return string(x)
}

const (
	EmptyUserID UserID = ""
)

type BedStatus string

const (
	BedStatusAvailable   BedStatus = "available"
	BedStatusOccupied    BedStatus = "occupied"
	BedStatusMaintenance BedStatus = "maintenance"
	BedStatusReserved    BedStatus = "reserved"
)

func (s BedStatus) String() string {
	return string(s)
}

func (s BedStatus) Validate() error {
	switch s {
	case BedStatusAvailable, BedStatusOccupied, BedStatusMaintenance, BedStatusReserved:
		return nil
	}
	return goerr.New("invalid bed status", goerr.V("status", s))
}

type PatientStatus string

const (
	PatientStatusAdmitted    PatientStatus = "admitted"
	PatientStatusDischarged  PatientStatus = "discharged"
	PatientStatusTransferred PatientStatus = "transferred"
	PatientStatusDeceased    PatientStatus = "deceased"
)

func (s PatientStatus) String() string {
	return string(s)
}

func (s PatientStatus) Validate() error {
	switch s {
	case PatientStatusAdmitted, PatientStatusDischarged, PatientStatusTransferred, PatientStatusDeceased:
		return nil
	}
	return goerr.New("invalid patient status", goerr.V("status", s))
}

type EquipmentStatus string

const (
	EquipmentStatusOperational EquipmentStatus = "operational"
	EquipmentStatusInUse       EquipmentStatus = "in_use"
	EquipmentStatusMaintenance EquipmentStatus = "maintenance"
	EquipmentStatusOutOfOrder  EquipmentStatus = "out_of_order"
)

func (s EquipmentStatus) String() string {
	return string(s)
}

func (s EquipmentStatus) Validate() error {
	switch s {
	case EquipmentStatusOperational, EquipmentStatusInUse, EquipmentStatusMaintenance, EquipmentStatusOutOfOrder:
		return nil
	}
	return goerr.New("invalid equipment status", goerr.V("status", s))
}

type StaffRole string

const (
	StaffRoleDoctor     StaffRole = "doctor"
	StaffRoleNurse      StaffRole = "nurse"
	StaffRoleTechnician StaffRole = "technician"
	StaffRoleAdmin      StaffRole = "admin"
)

func (r StaffRole) String() string {
	return string(r)
}

func (r StaffRole) Validate() error {
	switch r {
	case StaffRoleDoctor, StaffRoleNurse, StaffRoleTechnician, StaffRoleAdmin:
		return nil
	}
	return goerr.New("invalid staff role", goerr.V("role", r))
}
