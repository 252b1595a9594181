package service

import (
	"github.com/sgsc/sgsc-services/internal/apisvc/models"
	"github.com/sgsc/sgsc-services/internal/apisvc/store"
)

// Services bundles one Service per table.
type Services struct {
	Sectors     *Service[models.Sector, store.NoFilter]
	Shifts      *Service[models.Shift, store.NoFilter]
	Annexes     *Service[models.Annex, store.AnnexFilter]
	Booths      *Service[models.Booth, store.BoothFilter]
	Vehicles    *Service[models.Vehicle, store.VehicleFilter]
	Personnel   *Service[models.Personnel, store.PersonnelFilter]
	Supervisors *Service[models.Supervisor, store.SupervisorFilter]
	Patrols     *Service[models.Patrol, store.PatrolFilter]
	Incidents   *Service[models.Incident, store.IncidentFilter]
	Mobility    *Service[models.MobilityLog, store.MobilityFilter]
	BoothLogs   *Service[models.BoothLog, store.BoothLogFilter]
	Attendance  *Service[models.Attendance, store.AttendanceFilter]
	Vouchers    *Service[models.Voucher, store.VoucherFilter]
}

// NewServices wires the stores of db. n may be nil for read-only tools.
func NewServices(db store.DBTX, n *Notifier) *Services {
	return &Services{
		Sectors:     New[models.Sector, store.NoFilter]("sector", store.NewSectorStore(db), n, func(r *models.Sector) string { return r.ID }),
		Shifts:      New[models.Shift, store.NoFilter]("turno", store.NewShiftStore(db), n, func(r *models.Shift) string { return r.ID }),
		Annexes:     New[models.Annex, store.AnnexFilter]("anexo", store.NewAnnexStore(db), n, func(r *models.Annex) string { return r.ID }),
		Booths:      New[models.Booth, store.BoothFilter]("cabina", store.NewBoothStore(db), n, func(r *models.Booth) string { return r.ID }),
		Vehicles:    New[models.Vehicle, store.VehicleFilter]("vehiculo", store.NewVehicleStore(db), n, func(r *models.Vehicle) string { return r.ID }),
		Personnel:   New[models.Personnel, store.PersonnelFilter]("personal", store.NewPersonnelStore(db), n, func(r *models.Personnel) string { return r.ID }),
		Supervisors: New[models.Supervisor, store.SupervisorFilter]("supervisor", store.NewSupervisorStore(db), n, func(r *models.Supervisor) string { return r.ID }),
		Patrols:     New[models.Patrol, store.PatrolFilter]("patrullaje", store.NewPatrolStore(db), n, func(r *models.Patrol) string { return r.ID }),
		Incidents:   New[models.Incident, store.IncidentFilter]("incidencia", store.NewIncidentStore(db), n, func(r *models.Incident) string { return r.ID }),
		Mobility:    New[models.MobilityLog, store.MobilityFilter]("movilidad", store.NewMobilityStore(db), n, func(r *models.MobilityLog) string { return r.ID }),
		BoothLogs:   New[models.BoothLog, store.BoothLogFilter]("bitacora_cabina", store.NewBoothLogStore(db), n, func(r *models.BoothLog) string { return r.ID }),
		Attendance:  New[models.Attendance, store.AttendanceFilter]("asistencia", store.NewAttendanceStore(db), n, func(r *models.Attendance) string { return r.ID }),
		Vouchers:    New[models.Voucher, store.VoucherFilter]("voucher", store.NewVoucherStore(db), n, func(r *models.Voucher) string { return r.ID }),
	}
}
