package catalog

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/sgsc/sgsc-services/internal/apisvc/store"
)

func param(q url.Values, key string) string {
	return strings.TrimSpace(q.Get(key))
}

func noFilter(url.Values) store.NoFilter {
	return store.NoFilter{}
}

func annexFilter(q url.Values) store.AnnexFilter {
	return store.AnnexFilter{SectorID: param(q, "sector_id")}
}

func boothFilter(q url.Values) store.BoothFilter {
	return store.BoothFilter{AnexoID: param(q, "anexo_id")}
}

func vehicleFilter(q url.Values) store.VehicleFilter {
	return store.VehicleFilter{Estado: param(q, "estado")}
}

func personnelFilter(q url.Values) store.PersonnelFilter {
	return store.PersonnelFilter{
		Estado:   param(q, "estado"),
		Cargo:    param(q, "cargo"),
		SectorID: param(q, "sector_id"),
		TurnoID:  param(q, "turno_id"),
	}
}

func supervisorFilter(q url.Values) store.SupervisorFilter {
	return store.SupervisorFilter{SectorID: param(q, "sector_id"), TurnoID: param(q, "turno_id")}
}

func patrolFilter(q url.Values) store.PatrolFilter {
	return store.PatrolFilter{
		Fecha:    param(q, "fecha"),
		TurnoID:  param(q, "turno_id"),
		SectorID: param(q, "sector_id"),
		Estado:   param(q, "estado_patrullaje"),
	}
}

func incidentFilter(q url.Values) store.IncidentFilter {
	limit, _ := strconv.Atoi(param(q, "limit"))
	return store.IncidentFilter{
		Fecha:    param(q, "fecha"),
		SectorID: param(q, "sector_id"),
		Estado:   param(q, "estado"),
		Tipo:     param(q, "tipo_incidencia"),
		Limit:    max(limit, 0),
	}
}

func mobilityFilter(q url.Values) store.MobilityFilter {
	return store.MobilityFilter{
		Fecha:         param(q, "fecha"),
		VehiculoPlaca: param(q, "vehiculo_placa"),
		SectorID:      param(q, "sector_id"),
	}
}

func boothLogFilter(q url.Values) store.BoothLogFilter {
	return store.BoothLogFilter{
		Fecha:    param(q, "fecha"),
		TurnoID:  param(q, "turno_id"),
		CabinaID: param(q, "cabina_id"),
		Estado:   param(q, "estado"),
	}
}

func attendanceFilter(q url.Values) store.AttendanceFilter {
	return store.AttendanceFilter{
		Fecha:    param(q, "fecha"),
		TurnoID:  param(q, "turno_id"),
		SectorID: param(q, "sector_id"),
		Estado:   param(q, "estado_asistencia"),
	}
}

func voucherFilter(q url.Values) store.VoucherFilter {
	return store.VoucherFilter{
		FechaInicio: param(q, "fecha_inicio"),
		FechaFin:    param(q, "fecha_fin"),
		Tipo:        param(q, "tipo_voucher"),
		Estado:      param(q, "estado"),
		PersonalID:  param(q, "personal"),
	}
}
