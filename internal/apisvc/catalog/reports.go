package catalog

import (
	"context"
	"net/url"

	"github.com/sgsc/sgsc-services/internal/report"
)

// AllLabel stands for an unset or unknown reference filter.
const AllLabel = "Todos"

func sectorLabel(ctx context.Context, names Names, id string) string {
	if id == "" {
		return AllLabel
	}
	for _, s := range names.Sectors(ctx) {
		if s.ID == id {
			return s.NombreSector
		}
	}
	return AllLabel
}

func shiftLabel(ctx context.Context, names Names, id string) string {
	if id == "" {
		return AllLabel
	}
	for _, s := range names.Shifts(ctx) {
		if s.ID == id {
			return s.NombreTurno
		}
	}
	return AllLabel
}

func boothLabel(ctx context.Context, names Names, id string) string {
	if id == "" {
		return AllLabel
	}
	for _, b := range names.Booths(ctx) {
		if b.ID == id {
			return b.NombreCabina
		}
	}
	return AllLabel
}

func personLabel(ctx context.Context, names Names, id string) string {
	if id == "" {
		return ""
	}
	for _, p := range names.Personnel(ctx) {
		if p.ID == id {
			return p.Nombres + " " + p.Apellidos
		}
	}
	return id
}

func statusLabel(v string) string {
	if v == "" {
		return AllLabel
	}
	return report.Status(v)
}

var personColumns = []report.Column{
	{Key: "personal.nombres", Label: "Nombres"},
	{Key: "personal.apellidos", Label: "Apellidos"},
	{Key: "personal.dni", Label: "DNI"},
}

func columns(groups ...[]report.Column) []report.Column {
	var out []report.Column
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

var personnelReport = &ReportSpec{
	Title: "Reporte de Personal",
	Columns: []report.Column{
		{Key: "dni", Label: "DNI"},
		{Key: "nombres", Label: "Nombres"},
		{Key: "apellidos", Label: "Apellidos"},
		{Key: "cargo", Label: "Cargo"},
		{Key: "sector.nombre_sector", Label: "Sector"},
		{Key: "turno.nombre_turno", Label: "Turno"},
		{Key: "estado", Label: "Estado", Format: report.Status},
		{Key: "created_at", Label: "Registrado", Format: report.Date},
	},
	Filters: func(ctx context.Context, names Names, q url.Values) []report.Filter {
		return []report.Filter{
			{Key: "Estado", Value: statusLabel(param(q, "estado"))},
			{Key: "Cargo", Value: param(q, "cargo")},
			{Key: "Sector", Value: sectorLabel(ctx, names, param(q, "sector_id"))},
			{Key: "Turno", Value: shiftLabel(ctx, names, param(q, "turno_id"))},
		}
	},
}

var patrolReport = &ReportSpec{
	Title: "Reporte de Patrullajes",
	Columns: columns(
		[]report.Column{{Key: "fecha", Label: "Fecha", Format: report.Date}},
		personColumns,
		[]report.Column{
			{Key: "turno.nombre_turno", Label: "Turno"},
			{Key: "sector.nombre_sector", Label: "Sector"},
			{Key: "ruta_patrullaje", Label: "Ruta"},
			{Key: "hora_inicio", Label: "Hora Inicio"},
			{Key: "hora_fin", Label: "Hora Fin"},
			{Key: "estado_patrullaje", Label: "Estado", Format: report.Status},
			{Key: "observaciones", Label: "Observaciones"},
		},
	),
	Filters: func(ctx context.Context, names Names, q url.Values) []report.Filter {
		return []report.Filter{
			{Key: "Fecha", Value: param(q, "fecha")},
			{Key: "Turno", Value: shiftLabel(ctx, names, param(q, "turno_id"))},
			{Key: "Sector", Value: sectorLabel(ctx, names, param(q, "sector_id"))},
			{Key: "Estado", Value: statusLabel(param(q, "estado_patrullaje"))},
		}
	},
}

var incidentReport = &ReportSpec{
	Title: "Reporte de Incidencias",
	Columns: []report.Column{
		{Key: "fecha", Label: "Fecha", Format: report.Date},
		{Key: "hora", Label: "Hora"},
		{Key: "tipo_incidencia", Label: "Tipo"},
		{Key: "descripcion", Label: "Descripción"},
		{Key: "sector.nombre_sector", Label: "Sector"},
		{Key: "anexo.nombre_anexo", Label: "Anexo"},
		{Key: "personal_reporta", Label: "Reportado por"},
		{Key: "estado", Label: "Estado", Format: report.Status},
		{Key: "parte_fisico_entregado", Label: "Parte Físico", Format: report.Boolean},
	},
	Filters: func(ctx context.Context, names Names, q url.Values) []report.Filter {
		return []report.Filter{
			{Key: "Fecha", Value: param(q, "fecha")},
			{Key: "Sector", Value: sectorLabel(ctx, names, param(q, "sector_id"))},
			{Key: "Estado", Value: statusLabel(param(q, "estado"))},
			{Key: "Tipo", Value: param(q, "tipo_incidencia")},
		}
	},
}

var mobilityReport = &ReportSpec{
	Title: "Reporte de Movilidades",
	Columns: columns(
		[]report.Column{{Key: "fecha", Label: "Fecha", Format: report.Date}},
		personColumns,
		[]report.Column{
			{Key: "turno.nombre_turno", Label: "Turno"},
			{Key: "sector.nombre_sector", Label: "Sector"},
			{Key: "vehiculo_placa", Label: "Vehículo"},
			{Key: "destino", Label: "Destino"},
			{Key: "motivo_traslado", Label: "Motivo"},
			{Key: "hora_salida", Label: "Hora Salida"},
			{Key: "hora_retorno", Label: "Hora Retorno"},
			{Key: "estado_vehiculo_salida", Label: "Estado Salida", Format: report.Status},
			{Key: "observaciones", Label: "Observaciones"},
		},
	),
	Filters: func(ctx context.Context, names Names, q url.Values) []report.Filter {
		vehicle := param(q, "vehiculo_placa")
		if vehicle == "" {
			vehicle = AllLabel
		}
		return []report.Filter{
			{Key: "Fecha", Value: param(q, "fecha")},
			{Key: "Vehículo", Value: vehicle},
			{Key: "Sector", Value: sectorLabel(ctx, names, param(q, "sector_id"))},
		}
	},
}

var boothLogReport = &ReportSpec{
	Title: "Reporte de Bitácora de Cabinas y Cámaras",
	Columns: columns(
		[]report.Column{
			{Key: "fecha", Label: "Fecha", Format: report.Date},
			{Key: "cabina.nombre_cabina", Label: "Cabina"},
		},
		personColumns[:2],
		[]report.Column{
			{Key: "turno.nombre_turno", Label: "Turno"},
			{Key: "hora_revision", Label: "Hora Revisión"},
			{Key: "estado_camara", Label: "Estado Cámara", Format: report.Status},
			{Key: "estado_monitor", Label: "Estado Monitor", Format: report.Status},
			{Key: "estado_grabacion", Label: "Estado Grabación", Format: report.Status},
			{Key: "incidencias_detectadas", Label: "Incidencias"},
			{Key: "acciones_tomadas", Label: "Acciones Tomadas"},
			{Key: "observaciones", Label: "Observaciones"},
		},
	),
	Filters: func(ctx context.Context, names Names, q url.Values) []report.Filter {
		return []report.Filter{
			{Key: "Fecha", Value: param(q, "fecha")},
			{Key: "Turno", Value: shiftLabel(ctx, names, param(q, "turno_id"))},
			{Key: "Cabina", Value: boothLabel(ctx, names, param(q, "cabina_id"))},
			{Key: "Estado", Value: statusLabel(param(q, "estado"))},
		}
	},
}

var attendanceReport = &ReportSpec{
	Title: "Reporte de Asistencias",
	Columns: columns(
		[]report.Column{{Key: "fecha", Label: "Fecha", Format: report.Date}},
		personColumns,
		[]report.Column{
			{Key: "personal.cargo", Label: "Cargo"},
			{Key: "turno.nombre_turno", Label: "Turno"},
			{Key: "sector.nombre_sector", Label: "Sector"},
			{Key: "hora_entrada", Label: "Hora Entrada"},
			{Key: "estado_asistencia", Label: "Estado", Format: report.Status},
			{Key: "parte_fisico_entregado", Label: "Parte Físico", Format: report.Boolean},
			{Key: "observaciones", Label: "Observaciones"},
		},
	),
	Filters: func(ctx context.Context, names Names, q url.Values) []report.Filter {
		return []report.Filter{
			{Key: "Fecha", Value: param(q, "fecha")},
			{Key: "Turno", Value: shiftLabel(ctx, names, param(q, "turno_id"))},
			{Key: "Sector", Value: sectorLabel(ctx, names, param(q, "sector_id"))},
			{Key: "Estado", Value: statusLabel(param(q, "estado_asistencia"))},
		}
	},
}

var voucherReport = &ReportSpec{
	Title: "Reporte de Vouchers",
	Columns: []report.Column{
		{Key: "fecha_emision", Label: "Fecha", Format: report.Date},
		{Key: "numero_voucher", Label: "Número"},
		{Key: "tipo_voucher", Label: "Tipo"},
		{Key: "personal_solicitante.nombres", Label: "Nombres"},
		{Key: "personal_solicitante.apellidos", Label: "Apellidos"},
		{Key: "concepto", Label: "Concepto"},
		{Key: "monto", Label: "Monto", Format: report.Currency},
		{Key: "moneda", Label: "Moneda"},
		{Key: "metodo_pago", Label: "Método Pago"},
		{Key: "estado", Label: "Estado", Format: report.Status},
		{Key: "observaciones", Label: "Observaciones"},
	},
	// raw values; unset filters are left out of the description
	Filters: func(ctx context.Context, names Names, q url.Values) []report.Filter {
		return []report.Filter{
			{Key: "fecha_inicio", Value: param(q, "fecha_inicio")},
			{Key: "fecha_fin", Value: param(q, "fecha_fin")},
			{Key: "tipo", Value: param(q, "tipo_voucher")},
			{Key: "estado", Value: param(q, "estado")},
			{Key: "personal", Value: personLabel(ctx, names, param(q, "personal"))},
		}
	},
}
