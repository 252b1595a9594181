// Package catalog describes every exposed table: its URL path, how query
// parameters become store filters and how its report is laid out.
package catalog

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/url"
	"sort"

	"github.com/sgsc/sgsc-services/internal/apisvc/models"
	"github.com/sgsc/sgsc-services/internal/apisvc/service"
	"github.com/sgsc/sgsc-services/internal/apisvc/store"
	"github.com/sgsc/sgsc-services/internal/report"
)

var ErrNoReport = errors.New("resource has no report")

// Names resolves reference ids for report metadata. refcache.Fetchers
// satisfies it.
type Names interface {
	Sectors(ctx context.Context) []models.Sector
	Shifts(ctx context.Context) []models.Shift
	Personnel(ctx context.Context) []models.Personnel
	Booths(ctx context.Context) []models.Booth
}

// ReportSpec is the printable layout of a resource.
type ReportSpec struct {
	Title   string
	Columns []report.Column
	Filters func(ctx context.Context, names Names, q url.Values) []report.Filter
}

// Entry binds a table service to its path, filter parsing and report.
type Entry[T any, F any] struct {
	Path    string
	Service *service.Service[T, F]
	Filter  func(q url.Values) F
	Report  *ReportSpec

	names Names
	gen   *report.Generator
}

// Exporter renders the report of one resource.
type Exporter interface {
	Export(ctx context.Context, q url.Values, w io.Writer, kind report.Kind) (string, error)
}

// Export lists the records matching q and writes their report to w. It
// returns the download file name.
func (e *Entry[T, F]) Export(ctx context.Context, q url.Values, w io.Writer, kind report.Kind) (string, error) {
	if e.Report == nil {
		return "", ErrNoReport
	}
	records, err := e.Service.List(ctx, e.Filter(q))
	if err != nil {
		return "", err
	}
	rows, err := report.Rows(records)
	if err != nil {
		return "", err
	}
	var filters []report.Filter
	if e.Report.Filters != nil {
		filters = e.Report.Filters(ctx, e.names, q)
	}

	// rendered in memory so a failure never leaves a truncated document
	var buf bytes.Buffer
	name, err := e.gen.Generate(&buf, e.Report.Title, rows, e.Report.Columns, filters, kind)
	if err != nil {
		return "", err
	}
	_, err = buf.WriteTo(w)
	return name, err
}

type Catalog struct {
	Sectors     *Entry[models.Sector, store.NoFilter]
	Shifts      *Entry[models.Shift, store.NoFilter]
	Annexes     *Entry[models.Annex, store.AnnexFilter]
	Booths      *Entry[models.Booth, store.BoothFilter]
	Vehicles    *Entry[models.Vehicle, store.VehicleFilter]
	Personnel   *Entry[models.Personnel, store.PersonnelFilter]
	Supervisors *Entry[models.Supervisor, store.SupervisorFilter]
	Patrols     *Entry[models.Patrol, store.PatrolFilter]
	Incidents   *Entry[models.Incident, store.IncidentFilter]
	Mobility    *Entry[models.MobilityLog, store.MobilityFilter]
	BoothLogs   *Entry[models.BoothLog, store.BoothLogFilter]
	Attendance  *Entry[models.Attendance, store.AttendanceFilter]
	Vouchers    *Entry[models.Voucher, store.VoucherFilter]

	exporters map[string]Exporter
}

func New(s *service.Services, names Names, gen *report.Generator) *Catalog {
	c := &Catalog{
		Sectors:     bind(names, gen, &Entry[models.Sector, store.NoFilter]{Path: "sectores", Service: s.Sectors, Filter: noFilter}),
		Shifts:      bind(names, gen, &Entry[models.Shift, store.NoFilter]{Path: "turnos", Service: s.Shifts, Filter: noFilter}),
		Annexes:     bind(names, gen, &Entry[models.Annex, store.AnnexFilter]{Path: "anexos", Service: s.Annexes, Filter: annexFilter}),
		Booths:      bind(names, gen, &Entry[models.Booth, store.BoothFilter]{Path: "cabinas", Service: s.Booths, Filter: boothFilter}),
		Vehicles:    bind(names, gen, &Entry[models.Vehicle, store.VehicleFilter]{Path: "vehiculos", Service: s.Vehicles, Filter: vehicleFilter}),
		Personnel:   bind(names, gen, &Entry[models.Personnel, store.PersonnelFilter]{Path: "personal", Service: s.Personnel, Filter: personnelFilter, Report: personnelReport}),
		Supervisors: bind(names, gen, &Entry[models.Supervisor, store.SupervisorFilter]{Path: "supervisores", Service: s.Supervisors, Filter: supervisorFilter}),
		Patrols:     bind(names, gen, &Entry[models.Patrol, store.PatrolFilter]{Path: "patrullajes", Service: s.Patrols, Filter: patrolFilter, Report: patrolReport}),
		Incidents:   bind(names, gen, &Entry[models.Incident, store.IncidentFilter]{Path: "incidencias", Service: s.Incidents, Filter: incidentFilter, Report: incidentReport}),
		Mobility:    bind(names, gen, &Entry[models.MobilityLog, store.MobilityFilter]{Path: "movilidades", Service: s.Mobility, Filter: mobilityFilter, Report: mobilityReport}),
		BoothLogs:   bind(names, gen, &Entry[models.BoothLog, store.BoothLogFilter]{Path: "bitacora", Service: s.BoothLogs, Filter: boothLogFilter, Report: boothLogReport}),
		Attendance:  bind(names, gen, &Entry[models.Attendance, store.AttendanceFilter]{Path: "asistencias", Service: s.Attendance, Filter: attendanceFilter, Report: attendanceReport}),
		Vouchers:    bind(names, gen, &Entry[models.Voucher, store.VoucherFilter]{Path: "vouchers", Service: s.Vouchers, Filter: voucherFilter, Report: voucherReport}),
	}
	c.exporters = map[string]Exporter{
		c.Personnel.Path:  c.Personnel,
		c.Patrols.Path:    c.Patrols,
		c.Incidents.Path:  c.Incidents,
		c.Mobility.Path:   c.Mobility,
		c.BoothLogs.Path:  c.BoothLogs,
		c.Attendance.Path: c.Attendance,
		c.Vouchers.Path:   c.Vouchers,
	}
	return c
}

func bind[T any, F any](names Names, gen *report.Generator, e *Entry[T, F]) *Entry[T, F] {
	e.names = names
	e.gen = gen
	return e
}

// Exporter returns the report exporter mounted at path.
func (c *Catalog) Exporter(path string) (Exporter, bool) {
	e, ok := c.exporters[path]
	return e, ok
}

// Reports lists the paths that have a report, sorted.
func (c *Catalog) Reports() []string {
	paths := make([]string, 0, len(c.exporters))
	for p := range c.exporters {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
