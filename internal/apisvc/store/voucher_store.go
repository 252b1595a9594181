package store

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/sgsc/sgsc-services/internal/apisvc/models"
)

type VoucherFilter struct {
	FechaInicio string
	FechaFin    string
	Tipo        string
	Estado      string
	// PersonalID matches either the requester or the approver.
	PersonalID string
}

type VoucherStore struct {
	db DBTX
}

func NewVoucherStore(db DBTX) *VoucherStore {
	return &VoucherStore{db: db}
}

func (s *VoucherStore) base() *Select {
	return From("voucher v").
		Columns("v.id::text", "v.numero_voucher", "v.fecha_emision::text", "v.fecha_vencimiento::text",
			"v.tipo_voucher", "v.concepto", "v.monto::text", "v.moneda", "v.personal_solicitante_id::text",
			"v.personal_autoriza_id::text", "v.estado", "v.observaciones", "v.metodo_pago",
			"v.numero_comprobante", "v.imagen_voucher_url", "v.created_at").
		Columns(personCols("ps")...).
		Columns(personCols("pa")...).
		LeftJoin("personal ps", "ps.id = v.personal_solicitante_id").
		LeftJoin("personal pa", "pa.id = v.personal_autoriza_id")
}

func scanVoucher(row pgx.CollectableRow) (models.Voucher, error) {
	var (
		v                     models.Voucher
		requester, authorizer personScan
	)
	dest := []any{&v.ID, &v.NumeroVoucher, &v.FechaEmision, &v.FechaVencimiento, &v.TipoVoucher,
		&v.Concepto, &v.Monto, &v.Moneda, &v.PersonalSolicitanteID, &v.PersonalAutorizaID, &v.Estado,
		&v.Observaciones, &v.MetodoPago, &v.NumeroComprobante, &v.ImagenVoucherURL, &v.CreatedAt}
	dest = append(dest, requester.dest()...)
	dest = append(dest, authorizer.dest()...)
	if err := row.Scan(dest...); err != nil {
		return v, err
	}
	v.PersonalSolicitante = requester.ref()
	v.PersonalAutoriza = authorizer.ref()
	return v, nil
}

func (s *VoucherStore) List(ctx context.Context, f VoucherFilter) ([]models.Voucher, error) {
	q := s.base()
	if f.FechaInicio != "" {
		q.Gte("v.fecha_emision", f.FechaInicio)
	}
	if f.FechaFin != "" {
		q.Lte("v.fecha_emision", f.FechaFin)
	}
	q.EqOpt("v.tipo_voucher", f.Tipo).EqOpt("v.estado", f.Estado)
	if f.PersonalID != "" {
		q.AnyEq([]string{"v.personal_solicitante_id", "v.personal_autoriza_id"}, f.PersonalID)
	}
	query, args := q.OrderBy("v.fecha_emision", false).SQL()
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, wrap("list vouchers", err)
	}
	vouchers, err := pgx.CollectRows(rows, scanVoucher)
	return vouchers, wrap("list vouchers", err)
}

func (s *VoucherStore) Get(ctx context.Context, id string) (*models.Voucher, error) {
	query, args := s.base().Eq("v.id", id).SQL()
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, wrap("get voucher", err)
	}
	v, err := pgx.CollectExactlyOneRow(rows, scanVoucher)
	if err != nil {
		return nil, wrap("get voucher", err)
	}
	return &v, nil
}

var voucherCols = []string{"numero_voucher", "fecha_emision", "fecha_vencimiento", "tipo_voucher", "concepto",
	"monto", "moneda", "personal_solicitante_id", "personal_autoriza_id", "estado", "observaciones",
	"metodo_pago", "numero_comprobante", "imagen_voucher_url"}

func voucherValues(v *models.Voucher) []any {
	return []any{v.NumeroVoucher, v.FechaEmision, v.FechaVencimiento, v.TipoVoucher, v.Concepto,
		v.Monto.String(), v.Moneda, v.PersonalSolicitanteID, v.PersonalAutorizaID, v.Estado, v.Observaciones,
		v.MetodoPago, v.NumeroComprobante, v.ImagenVoucherURL}
}

func (s *VoucherStore) Create(ctx context.Context, v *models.Voucher) (*models.Voucher, error) {
	ensureID(&v.ID)
	args := append([]any{v.ID}, voucherValues(v)...)
	if _, err := s.db.Exec(ctx, insertSQL("voucher", append([]string{"id"}, voucherCols...)), args...); err != nil {
		return nil, wrap("create voucher", err)
	}
	return s.Get(ctx, v.ID)
}

func (s *VoucherStore) Update(ctx context.Context, id string, v *models.Voucher) (*models.Voucher, error) {
	args := append([]any{id}, voucherValues(v)...)
	tag, err := s.db.Exec(ctx, updateSQL("voucher", voucherCols), args...)
	if err := affected("update voucher", tag, err); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// SetImage records the scanned receipt URL of a voucher.
func (s *VoucherStore) SetImage(ctx context.Context, id, url string) error {
	tag, err := s.db.Exec(ctx, "UPDATE voucher SET imagen_voucher_url = $2 WHERE id = $1", id, url)
	return affected("set voucher image", tag, err)
}

func (s *VoucherStore) Delete(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, "DELETE FROM voucher WHERE id = $1", id)
	return affected("delete voucher", tag, err)
}
