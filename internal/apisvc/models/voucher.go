package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

const (
	VoucherPending  = "pendiente"
	VoucherApproved = "aprobado"
	VoucherRejected = "rechazado"
	VoucherPaid     = "pagado"
	VoucherExpired  = "vencido"
)

// Voucher is an expense voucher.
type Voucher struct {
	ID                    string          `json:"id"`
	NumeroVoucher         string          `json:"numero_voucher"`
	FechaEmision          string          `json:"fecha_emision"`
	FechaVencimiento      *string         `json:"fecha_vencimiento"`
	TipoVoucher           string          `json:"tipo_voucher"`
	Concepto              string          `json:"concepto"`
	Monto                 decimal.Decimal `json:"monto"`
	Moneda                string          `json:"moneda"` // PEN or USD
	PersonalSolicitanteID string          `json:"personal_solicitante_id"`
	PersonalAutorizaID    *string         `json:"personal_autoriza_id"`
	Estado                string          `json:"estado"`
	Observaciones         *string         `json:"observaciones"`
	MetodoPago            *string         `json:"metodo_pago"`
	NumeroComprobante     *string         `json:"numero_comprobante"`
	ImagenVoucherURL      *string         `json:"imagen_voucher_url"`
	CreatedAt             time.Time       `json:"created_at"`
	PersonalSolicitante   *PersonRef      `json:"personal_solicitante,omitempty"`
	PersonalAutoriza      *PersonRef      `json:"personal_autoriza,omitempty"`
}

func (v Voucher) Validate() error {
	if err := required("fecha_emision", v.FechaEmision, "tipo_voucher", v.TipoVoucher,
		"concepto", v.Concepto, "personal_solicitante_id", v.PersonalSolicitanteID); err != nil {
		return err
	}
	if !v.Monto.IsPositive() {
		return &ValidationError{Field: "monto", Reason: "must be greater than zero"}
	}
	return nil
}

func (v *Voucher) ApplyDefaults(now time.Time) {
	if v.NumeroVoucher == "" {
		v.NumeroVoucher = VoucherNumber(now)
	}
	if v.FechaEmision == "" {
		v.FechaEmision = now.Format(time.DateOnly)
	}
	if v.Moneda == "" {
		v.Moneda = "PEN"
	}
	if v.Estado == "" {
		v.Estado = VoucherPending
	}
}

// VoucherNumber builds VCH-YYYYMMDD-NNNN where NNNN are the last four digits
// of the Unix millisecond clock.
func VoucherNumber(now time.Time) string {
	return fmt.Sprintf("VCH-%s-%04d", now.Format("20060102"), now.UnixMilli()%10000)
}
