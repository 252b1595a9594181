package store

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/sgsc/sgsc-services/internal/apisvc/models"
)

type BoothFilter struct {
	AnexoID string
}

type BoothStore struct {
	db DBTX
}

func NewBoothStore(db DBTX) *BoothStore {
	return &BoothStore{db: db}
}

func (s *BoothStore) base() *Select {
	return From("cabina c").Columns("c.id::text", "c.nombre_cabina", "COALESCE(c.ubicacion, '')",
		"COALESCE(c.numero_camaras, 0)", "c.anexo_id::text", "c.created_at")
}

func scanBooth(row pgx.CollectableRow) (models.Booth, error) {
	var b models.Booth
	err := row.Scan(&b.ID, &b.NombreCabina, &b.Ubicacion, &b.NumeroCamaras, &b.AnexoID, &b.CreatedAt)
	return b, err
}

func (s *BoothStore) List(ctx context.Context, f BoothFilter) ([]models.Booth, error) {
	query, args := s.base().EqOpt("c.anexo_id", f.AnexoID).OrderBy("c.nombre_cabina", true).SQL()
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, wrap("list booths", err)
	}
	booths, err := pgx.CollectRows(rows, scanBooth)
	return booths, wrap("list booths", err)
}

func (s *BoothStore) Get(ctx context.Context, id string) (*models.Booth, error) {
	query, args := s.base().Eq("c.id", id).SQL()
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, wrap("get booth", err)
	}
	b, err := pgx.CollectExactlyOneRow(rows, scanBooth)
	if err != nil {
		return nil, wrap("get booth", err)
	}
	return &b, nil
}

var boothCols = []string{"nombre_cabina", "ubicacion", "numero_camaras", "anexo_id"}

func (s *BoothStore) Create(ctx context.Context, b *models.Booth) (*models.Booth, error) {
	ensureID(&b.ID)
	_, err := s.db.Exec(ctx, insertSQL("cabina", append([]string{"id"}, boothCols...)),
		b.ID, b.NombreCabina, b.Ubicacion, b.NumeroCamaras, b.AnexoID)
	if err != nil {
		return nil, wrap("create booth", err)
	}
	return s.Get(ctx, b.ID)
}

func (s *BoothStore) Update(ctx context.Context, id string, b *models.Booth) (*models.Booth, error) {
	tag, err := s.db.Exec(ctx, updateSQL("cabina", boothCols), id, b.NombreCabina, b.Ubicacion, b.NumeroCamaras, b.AnexoID)
	if err := affected("update booth", tag, err); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *BoothStore) Delete(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, "DELETE FROM cabina WHERE id = $1", id)
	return affected("delete booth", tag, err)
}
