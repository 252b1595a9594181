package store

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/sgsc/sgsc-services/internal/apisvc/models"
)

type AnnexFilter struct {
	SectorID string
}

type AnnexStore struct {
	db DBTX
}

func NewAnnexStore(db DBTX) *AnnexStore {
	return &AnnexStore{db: db}
}

func (s *AnnexStore) base() *Select {
	return From("anexo a").
		Columns("a.id::text", "a.nombre_anexo", "a.sector_id::text", "a.created_at", "se.nombre_sector").
		LeftJoin("sector se", "se.id = a.sector_id")
}

func scanAnnex(row pgx.CollectableRow) (models.Annex, error) {
	var (
		a      models.Annex
		sector *string
	)
	err := row.Scan(&a.ID, &a.NombreAnexo, &a.SectorID, &a.CreatedAt, &sector)
	a.Sector = sectorRef(sector)
	return a, err
}

func (s *AnnexStore) List(ctx context.Context, f AnnexFilter) ([]models.Annex, error) {
	query, args := s.base().EqOpt("a.sector_id", f.SectorID).OrderBy("a.nombre_anexo", true).SQL()
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, wrap("list annexes", err)
	}
	annexes, err := pgx.CollectRows(rows, scanAnnex)
	return annexes, wrap("list annexes", err)
}

func (s *AnnexStore) Get(ctx context.Context, id string) (*models.Annex, error) {
	query, args := s.base().Eq("a.id", id).SQL()
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, wrap("get annex", err)
	}
	a, err := pgx.CollectExactlyOneRow(rows, scanAnnex)
	if err != nil {
		return nil, wrap("get annex", err)
	}
	return &a, nil
}

var annexCols = []string{"nombre_anexo", "sector_id"}

func (s *AnnexStore) Create(ctx context.Context, a *models.Annex) (*models.Annex, error) {
	ensureID(&a.ID)
	_, err := s.db.Exec(ctx, insertSQL("anexo", append([]string{"id"}, annexCols...)), a.ID, a.NombreAnexo, a.SectorID)
	if err != nil {
		return nil, wrap("create annex", err)
	}
	return s.Get(ctx, a.ID)
}

func (s *AnnexStore) Update(ctx context.Context, id string, a *models.Annex) (*models.Annex, error) {
	tag, err := s.db.Exec(ctx, updateSQL("anexo", annexCols), id, a.NombreAnexo, a.SectorID)
	if err := affected("update annex", tag, err); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *AnnexStore) Delete(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, "DELETE FROM anexo WHERE id = $1", id)
	return affected("delete annex", tag, err)
}
