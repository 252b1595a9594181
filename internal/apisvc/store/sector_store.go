package store

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/sgsc/sgsc-services/internal/apisvc/models"
)

// NoFilter is the filter of tables listed whole.
type NoFilter struct{}

type SectorStore struct {
	db DBTX
}

func NewSectorStore(db DBTX) *SectorStore {
	return &SectorStore{db: db}
}

func (s *SectorStore) base() *Select {
	return From("sector s").Columns("s.id::text", "s.nombre_sector", "COALESCE(s.descripcion, '')", "s.created_at")
}

func scanSector(row pgx.CollectableRow) (models.Sector, error) {
	var sc models.Sector
	err := row.Scan(&sc.ID, &sc.NombreSector, &sc.Descripcion, &sc.CreatedAt)
	return sc, err
}

func (s *SectorStore) List(ctx context.Context, _ NoFilter) ([]models.Sector, error) {
	query, args := s.base().OrderBy("s.nombre_sector", true).SQL()
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, wrap("list sectors", err)
	}
	sectors, err := pgx.CollectRows(rows, scanSector)
	return sectors, wrap("list sectors", err)
}

func (s *SectorStore) Get(ctx context.Context, id string) (*models.Sector, error) {
	query, args := s.base().Eq("s.id", id).SQL()
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, wrap("get sector", err)
	}
	sc, err := pgx.CollectExactlyOneRow(rows, scanSector)
	if err != nil {
		return nil, wrap("get sector", err)
	}
	return &sc, nil
}

var sectorCols = []string{"nombre_sector", "descripcion"}

func (s *SectorStore) Create(ctx context.Context, sc *models.Sector) (*models.Sector, error) {
	ensureID(&sc.ID)
	_, err := s.db.Exec(ctx, insertSQL("sector", append([]string{"id"}, sectorCols...)),
		sc.ID, sc.NombreSector, sc.Descripcion)
	if err != nil {
		return nil, wrap("create sector", err)
	}
	return s.Get(ctx, sc.ID)
}

func (s *SectorStore) Update(ctx context.Context, id string, sc *models.Sector) (*models.Sector, error) {
	tag, err := s.db.Exec(ctx, updateSQL("sector", sectorCols), id, sc.NombreSector, sc.Descripcion)
	if err := affected("update sector", tag, err); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *SectorStore) Delete(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, "DELETE FROM sector WHERE id = $1", id)
	return affected("delete sector", tag, err)
}
