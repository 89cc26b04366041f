package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/wasteland/internal/model"
)

// TilesetRepository хранит тайлсеты в БД.
type TilesetRepository struct {
	db *pgxpool.Pool
}

// NewTilesetRepository создаёт новый TilesetRepository.
func NewTilesetRepository(db *pgxpool.Pool) *TilesetRepository {
	return &TilesetRepository{db: db}
}

// Save вставляет или обновляет тайлсет; changed = false при совпадении checksum.
func (r *TilesetRepository) Save(ctx context.Context, id string, ts model.Tileset) (changed bool, err error) {
	if len(ts) == 0 {
		return false, fmt.Errorf("saving tileset %q: empty tileset", id)
	}

	data, err := json.Marshal(ts)
	if err != nil {
		return false, fmt.Errorf("encoding tileset %q: %w", id, err)
	}

	tag, err := r.db.Exec(ctx, `
		INSERT INTO tilesets (id, data, checksum, tile_count)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET
			data       = EXCLUDED.data,
			checksum   = EXCLUDED.checksum,
			tile_count = EXCLUDED.tile_count,
			updated_at = now()
		WHERE tilesets.checksum <> EXCLUDED.checksum
	`, id, data, Checksum(data), len(ts))
	if err != nil {
		return false, fmt.Errorf("saving tileset %q: %w", id, err)
	}
	return tag.RowsAffected() > 0, nil
}

// Load загружает тайлсет по ID.
// Возвращает nil, nil если тайлсет не найден.
func (r *TilesetRepository) Load(ctx context.Context, id string) (model.Tileset, error) {
	var data []byte
	err := r.db.QueryRow(ctx, `SELECT data FROM tilesets WHERE id = $1`, id).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying tileset %q: %w", id, err)
	}

	var ts model.Tileset
	if err := json.Unmarshal(data, &ts); err != nil {
		return nil, fmt.Errorf("decoding tileset %q: %w", id, err)
	}
	return ts, nil
}
