package db

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/wasteland/internal/model"
)

// MapInfo describes a stored map without its grid.
type MapInfo struct {
	ID        string
	Name      string
	Width     int
	Height    int
	Levels    int
	Checksum  string // hex BLAKE2b-256 of the stored JSON
	UpdatedAt time.Time
}

// MapRepository хранит снимки карт в БД.
type MapRepository struct {
	db *pgxpool.Pool
}

// NewMapRepository создаёт новый MapRepository.
func NewMapRepository(db *pgxpool.Pool) *MapRepository {
	return &MapRepository{db: db}
}

// Save вставляет или обновляет карту.
// changed = false, если в БД уже лежит снимок с тем же checksum и именем.
func (r *MapRepository) Save(ctx context.Context, id, name string, m *model.Map) (changed bool, err error) {
	if m == nil {
		return false, fmt.Errorf("saving map %q: nil map", id)
	}
	if err := m.Validate(); err != nil {
		return false, fmt.Errorf("saving map %q: %w", id, err)
	}

	data, err := json.Marshal(m)
	if err != nil {
		return false, fmt.Errorf("encoding map %q: %w", id, err)
	}
	sum := Checksum(data)

	tag, err := r.db.Exec(ctx, `
		INSERT INTO maps (id, name, width, height, level_count, data, checksum)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			name        = EXCLUDED.name,
			width       = EXCLUDED.width,
			height      = EXCLUDED.height,
			level_count = EXCLUDED.level_count,
			data        = EXCLUDED.data,
			checksum    = EXCLUDED.checksum,
			updated_at  = now()
		WHERE maps.checksum <> EXCLUDED.checksum OR maps.name <> EXCLUDED.name
	`, id, name, m.Dimensions.Width, m.Dimensions.Height, len(m.Levels), data, sum)
	if err != nil {
		return false, fmt.Errorf("saving map %q: %w", id, err)
	}

	changed = tag.RowsAffected() > 0
	slog.Debug("map saved", "id", id, "changed", changed, "checksum", hex.EncodeToString(sum))
	return changed, nil
}

// Load загружает карту по ID.
// Возвращает nil, nil если карта не найдена.
func (r *MapRepository) Load(ctx context.Context, id string) (*model.Map, error) {
	var data []byte
	err := r.db.QueryRow(ctx, `SELECT data FROM maps WHERE id = $1`, id).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying map %q: %w", id, err)
	}

	var m model.Map
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decoding map %q: %w", id, err)
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("stored map %q: %w", id, err)
	}
	return &m, nil
}

// List возвращает метаданные всех карт, отсортированные по ID.
func (r *MapRepository) List(ctx context.Context) ([]MapInfo, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, width, height, level_count, checksum, updated_at
		FROM maps
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("querying maps: %w", err)
	}
	defer rows.Close()

	var maps []MapInfo
	for rows.Next() {
		var info MapInfo
		var sum []byte
		if err := rows.Scan(&info.ID, &info.Name, &info.Width, &info.Height, &info.Levels, &sum, &info.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning map row: %w", err)
		}
		info.Checksum = hex.EncodeToString(sum)
		maps = append(maps, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating maps: %w", err)
	}
	return maps, nil
}

// Delete удаляет карту. Отсутствующая карта не ошибка.
func (r *MapRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM maps WHERE id = $1`, id); err != nil {
		return fmt.Errorf("deleting map %q: %w", id, err)
	}
	return nil
}
