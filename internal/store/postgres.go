// Package store — postgres.go хранит документы в одной таблице documents
// с JSONB-телом. Частичное обновление делается конкатенацией jsonb:
// data || patch меняет только верхнеуровневые поля из patch.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres — реализация Store поверх пула pgx.
type Postgres struct {
	db *pgxpool.Pool
}

// NewPostgres создаёт документное хранилище поверх готового пула.
func NewPostgres(db *pgxpool.Pool) *Postgres {
	return &Postgres{db: db}
}

// Get возвращает тело документа по коллекции и id.
func (s *Postgres) Get(ctx context.Context, kind Collection, id string) (json.RawMessage, error) {
	query := `SELECT data FROM documents WHERE collection = $1 AND id = $2`
	var data []byte
	err := s.db.QueryRow(ctx, query, string(kind), id).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка чтения документа (%s/%s): %w", kind, id, err)
	}
	return data, nil
}

// Create сериализует документ, генерирует uuid и вставляет запись.
func (s *Postgres) Create(ctx context.Context, kind Collection, doc any) (string, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("ошибка сериализации документа (%s): %w", kind, err)
	}

	id := uuid.NewString()
	query := `
		INSERT INTO documents (collection, id, data)
		VALUES ($1, $2, $3)
	`
	if _, err := s.db.Exec(ctx, query, string(kind), id, data); err != nil {
		return "", fmt.Errorf("ошибка создания документа (%s): %w", kind, err)
	}
	return id, nil
}

// CreateWithID пишет документ под заданным снаружи id (upsert).
func (s *Postgres) CreateWithID(ctx context.Context, kind Collection, id string, doc any) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("ошибка сериализации документа (%s/%s): %w", kind, id, err)
	}

	query := `
		INSERT INTO documents (collection, id, data)
		VALUES ($1, $2, $3)
		ON CONFLICT (collection, id) DO UPDATE
		SET data = EXCLUDED.data, updated_at = NOW()
	`
	if _, err := s.db.Exec(ctx, query, string(kind), id, data); err != nil {
		return fmt.Errorf("ошибка создания документа (%s/%s): %w", kind, id, err)
	}
	return nil
}

// Update частично обновляет документ: только поля из fields.
func (s *Postgres) Update(ctx context.Context, kind Collection, id string, fields map[string]any) error {
	patch, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("ошибка сериализации патча (%s/%s): %w", kind, id, err)
	}

	query := `
		UPDATE documents
		SET data = data || $3::jsonb, updated_at = NOW()
		WHERE collection = $1 AND id = $2
	`
	tag, err := s.db.Exec(ctx, query, string(kind), id, patch)
	if err != nil {
		return fmt.Errorf("ошибка обновления документа (%s/%s): %w", kind, id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// List возвращает все документы коллекции.
func (s *Postgres) List(ctx context.Context, kind Collection) ([]Record, error) {
	query := `SELECT id, data FROM documents WHERE collection = $1 ORDER BY created_at`
	rows, err := s.db.Query(ctx, query, string(kind))
	if err != nil {
		return nil, fmt.Errorf("ошибка листинга коллекции %s: %w", kind, err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var rec Record
		var data []byte
		if err := rows.Scan(&rec.ID, &data); err != nil {
			return nil, fmt.Errorf("ошибка сканирования документа: %w", err)
		}
		rec.Data = data
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка чтения строк: %w", err)
	}
	return out, nil
}

// Delete удаляет документ. Отсутствие записи — ErrNotFound.
func (s *Postgres) Delete(ctx context.Context, kind Collection, id string) error {
	query := `DELETE FROM documents WHERE collection = $1 AND id = $2`
	tag, err := s.db.Exec(ctx, query, string(kind), id)
	if err != nil {
		return fmt.Errorf("ошибка удаления документа (%s/%s): %w", kind, id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
