package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrStorageUnavailable возвращается, когда хранилище недоступно или не сконфигурировано.
// Все зависимые операции падают сразу с этой ошибкой, без тихой деградации.
var ErrStorageUnavailable = errors.New("storage unavailable")

// ErrDocumentNotFound возвращается, когда документ с указанным id не найден.
var ErrDocumentNotFound = errors.New("document not found")

// Document — запись из именованной коллекции.
// Идентификатор снаружи хранилища — непрозрачная строка.
type Document struct {
	ID        string
	Data      map[string]any
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DocumentStorage описывает обобщённый доступ к именованным коллекциям документов.
type DocumentStorage interface {
	// Create сохраняет документ и возвращает присвоенный id.
	Create(ctx context.Context, collection string, doc map[string]any) (string, error)
	// Find возвращает документы коллекции по фильтру равенства полей.
	// Пустой фильтр означает выборку без условий, порядок не гарантируется.
	Find(ctx context.Context, collection string, filter map[string]any) ([]Document, error)
	// GetByID возвращает документ по id или ErrDocumentNotFound.
	GetByID(ctx context.Context, collection, id string) (*Document, error)
	// DecrementPositive атомарно уменьшает числовое поле документа на 1,
	// если его текущее значение больше нуля. Возвращает false, если условие не выполнено.
	DecrementPositive(ctx context.Context, collection, id, field string) (bool, error)
	// Count возвращает количество документов в коллекции.
	Count(ctx context.Context, collection string) (int, error)
	// Collections возвращает имена непустых коллекций.
	Collections(ctx context.Context) ([]string, error)
}

// documentStore — реализация DocumentStorage поверх таблицы documents (JSONB).
type documentStore struct {
	db *sql.DB
}

var _ DocumentStorage = (*documentStore)(nil)

// NewDocumentStore создаёт хранилище документов. db может быть nil,
// если DATABASE_URL не задан — тогда все операции возвращают ErrStorageUnavailable.
func NewDocumentStore(db *sql.DB) *documentStore {
	return &documentStore{db: db}
}

func (s *documentStore) Create(ctx context.Context, collection string, doc map[string]any) (string, error) {
	if s.db == nil {
		return "", ErrStorageUnavailable
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("failed to marshal document: %w", err)
	}

	id := uuid.NewString()
	_, err = s.db.ExecContext(ctx,
		"INSERT INTO documents (id, collection, doc, created_at, updated_at) VALUES ($1, $2, $3, NOW(), NOW())",
		id, collection, data,
	)
	if err != nil {
		return "", fmt.Errorf("%w: failed to insert document: %v", ErrStorageUnavailable, err)
	}
	return id, nil
}

func (s *documentStore) Find(ctx context.Context, collection string, filter map[string]any) ([]Document, error) {
	if s.db == nil {
		return nil, ErrStorageUnavailable
	}

	if filter == nil {
		filter = map[string]any{}
	}
	cond, err := json.Marshal(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal filter: %w", err)
	}

	// Фильтр равенства полей выражается через JSONB containment
	query := "SELECT id, doc, created_at, updated_at FROM documents WHERE collection = $1 AND doc @> $2"
	rows, err := s.db.QueryContext(ctx, query, collection, cond)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query documents: %v", ErrStorageUnavailable, err)
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, *doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: failed to read documents: %v", ErrStorageUnavailable, err)
	}
	return docs, nil
}

func (s *documentStore) GetByID(ctx context.Context, collection, id string) (*Document, error) {
	if s.db == nil {
		return nil, ErrStorageUnavailable
	}
	// Некорректный идентификатор эквивалентен отсутствию документа
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrDocumentNotFound
	}

	row := s.db.QueryRowContext(ctx,
		"SELECT id, doc, created_at, updated_at FROM documents WHERE collection = $1 AND id = $2",
		collection, id,
	)
	doc, err := scanDocument(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}
	return doc, nil
}

func (s *documentStore) DecrementPositive(ctx context.Context, collection, id, field string) (bool, error) {
	if s.db == nil {
		return false, ErrStorageUnavailable
	}

	// Условный декремент одним запросом: проверка "> 0" и уменьшение атомарны
	// на уровне строки, гонка двух конкурентных скачиваний исключена.
	query := `UPDATE documents
	          SET doc = jsonb_set(doc, ARRAY[$3], to_jsonb((doc ->> $3)::int - 1)), updated_at = NOW()
	          WHERE collection = $1 AND id = $2 AND (doc ->> $3)::int > 0`
	res, err := s.db.ExecContext(ctx, query, collection, id, field)
	if err != nil {
		return false, fmt.Errorf("%w: failed to decrement field: %v", ErrStorageUnavailable, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (s *documentStore) Count(ctx context.Context, collection string) (int, error) {
	if s.db == nil {
		return 0, ErrStorageUnavailable
	}

	var count int
	row := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM documents WHERE collection = $1", collection)
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: failed to count documents: %v", ErrStorageUnavailable, err)
	}
	return count, nil
}

func (s *documentStore) Collections(ctx context.Context) ([]string, error) {
	if s.db == nil {
		return nil, ErrStorageUnavailable
	}

	rows, err := s.db.QueryContext(ctx, "SELECT DISTINCT collection FROM documents ORDER BY collection")
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list collections: %v", ErrStorageUnavailable, err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return names, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row rowScanner) (*Document, error) {
	doc := &Document{}
	var data []byte
	if err := row.Scan(&doc.ID, &data, &doc.CreatedAt, &doc.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, &doc.Data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal document %s: %w", doc.ID, err)
	}
	return doc, nil
}

// encodeDoc переводит модель в документ. Поля id/created_at/updated_at
// живут в колонках таблицы, а не внутри документа.
func encodeDoc(v any) (map[string]any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	delete(doc, "id")
	delete(doc, "created_at")
	delete(doc, "updated_at")
	return doc, nil
}

// decodeDoc переводит документ обратно в модель.
func decodeDoc(doc map[string]any, v any) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}
