package docstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jamiebhpark/MentalHealthApp/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// documentRow is one document in the SQL-backed store.
type documentRow struct {
	Path      string `gorm:"primaryKey;size:512"`
	ID        string `gorm:"primaryKey;size:64"`
	Data      string `gorm:"type:text;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (documentRow) TableName() string { return "documents" }

// SQLStore keeps documents as typed JSON rows in a relational database through gorm.
// Field updates run in a transaction holding a row lock, which makes Increment and
// AppendUnique atomic on postgres; sqlite serializes writers on its own.
type SQLStore struct {
	settings
	db *gorm.DB
}

// NewSQLStore migrates the documents table and returns a store over db.
func NewSQLStore(db *gorm.DB, opts ...Option) (*SQLStore, error) {
	if err := db.AutoMigrate(&documentRow{}); err != nil {
		return nil, fmt.Errorf("failed to migrate documents table: %w", err)
	}
	return &SQLStore{settings: newSettings(opts), db: db}, nil
}

func (s *SQLStore) CreateDocument(ctx context.Context, collectionPath string, fields Fields) (string, error) {
	if _, _, err := splitPath(collectionPath); err != nil {
		return "", err
	}

	now := s.now()
	data, err := encodeFields(normalizeFields(fields, now))
	if err != nil {
		return "", err
	}

	row := documentRow{Path: collectionPath, ID: s.newID(), Data: data}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return "", models.NewStoreUnavailableError("create", err)
	}
	return row.ID, nil
}

func (s *SQLStore) GetDocuments(ctx context.Context, collectionPath string, q Query) ([]Document, error) {
	if _, _, err := splitPath(collectionPath); err != nil {
		return nil, err
	}

	var rows []documentRow
	if err := s.db.WithContext(ctx).Where("path = ?", collectionPath).Find(&rows).Error; err != nil {
		return nil, models.NewStoreUnavailableError("query", err)
	}

	docs := make([]Document, 0, len(rows))
	for _, row := range rows {
		fields, err := decodeFields(row.Data)
		if err != nil {
			return nil, models.NewInternalError(fmt.Errorf("decode %s/%s: %w", row.Path, row.ID, err))
		}
		docs = append(docs, Document{ID: row.ID, Fields: fields})
	}
	return applyQuery(docs, q), nil
}

func (s *SQLStore) UpdateField(ctx context.Context, collectionPath, id, field string, op FieldOp, opts ...UpdateOption) error {
	if _, _, err := splitPath(collectionPath); err != nil {
		return err
	}
	o := resolveUpdateOptions(opts)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if o.Upsert {
			seed := documentRow{Path: collectionPath, ID: id, Data: "{}"}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&seed).Error; err != nil {
				return err
			}
		}

		var row documentRow
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("path = ? AND id = ?", collectionPath, id).
			First(&row).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		fields, err := decodeFields(row.Data)
		if err != nil {
			return err
		}
		applyOp(fields, field, op)
		data, err := encodeFields(fields)
		if err != nil {
			return err
		}

		return tx.Model(&documentRow{}).
			Where("path = ? AND id = ?", collectionPath, id).
			Updates(map[string]any{"data": data, "updated_at": s.now()}).Error
	})

	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrNotFound):
		return ErrNotFound
	default:
		return models.NewStoreUnavailableError("update", err)
	}
}

func (s *SQLStore) GetDocument(ctx context.Context, collectionPath, id string) (Fields, error) {
	var row documentRow
	err := s.db.WithContext(ctx).
		Where("path = ? AND id = ?", collectionPath, id).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, models.NewStoreUnavailableError("read", err)
	}
	fields, err := decodeFields(row.Data)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return fields, nil
}

func (s *SQLStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return models.NewStoreUnavailableError("ping", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return models.NewStoreUnavailableError("ping", err)
	}
	return nil
}

func (s *SQLStore) Close(_ context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
