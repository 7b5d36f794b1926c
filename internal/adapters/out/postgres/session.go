package postgres

import (
	"context"
	"errors"

	"orders/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Session is the handle repositories issue every query through. Outside a
// transaction it is bound to the connection pool and each statement commits on
// its own; inside DoTransactional it is bound to the open transaction.
type Session struct {
	db *gorm.DB
}

func NewSession(db *gorm.DB) *Session {
	return &Session{db: db}
}

// DB returns the gorm handle the session is bound to.
func (s *Session) DB() *gorm.DB {
	return s.db
}

// FindOptions narrows a Find call.
type FindOptions struct {
	// Relations are eagerly loaded, each ordered by primary key.
	Relations []string
	// Order is a raw ORDER BY expression, e.g. "id desc".
	Order string
	// Limit caps the number of rows; zero means no limit.
	Limit int
}

// Find loads every row matching conds into dest, a pointer to a slice.
func (s *Session) Find(ctx context.Context, dest any, opts FindOptions, conds ...any) error {
	query := s.withRelations(s.db.WithContext(ctx), opts.Relations)
	if opts.Order != "" {
		query = query.Order(opts.Order)
	}
	if opts.Limit > 0 {
		query = query.Limit(opts.Limit)
	}

	return classifyError(query.Find(dest, conds...).Error)
}

// FindOneOrFail loads the row with the given primary key into dest and fails
// with errs.ObjectNotFoundError when it does not exist.
func (s *Session) FindOneOrFail(ctx context.Context, dest any, id any, relations ...string) error {
	query := s.withRelations(s.db.WithContext(ctx), relations)

	result := query.First(dest, "id = ?", id)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return errs.NewObjectNotFoundErrorWithCause(result.Statement.Table, id, result.Error)
	}

	return classifyError(result.Error)
}

// Save inserts value when its primary key is zero and updates it otherwise.
// Associations are never written, so one call touches exactly one row. The
// generated primary key is written back into value.
func (s *Session) Save(ctx context.Context, value any) error {
	err := s.db.WithContext(ctx).
		Omit(clause.Associations).
		Save(value).Error

	return classifyError(err)
}

func (s *Session) withRelations(query *gorm.DB, relations []string) *gorm.DB {
	for _, relation := range relations {
		query = query.Preload(relation, orderByPrimaryKey)
	}
	return query
}

func orderByPrimaryKey(db *gorm.DB) *gorm.DB {
	return db.Order("id")
}
