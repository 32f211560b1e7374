package snapshot

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"user-directory/internal/domain/user"
	apperrors "user-directory/pkg/errors"
)

// UserRepo serves user records from a database snapshot of the remote API.
// It works against any GORM dialect (SQLite or PostgreSQL).
type UserRepo struct {
	db  *gorm.DB    // GORM database connection
	log *zap.Logger // Structured logger for database operations
}

// NewUserRepo creates a new instance of UserRepo.
func NewUserRepo(db *gorm.DB, log *zap.Logger) *UserRepo {
	return &UserRepo{db: db, log: log}
}

// UserSchema represents the database schema for the users table.
type UserSchema struct {
	ID       int64         `gorm:"primaryKey;autoIncrement:false"` // Upstream identifier, kept verbatim
	Name     string        `gorm:"not null"`
	Username string        `gorm:"not null"`
	Email    string        `gorm:"not null"`
	Phone    string
	Website  string
	Address  AddressSchema `gorm:"embedded;embeddedPrefix:address_"`
	Company  CompanySchema `gorm:"embedded;embeddedPrefix:company_"`
}

// AddressSchema is the embedded address column group.
type AddressSchema struct {
	Street  string
	Suite   string
	City    string
	Zipcode string
	GeoLat  string
	GeoLng  string
}

// CompanySchema is the embedded company column group.
type CompanySchema struct {
	Name        string
	CatchPhrase string
	BS          string
}

// TableName specifies the table name for the UserSchema model.
func (UserSchema) TableName() string {
	return "users"
}

// Migrate creates or updates the users table.
func (r *UserRepo) Migrate(ctx context.Context) error {
	if err := r.db.WithContext(ctx).AutoMigrate(&UserSchema{}); err != nil {
		return fmt.Errorf("failed to migrate users table: %w", err)
	}
	return nil
}

// List returns every stored user ordered by id.
func (r *UserRepo) List(ctx context.Context) ([]user.User, error) {
	var models []UserSchema
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&models).Error; err != nil {
		r.log.Error("failed to list users from db", zap.Error(err))
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	users := make([]user.User, len(models))
	for i, model := range models {
		users[i] = model.toDomain()
	}

	return users, nil
}

// GetByID retrieves a user from the database by their unique ID.
func (r *UserRepo) GetByID(ctx context.Context, id int64) (*user.User, error) {
	var model UserSchema
	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.log.Warn("user not found", zap.Int64("id", id))
			return nil, apperrors.NewNotFoundError("user", fmt.Sprintf("user not found: id=%d", id))
		}
		r.log.Error("failed to get user from db", zap.Error(err), zap.Int64("id", id))
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	u := model.toDomain()
	return &u, nil
}

// ReplaceResult reports what ReplaceAll changed.
type ReplaceResult struct {
	Stored int64
	Pruned []int64 // ids that were in the previous snapshot but not in the new one
}

// ReplaceAll stores users as the new snapshot. Existing rows are updated,
// new rows inserted and rows missing from users removed, all in one
// transaction.
func (r *UserRepo) ReplaceAll(ctx context.Context, users []user.User) (ReplaceResult, error) {
	models := make([]UserSchema, len(users))
	ids := make([]int64, len(users))
	for i, u := range users {
		models[i] = fromDomain(u)
		ids[i] = u.ID
	}

	var pruned []int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		stale := tx.Model(&UserSchema{})
		if len(ids) > 0 {
			stale = stale.Where("id NOT IN ?", ids)
		}
		if err := stale.Order("id").Pluck("id", &pruned).Error; err != nil {
			return fmt.Errorf("failed to list stale users: %w", err)
		}

		if len(models) > 0 {
			if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&models).Error; err != nil {
				return fmt.Errorf("failed to upsert users: %w", err)
			}
		}

		if len(pruned) > 0 {
			if err := tx.Where("id IN ?", pruned).Delete(&UserSchema{}).Error; err != nil {
				return fmt.Errorf("failed to prune users: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		r.log.Error("failed to store user snapshot", zap.Error(err), zap.Int("count", len(users)))
		return ReplaceResult{}, err
	}

	r.log.Info("user snapshot stored", zap.Int("count", len(users)), zap.Int("pruned", len(pruned)))
	return ReplaceResult{Stored: int64(len(users)), Pruned: pruned}, nil
}

func (m UserSchema) toDomain() user.User {
	return user.User{
		ID:       m.ID,
		Name:     m.Name,
		Username: m.Username,
		Email:    m.Email,
		Phone:    m.Phone,
		Website:  m.Website,
		Address: user.Address{
			Street:  m.Address.Street,
			Suite:   m.Address.Suite,
			City:    m.Address.City,
			Zipcode: m.Address.Zipcode,
			Geo:     user.Geo{Lat: m.Address.GeoLat, Lng: m.Address.GeoLng},
		},
		Company: user.Company{
			Name:        m.Company.Name,
			CatchPhrase: m.Company.CatchPhrase,
			BS:          m.Company.BS,
		},
	}
}

func fromDomain(u user.User) UserSchema {
	return UserSchema{
		ID:       u.ID,
		Name:     u.Name,
		Username: u.Username,
		Email:    u.Email,
		Phone:    u.Phone,
		Website:  u.Website,
		Address: AddressSchema{
			Street:  u.Address.Street,
			Suite:   u.Address.Suite,
			City:    u.Address.City,
			Zipcode: u.Address.Zipcode,
			GeoLat:  u.Address.Geo.Lat,
			GeoLng:  u.Address.Geo.Lng,
		},
		Company: CompanySchema{
			Name:        u.Company.Name,
			CatchPhrase: u.Company.CatchPhrase,
			BS:          u.Company.BS,
		},
	}
}
