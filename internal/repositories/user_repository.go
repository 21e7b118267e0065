package repositories

import (
	"context"

	"github.com/thatdevelopergirlcobham/unicross-pay-management-system/internal/models"
)

// UserRepository owns identity records. Lookups by email use the normalized
// (trimmed, lowercased) form.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByMatricNo(ctx context.Context, matricNo string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error

	List(ctx context.Context, filters UserFilters) ([]*models.User, int64, error)

	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByMatricNo(ctx context.Context, matricNo string) (bool, error)
}
