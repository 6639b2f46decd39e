package caferepo

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"cafedelivery/internal/core/domain/model/actor"
	"cafedelivery/internal/core/domain/model/kernel"
	"cafedelivery/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormCafeRepository implements ports.CafeRepository and ports.Authorizer.
type GormCafeRepository struct {
	db *gorm.DB
}

func NewGormCafeRepository(db *gorm.DB) *GormCafeRepository {
	return &GormCafeRepository{db: db}
}

func (r *GormCafeRepository) Location(ctx context.Context, cafeID kernel.UUID) (kernel.Location, error) {
	if err := cafeID.Validate(); err != nil {
		return kernel.Location{}, err
	}

	var dto CafeDTO
	err := r.db.WithContext(ctx).Select("id", "lat", "lng").First(&dto, "id = ?", cafeID.Bytes()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return kernel.Location{}, errs.NewObjectNotFoundError("cafe", cafeID)
	}
	if err != nil {
		return kernel.Location{}, err
	}

	return kernel.NewLocation(dto.Lat, dto.Lng)
}

// RequireCafeStaffOrOwnerOrAdmin passes admins, the cafe's owner and users
// with a staff assignment on the cafe. An unknown cafe is forbidden.
func (r *GormCafeRepository) RequireCafeStaffOrOwnerOrAdmin(ctx context.Context, cafeID kernel.UUID, a actor.Actor) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if a.IsAdmin() {
		return nil
	}

	var allowed bool
	err := r.db.WithContext(ctx).Raw(`
		SELECT EXISTS (SELECT 1 FROM cafes WHERE id = @cafe AND owner_id = @user)
		    OR EXISTS (SELECT 1 FROM staff_assignments WHERE cafe_id = @cafe AND user_id = @user)`,
		map[string]any{"cafe": cafeID.Bytes(), "user": a.ID().Bytes()},
	).Scan(&allowed).Error
	if err != nil {
		return err
	}
	if !allowed {
		return errs.NewForbiddenErrorWithCause("manage cafe orders",
			fmt.Errorf("%s is not staff or owner of cafe %s", a, cafeID))
	}
	return nil
}

func (r *GormCafeRepository) RequireRole(a actor.Actor, roles ...actor.Role) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if !a.HasRole(roles...) {
		return errs.NewForbiddenErrorWithCause("role check",
			fmt.Errorf("%s is none of %v", a.Role(), slices.Clone(roles)))
	}
	return nil
}
