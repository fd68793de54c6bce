package ownership

import (
	"context"
	"errors"
	"fmt"

	"github.com/Jfdeev/reflora/models"

	"gorm.io/gorm"
)

// UpdateUser changes the caller's own name and e-mail.
func (g *Guard) UpdateUser(ctx context.Context, userID uint, req models.UpdateUserRequest) (*models.User, error) {
	user, err := g.user(ctx, userID)
	if err != nil {
		return nil, err
	}
	err = g.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{"name": req.Name, "email": req.Email}).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, ErrEmailTaken
	}
	if err != nil {
		return nil, fmt.Errorf("update user %d: %w", userID, err)
	}
	user.Name, user.Email = req.Name, req.Email
	return user, nil
}

// DeleteUser removes the caller's account along with its sensors and their
// readings and alerts, in one transaction.
func (g *Guard) DeleteUser(ctx context.Context, userID uint) error {
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		locked := g.WithTx(tx).exclusive()
		if err := locked.requireUser(ctx, userID); err != nil {
			if errors.Is(err, ErrUnknownUser) {
				return ErrNotFound
			}
			return err
		}
		var sensorIDs []uint
		if err := locked.query(ctx).Model(&models.Sensor{}).Where("user_id = ?", userID).Pluck("id", &sensorIDs).Error; err != nil {
			return fmt.Errorf("list sensors of user %d: %w", userID, err)
		}
		if len(sensorIDs) > 0 {
			if err := tx.Where("sensor_id IN ?", sensorIDs).Delete(&models.Alert{}).Error; err != nil {
				return fmt.Errorf("delete alerts of user %d: %w", userID, err)
			}
			if err := tx.Where("sensor_id IN ?", sensorIDs).Delete(&models.Reading{}).Error; err != nil {
				return fmt.Errorf("delete readings of user %d: %w", userID, err)
			}
			if err := tx.Where("user_id = ?", userID).Delete(&models.Sensor{}).Error; err != nil {
				return fmt.Errorf("delete sensors of user %d: %w", userID, err)
			}
		}
		result := tx.Where("id = ?", userID).Delete(&models.User{})
		if result.Error != nil {
			return fmt.Errorf("delete user %d: %w", userID, result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func (g *Guard) user(ctx context.Context, userID uint) (*models.User, error) {
	var user models.User
	if err := g.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		return nil, lookupErr("user", userID, err)
	}
	return &user, nil
}
