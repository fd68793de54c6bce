package ownership

import (
	"context"
	"fmt"

	"github.com/Jfdeev/reflora/models"
)

// ClaimSensor binds an unowned sensor to userID. The ownership check, the
// claimant's existence check and the write are one conditional UPDATE, so of
// two concurrent claims on the same sensor exactly one matches a row. The
// loser, and any claim on a sensor that is missing or already owned, gets
// ErrNotClaimable; a claimant whose account is gone gets ErrUnknownUser.
func (g *Guard) ClaimSensor(ctx context.Context, userID, sensorID uint) (*models.Sensor, error) {
	result := g.db.WithContext(ctx).
		Model(&models.Sensor{}).
		Where("id = ? AND user_id IS NULL", sensorID).
		Where("EXISTS (SELECT 1 FROM users WHERE users.id = ?)", userID).
		Update("user_id", userID)
	if result.Error != nil {
		return nil, fmt.Errorf("claim sensor %d: %w", sensorID, result.Error)
	}
	if result.RowsAffected == 0 {
		if err := g.requireUser(ctx, userID); err != nil {
			return nil, err
		}
		return nil, ErrNotClaimable
	}
	return g.ResolveOwnedSensor(ctx, userID, sensorID)
}
