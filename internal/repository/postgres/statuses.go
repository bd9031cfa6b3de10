package postgres

import (
	"context"
	"database/sql"

	"go.uber.org/zap"

	"github.com/jafarshop/myorders/internal/domain"
)

type statusRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewStatusRepository creates a new status configuration repository
func NewStatusRepository(db *sql.DB, logger *zap.Logger) *statusRepository {
	return &statusRepository{
		db:     db,
		logger: logger,
	}
}

// ListActive returns the active display statuses, each joined to its ERP status
// when one is bound. Rows come ordered by display status id.
func (r *statusRepository) ListActive(ctx context.Context) ([]domain.StatusDefinition, error) {
	query := `
		SELECT cs.id, s.erp_code, cs.title, cs.position, cs.color, cs.image, cs.image_list,
		       cs.show_expected, cs.show_comment
		FROM client_statuses cs
		LEFT JOIN statuses s ON s.id = cs.status_id AND s.is_active = true
		WHERE cs.is_active = true
		ORDER BY cs.id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to query statuses", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var defs []domain.StatusDefinition
	for rows.Next() {
		var def domain.StatusDefinition
		var code sql.NullInt64
		var position, color sql.NullString
		var image, imageList sql.NullString

		if err := rows.Scan(
			&def.ID,
			&code,
			&def.Title,
			&position,
			&color,
			&image,
			&imageList,
			&def.ShowExpected,
			&def.ShowComment,
		); err != nil {
			r.logger.Error("Failed to scan status", zap.Error(err))
			return nil, err
		}

		if code.Valid {
			def.Code = code.Int64
		}
		def.Position = domain.Position(position.String)
		if !def.Position.IsValid() {
			r.logger.Warn("Unknown status position, ordering as normal",
				zap.Int64("status_id", def.ID),
				zap.String("position", position.String),
			)
		}
		def.Color = color.String
		if image.Valid && image.String != "" {
			def.Image = &image.String
		}
		if imageList.Valid && imageList.String != "" {
			def.ImageList = &imageList.String
		}
		// show_comment only applies to statuses rendered with a list image
		if def.ImageList == nil {
			def.ShowComment = false
		}

		defs = append(defs, def)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("Failed to iterate statuses", zap.Error(err))
		return nil, err
	}

	return defs, nil
}
