package services

import (
	apperrors "finledger/internal/errors"
	"finledger/internal/logger"
)

type adminService struct {
	schema SchemaResetter
}

// NewAdminService creates a new admin service.
func NewAdminService(schema SchemaResetter) AdminServicer {
	return &adminService{schema: schema}
}

// ResetSchema drops every table and reapplies all migrations. All data
// is lost, including users and their credentials.
func (s *adminService) ResetSchema() error {
	logger.Get().Warnw("resetting database schema, all data will be dropped")

	if err := s.schema.Reset(); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	logger.Get().Infow("database schema reset complete")
	return nil
}
