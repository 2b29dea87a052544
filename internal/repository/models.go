package repository

// Models lists every persisted row type for schema migration.
func Models() []any {
	return []any{
		&userModel{},
		&companyModel{},
		&bookingModel{},
	}
}
