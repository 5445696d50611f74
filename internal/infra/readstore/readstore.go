package readstore

// pgxRow is the scan surface shared by pgx.Row and pgx.Rows.
type pgxRow interface {
	Scan(dest ...any) error
}
