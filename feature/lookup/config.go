package lookup

// Config holds the lookup table settings.
type Config struct {
	// Table is the name of the lookup table.
	Table string `mapstructure:"table" default:"names"`
	// Columns is the allow-list of columns that may appear in statements.
	// Empty means the list is read from the table itself.
	Columns []string `mapstructure:"columns" default:""`
}
