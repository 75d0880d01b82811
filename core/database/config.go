package database

const (
	DriverSQLite     = "sqlite"
	DriverSQLitePure = "sqlite-pure"
	DriverMySQL      = "mysql"
)

// Config holds configuration for the database connection.
type Config struct {
	// Driver is the database driver (sqlite, sqlite-pure, mysql).
	Driver string `mapstructure:"driver" default:"sqlite"`
	// Path is the local database file used by the sqlite drivers.
	// When empty the file resolved by the source fetcher is used.
	Path string `mapstructure:"path" default:""`
	// ReadOnly opens sqlite files in read-only mode.
	ReadOnly bool `mapstructure:"read_only" default:"true"`
	// Host is the database host.
	Host string `mapstructure:"host" default:"localhost"`
	// Port is the database port.
	Port int `mapstructure:"port" default:"3306"`
	// User is the database user.
	User string `mapstructure:"user" default:"root"`
	// Password is the database password.
	Password string `mapstructure:"password" default:""`
	// Name is the database name.
	Name string `mapstructure:"name" default:"babel"`
	// TimeoutSeconds bounds connection setup and the initial ping.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}

// IsSQLite reports whether the configured driver reads a local sqlite file.
func (c Config) IsSQLite() bool {
	return c.Driver == DriverSQLite || c.Driver == DriverSQLitePure
}
