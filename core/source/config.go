package source

// Config describes where the lookup database comes from and how to verify it.
type Config struct {
	// URL is downloaded when Object is empty.
	URL string `mapstructure:"url" default:"https://zenodo.org/records/8350361/files/names.db"`
	// Object is the key of the database in the storage bucket. It takes
	// precedence over URL.
	Object string `mapstructure:"object" default:""`
	// KnownHash is "<algorithm>:<hex digest>" (md5 or sha256).
	// Empty skips verification.
	KnownHash string `mapstructure:"known_hash" default:"md5:80f0f5b8ea8c01a911c1a9196dcbd2fd"`
	// CacheDir holds the downloaded file. Empty uses the user cache dir.
	CacheDir string `mapstructure:"cache_dir" default:""`
	// FileName is the name of the cached file inside CacheDir.
	FileName string `mapstructure:"file_name" default:"names.db"`
	// TimeoutSeconds bounds a URL download.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"300"`
}
