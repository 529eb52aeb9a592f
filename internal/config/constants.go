package config

const (
	// DefaultDatabasePath is the default path for the sqlite database
	DefaultDatabasePath = "./bookshelf.db"

	// DefaultJWTIssuer is the "iss" claim stamped on access tokens
	DefaultJWTIssuer = "bookshelf"
)
