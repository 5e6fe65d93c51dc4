package db

import (
	"net/url"

	"github.com/centurytx/jadekit/internal/config"
	"github.com/centurytx/jadekit/internal/logger"
)

const urlProtocol = "postgresql"

// Options selects the database a Client connects to. At most one of the
// fields may be set.
type Options struct {
	// DBName connects to the named database on localhost
	DBName string
	// DBURL is used verbatim as the connection URL
	DBURL string
	// Pool overrides connection pool settings
	Pool Config
}

// ResolveURL picks the connection URL. The first matching rule wins:
// an explicit URL, an explicit name, POSTGRES_URL from the environment, and
// finally the configured default database name.
func ResolveURL(s *config.Settings, opts Options) (string, error) {
	if opts.DBName != "" && opts.DBURL != "" {
		return "", ErrAmbiguousTarget
	}
	if s == nil || s.Password == "" {
		return "", ErrMissingPassword
	}

	switch {
	case opts.DBURL != "":
		return opts.DBURL, nil
	case opts.DBName != "":
		return localURL(s, opts.DBName), nil
	case s.URL != "":
		if s.Name != "" {
			logger.Warn("DB_NAME ignored since POSTGRES_URL is set in environment.")
		}
		return s.URL, nil
	case s.Name != "":
		return localURL(s, s.Name), nil
	}
	return "", ErrNoTarget
}

func localURL(s *config.Settings, name string) string {
	u := url.URL{
		Scheme: urlProtocol,
		User:   url.UserPassword(s.User, s.Password),
		Host:   "localhost:" + s.Port,
		Path:   "/" + name,
	}
	return u.String()
}
