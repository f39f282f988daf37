package restapp

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/mongodb/grip"
	"github.com/pkg/errors"
)

// DBSettings describes how to reach the MongoDB deployment that backs the
// resource collections.
type DBSettings struct {
	Hostname           string `yaml:"hostname" json:"hostname"`
	Port               int    `yaml:"port" json:"port"`
	DB                 string `yaml:"db" json:"db"`
	Username           string `yaml:"username" json:"username"`
	Password           string `yaml:"password" json:"-"`
	ConnectTimeoutSecs int    `yaml:"connect_timeout_secs" json:"connect_timeout_secs"`
}

func (s *DBSettings) SectionId() string { return "database" }

// ValidateAndDefault fills in the connection defaults. The database name
// defaults to one derived from the environment name.
func (s *DBSettings) ValidateAndDefault(environment string) error {
	catcher := grip.NewSimpleCatcher()

	if s.Hostname == "" {
		s.Hostname = DefaultDBHostname
	}
	if s.Port == 0 {
		s.Port = DefaultDBPort
	}
	if s.DB == "" {
		s.DB = DefaultDBName(environment)
	}
	if s.ConnectTimeoutSecs == 0 {
		s.ConnectTimeoutSecs = DefaultDBConnectTimeoutSecs
	}

	catcher.ErrorfWhen(s.Port < 0 || s.Port > 65535, "database port %d is out of range", s.Port)
	catcher.ErrorfWhen(s.ConnectTimeoutSecs < 0, "database connect timeout cannot be negative")
	catcher.NewWhen((s.Username == "") != (s.Password == ""), "database username and password must be set together")

	return errors.Wrap(catcher.Resolve(), "invalid database settings")
}

// URL assembles the connection string. Credentials are only included when
// both a username and a password are configured.
func (s *DBSettings) URL() string {
	u := url.URL{
		Scheme: "mongodb",
		Host:   net.JoinHostPort(s.Hostname, strconv.Itoa(s.Port)),
		Path:   "/" + s.DB,
	}
	if s.Username != "" && s.Password != "" {
		u.User = url.UserPassword(s.Username, s.Password)
	}

	return u.String()
}

// RedactedURL is URL with the password masked, suitable for logging.
func (s *DBSettings) RedactedURL() string {
	if s.Username != "" && s.Password != "" {
		return fmt.Sprintf("mongodb://%s:***@%s/%s", url.User(s.Username).String(),
			net.JoinHostPort(s.Hostname, strconv.Itoa(s.Port)), s.DB)
	}
	return s.URL()
}

func (s *DBSettings) ConnectTimeout() time.Duration {
	return time.Duration(s.ConnectTimeoutSecs) * time.Second
}
