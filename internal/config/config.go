package config

import (
	"fmt"
	"os"

	"github.com/go-yaml/yaml"

	"github.com/Esteban8482/blog-platform/internal/domain"
)

type Config struct {
	Gateway  Gateway  `yaml:"gateway"`
	Services Services `yaml:"services"`
	Auth     Auth     `yaml:"auth"`
	Server   Server   `yaml:"server"`
}

type Gateway struct {
	Listen        string `yaml:"listen"`
	EnableTrace   bool   `yaml:"enableTrace"`
	TraceEndpoint string `yaml:"traceEndpoint"`
}

type Services struct {
	UserServiceURL    string `yaml:"userServiceURL"`
	PostServiceURL    string `yaml:"postServiceURL"`
	CommentServiceURL string `yaml:"commentServiceURL"`
}

type Auth struct {
	Mode string `yaml:"mode"` // session, token

	// session mode
	SessionSecret     string `yaml:"sessionSecret"`
	SessionTTLMinutes int    `yaml:"sessionTTLMinutes"`
	RedisAddr         string `yaml:"redisAddr"`
	RedisDB           int    `yaml:"redisDB"`

	// token mode
	Issuer        string `yaml:"issuer"`
	Audience      string `yaml:"audience"`
	JWKSURL       string `yaml:"jwksURL"`
	LeewaySeconds int    `yaml:"leewaySeconds"`
}

// Validate rejects configurations that do not pick exactly one auth mode.
// The identity provider keys are needed in both modes: token mode verifies
// every request, session mode verifies the provider token once at login.
func (a Auth) Validate() error {
	if a.JWKSURL == "" {
		return fmt.Errorf("auth.jwksURL is required")
	}
	switch a.Mode {
	case domain.AuthModeSession:
		if a.SessionSecret == "" {
			return fmt.Errorf("auth.sessionSecret is required in session mode")
		}
		if a.RedisAddr == "" {
			return fmt.Errorf("auth.redisAddr is required in session mode")
		}
	case domain.AuthModeToken:
	default:
		return fmt.Errorf("auth.mode must be %q or %q, got %q",
			domain.AuthModeSession, domain.AuthModeToken, a.Mode)
	}
	return nil
}

// Server configures one backend service process.
type Server struct {
	Listen      string `yaml:"listen"`
	PostgresDsn string `yaml:"postgresDsn"`
}

func Load(path string) (Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer file.Close()

	var config Config
	err = yaml.NewDecoder(file).Decode(&config)
	if err != nil {
		return Config{}, err
	}

	return config, nil
}
