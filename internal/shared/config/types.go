package config

import (
	"fmt"
	"strings"
)

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port" validate:"gte=1,lte=65535"`
	Mode string `mapstructure:"mode" validate:"omitempty,oneof=debug release test development production"`
}

func (s *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type DatabaseConfig struct {
	Driver          string `mapstructure:"driver" validate:"omitempty,oneof=mysql sqlite"`
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	Database        string `mapstructure:"database"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
}

func (d *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.Username, d.Password, d.Host, d.Port, d.Database)
}

type LoggerConfig struct {
	Level      string `mapstructure:"level" validate:"omitempty,oneof=debug info warn error"`
	Format     string `mapstructure:"format" validate:"omitempty,oneof=console json"`
	OutputPath string `mapstructure:"output_path"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (r *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// TrelloConfig holds board-system credentials and the allow-lists that
// bound which organisations and boards the sync is willing to touch.
type TrelloConfig struct {
	APIKey           string   `mapstructure:"api_key"`
	Token            string   `mapstructure:"token"`
	Organisations    []string `mapstructure:"organisations"`
	Boards           []string `mapstructure:"boards"`
	CreateFromBoards []string `mapstructure:"create_from_boards"`
	TrustedIPs       []string `mapstructure:"trusted_ips"`
	WebhookRateLimit int      `mapstructure:"webhook_rate_limit" validate:"gte=0"`
}

// BoardAllowed reports whether cards on the given board may be synced.
// An empty allow-list permits every board within the organisations.
func (t *TrelloConfig) BoardAllowed(boardID string) bool {
	if len(t.Boards) == 0 {
		return true
	}
	for _, id := range t.Boards {
		if id == boardID {
			return true
		}
	}
	return false
}

// CreateAllowed reports whether ticket creation is permitted for cards
// originating on the given board. An empty list permits all boards.
func (t *TrelloConfig) CreateAllowed(boardID string) bool {
	if len(t.CreateFromBoards) == 0 {
		return true
	}
	for _, id := range t.CreateFromBoards {
		if id == boardID {
			return true
		}
	}
	return false
}

// TrackerConfig describes the ticket-system side: the public project URL
// used in back-links and the component-to-board routing table.
type TrackerConfig struct {
	// ProjectURL must keep its trailing slash; ticket links are built by
	// plain concatenation.
	ProjectURL      string            `mapstructure:"project_url" validate:"required,endswith=/"`
	ComponentBoards map[string]string `mapstructure:"component_boards"`
}

// BoardForComponent returns the board id mapped to a ticket component.
// Lookups are case-insensitive on the component name.
func (t *TrackerConfig) BoardForComponent(component string) string {
	return t.ComponentBoards[strings.ToLower(component)]
}
