package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`
	Email struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUser     string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
	} `yaml:"email"`
	JWT struct {
		Secret     string        `yaml:"secret"`
		TTLMinutes int           `yaml:"ttl_minutes"`
		TTL        time.Duration `yaml:"-"`
	} `yaml:"jwt"`
	Google struct {
		ClientID string `yaml:"client_id"`
	} `yaml:"google"`
	Files struct {
		UploadsDir string `yaml:"uploads_dir"`
		CardsDir   string `yaml:"cards_dir"`
	} `yaml:"files"`
}

func LoadConfig() *Config {
	f, err := os.Open("config/config.yaml")
	if err != nil {
		panic("Failed to open config.yaml: " + err.Error())
	}
	defer f.Close()

	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		panic("Failed to parse config.yaml: " + err.Error())
	}

	// Secrets can come from the environment instead of the file.
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Database.DSN = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.JWT.Secret = v
	}
	if v := os.Getenv("SMTP_PASSWORD"); v != "" {
		cfg.Email.SMTPPassword = v
	}
	if v := os.Getenv("GOOGLE_CLIENT_ID"); v != "" {
		cfg.Google.ClientID = v
	}

	if cfg.JWT.TTLMinutes <= 0 {
		cfg.JWT.TTLMinutes = 60
	}
	cfg.JWT.TTL = time.Duration(cfg.JWT.TTLMinutes) * time.Minute
	if cfg.Files.UploadsDir == "" {
		cfg.Files.UploadsDir = "./uploads"
	}
	if cfg.Files.CardsDir == "" {
		cfg.Files.CardsDir = "./files"
	}
	return &cfg
}
