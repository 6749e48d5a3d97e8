package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// 配置中可选的内容存储与图片存储后端
const (
	StoreSQLite = "sqlite"
	StoreMongo  = "mongo"

	MediaLocal = "local"
	MediaMinIO = "minio"
	MediaS3    = "s3"
)

// AppConfig 汇总运行站点和后台 API 所需的基础配置。
type AppConfig struct {
	ListenAddr    string `env:"LISTEN_ADDR" envDefault:":8080"`
	GinMode       string `env:"GIN_MODE" envDefault:"release"`
	SiteName      string `env:"SITE_NAME" envDefault:"RetouchLab"`
	SiteBaseURL   string `env:"SITE_BASE_URL" envDefault:"http://localhost:8080"`
	SessionSecret string `env:"SESSION_SECRET" envDefault:"retouchlab-dev-secret"`
	AdminUserName string `env:"ADMIN_USER_NAME"`
	AdminPassword string `env:"ADMIN_PASSWORD"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	StoreBackend  string `env:"CONTENT_STORE" envDefault:"sqlite"`
	DatabasePath  string `env:"DATABASE_PATH" envDefault:"retouchlab.db"`
	MongoURI      string `env:"MONGO_URI" envDefault:"mongodb://localhost:27017"`
	MongoDatabase string `env:"MONGO_DATABASE" envDefault:"retouchlab"`

	MediaBackend   string `env:"MEDIA_BACKEND" envDefault:"local"`
	UploadDir      string `env:"UPLOAD_DIR" envDefault:"web/static/uploads"`
	UploadURLPath  string `env:"UPLOAD_URL_PATH" envDefault:"/static/uploads"`
	MaxUploadBytes int64  `env:"MAX_UPLOAD_BYTES" envDefault:"5242880"`

	MinIO MinIOConfig `envPrefix:"MINIO_"`
	S3    S3Config    `envPrefix:"S3_"`
}

// MinIOConfig 是 MinIO 图片存储配置
type MinIOConfig struct {
	Endpoint  string `env:"ENDPOINT"`
	AccessKey string `env:"ACCESS_KEY"`
	SecretKey string `env:"SECRET_KEY"`
	Bucket    string `env:"BUCKET" envDefault:"site-images"`
	UseSSL    bool   `env:"USE_SSL" envDefault:"true"`
	PublicURL string `env:"PUBLIC_URL"`
}

// S3Config 是兼容 S3 的图片存储配置
type S3Config struct {
	Endpoint  string `env:"ENDPOINT"`
	Region    string `env:"REGION" envDefault:"us-east-1"`
	AccessKey string `env:"ACCESS_KEY"`
	SecretKey string `env:"SECRET_KEY"`
	Bucket    string `env:"BUCKET" envDefault:"site-images"`
	PublicURL string `env:"PUBLIC_URL"`
}

// Load 先读取可选的 .env 文件，再从环境变量读取应用配置，并为缺失项提供默认值。
func Load(envFiles ...string) (AppConfig, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return AppConfig{}, fmt.Errorf("load env file: %w", err)
	}

	cfg, err := env.ParseAs[AppConfig]()
	if err != nil {
		return AppConfig{}, fmt.Errorf("parse environment: %w", err)
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}

func (c *AppConfig) normalize() {
	c.StoreBackend = strings.ToLower(strings.TrimSpace(c.StoreBackend))
	c.MediaBackend = strings.ToLower(strings.TrimSpace(c.MediaBackend))
	c.AdminUserName = strings.TrimSpace(c.AdminUserName)
	c.AdminPassword = strings.TrimSpace(c.AdminPassword)
	c.UploadURLPath = "/" + strings.Trim(strings.TrimSpace(c.UploadURLPath), "/")
	c.SiteBaseURL = strings.TrimRight(strings.TrimSpace(c.SiteBaseURL), "/")
}

// Validate 拒绝未知的后端和无效的大小限制
func (c AppConfig) Validate() error {
	switch c.StoreBackend {
	case StoreSQLite, StoreMongo:
	default:
		return fmt.Errorf("unsupported content store %q", c.StoreBackend)
	}

	switch c.MediaBackend {
	case MediaLocal:
	case MediaMinIO:
		if c.MinIO.Endpoint == "" {
			return errors.New("MINIO_ENDPOINT is required for the minio media backend")
		}
	case MediaS3:
		if c.S3.Bucket == "" {
			return errors.New("S3_BUCKET is required for the s3 media backend")
		}
	default:
		return fmt.Errorf("unsupported media backend %q", c.MediaBackend)
	}

	if c.MaxUploadBytes <= 0 {
		return errors.New("MAX_UPLOAD_BYTES must be positive")
	}
	return nil
}

// AuthEnabled 表示是否配置了管理员账号
func (c AppConfig) AuthEnabled() bool {
	return c.AdminUserName != "" && c.AdminPassword != ""
}
