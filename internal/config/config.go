package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"bastion/internal/storage"
)

type Config struct {
	// AccessKey is the master access key to the server. Must be kept safe and secure!
	AccessKey string

	ServerSSLCertFile, ServerSSLKeyFile string

	DatabasePath string

	// FirewallTool is the binary invoked for every firewall operation, "ufw" unless overridden
	FirewallTool string

	// UseSudo prefixes every firewall invocation with sudo. The daemon is expected
	// to run either as root or as a user with a matching sudoers entry.
	UseSudo bool

	BackupDir string

	// StrictMatch switches rule existence checks from substring containment
	// to whole-token matching against the numbered listing.
	StrictMatch bool

	// RestoreValidation makes restore verify the backup file is readable
	// before issuing the destructive reset.
	RestoreValidation bool

	// DockerSync enables watching the local docker daemon and opening
	// published ports for labeled containers
	DockerSync bool

	S3Endpoint, S3AccessKeyID, S3SecretKey, S3Region string
}

func New() Config {
	_ = godotenv.Load()

	return Config{
		AccessKey:         os.Getenv("ACCESS_KEY"),
		ServerSSLCertFile: os.Getenv("SERVER_SSL_CERT_FILE"),
		ServerSSLKeyFile:  os.Getenv("SERVER_SSL_KEY_FILE"),
		DatabasePath:      envOr("DATABASE_PATH", storage.DBDir),
		FirewallTool:      envOr("FIREWALL_TOOL", "ufw"),
		UseSudo:           envBool("FIREWALL_USE_SUDO", true),
		BackupDir:         envOr("BACKUP_DIR", storage.BackupDir),
		StrictMatch:       envBool("FIREWALL_STRICT_MATCH", false),
		RestoreValidation: envBool("RESTORE_VALIDATION", false),
		DockerSync:        envBool("DOCKER_SYNC", false),
		S3Endpoint:        os.Getenv("S3_ENDPOINT"),
		S3AccessKeyID:     os.Getenv("S3_ACCESS_KEY_ID"),
		S3SecretKey:       os.Getenv("S3_SECRET_KEY"),
		S3Region:          os.Getenv("S3_REGION"),
	}
}

func (c Config) HasTLSConfig() bool {
	return c.ServerSSLCertFile != "" && c.ServerSSLKeyFile != ""
}

func (c Config) HasS3Config() bool {
	return c.S3Endpoint != "" && c.S3AccessKeyID != "" && c.S3SecretKey != ""
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
