package storage

const (
	Path      = "/var/bastion/data"
	BackupDir = Path + "/backups"
	DBDir     = Path + "/database.db"
)
