package models

type DatabaseStatus string

const (
	DatabaseConnected    DatabaseStatus = "connected"
	DatabaseDisconnected DatabaseStatus = "disconnected"
	DatabaseError        DatabaseStatus = "error"
)

func (s DatabaseStatus) Valid() bool {
	switch s {
	case DatabaseConnected, DatabaseDisconnected, DatabaseError:
		return true
	}
	return false
}

const (
	MinPort = 1
	MaxPort = 65535
)

// PasswordMask replaces the stored password in client-facing copies.
const PasswordMask = "********"

// DatabaseConfig is the singleton connection profile of the target database.
type DatabaseConfig struct {
	Host     string         `json:"host"`
	Port     int            `json:"port"`
	Username string         `json:"username"`
	Password string         `json:"password"`
	Database string         `json:"database"`
	SSL      bool           `json:"ssl"`
	Status   DatabaseStatus `json:"status"`
}

// DatabaseConfigPatch carries a partial update. Nil fields are left unchanged.
type DatabaseConfigPatch struct {
	Host     *string         `json:"host,omitempty"`
	Port     *int            `json:"port,omitempty"`
	Username *string         `json:"username,omitempty"`
	Password *string         `json:"password,omitempty"`
	Database *string         `json:"database,omitempty"`
	SSL      *bool           `json:"ssl,omitempty"`
	Status   *DatabaseStatus `json:"status,omitempty"`
}

// Apply returns base with every supplied field of p written over it.
func (p DatabaseConfigPatch) Apply(base DatabaseConfig) DatabaseConfig {
	if p.Host != nil {
		base.Host = *p.Host
	}
	if p.Port != nil {
		base.Port = *p.Port
	}
	if p.Username != nil {
		base.Username = *p.Username
	}
	if p.Password != nil {
		base.Password = *p.Password
	}
	if p.Database != nil {
		base.Database = *p.Database
	}
	if p.SSL != nil {
		base.SSL = *p.SSL
	}
	if p.Status != nil {
		base.Status = *p.Status
	}
	return base
}

// Masked returns a copy safe to hand to clients.
func (c DatabaseConfig) Masked() DatabaseConfig {
	if c.Password != "" {
		c.Password = PasswordMask
	}
	return c
}
