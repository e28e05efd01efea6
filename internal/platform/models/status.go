package models

import "time"

type SystemStatus struct {
	WebhooksActive  int       `json:"webhooksActive"`
	IndexersRunning int       `json:"indexersRunning"`
	DBConnected     bool      `json:"dbConnected"`
	LastEvent       time.Time `json:"lastEvent"`
	Uptime          int64     `json:"uptime"` // seconds
}
