package model

import (
	"time"
)

type ProbeResults struct {
	ID             int64 `sql:"primary_key"`
	RunID          string
	Proxy          string
	ProxyType      string
	Status         string
	Anonymity      string
	ResponseTimeMs int64
	Speed          string
	Country        *string
	ErrorMessage   *string
	CheckedAt      time.Time
}
