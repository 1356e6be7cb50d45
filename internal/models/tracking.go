package models

import "time"

// TrackedIP is one address seen for one user. Rows are upserted on
// (user_id, ip_address).
type TrackedIP struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"not null;uniqueIndex:idx_user_ips_user_ip,priority:1" json:"user_id"`
	IPAddress    string    `gorm:"size:45;not null;uniqueIndex:idx_user_ips_user_ip,priority:2;index:idx_user_ips_ip" json:"ip_address"`
	LastSeen     time.Time `gorm:"not null;index" json:"last_seen"`
	Country      string    `gorm:"size:100" json:"country"`
	Region       string    `gorm:"size:100" json:"region"`
	City         string    `gorm:"size:100" json:"city"`
	IsBlocked    bool      `gorm:"not null;default:false" json:"is_blocked"`
	IsSuspicious bool      `gorm:"not null;default:false" json:"is_suspicious"`
	User         User      `gorm:"foreignKey:UserID" json:"-"`
}

func (TrackedIP) TableName() string {
	return "user_ips"
}

func (ip *TrackedIP) Location() string {
	return ip.Region + ", " + ip.City
}

// TrackedDevice is one browser fingerprint seen for one user.
type TrackedDevice struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	UserID            uint      `gorm:"not null;uniqueIndex:idx_user_devices_user_fp,priority:1" json:"user_id"`
	DeviceFingerprint string    `gorm:"size:64;not null;uniqueIndex:idx_user_devices_user_fp,priority:2;index:idx_user_devices_fp" json:"device_fingerprint"`
	LastSeen          time.Time `gorm:"not null;index" json:"last_seen"`
	IsBlocked         bool      `gorm:"not null;default:false" json:"is_blocked"`
	User              User      `gorm:"foreignKey:UserID" json:"-"`
}

func (TrackedDevice) TableName() string {
	return "user_devices"
}
