package models

import (
	"database/sql/driver"
	"fmt"
	"net/netip"

	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// IPAddress is the 16-byte form of an IPv4 or IPv6 address. IPv4 is kept as
// IPv4-mapped IPv6 and rendered back in dotted form.
type IPAddress []byte

func (a IPAddress) String() string {
	addr, ok := netip.AddrFromSlice(a)
	if !ok {
		return ""
	}
	return addr.Unmap().String()
}

func (a IPAddress) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *IPAddress) UnmarshalText(text []byte) error {
	addr, err := netip.ParseAddr(string(text))
	if err != nil {
		return fmt.Errorf("invalid ip address %q: %w", text, err)
	}
	b := addr.As16()
	*a = b[:]
	return nil
}

func (a IPAddress) Value() (driver.Value, error) {
	return []byte(a), nil
}

func (a *IPAddress) Scan(src any) error {
	b, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("cannot scan %T into IPAddress", src)
	}
	*a = append(IPAddress(nil), b...)
	return nil
}

func (IPAddress) GormDataType() string {
	return "bytes"
}

func (IPAddress) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	switch db.Dialector.Name() {
	case "postgres":
		return "bytea"
	case "mysql":
		return "varbinary(16)"
	default:
		return "blob"
	}
}
