package geoip

import (
	"fmt"
	"net"

	ip2location "github.com/ip2location/ip2location-go/v9"

	"oroweb/conf"
)

// IP2Location BIN库的封装。v4和v6是两个独立的库文件，按地址族选库。

type Database struct {
	v4 *ip2location.DB
	v6 *ip2location.DB
}

func Open(cfg *conf.RegionConfig) (*Database, error) {
	v4, err := ip2location.OpenDB(cfg.IPv4Database)
	if err != nil {
		return nil, fmt.Errorf("open ipv4 database: %w", err)
	}
	v6, err := ip2location.OpenDB(cfg.IPv6Database)
	if err != nil {
		v4.Close()
		return nil, fmt.Errorf("open ipv6 database: %w", err)
	}
	return &Database{v4: v4, v6: v6}, nil
}

// CountryCode 返回地址所在国家的ISO码，库里查不到返回空串
func (d *Database) CountryCode(address string) (string, error) {
	ip := net.ParseIP(address)
	if ip == nil {
		return "", fmt.Errorf("invalid address %q", address)
	}

	db := d.v4
	if ip.To4() == nil {
		db = d.v6
	}

	rec, err := db.Get_country_short(address)
	if err != nil {
		return "", err
	}
	cc := rec.Country_short
	// 库返回"-"或错误描述文本都按未知处理
	if len(cc) != 2 {
		return "", nil
	}
	return cc, nil
}

func (d *Database) Close() {
	d.v4.Close()
	d.v6.Close()
}
