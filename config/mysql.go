package config

import "fmt"

// MySQL 数据库配置
type MySQL struct {
	Host      string `json:"host" yaml:"host" env:"HOST"`
	Port      int    `json:"port" yaml:"port" env:"PORT"`
	Username  string `json:"username" yaml:"username" env:"USERNAME"`
	Password  string `json:"password" yaml:"password" env:"PASSWORD"`
	Database  string `json:"database" yaml:"database" env:"DATABASE"`
	Charset   string `json:"charset" yaml:"charset"`
	Collation string `json:"collation" yaml:"collation"`
}

func (m *MySQL) Dsn() string {
	charset := m.Charset
	if charset == "" {
		charset = "utf8mb4"
	}
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=true&loc=UTC",
		m.Username, m.Password, m.Host, m.Port, m.Database, charset)
	if m.Collation != "" {
		dsn += "&collation=" + m.Collation
	}
	return dsn
}

// MigrateDsn golang-migrate 使用的 dsn, 需要 multiStatements
func (m *MySQL) MigrateDsn() string {
	return "mysql://" + m.Dsn() + "&multiStatements=true"
}
