package sqlstore

import (
	"database/sql"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"github.com/navbryce/yatube/config"
	"github.com/upper/db/v4"
	upperMysql "github.com/upper/db/v4/adapter/mysql"
	upperSqlite "github.com/upper/db/v4/adapter/sqlite"

	_ "github.com/mattn/go-sqlite3"
)

type SQLDB struct {
	*PostDB
	*GroupDB
	*UserDB
	*FollowDB
	driver string
	sess   db.Session
	sqlDB  *sql.DB
}

// Open opens the configured database. The schema is not created here, see package migrate.
func Open(cfg *config.DBConfig) (*SQLDB, error) {
	sqlDB, err := openSQLDB(cfg)
	if err != nil {
		return nil, err
	}
	database, err := New(cfg.Driver, sqlDB)
	if err != nil {
		sqlDB.Close()
		return nil, err
	}
	return database, nil
}

func openSQLDB(cfg *config.DBConfig) (*sql.DB, error) {
	switch cfg.Driver {
	case config.DriverMySQL:
		dsn := mysql.NewConfig()
		dsn.User = cfg.User
		dsn.Passwd = cfg.Pass
		dsn.Net = "tcp"
		dsn.Addr = cfg.Host
		dsn.DBName = cfg.Name
		dsn.ParseTime = true
		dsn.TLSConfig = "true"
		sqlDB, err := sql.Open("mysql", dsn.FormatDSN())
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxIdleConns(cfg.MaxConns)
		sqlDB.SetMaxOpenConns(cfg.MaxConns)
		sqlDB.SetConnMaxIdleTime(0)
		return sqlDB, nil
	case config.DriverSQLite:
		sqlDB, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?_busy_timeout=5000&_foreign_keys=on", cfg.Path))
		if err != nil {
			return nil, err
		}
		// sqlite allows a single writer
		sqlDB.SetMaxOpenConns(1)
		return sqlDB, nil
	default:
		return nil, fmt.Errorf("unsupported driver %q", cfg.Driver)
	}
}

// New wraps an already opened *sql.DB for the given driver
func New(driver string, sqlDB *sql.DB) (*SQLDB, error) {
	var (
		sess db.Session
		err  error
	)
	switch driver {
	case config.DriverMySQL:
		sess, err = upperMysql.New(sqlDB)
	case config.DriverSQLite:
		sess, err = upperSqlite.New(sqlDB)
	default:
		err = fmt.Errorf("unsupported driver %q", driver)
	}
	if err != nil {
		return nil, err
	}

	return &SQLDB{
		PostDB:   getPostDB(sess),
		GroupDB:  getGroupDB(sess),
		UserDB:   getUserDB(sess),
		FollowDB: getFollowDB(sess),
		driver:   driver,
		sess:     sess,
		sqlDB:    sqlDB,
	}, nil
}

func (sdb *SQLDB) Driver() string {
	return sdb.driver
}

func (sdb *SQLDB) GetSQLDB() *sql.DB {
	return sdb.sqlDB
}

func (sdb *SQLDB) Close() error {
	return sdb.sess.Close()
}
