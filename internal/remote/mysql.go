package remote

import (
	"log"
	"os"
	"time"

	"github.com/sitewarden/sitewarden/internal/conf"
	"github.com/sitewarden/sitewarden/internal/errors"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open dials the remote MySQL service configured in settings and returns an
// accessor bound to the configured table set.
func Open(settings *conf.Settings) (*Accessor, error) {
	if settings.Remote.DSN == "" {
		return nil, errors.Newf("remote.dsn is not configured").
			Component("remote").
			Category(errors.CategoryConfiguration).
			Build()
	}

	// Create a new GORM logger
	newLogger := createGormLogger()

	db, err := gorm.Open(mysql.Open(settings.Remote.DSN), &gorm.Config{Logger: newLogger})
	if err != nil {
		return nil, errors.New(err).
			Component("remote").
			Category(errors.CategoryNetwork).
			Context("operation", "open").
			Build()
	}

	return NewWithDB(db, settings.Remote.Tables), nil
}

// createGormLogger configures and returns a new GORM logger instance.
func createGormLogger() logger.Interface {
	return logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: 200 * time.Millisecond,
			LogLevel:      logger.Warn,
			Colorful:      true,
		},
	)
}
