package opts

import (
	"github.com/CascadePass/TCXPowerScaler/pkg/backup"
	"github.com/CascadePass/TCXPowerScaler/pkg/config"
	"github.com/CascadePass/TCXPowerScaler/pkg/log"
	"github.com/CascadePass/TCXPowerScaler/pkg/status"
	"github.com/rs/zerolog"
)

// RootOpts contains shared collaborators used by all commands
type RootOpts struct {
	Config     *config.Config
	Provider   config.Provider
	Backup     *backup.Manager
	StatusMgr  *status.Manager
	UserLogger *log.UserLogger
	Logger     *zerolog.Logger
}
