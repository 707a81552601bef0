package httpapi

import (
	"github.com/dmitrijs2005/fleetdesk/internal/logging"
	"github.com/dmitrijs2005/fleetdesk/internal/server/fleet"
	"github.com/dmitrijs2005/fleetdesk/internal/server/users"
)

type handler struct {
	users    *users.Service
	fleet    *fleet.Store
	log      logging.Logger
	basePath string
}
