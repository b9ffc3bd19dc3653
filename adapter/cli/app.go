package cli

import (
	billingApp "github.com/halcyonapp/halcyon/internal/billing/application"
	"github.com/halcyonapp/halcyon/internal/deeplink"
	"github.com/halcyonapp/halcyon/internal/referral"
	"github.com/halcyonapp/halcyon/internal/session/store"
)

// App exposes the wired services to CLI commands.
type App struct {
	Store     *store.Store
	Lifecycle *billingApp.LifecycleService
	Referrals *referral.Client
	DeepLinks *deeplink.Router
}

var appInstance *App

// NewApp creates the CLI application facade.
func NewApp(sessionStore *store.Store, lifecycle *billingApp.LifecycleService, referrals *referral.Client, deepLinks *deeplink.Router) *App {
	return &App{
		Store:     sessionStore,
		Lifecycle: lifecycle,
		Referrals: referrals,
		DeepLinks: deepLinks,
	}
}

// SetApp sets the CLI application instance.
func SetApp(app *App) {
	appInstance = app
}

// GetApp returns the CLI application instance, or nil in limited mode.
func GetApp() *App {
	return appInstance
}
