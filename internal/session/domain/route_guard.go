package domain

// Screen identifies an entry point within the navigation surface.
type Screen string

const (
	ScreenWelcome       Screen = "welcome"
	ScreenPlanSelection Screen = "plan-selection"
	ScreenHome          Screen = "home"
)

// authFlowStates lists the states that keep a user inside the auth flow.
// Table-driven so new states can be added without touching navigation
// code. States missing from the table fail closed.
var authFlowStates = map[UserState]bool{
	StateUnregistered:             true,
	StateRegisteredNoSubscription: true,
	StateExpiredSubscriber:        true,
	StatePaymentFailed:            true,
	StateActiveSubscriber:         false,
}

// entryScreens maps each state to its auth-flow entry screen.
var entryScreens = map[UserState]Screen{
	StateUnregistered:             ScreenWelcome,
	StateRegisteredNoSubscription: ScreenPlanSelection,
	StateExpiredSubscriber:        ScreenPlanSelection,
	StatePaymentFailed:            ScreenPlanSelection,
	StateActiveSubscriber:         ScreenHome,
}

// RequiresAuthFlow reports whether the state belongs in the auth flow.
// Unknown states default to true.
func RequiresAuthFlow(state UserState) bool {
	requires, ok := authFlowStates[state]
	if !ok {
		return true
	}
	return requires
}

// EntryScreen returns the screen the state enters the app at. Unknown
// states land on the welcome screen.
func EntryScreen(state UserState) Screen {
	screen, ok := entryScreens[state]
	if !ok {
		return ScreenWelcome
	}
	return screen
}
