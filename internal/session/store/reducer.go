package store

// reduce applies an action to a state snapshot and returns the next
// snapshot. Pure: no I/O, no clock, no mutation of the input pointers.
func reduce(state State, action Action) State {
	switch action.Type {
	case ActionSetPrincipal:
		state.Principal = action.Principal.Clone()
	case ActionSetSubscription:
		state.Subscription = action.Subscription.Clone()
	case ActionSetUserState:
		state.UserState = action.UserState
	case ActionSetError:
		state.Err = action.Err
	case ActionClearError:
		state.Err = nil
	case ActionSetLoading:
		state.IsLoading = action.Flag
	case ActionSetInitialized:
		state.IsInitialized = action.Flag
	case ActionReset:
		state.Principal = nil
		state.Err = nil
		state.IsLoading = false
	}
	return state
}
