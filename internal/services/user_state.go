package services

// Mode droits d'un visiteur selon son état de connexion
type Mode interface {
	Status() string
	CanPurchase() bool
	CanView() bool
}

type GuestState struct{}

func (GuestState) Status() string    { return "Guest" }
func (GuestState) CanPurchase() bool { return false }
func (GuestState) CanView() bool     { return true }

type LoggedInState struct{}

func (LoggedInState) Status() string    { return "Logged In" }
func (LoggedInState) CanPurchase() bool { return true }
func (LoggedInState) CanView() bool     { return true }

// UserState démarre en invité
type UserState struct {
	mode Mode
}

func NewUserState() *UserState {
	return &UserState{mode: GuestState{}}
}

// StateFor état correspondant à une requête authentifiée ou non
func StateFor(authenticated bool) *UserState {
	s := NewUserState()
	if authenticated {
		s.SetState(LoggedInState{})
	}
	return s
}

func (s *UserState) SetState(mode Mode) {
	s.mode = mode
}

func (s *UserState) Mode() Mode        { return s.mode }
func (s *UserState) Status() string    { return s.mode.Status() }
func (s *UserState) CanPurchase() bool { return s.mode.CanPurchase() }
func (s *UserState) CanView() bool     { return s.mode.CanView() }
