package models

// SystemState is the aggregate root: the current session user (nil when
// logged out), the full teacher roster and both record collections.
// Exactly one instance exists per running service; records reference
// teachers by id, not by pointer.
type SystemState struct {
	CurrentUser *User      `json:"currentUser"`
	Teachers    []User     `json:"teachers"`
	Practices   []Practice `json:"practices"`
	Seminars    []Seminar  `json:"seminars"`
}

// NewSeedState builds the state installed when durable storage holds no
// prior snapshot: empty session, fixed seed roster, empty collections.
func NewSeedState() *SystemState {
	return &SystemState{
		Teachers:  SeedTeachers(),
		Practices: []Practice{},
		Seminars:  []Seminar{},
	}
}

// Clone returns a deep copy. Store mutations operate on a copy so that
// readers never observe a half-applied snapshot.
func (s *SystemState) Clone() *SystemState {
	out := &SystemState{
		Teachers:  make([]User, len(s.Teachers)),
		Practices: make([]Practice, len(s.Practices)),
		Seminars:  make([]Seminar, len(s.Seminars)),
	}
	copy(out.Teachers, s.Teachers)
	for i, p := range s.Practices {
		if p.Proof != nil {
			pr := *p.Proof
			p.Proof = &pr
		}
		out.Practices[i] = p
	}
	for i, sem := range s.Seminars {
		if sem.Proof != nil {
			pr := *sem.Proof
			sem.Proof = &pr
		}
		out.Seminars[i] = sem
	}
	if s.CurrentUser != nil {
		u := *s.CurrentUser
		out.CurrentUser = &u
	}
	return out
}

// TeacherByID looks up a roster entry. Returns nil when absent.
func (s *SystemState) TeacherByID(id string) *User {
	for i := range s.Teachers {
		if s.Teachers[i].ID == id {
			return &s.Teachers[i]
		}
	}
	return nil
}
