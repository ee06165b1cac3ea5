package models

// RecordKind discriminates the two activity record shapes. The source
// system distinguished them by probing for a "date" field; here the
// union is explicit.
type RecordKind string

const (
	KindPractice RecordKind = "practice"
	KindSeminar  RecordKind = "seminar"
)

// Proof is uploaded document evidence attached to exactly one Practice
// or Seminar. It is created atomically with its owning record and never
// mutated afterwards; deleting the record is the only way to remove it.
type Proof struct {
	FileName      string `json:"fileName"`
	MimeType      string `json:"mimeType"`
	Data          string `json:"data"` // base64 payload
	ExtractedInfo string `json:"extractedInfo,omitempty"`
}

// Practice is a single-date teacher activity record.
type Practice struct {
	ID          string `json:"id" validate:"required"`
	TeacherID   string `json:"teacherId" validate:"required"`
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"max=1000"`
	Date        string `json:"date" validate:"required,datetime=2006-01-02"`
	Proof       *Proof `json:"proof,omitempty"`
}

// Seminar is a date-range teacher activity record.
type Seminar struct {
	ID          string `json:"id" validate:"required"`
	TeacherID   string `json:"teacherId" validate:"required"`
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"max=1000"`
	FromDate    string `json:"fromDate" validate:"required,datetime=2006-01-02"`
	ToDate      string `json:"toDate" validate:"required,datetime=2006-01-02"`
	Proof       *Proof `json:"proof,omitempty"`
}

// Record is the tagged union over the two activity shapes. Exactly one
// of Practice/Seminar is set, matching Kind.
type Record struct {
	Kind     RecordKind `json:"kind"`
	Practice *Practice  `json:"practice,omitempty"`
	Seminar  *Seminar   `json:"seminar,omitempty"`
}

func PracticeRecord(p Practice) Record {
	return Record{Kind: KindPractice, Practice: &p}
}

func SeminarRecord(s Seminar) Record {
	return Record{Kind: KindSeminar, Seminar: &s}
}

// TeacherID returns the owning teacher regardless of record shape.
func (r Record) TeacherID() string {
	switch r.Kind {
	case KindPractice:
		if r.Practice != nil {
			return r.Practice.TeacherID
		}
	case KindSeminar:
		if r.Seminar != nil {
			return r.Seminar.TeacherID
		}
	}
	return ""
}
