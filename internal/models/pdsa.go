package models

// PdsaCycle is one Plan-Do-Study-Act iteration of a project
// Cycles carry no identifier of their own; two identical rows are indistinguishable
type PdsaCycle struct {
	ProjectID int    `json:"project_id"`
	CycleName string `json:"cycle_name"`
	Plan      string `json:"plan"`
	Do        string `json:"do"`
	Study     string `json:"study"`
	Act       string `json:"act"`
	Date      Date   `json:"date"`
}

// Cycles is the in-memory PDSA collection, kept in storage order
type Cycles []PdsaCycle

// Clone returns a copy that shares no backing array with c
func (c Cycles) Clone() Cycles {
	if c == nil {
		return Cycles{}
	}
	out := make(Cycles, len(c))
	copy(out, c)
	return out
}
