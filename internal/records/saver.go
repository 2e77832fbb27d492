package records

// SaveFunc persists the current state of a result set.
type SaveFunc func() error

// CadenceSaver persists at a fixed cadence so an interruption loses at most
// the last partial batch. Tick after every processed record; Flush once at
// the end.
type CadenceSaver struct {
	every     int
	processed int
	save      SaveFunc
}

// NewCadenceSaver saves every `every` processed records. An every of <= 0
// disables intermediate saves.
func NewCadenceSaver(every int, save SaveFunc) *CadenceSaver {
	return &CadenceSaver{every: every, save: save}
}

// Tick records one processed record and saves when the cadence is hit.
func (s *CadenceSaver) Tick() error {
	s.processed++
	if s.every > 0 && s.processed%s.every == 0 {
		return s.save()
	}
	return nil
}

// Processed returns the number of records ticked so far.
func (s *CadenceSaver) Processed() int {
	return s.processed
}

// Flush saves unconditionally.
func (s *CadenceSaver) Flush() error {
	return s.save()
}
