package security

type StubRandomizer struct {
	RandomizeFunc func(length uint32) (string, error)
}

func (s *StubRandomizer) Randomize(length uint32) (string, error) {
	if s.RandomizeFunc == nil {
		panic("Randomize not implemented by stub")
	}
	return s.RandomizeFunc(length)
}
