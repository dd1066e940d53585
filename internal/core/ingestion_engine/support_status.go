package ingestion_engine

// SupportStatus is a pure inspection of the configured PDF capabilities.
type SupportStatus struct {
	PrimaryAvailable  bool    `json:"primary_available"`
	FallbackAvailable bool    `json:"fallback_available"`
	Supported         bool    `json:"supported"`
	Recommended       *string `json:"recommended"`
	PrimaryBackend    string  `json:"primary_backend,omitempty"`
	FallbackBackend   string  `json:"fallback_backend,omitempty"`
}

func (b Backends) SupportStatus() SupportStatus {
	st := SupportStatus{
		PrimaryAvailable:  b.Primary != nil,
		FallbackAvailable: b.Fallback != nil,
	}
	st.Supported = st.PrimaryAvailable || st.FallbackAvailable
	if b.Primary != nil {
		st.PrimaryBackend = b.Primary.Name()
	}
	if b.Fallback != nil {
		st.FallbackBackend = b.Fallback.Name()
	}
	switch {
	case st.PrimaryAvailable:
		name := st.PrimaryBackend
		st.Recommended = &name
	case st.FallbackAvailable:
		name := st.FallbackBackend
		st.Recommended = &name
	}
	return st
}
