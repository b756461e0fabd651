package health

// Service encapsulates health-related checks.
type Service struct {
	// Capabilities reports which optional analysis capabilities loaded at
	// startup.
	Capabilities map[string]bool
}

// NewService constructs a new health service.
func NewService(capabilities map[string]bool) *Service {
	if capabilities == nil {
		capabilities = map[string]bool{}
	}
	return &Service{Capabilities: capabilities}
}

// Status returns the health payload.
func (s *Service) Status() map[string]any {
	return map[string]any{
		"ok":           true,
		"capabilities": s.Capabilities,
	}
}
