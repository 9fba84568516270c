package auth

// Module bundles the account lifecycle service with its HTTP handler.
type Module struct {
	svc     *Service
	handler *Handler
}

func (m *Module) Handler() *Handler {
	return m.handler
}

func (m *Module) Service() *Service {
	return m.svc
}

func NewModule(deps *Dependencies) *Module {
	svc := NewService(deps)
	return &Module{
		svc:     svc,
		handler: NewHandler(svc),
	}
}
